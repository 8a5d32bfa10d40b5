// SPDX-License-Identifier: Unlicense OR MIT

package glfake

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gioui.org/glhal/internal/gl"
)

type shader struct {
	typ      gl.Enum
	src      string
	compiled bool
	log      string
}

type program struct {
	shaders  []uint
	bound    map[string]int
	linked   bool
	log      string
	attribs  []variable
	uniforms []variable
	// locs maps uniform names, including indexed array elements, to
	// locations.
	locs   map[string]int
	values map[int]interface{}
}

type variable struct {
	name string
	typ  gl.Enum
	size int
	loc  int
}

const precision = `(?:(?:lowp|mediump|highp)\s+)?`

var (
	attribRE  = regexp.MustCompile(`(?m)^\s*(?:attribute|in)\s+` + precision + `(\w+)\s+(\w+)\s*;`)
	uniformRE = regexp.MustCompile(`(?m)^\s*uniform\s+` + precision + `(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	commentRE = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

var glslTypes = map[string]gl.Enum{
	"float":           gl.FLOAT,
	"vec2":            gl.FLOAT_VEC2,
	"vec3":            gl.FLOAT_VEC3,
	"vec4":            gl.FLOAT_VEC4,
	"int":             gl.INT,
	"ivec2":           gl.INT_VEC2,
	"ivec3":           gl.INT_VEC3,
	"ivec4":           gl.INT_VEC4,
	"uint":            gl.UNSIGNED_INT,
	"uvec2":           gl.UNSIGNED_INT_VEC2,
	"uvec3":           gl.UNSIGNED_INT_VEC3,
	"uvec4":           gl.UNSIGNED_INT_VEC4,
	"bool":            gl.BOOL,
	"bvec2":           gl.BOOL_VEC2,
	"bvec3":           gl.BOOL_VEC3,
	"bvec4":           gl.BOOL_VEC4,
	"mat2":            gl.FLOAT_MAT2,
	"mat3":            gl.FLOAT_MAT3,
	"mat4":            gl.FLOAT_MAT4,
	"sampler2D":       gl.SAMPLER_2D,
	"sampler3D":       gl.SAMPLER_3D,
	"samplerCube":     gl.SAMPLER_CUBE,
	"sampler2DShadow": gl.SAMPLER_2D_SHADOW,
}

func newProgram() *program {
	return &program{
		bound:  make(map[string]int),
		locs:   make(map[string]int),
		values: make(map[int]interface{}),
	}
}

func (s *shader) compile() {
	s.compiled = !strings.Contains(s.src, "#error")
	if s.compiled {
		s.log = ""
	} else {
		s.log = "ERROR: 0:1: '#error' : compilation terminated"
	}
}

// glslType returns the driver type of a GLSL type name. Unknown names,
// such as struct types, report 0.
func glslType(name string) gl.Enum {
	return glslTypes[name]
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource", s.V)
	if sh := f.shaders[s.V]; sh != nil {
		sh.src = src
	}
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.record("GetShaderi", s.V, pname)
	sh := f.shaders[s.V]
	if sh == nil {
		f.PushError(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(sh.compiled)
	case gl.INFO_LOG_LENGTH:
		return len(sh.log) + 1
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.record("GetShaderInfoLog", s.V)
	if sh := f.shaders[s.V]; sh != nil {
		return sh.log
	}
	return ""
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.record("LinkProgram", p.V)
	prog := f.programs[p.V]
	if prog == nil {
		f.PushError(gl.INVALID_VALUE)
		return
	}
	prog.link(f)
}

func (p *program) link(f *Functions) {
	p.linked = false
	p.attribs, p.uniforms = nil, nil
	p.locs = make(map[string]int)
	p.values = make(map[int]interface{})
	var vert, frag *shader
	for _, id := range p.shaders {
		sh := f.shaders[id]
		switch {
		case sh == nil || !sh.compiled:
			p.log = "error: attached shader not compiled"
			return
		case sh.typ == gl.VERTEX_SHADER:
			vert = sh
		case sh.typ == gl.FRAGMENT_SHADER:
			frag = sh
		}
	}
	switch {
	case f.FailLink:
		p.log = "error: program link failed"
		return
	case vert == nil || frag == nil:
		p.log = "error: program lacks a vertex or fragment shader"
		return
	}
	p.linked = true
	p.log = ""

	// Attributes.
	used := make(map[int]bool)
	src := commentRE.ReplaceAllString(vert.src, "")
	for _, m := range attribRE.FindAllStringSubmatch(src, -1) {
		v := variable{name: m[2], typ: glslType(m[1]), size: 1, loc: -1}
		if loc, ok := p.bound[v.name]; ok {
			v.loc = loc
			used[loc] = true
		}
		p.attribs = append(p.attribs, v)
	}
	next := 0
	for i := range p.attribs {
		if p.attribs[i].loc != -1 {
			continue
		}
		for used[next] {
			next++
		}
		p.attribs[i].loc = next
		used[next] = true
	}

	// Uniforms, deduplicated across stages.
	seen := make(map[string]bool)
	loc := 0
	for _, sh := range []*shader{vert, frag} {
		src := commentRE.ReplaceAllString(sh.src, "")
		for _, m := range uniformRE.FindAllStringSubmatch(src, -1) {
			name := m[2]
			if seen[name] {
				continue
			}
			seen[name] = true
			v := variable{name: name, typ: glslType(m[1]), size: 1, loc: loc}
			if m[3] != "" {
				n, _ := strconv.Atoi(m[3])
				v.size = n
				v.name = name + "[0]"
				for i := 0; i < n; i++ {
					p.locs[name+"["+strconv.Itoa(i)+"]"] = loc + i
				}
			}
			p.locs[name] = loc
			loc += v.size
			p.uniforms = append(p.uniforms, v)
		}
	}
	sort.SliceStable(p.attribs, func(i, j int) bool {
		return p.attribs[i].loc < p.attribs[j].loc
	})
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.record("GetProgrami", p.V, pname)
	prog := f.programs[p.V]
	if prog == nil {
		f.PushError(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return boolInt(prog.linked)
	case gl.ACTIVE_ATTRIBUTES:
		return len(prog.attribs)
	case gl.ACTIVE_UNIFORMS:
		return len(prog.uniforms)
	case gl.INFO_LOG_LENGTH:
		return len(prog.log) + 1
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.record("GetProgramInfoLog", p.V)
	if prog := f.programs[p.V]; prog != nil {
		return prog.log
	}
	return ""
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveAttrib", p.V, index)
	prog := f.programs[p.V]
	if prog == nil || index < 0 || index >= len(prog.attribs) {
		f.PushError(gl.INVALID_VALUE)
		return "", 0, 0
	}
	a := prog.attribs[index]
	return a.name, a.size, a.typ
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveUniform", p.V, index)
	prog := f.programs[p.V]
	if prog == nil || index < 0 || index >= len(prog.uniforms) {
		f.PushError(gl.INVALID_VALUE)
		return "", 0, 0
	}
	u := prog.uniforms[index]
	return u.name, u.size, u.typ
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	f.record("GetAttribLocation", p.V, name)
	if prog := f.programs[p.V]; prog != nil {
		for _, a := range prog.attribs {
			if a.name == name {
				return a.loc
			}
		}
	}
	return -1
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation", p.V, name)
	if prog := f.programs[p.V]; prog != nil && prog.linked {
		if loc, ok := prog.locs[name]; ok {
			return gl.Uniform{V: loc}
		}
	}
	return gl.Uniform{V: -1}
}

// UniformValue returns the last value written to the uniform name of
// p. Scalars set through Uniform1i are reported as []int32.
func (f *Functions) UniformValue(p gl.Program, name string) interface{} {
	prog := f.programs[p.V]
	if prog == nil {
		return nil
	}
	loc, ok := prog.locs[name]
	if !ok {
		return nil
	}
	return prog.values[loc]
}

func (f *Functions) setUniform(dst gl.Uniform, v interface{}) {
	prog := f.programs[f.current]
	if prog == nil || !prog.linked {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	if dst.V == -1 {
		return
	}
	prog.values[dst.V] = v
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.record("Uniform1i", dst.V, v)
	f.setUniform(dst, []int32{int32(v)})
}

func (f *Functions) Uniform1fv(dst gl.Uniform, v []float32) {
	f.record("Uniform1fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func (f *Functions) Uniform2fv(dst gl.Uniform, v []float32) {
	f.record("Uniform2fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func (f *Functions) Uniform3fv(dst gl.Uniform, v []float32) {
	f.record("Uniform3fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func (f *Functions) Uniform4fv(dst gl.Uniform, v []float32) {
	f.record("Uniform4fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func (f *Functions) Uniform1iv(dst gl.Uniform, v []int32) {
	f.record("Uniform1iv", dst.V, v)
	f.setUniform(dst, append([]int32(nil), v...))
}

func (f *Functions) Uniform2iv(dst gl.Uniform, v []int32) {
	f.record("Uniform2iv", dst.V, v)
	f.setUniform(dst, append([]int32(nil), v...))
}

func (f *Functions) Uniform3iv(dst gl.Uniform, v []int32) {
	f.record("Uniform3iv", dst.V, v)
	f.setUniform(dst, append([]int32(nil), v...))
}

func (f *Functions) Uniform4iv(dst gl.Uniform, v []int32) {
	f.record("Uniform4iv", dst.V, v)
	f.setUniform(dst, append([]int32(nil), v...))
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, v []float32) {
	f.record("UniformMatrix2fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, v []float32) {
	f.record("UniformMatrix3fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, v []float32) {
	f.record("UniformMatrix4fv", dst.V, v)
	f.setUniform(dst, append([]float32(nil), v...))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
