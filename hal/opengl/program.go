// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
	"gioui.org/shader"
)

type shaderObj struct {
	resource
	desc hal.ShaderDesc
	obj  gl.Shader
}

type program struct {
	resource
	desc     hal.ProgramDesc
	obj      gl.Program
	attribs  []hal.Attribute
	uniforms []*hal.Uniform

	// set is the descriptor set last applied to the program and
	// versions the slot versions it had, indexed by uniform.
	set      *descriptorSet
	versions []uint64
}

// samplerSeparator splits combined texture and sampler uniform names.
const samplerSeparator = "_X_"

func (b *Backend) NewShader(desc hal.ShaderDesc) (hal.Shader, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	typ := format.ShaderStage(desc.Stage)
	if typ == format.Invalid {
		return nil, b.fail(hal.KindShader, unsupported("shader stage %v", desc.Stage))
	}
	src := b.shaderSource(desc.Source)
	if src == "" {
		return nil, b.fail(hal.KindShader, unsupported("%s: no GLSL source for OpenGL %d.%d", desc.Source.Name, b.glver[0], b.glver[1]))
	}
	sh, err := gl.CreateShader(b.funcs, typ, src)
	if err != nil {
		return nil, b.fail(hal.KindShader, errors.Wrapf(err, "%s", desc.Source.Name))
	}
	s := &shaderObj{desc: desc, obj: sh}
	b.register(s, hal.KindShader)
	return s, nil
}

// shaderSource selects the GLSL variant the driver accepts.
func (b *Backend) shaderSource(src shader.Sources) string {
	if !b.gles && (b.glver[0] >= 4 || b.glver[0] == 3 && b.glver[1] >= 2) {
		// OpenGL 3.2 Core only accepts glsl 1.50 or newer.
		return src.GLSL150
	}
	return src.GLSL100ES
}

func (s *shaderObj) Desc() hal.ShaderDesc {
	return s.desc
}

func (s *shaderObj) Release() {
	if s.release() {
		s.b.funcs.DeleteShader(s.obj)
	}
}

func (b *Backend) NewProgram(desc hal.ProgramDesc) (hal.Program, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	var (
		shaders []gl.Shader
		inputs  []shader.InputLocation
		stages  gputypes.ShaderStage
	)
	for _, s := range desc.Shaders {
		sh, err := lookup[*shaderObj](b, s)
		if err != nil {
			return nil, b.fail(hal.KindProgram, err)
		}
		shaders = append(shaders, sh.obj)
		stages |= sh.desc.Stage
		if sh.desc.Stage == gputypes.ShaderStageVertex {
			inputs = append(inputs, sh.desc.Source.Inputs...)
		}
	}
	if stages&gputypes.ShaderStageVertex == 0 || stages&gputypes.ShaderStageFragment == 0 {
		return nil, b.fail(hal.KindProgram, errors.New("program needs a vertex and a fragment shader"))
	}
	var attr []string
	for _, inp := range inputs {
		if inp.Location < 0 || inp.Location >= b.caps.Limits.MaxVertexAttribs {
			return nil, b.fail(hal.KindProgram, errors.Errorf("input %s: location %d out of range", inp.Name, inp.Location))
		}
		for len(attr) <= inp.Location {
			attr = append(attr, "")
		}
		attr[inp.Location] = inp.Name
	}
	p, err := gl.CreateProgram(b.funcs, shaders, attr)
	if err != nil {
		return nil, b.fail(hal.KindProgram, err)
	}
	prog := &program{desc: desc, obj: p}
	b.glstate.useProgram(b.funcs, p)
	prog.attribs = reflectAttributes(b.funcs, p, inputs)
	prog.uniforms = reflectUniforms(b.funcs, p)
	prog.versions = make([]uint64, len(prog.uniforms))
	b.register(prog, hal.KindProgram)
	return prog, nil
}

// reflectAttributes recovers the semantics of the active attributes of
// p. Inputs annotated with a semantic take precedence over the name.
func reflectAttributes(f gl.Functions, p gl.Program, inputs []shader.InputLocation) []hal.Attribute {
	annotated := make(map[string]shader.InputLocation)
	for _, inp := range inputs {
		if inp.Semantic != "" {
			annotated[inp.Name] = inp
		}
	}
	n := f.GetProgrami(p, gl.ACTIVE_ATTRIBUTES)
	attribs := make([]hal.Attribute, 0, n)
	for i := 0; i < n; i++ {
		name, _, typ := f.GetActiveAttrib(p, i)
		a := hal.Attribute{
			Name:     name,
			Location: f.GetAttribLocation(p, name),
		}
		if inp, ok := annotated[name]; ok {
			a.Semantic, a.SemanticIndex = inp.Semantic, inp.SemanticIndex
		} else {
			a.Semantic, a.SemanticIndex = semanticOf(name)
		}
		if vf, ok := format.ReflectedVertexFormat(typ); ok {
			a.Format = vf
		} else {
			logger().WithFields(logrus.Fields{
				"attribute": name,
				"type":      typ,
			}).Debug("attribute type has no vertex format")
		}
		attribs = append(attribs, a)
	}
	return attribs
}

// semanticOf splits an attribute name into a semantic and an index. The
// trailing run of digits is the index, and the semantic is the rest
// after the last underscore:
//
//	in_POSITION0 -> POSITION, 0
//	a_tex_COORD12 -> COORD, 12
//	normal -> normal, 0
//
// Names that would leave an empty semantic, such as "123" or "v_", or
// whose index does not fit an int use the whole name with index 0.
func semanticOf(name string) (string, int) {
	end := len(name)
	for end > 0 && name[end-1] >= '0' && name[end-1] <= '9' {
		end--
	}
	idx := 0
	if end < len(name) {
		n, err := strconv.Atoi(name[end:])
		if err != nil {
			return name, 0
		}
		idx = n
	}
	sem := name[:end]
	if i := strings.LastIndexByte(sem, '_'); i >= 0 {
		sem = sem[i+1:]
	}
	if sem == "" {
		return name, 0
	}
	return sem, idx
}

// reflectUniforms lists the active uniforms of p and assigns texture
// units to its samplers. p must be current.
func reflectUniforms(f gl.Functions, p gl.Program) []*hal.Uniform {
	n := f.GetProgrami(p, gl.ACTIVE_UNIFORMS)
	var uniforms []*hal.Uniform
	unit := 0
	for i := 0; i < n; i++ {
		name, size, typ := f.GetActiveUniform(p, i)
		loc := f.GetUniformLocation(p, name)
		if !loc.Valid() {
			continue
		}
		isArray := size > 1
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
			isArray = true
		}
		u := &hal.Uniform{
			Name:     name,
			Type:     uniformType(typ, isArray),
			Location: loc.V,
			Unit:     -1,
			Count:    1,
		}
		if u.Type.IsArray() {
			u.Count = size
		}
		switch {
		case u.Type.IsTexture() && isArray:
			logger().WithField("uniform", name).Warn("sampler arrays are not supported")
			u.Type = hal.UniformTypeNull
		case u.Type.IsTexture():
			if i := strings.Index(name, samplerSeparator); i >= 0 {
				u.Name, u.SamplerName = name[:i], name[i+len(samplerSeparator):]
			}
			u.Unit = unit
			f.Uniform1i(loc, unit)
			unit++
		case u.Type == hal.UniformTypeNull:
			logger().WithFields(logrus.Fields{
				"uniform": name,
				"type":    typ,
			}).Warn("unknown uniform type")
		}
		uniforms = append(uniforms, u)
	}
	return uniforms
}

var uniformTypes = map[gl.Enum][2]hal.UniformType{
	gl.FLOAT:             {hal.UniformTypeFloat, hal.UniformTypeFloatArray},
	gl.FLOAT_VEC2:        {hal.UniformTypeFloat2, hal.UniformTypeFloat2Array},
	gl.FLOAT_VEC3:        {hal.UniformTypeFloat3, hal.UniformTypeFloat3Array},
	gl.FLOAT_VEC4:        {hal.UniformTypeFloat4, hal.UniformTypeFloat4Array},
	gl.FLOAT_MAT2:        {hal.UniformTypeFloat2x2, hal.UniformTypeFloat2x2Array},
	gl.FLOAT_MAT3:        {hal.UniformTypeFloat3x3, hal.UniformTypeFloat3x3Array},
	gl.FLOAT_MAT4:        {hal.UniformTypeFloat4x4, hal.UniformTypeFloat4x4Array},
	gl.INT:               {hal.UniformTypeInt, hal.UniformTypeIntArray},
	gl.INT_VEC2:          {hal.UniformTypeInt2, hal.UniformTypeInt2Array},
	gl.INT_VEC3:          {hal.UniformTypeInt3, hal.UniformTypeInt3Array},
	gl.INT_VEC4:          {hal.UniformTypeInt4, hal.UniformTypeInt4Array},
	gl.UNSIGNED_INT:      {hal.UniformTypeUInt, hal.UniformTypeUIntArray},
	gl.UNSIGNED_INT_VEC2: {hal.UniformTypeUInt2, hal.UniformTypeUInt2Array},
	gl.UNSIGNED_INT_VEC3: {hal.UniformTypeUInt3, hal.UniformTypeUInt3Array},
	gl.UNSIGNED_INT_VEC4: {hal.UniformTypeUInt4, hal.UniformTypeUInt4Array},
	// Booleans are set through the integer entry points.
	gl.BOOL:              {hal.UniformTypeBool, hal.UniformTypeIntArray},
	gl.BOOL_VEC2:         {hal.UniformTypeInt2, hal.UniformTypeInt2Array},
	gl.BOOL_VEC3:         {hal.UniformTypeInt3, hal.UniformTypeInt3Array},
	gl.BOOL_VEC4:         {hal.UniformTypeInt4, hal.UniformTypeInt4Array},
	gl.SAMPLER_2D:        {hal.UniformTypeSamplerImage, hal.UniformTypeSamplerImage},
	gl.SAMPLER_CUBE:      {hal.UniformTypeSamplerImage, hal.UniformTypeSamplerImage},
	gl.SAMPLER_2D_SHADOW: {hal.UniformTypeSamplerImage, hal.UniformTypeSamplerImage},
}

// uniformType maps a reflected driver type to a uniform type. Unknown
// types map to UniformTypeNull.
func uniformType(typ gl.Enum, array bool) hal.UniformType {
	t, ok := uniformTypes[typ]
	if !ok {
		return hal.UniformTypeNull
	}
	if array {
		return t[1]
	}
	return t[0]
}

func (p *program) Desc() hal.ProgramDesc {
	return p.desc
}

func (p *program) Attributes() []hal.Attribute {
	return p.attribs
}

func (p *program) Uniforms() []*hal.Uniform {
	return p.uniforms
}

// attribute returns the reflected attribute with the semantic, if any.
func (p *program) attribute(semantic string, index int) (hal.Attribute, bool) {
	for _, a := range p.attribs {
		if a.Semantic == semantic && a.SemanticIndex == index {
			return a, true
		}
	}
	return hal.Attribute{}, false
}

func (p *program) Release() {
	if p.release() {
		p.b.glstate.deleteProgram(p.b.funcs, p.obj)
		p.set = nil
	}
}
