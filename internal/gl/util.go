// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// CreateProgram links the compiled shaders into a program. Attribute i
// of attribs is bound to location i before linking; empty names are
// left to the driver.
func CreateProgram(f Functions, shaders []Shader, attribs []string) (Program, error) {
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	for _, s := range shaders {
		f.AttachShader(prog, s)
	}
	for i, a := range attribs {
		if a != "" {
			f.BindAttribLocation(prog, Attrib(i), a)
		}
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == 0 {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return Program{}, errors.Errorf("program link failed: %s", strings.TrimSpace(log))
	}
	return prog, nil
}

// CreateShader compiles src into a shader of type typ.
func CreateShader(f Functions, typ Enum, src string) (Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		return Shader{}, errors.Errorf("shader compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}

// ParseGLVersion parses a GL_VERSION string and reports whether
// it names an OpenGL ES (or WebGL) context.
func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, errors.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// ParseExtensions splits a GL_EXTENSIONS string into its tokens.
func ParseExtensions(exts string) []string {
	return strings.Fields(exts)
}

// HasExtension reports whether ext is one of the exts tokens.
func HasExtension(exts []string, ext string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
