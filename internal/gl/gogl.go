// SPDX-License-Identifier: Unlicense OR MIT

//go:build gogl

package gl

import (
	"strings"
	"unsafe"

	gogl "github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

// goglFunctions forwards to the cgo bindings of github.com/go-gl/gl.
// Framebuffer entry points use the ARB_framebuffer_object names.
type goglFunctions struct{}

func init() {
	newNativeFunctions = func(ctx Context) (Functions, error) {
		if err := gogl.Init(); err != nil {
			return nil, errors.Wrap(err, "gl: go-gl init")
		}
		return goglFunctions{}, nil
	}
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func cstr(s string) (*uint8, func()) {
	p, free := gogl.Strs(s + "\x00")
	return *p, free
}

func (goglFunctions) ActiveTexture(texture Enum) {
	gogl.ActiveTexture(uint32(texture))
}

func (goglFunctions) AttachShader(p Program, s Shader) {
	gogl.AttachShader(uint32(p.V), uint32(s.V))
}

func (goglFunctions) BindAttribLocation(p Program, a Attrib, name string) {
	n, free := cstr(name)
	defer free()
	gogl.BindAttribLocation(uint32(p.V), uint32(a), n)
}

func (goglFunctions) BindBuffer(target Enum, b Buffer) {
	gogl.BindBuffer(uint32(target), uint32(b.V))
}

func (goglFunctions) BindFramebuffer(target Enum, fb Framebuffer) {
	gogl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (goglFunctions) BindRenderbuffer(target Enum, rb Renderbuffer) {
	gogl.BindRenderbuffer(uint32(target), uint32(rb.V))
}

func (goglFunctions) BindTexture(target Enum, t Texture) {
	gogl.BindTexture(uint32(target), uint32(t.V))
}

func (goglFunctions) BlendColor(r, g, b, a float32) {
	gogl.BlendColor(r, g, b, a)
}

func (goglFunctions) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	gogl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (goglFunctions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	gogl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (goglFunctions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask Enum, filter Enum) {
	gogl.BlitFramebuffer(int32(sx0), int32(sy0), int32(sx1), int32(sy1), int32(dx0), int32(dy0), int32(dx1), int32(dy1), uint32(mask), uint32(filter))
}

func (goglFunctions) BufferData(target Enum, size int, usage Enum, data []byte) {
	gogl.BufferData(uint32(target), size, bytesPtr(data), uint32(usage))
}

func (goglFunctions) BufferSubData(target Enum, offset int, src []byte) {
	gogl.BufferSubData(uint32(target), offset, len(src), bytesPtr(src))
}

func (goglFunctions) CheckFramebufferStatus(target Enum) Enum {
	return Enum(gogl.CheckFramebufferStatus(uint32(target)))
}

func (goglFunctions) Clear(mask Enum) {
	gogl.Clear(uint32(mask))
}

func (goglFunctions) ClearColor(red, green, blue, alpha float32) {
	gogl.ClearColor(red, green, blue, alpha)
}

func (goglFunctions) ClearDepthf(d float32) {
	// glClearDepthf is missing from plain 2.1 drivers.
	gogl.ClearDepth(float64(d))
}

func (goglFunctions) ClearStencil(s int) {
	gogl.ClearStencil(int32(s))
}

func (goglFunctions) ColorMask(red, green, blue, alpha bool) {
	gogl.ColorMask(red, green, blue, alpha)
}

func (goglFunctions) CompileShader(s Shader) {
	gogl.CompileShader(uint32(s.V))
}

func (goglFunctions) CompressedTexImage2D(target Enum, level int, internalFormat Enum, width, height int, data []byte) {
	gogl.CompressedTexImage2D(uint32(target), int32(level), uint32(internalFormat), int32(width), int32(height), 0, int32(len(data)), bytesPtr(data))
}

func (goglFunctions) CreateBuffer() Buffer {
	var b uint32
	gogl.GenBuffers(1, &b)
	return Buffer{uint(b)}
}

func (goglFunctions) CreateFramebuffer() Framebuffer {
	var fb uint32
	gogl.GenFramebuffers(1, &fb)
	return Framebuffer{uint(fb)}
}

func (goglFunctions) CreateProgram() Program {
	return Program{uint(gogl.CreateProgram())}
}

func (goglFunctions) CreateRenderbuffer() Renderbuffer {
	var rb uint32
	gogl.GenRenderbuffers(1, &rb)
	return Renderbuffer{uint(rb)}
}

func (goglFunctions) CreateShader(ty Enum) Shader {
	return Shader{uint(gogl.CreateShader(uint32(ty)))}
}

func (goglFunctions) CreateTexture() Texture {
	var t uint32
	gogl.GenTextures(1, &t)
	return Texture{uint(t)}
}

func (goglFunctions) CullFace(mode Enum) {
	gogl.CullFace(uint32(mode))
}

func (goglFunctions) DeleteBuffer(v Buffer) {
	b := uint32(v.V)
	gogl.DeleteBuffers(1, &b)
}

func (goglFunctions) DeleteFramebuffer(v Framebuffer) {
	fb := uint32(v.V)
	gogl.DeleteFramebuffers(1, &fb)
}

func (goglFunctions) DeleteProgram(p Program) {
	gogl.DeleteProgram(uint32(p.V))
}

func (goglFunctions) DeleteRenderbuffer(v Renderbuffer) {
	rb := uint32(v.V)
	gogl.DeleteRenderbuffers(1, &rb)
}

func (goglFunctions) DeleteShader(s Shader) {
	gogl.DeleteShader(uint32(s.V))
}

func (goglFunctions) DeleteTexture(v Texture) {
	t := uint32(v.V)
	gogl.DeleteTextures(1, &t)
}

func (goglFunctions) DepthFunc(f Enum) {
	gogl.DepthFunc(uint32(f))
}

func (goglFunctions) DepthMask(mask bool) {
	gogl.DepthMask(mask)
}

func (goglFunctions) Disable(cap Enum) {
	gogl.Disable(uint32(cap))
}

func (goglFunctions) DisableVertexAttribArray(a Attrib) {
	gogl.DisableVertexAttribArray(uint32(a))
}

func (goglFunctions) DrawArrays(mode Enum, first, count int) {
	gogl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (goglFunctions) DrawElements(mode Enum, count int, ty Enum, offset int) {
	gogl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (goglFunctions) Enable(cap Enum) {
	gogl.Enable(uint32(cap))
}

func (goglFunctions) EnableVertexAttribArray(a Attrib) {
	gogl.EnableVertexAttribArray(uint32(a))
}

func (goglFunctions) Finish() {
	gogl.Finish()
}

func (goglFunctions) Flush() {
	gogl.Flush()
}

func (goglFunctions) FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer) {
	gogl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbuffertarget), uint32(renderbuffer.V))
}

func (goglFunctions) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	gogl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (goglFunctions) FrontFace(mode Enum) {
	gogl.FrontFace(uint32(mode))
}

func (goglFunctions) GenerateMipmap(target Enum) {
	gogl.GenerateMipmap(uint32(target))
}

const maxNameLength = 256

func (goglFunctions) GetActiveAttrib(p Program, index int) (string, int, Enum) {
	var (
		length, size int32
		ty           uint32
		buf          [maxNameLength]uint8
	)
	gogl.GetActiveAttrib(uint32(p.V), uint32(index), maxNameLength, &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), Enum(ty)
}

func (goglFunctions) GetActiveUniform(p Program, index int) (string, int, Enum) {
	var (
		length, size int32
		ty           uint32
		buf          [maxNameLength]uint8
	)
	gogl.GetActiveUniform(uint32(p.V), uint32(index), maxNameLength, &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), Enum(ty)
}

func (goglFunctions) GetAttribLocation(p Program, name string) int {
	n, free := cstr(name)
	defer free()
	return int(gogl.GetAttribLocation(uint32(p.V), n))
}

func (goglFunctions) GetError() Enum {
	return Enum(gogl.GetError())
}

func (goglFunctions) GetFloat(pname Enum) float32 {
	var v [4]float32
	gogl.GetFloatv(uint32(pname), &v[0])
	return v[0]
}

func (goglFunctions) GetInteger(pname Enum) int {
	var v [4]int32
	gogl.GetIntegerv(uint32(pname), &v[0])
	return int(v[0])
}

func (goglFunctions) GetInteger4(pname Enum) [4]int {
	var v [4]int32
	gogl.GetIntegerv(uint32(pname), &v[0])
	return [4]int{int(v[0]), int(v[1]), int(v[2]), int(v[3])}
}

func (goglFunctions) GetProgrami(p Program, pname Enum) int {
	var v int32
	gogl.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f goglFunctions) GetProgramInfoLog(p Program) string {
	n := f.GetProgrami(p, INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	gogl.GetProgramInfoLog(uint32(p.V), int32(n), nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (goglFunctions) GetShaderi(s Shader, pname Enum) int {
	var v int32
	gogl.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f goglFunctions) GetShaderInfoLog(s Shader) string {
	n := f.GetShaderi(s, INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	gogl.GetShaderInfoLog(uint32(s.V), int32(n), nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (goglFunctions) GetString(pname Enum) string {
	s := gogl.GetString(uint32(pname))
	if s == nil {
		return ""
	}
	return gogl.GoStr(s)
}

func (goglFunctions) GetUniformLocation(p Program, name string) Uniform {
	n, free := cstr(name)
	defer free()
	return Uniform{int(gogl.GetUniformLocation(uint32(p.V), n))}
}

func (goglFunctions) LineWidth(w float32) {
	gogl.LineWidth(w)
}

func (goglFunctions) LinkProgram(p Program) {
	gogl.LinkProgram(uint32(p.V))
}

func (goglFunctions) PixelStorei(pname Enum, param int) {
	gogl.PixelStorei(uint32(pname), int32(param))
}

func (goglFunctions) PolygonOffset(factor, units float32) {
	gogl.PolygonOffset(factor, units)
}

func (goglFunctions) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	gogl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), bytesPtr(data))
}

func (goglFunctions) RenderbufferStorage(target, internalformat Enum, width, height int) {
	gogl.RenderbufferStorage(uint32(target), uint32(internalformat), int32(width), int32(height))
}

func (goglFunctions) Scissor(x, y, width, height int) {
	gogl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (goglFunctions) ShaderSource(s Shader, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	defer free()
	gogl.ShaderSource(uint32(s.V), 1, csrc, nil)
}

func (goglFunctions) StencilFuncSeparate(face, fn Enum, ref int, mask uint32) {
	gogl.StencilFuncSeparate(uint32(face), uint32(fn), int32(ref), mask)
}

func (goglFunctions) StencilMaskSeparate(face Enum, mask uint32) {
	gogl.StencilMaskSeparate(uint32(face), mask)
}

func (goglFunctions) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	gogl.StencilOpSeparate(uint32(face), uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (goglFunctions) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte) {
	gogl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), bytesPtr(data))
}

func (goglFunctions) TexParameterf(target, pname Enum, param float32) {
	gogl.TexParameterf(uint32(target), uint32(pname), param)
}

func (goglFunctions) TexParameteri(target, pname Enum, param int) {
	gogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (goglFunctions) TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte) {
	gogl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), bytesPtr(data))
}

func (goglFunctions) Uniform1i(dst Uniform, v int) {
	gogl.Uniform1i(int32(dst.V), int32(v))
}

func (goglFunctions) Uniform1fv(dst Uniform, v []float32) {
	gogl.Uniform1fv(int32(dst.V), int32(len(v)), &v[0])
}

func (goglFunctions) Uniform2fv(dst Uniform, v []float32) {
	gogl.Uniform2fv(int32(dst.V), int32(len(v)/2), &v[0])
}

func (goglFunctions) Uniform3fv(dst Uniform, v []float32) {
	gogl.Uniform3fv(int32(dst.V), int32(len(v)/3), &v[0])
}

func (goglFunctions) Uniform4fv(dst Uniform, v []float32) {
	gogl.Uniform4fv(int32(dst.V), int32(len(v)/4), &v[0])
}

func (goglFunctions) Uniform1iv(dst Uniform, v []int32) {
	gogl.Uniform1iv(int32(dst.V), int32(len(v)), &v[0])
}

func (goglFunctions) Uniform2iv(dst Uniform, v []int32) {
	gogl.Uniform2iv(int32(dst.V), int32(len(v)/2), &v[0])
}

func (goglFunctions) Uniform3iv(dst Uniform, v []int32) {
	gogl.Uniform3iv(int32(dst.V), int32(len(v)/3), &v[0])
}

func (goglFunctions) Uniform4iv(dst Uniform, v []int32) {
	gogl.Uniform4iv(int32(dst.V), int32(len(v)/4), &v[0])
}

func (goglFunctions) UniformMatrix2fv(dst Uniform, v []float32) {
	gogl.UniformMatrix2fv(int32(dst.V), int32(len(v)/4), false, &v[0])
}

func (goglFunctions) UniformMatrix3fv(dst Uniform, v []float32) {
	gogl.UniformMatrix3fv(int32(dst.V), int32(len(v)/9), false, &v[0])
}

func (goglFunctions) UniformMatrix4fv(dst Uniform, v []float32) {
	gogl.UniformMatrix4fv(int32(dst.V), int32(len(v)/16), false, &v[0])
}

func (goglFunctions) UseProgram(p Program) {
	gogl.UseProgram(uint32(p.V))
}

func (goglFunctions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	gogl.VertexAttribPointerWithOffset(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (goglFunctions) Viewport(x, y, width, height int) {
	gogl.Viewport(int32(x), int32(y), int32(width), int32(height))
}
