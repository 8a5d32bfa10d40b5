// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "github.com/pkg/errors"

// Functions is the subset of the OpenGL 2.1 and OpenGL ES 2.0 entry
// points used by the hal backend. Every call operates on the context
// that is current on the calling thread.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	BindBuffer(target Enum, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindRenderbuffer(target Enum, rb Renderbuffer)
	BindTexture(target Enum, t Texture)
	BlendColor(r, g, b, a float32)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask Enum, filter Enum)
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	ColorMask(red, green, blue, alpha bool)
	CompileShader(s Shader)
	CompressedTexImage2D(target Enum, level int, internalFormat Enum, width, height int, data []byte)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateRenderbuffer() Renderbuffer
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CullFace(mode Enum)
	DeleteBuffer(v Buffer)
	DeleteFramebuffer(v Framebuffer)
	DeleteProgram(p Program)
	DeleteRenderbuffer(v Renderbuffer)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	Disable(cap Enum)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	Finish()
	Flush()
	FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FrontFace(mode Enum)
	GenerateMipmap(target Enum)
	GetActiveAttrib(p Program, index int) (name string, size int, ty Enum)
	GetActiveUniform(p Program, index int) (name string, size int, ty Enum)
	GetAttribLocation(p Program, name string) int
	GetError() Enum
	GetFloat(pname Enum) float32
	GetInteger(pname Enum) int
	GetInteger4(pname Enum) [4]int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetUniformLocation(p Program, name string) Uniform
	LineWidth(w float32)
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	PolygonOffset(factor, units float32)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	RenderbufferStorage(target, internalformat Enum, width, height int)
	Scissor(x, y, width, height int)
	ShaderSource(s Shader, src string)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint32)
	StencilMaskSeparate(face Enum, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexParameterf(target, pname Enum, param float32)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte)
	Uniform1i(dst Uniform, v int)
	Uniform1fv(dst Uniform, v []float32)
	Uniform2fv(dst Uniform, v []float32)
	Uniform3fv(dst Uniform, v []float32)
	Uniform4fv(dst Uniform, v []float32)
	Uniform1iv(dst Uniform, v []int32)
	Uniform2iv(dst Uniform, v []int32)
	Uniform3iv(dst Uniform, v []int32)
	Uniform4iv(dst Uniform, v []int32)
	UniformMatrix2fv(dst Uniform, v []float32)
	UniformMatrix3fv(dst Uniform, v []float32)
	UniformMatrix4fv(dst Uniform, v []float32)
	UseProgram(p Program)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}

// Context is a platform specific handle to a driver context. A Context
// that implements Functions is used as is.
type Context interface{}

// newNativeFunctions is set by builds that link a native driver.
var newNativeFunctions func(ctx Context) (Functions, error)

// NewFunctions returns the driver entry points for ctx. The context
// must be current.
func NewFunctions(ctx Context) (Functions, error) {
	if f, ok := ctx.(Functions); ok {
		return f, nil
	}
	if newNativeFunctions == nil {
		return nil, errors.New("gl: no native driver linked, build with -tags gogl")
	}
	return newNativeFunctions(ctx)
}
