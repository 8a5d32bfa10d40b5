// SPDX-License-Identifier: Unlicense OR MIT

// Package glfake implements gl.Functions in memory. It records every
// call, simulates the driver objects the hal backend creates and
// reflects attribute and uniform declarations from GLSL source.
package glfake

import (
	"fmt"
	"strings"

	"gioui.org/glhal/internal/gl"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Functions is a fake driver context. The zero value is not usable,
// use New.
type Functions struct {
	Profile Profile
	// Calls lists every call since creation or the last Reset.
	Calls []Call
	// FailLink makes every LinkProgram fail.
	FailLink bool
	// Incomplete makes CheckFramebufferStatus report an incomplete
	// framebuffer.
	Incomplete bool

	errs []gl.Enum
	next uint

	buffers       map[uint]*Buffer
	textures      map[uint]*Texture
	framebuffers  map[uint]*Framebuffer
	renderbuffers map[uint]*Renderbuffer
	shaders       map[uint]*shader
	programs      map[uint]*program

	enabled      map[gl.Enum]bool
	boundBuffers map[gl.Enum]uint
	units        map[int]map[gl.Enum]uint
	unit         int
	drawFBO      uint
	readFBO      uint
	renderbuffer uint
	current      uint
	attribs      map[gl.Attrib]*AttribPointer
	pixelStore   map[gl.Enum]int

	colorMask    [4]bool
	depthMask    bool
	stencilMask  [2]uint32
	clearColor   [4]float32
	clearDepth   float32
	clearStencil int
	viewport     [4]int
	scissor      [4]int
	depthFunc    gl.Enum
}

// Buffer is a simulated buffer object.
type Buffer struct {
	Data  []byte
	Usage gl.Enum
}

// Level is one uploaded texture image.
type Level struct {
	Width, Height  int
	InternalFormat gl.Enum
	Compressed     bool
	Data           []byte
}

// Texture is a simulated texture object. Cube faces share one level
// table keyed by face target.
type Texture struct {
	Target gl.Enum
	Levels map[gl.Enum]map[int]*Level
	Params map[gl.Enum]float32
	// Mipmaps counts GenerateMipmap calls.
	Mipmaps int
}

// Attachment is a framebuffer attachment point.
type Attachment struct {
	Texture      uint
	Renderbuffer uint
	Level        int
}

// Framebuffer is a simulated framebuffer. A clear fills the whole
// attachment with one value, so the contents are a single value per
// buffer.
type Framebuffer struct {
	Attachments map[gl.Enum]Attachment
	Color       [4]float32
	Depth       float32
	Stencil     int
	// Clears counts Clear calls that touched at least one buffer.
	Clears int
}

// Renderbuffer is a simulated renderbuffer.
type Renderbuffer struct {
	Format        gl.Enum
	Width, Height int
}

// AttribPointer is the recorded state of one vertex attribute.
type AttribPointer struct {
	Enabled    bool
	Buffer     uint
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
}

// New returns a fake driver for the profile p. Framebuffer 0 is the
// default framebuffer.
func New(p Profile) *Functions {
	f := &Functions{
		Profile:       p,
		next:          1,
		buffers:       make(map[uint]*Buffer),
		textures:      make(map[uint]*Texture),
		framebuffers:  map[uint]*Framebuffer{0: newFramebuffer()},
		renderbuffers: make(map[uint]*Renderbuffer),
		shaders:       make(map[uint]*shader),
		programs:      make(map[uint]*program),
		enabled:       map[gl.Enum]bool{gl.DITHER: true},
		boundBuffers:  make(map[gl.Enum]uint),
		units:         make(map[int]map[gl.Enum]uint),
		attribs:       make(map[gl.Attrib]*AttribPointer),
		pixelStore:    map[gl.Enum]int{gl.UNPACK_ALIGNMENT: 4, gl.PACK_ALIGNMENT: 4},
		colorMask:     [4]bool{true, true, true, true},
		depthMask:     true,
		stencilMask:   [2]uint32{0xffffffff, 0xffffffff},
		clearDepth:    1,
		depthFunc:     gl.LESS,
	}
	f.framebuffers[0].Depth = 1
	return f
}

func newFramebuffer() *Framebuffer {
	return &Framebuffer{Attachments: make(map[gl.Enum]Attachment)}
}

func (f *Functions) record(name string, args ...interface{}) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

// Reset clears the call log.
func (f *Functions) Reset() {
	f.Calls = f.Calls[:0]
}

// Mark returns the current position in the call log.
func (f *Functions) Mark() int {
	return len(f.Calls)
}

// Since returns the calls recorded after mark.
func (f *Functions) Since(mark int) []Call {
	return f.Calls[mark:]
}

// Count returns how many calls named name were recorded.
func (f *Functions) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// PushError queues an error for GetError to report.
func (f *Functions) PushError(err gl.Enum) {
	f.errs = append(f.errs, err)
}

func (f *Functions) id() uint {
	id := f.next
	f.next++
	return id
}

// Buffer returns the simulated buffer b, or nil.
func (f *Functions) Buffer(b gl.Buffer) *Buffer {
	return f.buffers[b.V]
}

// Texture returns the simulated texture t, or nil.
func (f *Functions) Texture(t gl.Texture) *Texture {
	return f.textures[t.V]
}

// Framebuffer returns the simulated framebuffer fb, or nil.
func (f *Functions) Framebuffer(fb gl.Framebuffer) *Framebuffer {
	return f.framebuffers[fb.V]
}

// Renderbuffer returns the simulated renderbuffer rb, or nil.
func (f *Functions) Renderbuffer(rb gl.Renderbuffer) *Renderbuffer {
	return f.renderbuffers[rb.V]
}

// Attrib returns the recorded state of vertex attribute a.
func (f *Functions) Attrib(a gl.Attrib) AttribPointer {
	if p := f.attribs[a]; p != nil {
		return *p
	}
	return AttribPointer{}
}

// Enabled reports whether cap is enabled.
func (f *Functions) Enabled(cap gl.Enum) bool {
	return f.enabled[cap]
}

// DepthWriteMask reports the current depth write mask.
func (f *Functions) DepthWriteMask() bool {
	return f.depthMask
}

// ColorWriteMask reports the current color write mask.
func (f *Functions) ColorWriteMask() [4]bool {
	return f.colorMask
}

// BoundTexture returns the texture bound to target on unit.
func (f *Functions) BoundTexture(unit int, target gl.Enum) gl.Texture {
	return gl.Texture{V: f.units[unit][target]}
}

// CurrentProgram returns the program in use.
func (f *Functions) CurrentProgram() gl.Program {
	return gl.Program{V: f.current}
}

// Live reports how many objects of each kind are alive.
func (f *Functions) Live() (buffers, textures, framebuffers, renderbuffers, programs int) {
	return len(f.buffers), len(f.textures), len(f.framebuffers) - 1, len(f.renderbuffers), len(f.programs)
}

func (f *Functions) ActiveTexture(texture gl.Enum) {
	f.record("ActiveTexture", texture)
	f.unit = int(texture - gl.TEXTURE0)
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader", p.V, s.V)
	if prog := f.programs[p.V]; prog != nil {
		prog.shaders = append(prog.shaders, s.V)
	}
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.record("BindAttribLocation", p.V, a, name)
	if prog := f.programs[p.V]; prog != nil {
		prog.bound[name] = int(a)
	}
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer", target, b.V)
	f.boundBuffers[target] = b.V
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer", target, fb.V)
	switch target {
	case gl.FRAMEBUFFER:
		f.drawFBO, f.readFBO = fb.V, fb.V
	case gl.DRAW_FRAMEBUFFER:
		f.drawFBO = fb.V
	case gl.READ_FRAMEBUFFER:
		f.readFBO = fb.V
	}
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.record("BindRenderbuffer", target, rb.V)
	f.renderbuffer = rb.V
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture", target, t.V)
	u := f.units[f.unit]
	if u == nil {
		u = make(map[gl.Enum]uint)
		f.units[f.unit] = u
	}
	u[target] = t.V
	if tex := f.textures[t.V]; tex != nil && tex.Target == 0 {
		tex.Target = target
	}
}

func (f *Functions) BlendColor(r, g, b, a float32) {
	f.record("BlendColor", r, g, b, a)
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcA, dstA)
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask gl.Enum, filter gl.Enum) {
	f.record("BlitFramebuffer", sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1, mask, filter)
	src, dst := f.framebuffers[f.readFBO], f.framebuffers[f.drawFBO]
	if src == nil || dst == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	if mask&gl.COLOR_BUFFER_BIT != 0 {
		dst.Color = src.Color
	}
	if mask&gl.DEPTH_BUFFER_BIT != 0 {
		dst.Depth = src.Depth
	}
	if mask&gl.STENCIL_BUFFER_BIT != 0 {
		dst.Stencil = src.Stencil
	}
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.record("BufferData", target, size, usage)
	b := f.buffers[f.boundBuffers[target]]
	if b == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData", target, offset, len(src))
	b := f.buffers[f.boundBuffers[target]]
	if b == nil || offset+len(src) > len(b.Data) {
		f.PushError(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], src)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	fb := f.framebuffers[f.drawFBO]
	switch {
	case f.Incomplete:
		return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
	case f.drawFBO != 0 && len(fb.Attachments) == 0:
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	return gl.FRAMEBUFFER_COMPLETE
}

// Clear fills the buffers selected by mask of the bound draw
// framebuffer, honoring the write masks the way a real driver does.
func (f *Functions) Clear(mask gl.Enum) {
	f.record("Clear", mask)
	fb := f.framebuffers[f.drawFBO]
	touched := false
	if mask&gl.COLOR_BUFFER_BIT != 0 {
		for i, on := range f.colorMask {
			if on {
				fb.Color[i] = f.clearColor[i]
				touched = true
			}
		}
	}
	if mask&gl.DEPTH_BUFFER_BIT != 0 && f.depthMask {
		fb.Depth = f.clearDepth
		touched = true
	}
	if mask&gl.STENCIL_BUFFER_BIT != 0 && f.stencilMask[0] != 0 {
		m := int(f.stencilMask[0])
		fb.Stencil = fb.Stencil&^m | f.clearStencil&m
		touched = true
	}
	if touched {
		fb.Clears++
	}
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	f.record("ClearColor", red, green, blue, alpha)
	f.clearColor = [4]float32{red, green, blue, alpha}
}

func (f *Functions) ClearDepthf(d float32) {
	f.record("ClearDepthf", d)
	f.clearDepth = d
}

func (f *Functions) ClearStencil(s int) {
	f.record("ClearStencil", s)
	f.clearStencil = s
}

func (f *Functions) ColorMask(red, green, blue, alpha bool) {
	f.record("ColorMask", red, green, blue, alpha)
	f.colorMask = [4]bool{red, green, blue, alpha}
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.record("CompileShader", s.V)
	sh := f.shaders[s.V]
	if sh == nil {
		f.PushError(gl.INVALID_VALUE)
		return
	}
	sh.compile()
}

func (f *Functions) CompressedTexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, data []byte) {
	f.record("CompressedTexImage2D", target, level, internalFormat, width, height, len(data))
	f.storeLevel(target, level, &Level{
		Width:          width,
		Height:         height,
		InternalFormat: internalFormat,
		Compressed:     true,
		Data:           append([]byte(nil), data...),
	})
}

func (f *Functions) CreateBuffer() gl.Buffer {
	id := f.id()
	f.record("CreateBuffer", id)
	f.buffers[id] = new(Buffer)
	return gl.Buffer{V: id}
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	id := f.id()
	f.record("CreateFramebuffer", id)
	f.framebuffers[id] = newFramebuffer()
	return gl.Framebuffer{V: id}
}

func (f *Functions) CreateProgram() gl.Program {
	id := f.id()
	f.record("CreateProgram", id)
	f.programs[id] = newProgram()
	return gl.Program{V: id}
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	id := f.id()
	f.record("CreateRenderbuffer", id)
	f.renderbuffers[id] = new(Renderbuffer)
	return gl.Renderbuffer{V: id}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	id := f.id()
	f.record("CreateShader", ty, id)
	f.shaders[id] = &shader{typ: ty}
	return gl.Shader{V: id}
}

func (f *Functions) CreateTexture() gl.Texture {
	id := f.id()
	f.record("CreateTexture", id)
	f.textures[id] = &Texture{
		Levels: make(map[gl.Enum]map[int]*Level),
		Params: make(map[gl.Enum]float32),
	}
	return gl.Texture{V: id}
}

func (f *Functions) CullFace(mode gl.Enum) {
	f.record("CullFace", mode)
}

func (f *Functions) DeleteBuffer(v gl.Buffer) {
	f.record("DeleteBuffer", v.V)
	delete(f.buffers, v.V)
}

func (f *Functions) DeleteFramebuffer(v gl.Framebuffer) {
	f.record("DeleteFramebuffer", v.V)
	if v.V != 0 {
		delete(f.framebuffers, v.V)
	}
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.record("DeleteProgram", p.V)
	delete(f.programs, p.V)
}

func (f *Functions) DeleteRenderbuffer(v gl.Renderbuffer) {
	f.record("DeleteRenderbuffer", v.V)
	delete(f.renderbuffers, v.V)
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.record("DeleteShader", s.V)
	delete(f.shaders, s.V)
}

func (f *Functions) DeleteTexture(v gl.Texture) {
	f.record("DeleteTexture", v.V)
	delete(f.textures, v.V)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	f.record("DepthFunc", fn)
	f.depthFunc = fn
}

func (f *Functions) DepthMask(mask bool) {
	f.record("DepthMask", mask)
	f.depthMask = mask
}

func (f *Functions) Disable(cap gl.Enum) {
	f.record("Disable", cap)
	f.enabled[cap] = false
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	f.record("DisableVertexAttribArray", a)
	f.attrib(a).Enabled = false
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements", mode, count, ty, offset)
	if f.boundBuffers[gl.ELEMENT_ARRAY_BUFFER] == 0 {
		f.PushError(gl.INVALID_OPERATION)
	}
}

func (f *Functions) Enable(cap gl.Enum) {
	f.record("Enable", cap)
	f.enabled[cap] = true
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray", a)
	f.attrib(a).Enabled = true
}

func (f *Functions) attrib(a gl.Attrib) *AttribPointer {
	p := f.attribs[a]
	if p == nil {
		p = new(AttribPointer)
		f.attribs[a] = p
	}
	return p
}

func (f *Functions) Finish() {
	f.record("Finish")
}

func (f *Functions) Flush() {
	f.record("Flush")
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget gl.Enum, renderbuffer gl.Renderbuffer) {
	f.record("FramebufferRenderbuffer", target, attachment, renderbuffertarget, renderbuffer.V)
	f.attach(attachment, Attachment{Renderbuffer: renderbuffer.V})
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t.V, level)
	f.attach(attachment, Attachment{Texture: t.V, Level: level})
}

func (f *Functions) attach(attachment gl.Enum, a Attachment) {
	if f.drawFBO == 0 {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	fb := f.framebuffers[f.drawFBO]
	if a.Texture == 0 && a.Renderbuffer == 0 {
		delete(fb.Attachments, attachment)
		return
	}
	fb.Attachments[attachment] = a
}

func (f *Functions) FrontFace(mode gl.Enum) {
	f.record("FrontFace", mode)
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap", target)
	if t := f.textures[f.units[f.unit][target]]; t != nil {
		t.Mipmaps++
	}
}

func (f *Functions) GetError() gl.Enum {
	f.record("GetError")
	if len(f.errs) == 0 {
		return gl.NO_ERROR
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *Functions) GetFloat(pname gl.Enum) float32 {
	f.record("GetFloat", pname)
	switch pname {
	case gl.MAX_TEXTURE_MAX_ANISOTROPY_EXT:
		return f.Profile.MaxAnisotropy
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.record("GetInteger", pname)
	if v, ok := f.Profile.limit(pname); ok {
		return v
	}
	switch pname {
	case gl.CURRENT_PROGRAM:
		return int(f.current)
	case gl.FRAMEBUFFER_BINDING:
		return int(f.drawFBO)
	case gl.RENDERBUFFER_BINDING:
		return int(f.renderbuffer)
	case gl.ARRAY_BUFFER_BINDING:
		return int(f.boundBuffers[gl.ARRAY_BUFFER])
	case gl.ELEMENT_ARRAY_BUFFER_BINDING:
		return int(f.boundBuffers[gl.ELEMENT_ARRAY_BUFFER])
	case gl.ACTIVE_TEXTURE:
		return int(gl.TEXTURE0) + f.unit
	case gl.TEXTURE_BINDING_2D:
		return int(f.units[f.unit][gl.TEXTURE_2D])
	case gl.DEPTH_WRITEMASK:
		if f.depthMask {
			return 1
		}
		return 0
	case gl.DEPTH_FUNC:
		return int(f.depthFunc)
	case gl.UNPACK_ALIGNMENT, gl.PACK_ALIGNMENT:
		return f.pixelStore[pname]
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *Functions) GetInteger4(pname gl.Enum) [4]int {
	f.record("GetInteger4", pname)
	switch pname {
	case gl.MAX_VIEWPORT_DIMS:
		return [4]int{f.Profile.ViewportDims[0], f.Profile.ViewportDims[1]}
	case gl.VIEWPORT:
		return f.viewport
	case gl.SCISSOR_BOX:
		return f.scissor
	}
	f.PushError(gl.INVALID_ENUM)
	return [4]int{}
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.record("GetString", pname)
	switch pname {
	case gl.VENDOR:
		return f.Profile.Vendor
	case gl.RENDERER:
		return f.Profile.Renderer
	case gl.VERSION:
		return f.Profile.Version
	case gl.EXTENSIONS:
		return strings.Join(f.Profile.Extensions, " ")
	case gl.SHADING_LANGUAGE_VERSION:
		if strings.HasPrefix(f.Profile.Version, "OpenGL ES") {
			return "OpenGL ES GLSL ES 1.00"
		}
		return "1.20"
	}
	f.PushError(gl.INVALID_ENUM)
	return ""
}

func (f *Functions) LineWidth(w float32) {
	f.record("LineWidth", w)
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei", pname, param)
	f.pixelStore[pname] = param
}

func (f *Functions) PolygonOffset(factor, units float32) {
	f.record("PolygonOffset", factor, units)
}

// ReadPixels fills data with the color of the bound read framebuffer.
// Only RGBA/UNSIGNED_BYTE is supported.
func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("ReadPixels", x, y, width, height, format, ty)
	if format != gl.RGBA || ty != gl.UNSIGNED_BYTE || len(data) < width*height*4 {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	fb := f.framebuffers[f.readFBO]
	var px [4]byte
	for i, c := range fb.Color {
		px[i] = byte(clamp01(c)*255 + .5)
	}
	for i := 0; i < width*height; i++ {
		copy(data[i*4:], px[:])
	}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (f *Functions) RenderbufferStorage(target, internalformat gl.Enum, width, height int) {
	f.record("RenderbufferStorage", target, internalformat, width, height)
	rb := f.renderbuffers[f.renderbuffer]
	if rb == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	rb.Format, rb.Width, rb.Height = internalformat, width, height
}

func (f *Functions) Scissor(x, y, width, height int) {
	f.record("Scissor", x, y, width, height)
	f.scissor = [4]int{x, y, width, height}
}

func (f *Functions) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint32) {
	f.record("StencilFuncSeparate", face, fn, ref, mask)
}

func (f *Functions) StencilMaskSeparate(face gl.Enum, mask uint32) {
	f.record("StencilMaskSeparate", face, mask)
	if face == gl.FRONT || face == gl.FRONT_AND_BACK {
		f.stencilMask[0] = mask
	}
	if face == gl.BACK || face == gl.FRONT_AND_BACK {
		f.stencilMask[1] = mask
	}
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {
	f.record("StencilOpSeparate", face, sfail, dpfail, dppass)
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty)
	f.storeLevel(target, level, &Level{
		Width:          width,
		Height:         height,
		InternalFormat: internalFormat,
		Data:           append([]byte(nil), data...),
	})
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, format, ty)
	t := f.boundTexture(target)
	if t == nil || t.Levels[target][level] == nil {
		f.PushError(gl.INVALID_OPERATION)
	}
}

func (f *Functions) TexParameterf(target, pname gl.Enum, param float32) {
	f.record("TexParameterf", target, pname, param)
	if t := f.boundTexture(target); t != nil {
		t.Params[pname] = param
	}
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
	if t := f.boundTexture(target); t != nil {
		t.Params[pname] = float32(param)
	}
}

// boundTexture resolves target, mapping cube faces to the cube map
// binding.
func (f *Functions) boundTexture(target gl.Enum) *Texture {
	bind := target
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target < gl.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		bind = gl.TEXTURE_CUBE_MAP
	}
	return f.textures[f.units[f.unit][bind]]
}

func (f *Functions) storeLevel(target gl.Enum, level int, l *Level) {
	t := f.boundTexture(target)
	if t == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	face := t.Levels[target]
	if face == nil {
		face = make(map[int]*Level)
		t.Levels[target] = face
	}
	face[level] = l
}

func (f *Functions) UseProgram(p gl.Program) {
	f.record("UseProgram", p.V)
	f.current = p.V
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
	p := f.attrib(dst)
	p.Buffer = f.boundBuffers[gl.ARRAY_BUFFER]
	p.Size, p.Type, p.Normalized, p.Stride, p.Offset = size, ty, normalized, stride, offset
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
	f.viewport = [4]int{x, y, width, height}
}

var _ gl.Functions = (*Functions)(nil)
