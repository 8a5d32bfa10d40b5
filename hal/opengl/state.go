// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"github.com/gogpu/gputypes"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

// glState is a shadow copy of the driver bindings. Every binding made
// by the backend goes through it.
type glState struct {
	drawFBO     gl.Framebuffer
	readFBO     gl.Framebuffer
	renderBuf   gl.Renderbuffer
	vertAttribs []vertAttrib
	prog        gl.Program
	texUnits    struct {
		active gl.Enum
		binds  []texBinding
	}
	arrayBuf    gl.Buffer
	elemBuf     gl.Buffer
	clearColor  [4]float32
	clearDepth  float32
	clear       int
	viewport    [4]int
	scissor     [4]int
	unpackAlign int
}

type vertAttrib struct {
	obj        gl.Buffer
	enabled    bool
	size       int
	typ        gl.Enum
	normalized bool
	stride     int
	offset     int
}

type texBinding struct {
	tex2D gl.Texture
	cube  gl.Texture
}

// queryState reads the bindings the driver context starts with.
func queryState(f gl.Functions, l hal.Limits) glState {
	units := l.MaxCombinedTextureUnits
	if units < 1 {
		units = 1
	}
	attribs := l.MaxVertexAttribs
	if attribs < 1 {
		attribs = 1
	}
	s := glState{
		prog:        gl.Program{V: uint(f.GetInteger(gl.CURRENT_PROGRAM))},
		arrayBuf:    gl.Buffer{V: uint(f.GetInteger(gl.ARRAY_BUFFER_BINDING))},
		elemBuf:     gl.Buffer{V: uint(f.GetInteger(gl.ELEMENT_ARRAY_BUFFER_BINDING))},
		drawFBO:     gl.Framebuffer{V: uint(f.GetInteger(gl.FRAMEBUFFER_BINDING))},
		renderBuf:   gl.Renderbuffer{V: uint(f.GetInteger(gl.RENDERBUFFER_BINDING))},
		viewport:    f.GetInteger4(gl.VIEWPORT),
		scissor:     f.GetInteger4(gl.SCISSOR_BOX),
		unpackAlign: f.GetInteger(gl.UNPACK_ALIGNMENT),
		vertAttribs: make([]vertAttrib, attribs),
	}
	s.readFBO = s.drawFBO
	s.texUnits.active = gl.Enum(f.GetInteger(gl.ACTIVE_TEXTURE))
	s.texUnits.binds = make([]texBinding, units)
	if u := int(s.texUnits.active - gl.TEXTURE0); u >= 0 && u < units {
		s.texUnits.binds[u].tex2D = gl.Texture{V: uint(f.GetInteger(gl.TEXTURE_BINDING_2D))}
	}
	drainErrors(f)
	return s
}

func (s *glState) setVertexAttribArray(f gl.Functions, idx int, enabled bool) {
	a := &s.vertAttribs[idx]
	if enabled != a.enabled {
		if enabled {
			f.EnableVertexAttribArray(gl.Attrib(idx))
		} else {
			f.DisableVertexAttribArray(gl.Attrib(idx))
		}
		a.enabled = enabled
	}
}

func (s *glState) vertexAttribPointer(f gl.Functions, buf gl.Buffer, idx, size int, typ gl.Enum, normalized bool, stride, offset int) {
	a := &s.vertAttribs[idx]
	if a.obj.Equal(buf) && a.size == size && a.typ == typ && a.normalized == normalized && a.stride == stride && a.offset == offset {
		return
	}
	s.bindBuffer(f, gl.ARRAY_BUFFER, buf)
	a.obj = buf
	a.size = size
	a.typ = typ
	a.normalized = normalized
	a.stride = stride
	a.offset = offset
	f.VertexAttribPointer(gl.Attrib(idx), a.size, a.typ, a.normalized, a.stride, a.offset)
}

func (s *glState) activeTexture(f gl.Functions, unit gl.Enum) {
	if unit != s.texUnits.active {
		f.ActiveTexture(unit)
		s.texUnits.active = unit
	}
}

func (s *glState) bindRenderbuffer(f gl.Functions, target gl.Enum, r gl.Renderbuffer) {
	if !r.Equal(s.renderBuf) {
		f.BindRenderbuffer(gl.RENDERBUFFER, r)
		s.renderBuf = r
	}
}

func (s *glState) bindTexture(f gl.Functions, unit int, target gl.Enum, t gl.Texture) {
	s.activeTexture(f, gl.TEXTURE0+gl.Enum(unit))
	b := &s.texUnits.binds[unit]
	bound := &b.tex2D
	if target == gl.TEXTURE_CUBE_MAP {
		bound = &b.cube
	}
	if !t.Equal(*bound) {
		f.BindTexture(target, t)
		*bound = t
	}
}

func (s *glState) deleteRenderbuffer(f gl.Functions, r gl.Renderbuffer) {
	f.DeleteRenderbuffer(r)
	if r.Equal(s.renderBuf) {
		s.renderBuf = gl.Renderbuffer{}
	}
}

func (s *glState) deleteFramebuffer(f gl.Functions, fbo gl.Framebuffer) {
	f.DeleteFramebuffer(fbo)
	if fbo.Equal(s.drawFBO) {
		s.drawFBO = gl.Framebuffer{}
	}
	if fbo.Equal(s.readFBO) {
		s.readFBO = gl.Framebuffer{}
	}
}

func (s *glState) deleteBuffer(f gl.Functions, b gl.Buffer) {
	f.DeleteBuffer(b)
	if b.Equal(s.arrayBuf) {
		s.arrayBuf = gl.Buffer{}
	}
	if b.Equal(s.elemBuf) {
		s.elemBuf = gl.Buffer{}
	}
	// Attribute arrays keep sourcing from a deleted buffer until they
	// are respecified.
	for i := range s.vertAttribs {
		if a := &s.vertAttribs[i]; b.Equal(a.obj) {
			*a = vertAttrib{enabled: a.enabled}
		}
	}
}

func (s *glState) deleteProgram(f gl.Functions, p gl.Program) {
	f.DeleteProgram(p)
	if p.Equal(s.prog) {
		s.prog = gl.Program{}
	}
}

func (s *glState) deleteTexture(f gl.Functions, t gl.Texture) {
	f.DeleteTexture(t)
	binds := s.texUnits.binds
	for i, b := range binds {
		if t.Equal(b.tex2D) {
			binds[i].tex2D = gl.Texture{}
		}
		if t.Equal(b.cube) {
			binds[i].cube = gl.Texture{}
		}
	}
}

func (s *glState) useProgram(f gl.Functions, p gl.Program) {
	if !p.Equal(s.prog) {
		f.UseProgram(p)
		s.prog = p
	}
}

func (s *glState) bindFramebuffer(f gl.Functions, target gl.Enum, fbo gl.Framebuffer) {
	switch target {
	case gl.FRAMEBUFFER:
		if fbo.Equal(s.drawFBO) && fbo.Equal(s.readFBO) {
			return
		}
		s.drawFBO = fbo
		s.readFBO = fbo
	case gl.READ_FRAMEBUFFER:
		if fbo.Equal(s.readFBO) {
			return
		}
		s.readFBO = fbo
	case gl.DRAW_FRAMEBUFFER:
		if fbo.Equal(s.drawFBO) {
			return
		}
		s.drawFBO = fbo
	default:
		panic("unknown target")
	}
	f.BindFramebuffer(target, fbo)
}

func (s *glState) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	switch target {
	case gl.ARRAY_BUFFER:
		if buf.Equal(s.arrayBuf) {
			return
		}
		s.arrayBuf = buf
	case gl.ELEMENT_ARRAY_BUFFER:
		if buf.Equal(s.elemBuf) {
			return
		}
		s.elemBuf = buf
	default:
		panic("unknown buffer target")
	}
	f.BindBuffer(target, buf)
}

func (s *glState) setClearDepth(f gl.Functions, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setClearColor(f gl.Functions, r, g, b, a float32) {
	col := [4]float32{r, g, b, a}
	if col != s.clearColor {
		f.ClearColor(r, g, b, a)
		s.clearColor = col
	}
}

func (s *glState) setClearStencil(f gl.Functions, v int) {
	if v != s.clear {
		f.ClearStencil(v)
		s.clear = v
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if view != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = view
	}
}

func (s *glState) setScissor(f gl.Functions, x, y, width, height int) {
	box := [4]int{x, y, width, height}
	if box != s.scissor {
		f.Scissor(x, y, width, height)
		s.scissor = box
	}
}

func (s *glState) setUnpackAlignment(f gl.Functions, align int) {
	if align != s.unpackAlign {
		f.PixelStorei(gl.UNPACK_ALIGNMENT, align)
		s.unpackAlign = align
	}
}

func set(f gl.Functions, target gl.Enum, enable bool) {
	if enable {
		f.Enable(target)
	} else {
		f.Disable(target)
	}
}

// applyRenderState issues the driver calls that turn the captured
// state cur into next, and records next in cur. Parameters of disabled
// blend, depth, bias and stencil stages are left untouched; they are
// applied when the stage is enabled.
func applyRenderState(f gl.Functions, cur, next *hal.RenderState, srgbWrite bool) {
	if next.Blend.Enable {
		if !cur.Blend.Enable {
			f.Enable(gl.BLEND)
		}
		nc, na := next.Blend.Color, next.Blend.Alpha
		cc, ca := cur.Blend.Color, cur.Blend.Alpha
		if nc.SrcFactor != cc.SrcFactor || nc.DstFactor != cc.DstFactor || na.SrcFactor != ca.SrcFactor || na.DstFactor != ca.DstFactor {
			f.BlendFuncSeparate(
				format.BlendFactor(nc.SrcFactor), format.BlendFactor(nc.DstFactor),
				format.BlendFactor(na.SrcFactor), format.BlendFactor(na.DstFactor),
			)
		}
		if nc.Operation != cc.Operation || na.Operation != ca.Operation {
			rgb, _ := format.BlendOperation(nc.Operation)
			alpha, _ := format.BlendOperation(na.Operation)
			f.BlendEquationSeparate(rgb, alpha)
		}
		cur.Blend = next.Blend
	} else if cur.Blend.Enable {
		f.Disable(gl.BLEND)
		cur.Blend.Enable = false
	}

	if next.ColorMask != cur.ColorMask {
		m := next.ColorMask
		f.ColorMask(m&gputypes.ColorWriteMaskRed != 0, m&gputypes.ColorWriteMaskGreen != 0, m&gputypes.ColorWriteMaskBlue != 0, m&gputypes.ColorWriteMaskAlpha != 0)
		cur.ColorMask = m
	}

	if next.CullMode != cur.CullMode {
		switch {
		case next.CullMode == gputypes.CullModeNone:
			f.Disable(gl.CULL_FACE)
		case cur.CullMode == gputypes.CullModeNone:
			f.Enable(gl.CULL_FACE)
			fallthrough
		default:
			f.CullFace(format.CullMode(next.CullMode))
		}
		cur.CullMode = next.CullMode
	}
	if next.FrontFace != cur.FrontFace {
		f.FrontFace(format.FrontFace(next.FrontFace))
		cur.FrontFace = next.FrontFace
	}
	if next.ScissorTest != cur.ScissorTest {
		set(f, gl.SCISSOR_TEST, next.ScissorTest)
		cur.ScissorTest = next.ScissorTest
	}
	if next.SRGB != cur.SRGB {
		if srgbWrite {
			set(f, gl.FRAMEBUFFER_SRGB, next.SRGB)
		}
		cur.SRGB = next.SRGB
	}

	if next.DepthTest {
		if !cur.DepthTest {
			f.Enable(gl.DEPTH_TEST)
			cur.DepthTest = true
		}
		if next.DepthFunc != cur.DepthFunc {
			f.DepthFunc(format.CompareFunction(next.DepthFunc))
			cur.DepthFunc = next.DepthFunc
		}
	} else if cur.DepthTest {
		f.Disable(gl.DEPTH_TEST)
		cur.DepthTest = false
	}
	if next.DepthWrite != cur.DepthWrite {
		f.DepthMask(next.DepthWrite)
		cur.DepthWrite = next.DepthWrite
	}

	if next.DepthBias.Enable {
		if !cur.DepthBias.Enable {
			f.Enable(gl.POLYGON_OFFSET_FILL)
		}
		if next.DepthBias.Constant != cur.DepthBias.Constant || next.DepthBias.SlopeScale != cur.DepthBias.SlopeScale {
			f.PolygonOffset(next.DepthBias.SlopeScale, next.DepthBias.Constant)
		}
		cur.DepthBias = next.DepthBias
	} else if cur.DepthBias.Enable {
		f.Disable(gl.POLYGON_OFFSET_FILL)
		cur.DepthBias.Enable = false
	}

	if next.Stencil.Enable {
		if !cur.Stencil.Enable {
			f.Enable(gl.STENCIL_TEST)
			cur.Stencil.Enable = true
		}
		applyStencilFace(f, gl.FRONT, &cur.Stencil.Front, &next.Stencil.Front)
		applyStencilFace(f, gl.BACK, &cur.Stencil.Back, &next.Stencil.Back)
	} else if cur.Stencil.Enable {
		f.Disable(gl.STENCIL_TEST)
		cur.Stencil.Enable = false
	}

	if next.LineWidth != cur.LineWidth {
		f.LineWidth(next.LineWidth)
		cur.LineWidth = next.LineWidth
	}
	cur.Topology = next.Topology
}

func applyStencilFace(f gl.Functions, face gl.Enum, cur, next *hal.StencilFaceState) {
	if next.Compare != cur.Compare || next.Reference != cur.Reference || next.ReadMask != cur.ReadMask {
		f.StencilFuncSeparate(face, format.CompareFunction(next.Compare), int(next.Reference), next.ReadMask)
	}
	if next.FailOp != cur.FailOp || next.DepthFailOp != cur.DepthFailOp || next.PassOp != cur.PassOp {
		f.StencilOpSeparate(face,
			format.StencilOperation(next.FailOp),
			format.StencilOperation(next.DepthFailOp),
			format.StencilOperation(next.PassOp),
		)
	}
	if next.WriteMask != cur.WriteMask {
		f.StencilMaskSeparate(face, next.WriteMask)
	}
	*cur = *next
}

// forceRenderState issues every call needed to put the driver in state
// s, regardless of what the driver state was.
func forceRenderState(f gl.Functions, s *hal.RenderState, srgbWrite bool) {
	set(f, gl.BLEND, s.Blend.Enable)
	c, a := s.Blend.Color, s.Blend.Alpha
	f.BlendFuncSeparate(format.BlendFactor(c.SrcFactor), format.BlendFactor(c.DstFactor), format.BlendFactor(a.SrcFactor), format.BlendFactor(a.DstFactor))
	rgb, _ := format.BlendOperation(c.Operation)
	alpha, _ := format.BlendOperation(a.Operation)
	f.BlendEquationSeparate(rgb, alpha)
	m := s.ColorMask
	f.ColorMask(m&gputypes.ColorWriteMaskRed != 0, m&gputypes.ColorWriteMaskGreen != 0, m&gputypes.ColorWriteMaskBlue != 0, m&gputypes.ColorWriteMaskAlpha != 0)
	set(f, gl.CULL_FACE, s.CullMode != gputypes.CullModeNone)
	if s.CullMode != gputypes.CullModeNone {
		f.CullFace(format.CullMode(s.CullMode))
	}
	f.FrontFace(format.FrontFace(s.FrontFace))
	set(f, gl.SCISSOR_TEST, s.ScissorTest)
	if srgbWrite {
		set(f, gl.FRAMEBUFFER_SRGB, s.SRGB)
	}
	set(f, gl.DEPTH_TEST, s.DepthTest)
	f.DepthFunc(format.CompareFunction(s.DepthFunc))
	f.DepthMask(s.DepthWrite)
	set(f, gl.POLYGON_OFFSET_FILL, s.DepthBias.Enable)
	f.PolygonOffset(s.DepthBias.SlopeScale, s.DepthBias.Constant)
	set(f, gl.STENCIL_TEST, s.Stencil.Enable)
	for _, face := range []struct {
		face gl.Enum
		st   *hal.StencilFaceState
	}{{gl.FRONT, &s.Stencil.Front}, {gl.BACK, &s.Stencil.Back}} {
		st := face.st
		f.StencilFuncSeparate(face.face, format.CompareFunction(st.Compare), int(st.Reference), st.ReadMask)
		f.StencilOpSeparate(face.face, format.StencilOperation(st.FailOp), format.StencilOperation(st.DepthFailOp), format.StencilOperation(st.PassOp))
		f.StencilMaskSeparate(face.face, st.WriteMask)
	}
	f.LineWidth(s.LineWidth)
}

// validateRenderState checks that every enabled stage of s has a
// native mapping under feats.
func validateRenderState(s *hal.RenderState, feats format.Feature) error {
	if s.Blend.Enable {
		for _, c := range []gputypes.BlendComponent{s.Blend.Color, s.Blend.Alpha} {
			if format.BlendFactor(c.SrcFactor) == format.Invalid || format.BlendFactor(c.DstFactor) == format.Invalid {
				return unsupported("blend factors %v, %v", c.SrcFactor, c.DstFactor)
			}
			op, req := format.BlendOperation(c.Operation)
			if op == format.Invalid || !feats.Has(req) {
				return unsupported("blend operation %v", c.Operation)
			}
		}
	}
	if s.ColorMask&^gputypes.ColorWriteMaskAll != 0 {
		return unsupported("color mask %#x", uint32(s.ColorMask))
	}
	if s.CullMode != gputypes.CullModeNone && format.CullMode(s.CullMode) == format.Invalid {
		return unsupported("cull mode %v", s.CullMode)
	}
	if format.FrontFace(s.FrontFace) == format.Invalid {
		return unsupported("front face %v", s.FrontFace)
	}
	if format.PrimitiveTopology(s.Topology) == format.Invalid {
		return unsupported("topology %v", s.Topology)
	}
	if s.DepthTest && format.CompareFunction(s.DepthFunc) == format.Invalid {
		return unsupported("depth function %v", s.DepthFunc)
	}
	if s.LineWidth <= 0 {
		return unsupported("line width %v", s.LineWidth)
	}
	if s.Stencil.Enable {
		for _, st := range []*hal.StencilFaceState{&s.Stencil.Front, &s.Stencil.Back} {
			if format.CompareFunction(st.Compare) == format.Invalid {
				return unsupported("stencil function %v", st.Compare)
			}
			for _, op := range []gputypes.StencilOperation{st.FailOp, st.DepthFailOp, st.PassOp} {
				if format.StencilOperation(op) == format.Invalid {
					return unsupported("stencil operation %v", op)
				}
			}
		}
	}
	return nil
}

func colorWriteMask(m gputypes.ColorWriteMask) [4]bool {
	return [4]bool{m&gputypes.ColorWriteMaskRed != 0, m&gputypes.ColorWriteMaskGreen != 0, m&gputypes.ColorWriteMaskBlue != 0, m&gputypes.ColorWriteMaskAlpha != 0}
}
