// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

// context implements hal.Context. It holds the captured driver state
// and stages pipeline and descriptor set changes until the next draw.
type context struct {
	resource
	desc  hal.ContextDesc
	swap  *swapchain
	state hal.ContextState

	pipeline *pipeline
	set      *descriptorSet
	fb       *framebuffer
	index    indexBinding

	vertexBuffers []vertexBinding
	// vertexDirty forces a respecification of every attribute pointer
	// at the next draw.
	vertexDirty bool
	// setDirty forces every slot of set to be uploaded at the next
	// draw.
	setDirty bool
}

type vertexBinding struct {
	buf    *buffer
	offset int
	dirty  bool
}

type indexBinding struct {
	buf    *buffer
	offset int
	typ    gl.Enum
	size   int
}

func (b *Backend) NewContext(desc hal.ContextDesc) (hal.Context, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if b.ctx != nil {
		return nil, b.fail(hal.KindContext, unsupported("more than one context per device"))
	}
	sc, err := lookup[*swapchain](b, desc.Swapchain)
	if err != nil {
		return nil, b.fail(hal.KindContext, errors.Wrap(err, "swapchain"))
	}
	c := &context{
		desc:  desc,
		swap:  sc,
		state: hal.DefaultContextState(sc.size()),
	}
	b.register(c, hal.KindContext)
	c.reset()
	if err := glErr(b.funcs); err != nil {
		c.Release()
		return nil, b.fail(hal.KindContext, err)
	}
	b.ctx = c
	return c, nil
}

// reset puts the driver into the state of c, regardless of what the
// driver state was.
func (c *context) reset() {
	b, f := c.b, c.b.funcs
	drainErrors(f)
	forceRenderState(f, &c.state.Render, c.srgbWrite())

	gs := &b.glstate
	f.ClearColor(0, 0, 0, 0)
	gs.clearColor = [4]float32{}
	f.ClearDepthf(c.state.ClearDepth)
	gs.clearDepth = c.state.ClearDepth
	f.ClearStencil(0)
	gs.clear = 0
	for i := range gs.vertAttribs {
		f.DisableVertexAttribArray(gl.Attrib(i))
		gs.vertAttribs[i].enabled = false
	}
	gs.bindFramebuffer(f, gl.FRAMEBUFFER, gl.Framebuffer{})

	v := c.state.Viewport
	f.Viewport(v.Min.X, v.Min.Y, v.Dx(), v.Dy())
	gs.viewport = [4]int{v.Min.X, v.Min.Y, v.Dx(), v.Dy()}
	s := c.state.Scissor
	f.Scissor(s.Min.X, s.Min.Y, s.Dx(), s.Dy())
	gs.scissor = [4]int{s.Min.X, s.Min.Y, s.Dx(), s.Dy()}
}

func (c *context) srgbWrite() bool {
	return !c.b.gles && c.b.feats.Has(format.FeatureFramebufferSRGB)
}

// check logs pending driver errors in debug mode.
func (c *context) check(op string) {
	if !c.b.debug {
		return
	}
	if err := glErr(c.b.funcs); err != nil {
		logger().WithFields(logrus.Fields{
			"op":  op,
			"err": err,
		}).Error("driver error")
	}
}

func (c *context) Desc() hal.ContextDesc {
	return c.desc
}

func (c *context) State() hal.ContextState {
	return c.state
}

// fbSize returns the size of the bound framebuffer.
func (c *context) fbSize() image.Point {
	if c.fb != nil {
		return image.Pt(c.fb.desc.Width, c.fb.desc.Height)
	}
	return c.swap.size()
}

// fbObj returns the driver object of fb, or the default framebuffer.
func fbObj(fb *framebuffer) gl.Framebuffer {
	if fb == nil {
		return gl.Framebuffer{}
	}
	return fb.obj
}

// toGL converts r from top-left coordinates to the bottom-left
// coordinates of a framebuffer of the given height.
func toGL(r image.Rectangle, height int) (x, y, w, h int) {
	return r.Min.X, height - r.Max.Y, r.Dx(), r.Dy()
}

func (c *context) SetViewport(r image.Rectangle) {
	c.state.Viewport = r
	c.b.glstate.setViewport(c.b.funcs, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	c.check("SetViewport")
}

func (c *context) Viewport() image.Rectangle {
	return c.state.Viewport
}

func (c *context) SetScissor(r image.Rectangle) {
	c.state.Scissor = r
	c.applyScissor()
	c.check("SetScissor")
}

func (c *context) applyScissor() {
	x, y, w, h := toGL(c.state.Scissor, c.fbSize().Y)
	c.b.glstate.setScissor(c.b.funcs, x, y, w, h)
}

func (c *context) Scissor() image.Rectangle {
	return c.state.Scissor
}

// eachFace calls fn for the faces selected by face.
func (c *context) eachFace(face hal.Face, fn func(glFace gl.Enum, st *hal.StencilFaceState)) {
	if face&hal.FaceFront != 0 {
		fn(gl.FRONT, &c.state.Render.Stencil.Front)
	}
	if face&hal.FaceBack != 0 {
		fn(gl.BACK, &c.state.Render.Stencil.Back)
	}
}

func (c *context) SetStencilCompareMask(face hal.Face, mask uint32) {
	f := c.b.funcs
	c.eachFace(face, func(glFace gl.Enum, st *hal.StencilFaceState) {
		if st.ReadMask != mask {
			st.ReadMask = mask
			f.StencilFuncSeparate(glFace, format.CompareFunction(st.Compare), int(st.Reference), mask)
		}
	})
	c.check("SetStencilCompareMask")
}

func (c *context) StencilCompareMask(face hal.Face) uint32 {
	return c.state.Render.StencilFace(face).ReadMask
}

func (c *context) SetStencilReference(face hal.Face, ref uint32) {
	f := c.b.funcs
	c.eachFace(face, func(glFace gl.Enum, st *hal.StencilFaceState) {
		if st.Reference != ref {
			st.Reference = ref
			f.StencilFuncSeparate(glFace, format.CompareFunction(st.Compare), int(ref), st.ReadMask)
		}
	})
	c.check("SetStencilReference")
}

func (c *context) StencilReference(face hal.Face) uint32 {
	return c.state.Render.StencilFace(face).Reference
}

func (c *context) SetStencilWriteMask(face hal.Face, mask uint32) {
	f := c.b.funcs
	c.eachFace(face, func(glFace gl.Enum, st *hal.StencilFaceState) {
		if st.WriteMask != mask {
			st.WriteMask = mask
			f.StencilMaskSeparate(glFace, mask)
		}
	})
	c.check("SetStencilWriteMask")
}

func (c *context) StencilWriteMask(face hal.Face) uint32 {
	return c.state.Render.StencilFace(face).WriteMask
}

func (c *context) SetRenderPipeline(p hal.Pipeline) {
	f := c.b.funcs
	if p == nil {
		if c.pipeline == nil {
			return
		}
		// Unbinding restores the default state and program.
		def := hal.DefaultRenderState()
		applyRenderState(f, &c.state.Render, &def, c.srgbWrite())
		c.b.glstate.useProgram(f, gl.Program{})
		c.pipeline = nil
		c.check("SetRenderPipeline")
		return
	}
	pipe, err := lookup[*pipeline](c.b, p)
	if err != nil {
		logger().WithError(err).Warn("SetRenderPipeline ignored")
		return
	}
	if pipe == c.pipeline {
		return
	}
	applyRenderState(f, &c.state.Render, &pipe.state.state, c.srgbWrite())
	c.b.glstate.useProgram(f, pipe.prog.obj)
	c.pipeline = pipe
	c.vertexDirty = true
	c.setDirty = true
	c.check("SetRenderPipeline")
}

func (c *context) RenderPipeline() hal.Pipeline {
	if c.pipeline == nil {
		return nil
	}
	return c.pipeline
}

func (c *context) SetDescriptorSet(s hal.DescriptorSet) {
	if s == nil {
		c.set = nil
		return
	}
	set, err := lookup[*descriptorSet](c.b, s)
	if err != nil {
		logger().WithError(err).Warn("SetDescriptorSet ignored")
		return
	}
	c.set = set
	c.setDirty = true
}

func (c *context) DescriptorSet() hal.DescriptorSet {
	if c.set == nil {
		return nil
	}
	return c.set
}

// vertexBuffer returns the binding of slot, growing the binding table
// as needed.
func (c *context) vertexBuffer(slot int) *vertexBinding {
	for slot >= len(c.vertexBuffers) {
		c.vertexBuffers = append(c.vertexBuffers, vertexBinding{})
	}
	return &c.vertexBuffers[slot]
}

func (c *context) SetVertexBuffer(slot int, b hal.Buffer, offset int) {
	if slot < 0 || offset < 0 {
		logger().WithFields(logrus.Fields{
			"slot":   slot,
			"offset": offset,
		}).Warn("SetVertexBuffer ignored")
		return
	}
	var buf *buffer
	if b != nil {
		var err error
		buf, err = lookup[*buffer](c.b, b)
		if err != nil {
			logger().WithError(err).Warn("SetVertexBuffer ignored")
			return
		}
		if buf.target != gl.ARRAY_BUFFER {
			logger().WithField("slot", slot).Warn("SetVertexBuffer: not a vertex buffer")
			return
		}
	}
	vb := c.vertexBuffer(slot)
	if vb.buf == buf && vb.offset == offset {
		return
	}
	vb.buf = buf
	vb.offset = offset
	vb.dirty = true
}

func (c *context) VertexBuffer(slot int) hal.Buffer {
	if slot < 0 || slot >= len(c.vertexBuffers) || c.vertexBuffers[slot].buf == nil {
		return nil
	}
	return c.vertexBuffers[slot].buf
}

func (c *context) SetIndexBuffer(b hal.Buffer, offset int, f gputypes.IndexFormat) {
	if b == nil {
		c.index = indexBinding{}
		return
	}
	buf, err := lookup[*buffer](c.b, b)
	if err != nil {
		logger().WithError(err).Warn("SetIndexBuffer ignored")
		return
	}
	typ, req := format.IndexFormat(f)
	switch {
	case typ == format.Invalid || !c.b.feats.Has(req):
		err = unsupported("index format %v", f)
	case buf.target != gl.ELEMENT_ARRAY_BUFFER:
		err = errors.New("not an index buffer")
	case offset < 0:
		err = errors.Errorf("negative offset %d", offset)
	}
	if err != nil {
		logger().WithError(err).Warn("SetIndexBuffer ignored")
		return
	}
	size := 2
	if f == gputypes.IndexFormatUint32 {
		size = 4
	}
	c.index = indexBinding{buf: buf, offset: offset, typ: typ, size: size}
}

func (c *context) IndexBuffer() hal.Buffer {
	if c.index.buf == nil {
		return nil
	}
	return c.index.buf
}

func (c *context) SetFramebuffer(fb hal.Framebuffer) {
	var fbo *framebuffer
	if fb != nil {
		var err error
		fbo, err = lookup[*framebuffer](c.b, fb)
		if err != nil {
			logger().WithError(err).Warn("SetFramebuffer ignored")
			return
		}
	}
	c.fb = fbo
	c.b.glstate.bindFramebuffer(c.b.funcs, gl.FRAMEBUFFER, fbObj(fbo))
	c.SetViewport(image.Rectangle{Max: c.fbSize()})
	c.applyScissor()
	c.check("SetFramebuffer")
}

func (c *context) Framebuffer() hal.Framebuffer {
	if c.fb == nil {
		return nil
	}
	return c.fb
}

// ClearFramebuffer clears the whole bound framebuffer. Write masks and
// the scissor test of the captured state are lifted for the clear and
// restored afterwards.
func (c *context) ClearFramebuffer(flags hal.ClearFlags, color gputypes.Color, depth float32, stencil int) {
	b, f := c.b, c.b.funcs
	r := &c.state.Render
	var mask gl.Enum
	if flags&hal.ClearColor != 0 {
		mask |= gl.COLOR_BUFFER_BIT
		b.glstate.setClearColor(f, float32(color.R), float32(color.G), float32(color.B), float32(color.A))
		c.state.ClearColor = color
		if r.ColorMask != gputypes.ColorWriteMaskAll {
			f.ColorMask(true, true, true, true)
		}
	}
	if flags&hal.ClearDepth != 0 {
		mask |= gl.DEPTH_BUFFER_BIT
		b.glstate.setClearDepth(f, depth)
		c.state.ClearDepth = depth
		if !r.DepthWrite {
			f.DepthMask(true)
		}
	}
	const allBits = 0xFFFFFFFF
	if flags&hal.ClearStencil != 0 {
		mask |= gl.STENCIL_BUFFER_BIT
		b.glstate.setClearStencil(f, stencil)
		c.state.ClearStencil = stencil
		if r.Stencil.Front.WriteMask != allBits || r.Stencil.Back.WriteMask != allBits {
			f.StencilMaskSeparate(gl.FRONT_AND_BACK, allBits)
		}
	}
	if mask == 0 {
		return
	}
	if r.ScissorTest {
		f.Disable(gl.SCISSOR_TEST)
	}
	f.Clear(mask)
	if r.ScissorTest {
		f.Enable(gl.SCISSOR_TEST)
	}
	if flags&hal.ClearColor != 0 && r.ColorMask != gputypes.ColorWriteMaskAll {
		m := colorWriteMask(r.ColorMask)
		f.ColorMask(m[0], m[1], m[2], m[3])
	}
	if flags&hal.ClearDepth != 0 && !r.DepthWrite {
		f.DepthMask(false)
	}
	if flags&hal.ClearStencil != 0 {
		if r.Stencil.Front.WriteMask != allBits {
			f.StencilMaskSeparate(gl.FRONT, r.Stencil.Front.WriteMask)
		}
		if r.Stencil.Back.WriteMask != allBits {
			f.StencilMaskSeparate(gl.BACK, r.Stencil.Back.WriteMask)
		}
	}
	c.check("ClearFramebuffer")
}

func (c *context) BlitFramebuffer(src hal.Framebuffer, srcRect image.Rectangle, dst hal.Framebuffer, dstRect image.Rectangle) error {
	b, f := c.b, c.b.funcs
	if !b.feats.Has(format.FeatureFramebufferBlit) {
		return unsupported("framebuffer blit")
	}
	srcFB, srcSize, err := c.resolveFramebuffer(src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dstFB, dstSize, err := c.resolveFramebuffer(dst)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	sx, sy, sw, sh := toGL(srcRect, srcSize.Y)
	dx, dy, dw, dh := toGL(dstRect, dstSize.Y)
	b.glstate.bindFramebuffer(f, gl.READ_FRAMEBUFFER, fbObj(srcFB))
	b.glstate.bindFramebuffer(f, gl.DRAW_FRAMEBUFFER, fbObj(dstFB))
	if r := &c.state.Render; r.ScissorTest {
		f.Disable(gl.SCISSOR_TEST)
		defer f.Enable(gl.SCISSOR_TEST)
	}
	f.BlitFramebuffer(sx, sy, sx+sw, sy+sh, dx, dy, dx+dw, dy+dh, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	b.glstate.bindFramebuffer(f, gl.FRAMEBUFFER, fbObj(c.fb))
	return glErr(f)
}

func (c *context) resolveFramebuffer(fb hal.Framebuffer) (*framebuffer, image.Point, error) {
	if fb == nil {
		return nil, c.swap.size(), nil
	}
	fbo, err := lookup[*framebuffer](c.b, fb)
	if err != nil {
		return nil, image.Point{}, err
	}
	return fbo, image.Pt(fbo.desc.Width, fbo.desc.Height), nil
}

// ReadFramebuffer reads rect of the bound framebuffer. The returned
// image has its origin at the top left.
func (c *context) ReadFramebuffer(rect image.Rectangle) (*image.RGBA, error) {
	size := c.fbSize()
	if !rect.In(image.Rectangle{Max: size}) || rect.Empty() {
		return nil, errors.Errorf("read rectangle %v outside framebuffer of size %v", rect, size)
	}
	b, f := c.b, c.b.funcs
	drainErrors(f)
	b.glstate.bindFramebuffer(f, gl.FRAMEBUFFER, fbObj(c.fb))
	x, y, w, h := toGL(rect, size.Y)
	pix := make([]byte, w*h*4)
	f.ReadPixels(x, y, w, h, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	if err := glErr(f); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rectangle{Max: rect.Size()})
	stride := w * 4
	for row := 0; row < h; row++ {
		src := pix[(h-1-row)*stride : (h-row)*stride]
		copy(img.Pix[row*img.Stride:], src)
	}
	return img, nil
}

func (c *context) GenerateMipmap(t hal.Texture) {
	tex, err := lookup[*texture](c.b, t)
	if err != nil {
		logger().WithError(err).Warn("GenerateMipmap ignored")
		return
	}
	if tex.levels > 1 {
		tex.generateMipmaps()
	}
	c.check("GenerateMipmap")
}

// flush issues the vertex bindings and uniform uploads staged since the
// last draw. It reports false when no pipeline is bound.
func (c *context) flush() bool {
	p := c.pipeline
	if p == nil {
		logger().Warn("draw without a pipeline")
		return false
	}
	f := c.b.funcs
	// Resource creation may have changed the current program.
	c.b.glstate.useProgram(f, p.prog.obj)
	p.bindVertexBuffers(c, c.vertexDirty)
	c.vertexDirty = false
	if c.set != nil {
		c.set.apply(p, c.setDirty)
	}
	c.setDirty = false
	return true
}

func (c *context) Draw(vertexCount, firstVertex int) {
	if vertexCount <= 0 || !c.flush() {
		return
	}
	c.b.funcs.DrawArrays(c.pipeline.mode, firstVertex, vertexCount)
	c.check("Draw")
}

func (c *context) DrawIndexed(indexCount, firstIndex int) {
	if indexCount <= 0 {
		return
	}
	ib := c.index
	if ib.buf == nil {
		logger().Warn("indexed draw without an index buffer")
		return
	}
	if !c.flush() {
		return
	}
	f := c.b.funcs
	c.b.glstate.bindBuffer(f, gl.ELEMENT_ARRAY_BUFFER, ib.buf.obj)
	f.DrawElements(c.pipeline.mode, indexCount, ib.typ, ib.offset+ib.size*firstIndex)
	c.check("DrawIndexed")
}

func (c *context) Present() error {
	return c.swap.Present()
}

func (c *context) Release() {
	if c.release() {
		if c.b.ctx == c {
			c.b.ctx = nil
		}
		c.pipeline = nil
		c.set = nil
		c.fb = nil
		c.index = indexBinding{}
		c.vertexBuffers = nil
	}
}

var _ hal.Context = (*context)(nil)
