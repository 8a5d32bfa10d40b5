// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

type framebufferLayout struct {
	resource
	desc hal.FramebufferLayoutDesc
}

type framebuffer struct {
	resource
	desc     hal.FramebufferDesc
	layout   *framebufferLayout
	obj      gl.Framebuffer
	depthBuf gl.Renderbuffer
	hasDepth bool
}

func (b *Backend) NewFramebufferLayout(desc hal.FramebufferLayoutDesc) (hal.FramebufferLayout, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if err := b.validateLayout(desc); err != nil {
		return nil, b.fail(hal.KindFramebufferLayout, err)
	}
	l := &framebufferLayout{desc: desc}
	b.register(l, hal.KindFramebufferLayout)
	return l, nil
}

func (b *Backend) validateLayout(desc hal.FramebufferLayoutDesc) error {
	if n := len(desc.Color); n > b.caps.Limits.MaxColorAttachments {
		return unsupported("%d color attachments, at most %d", n, b.caps.Limits.MaxColorAttachments)
	}
	for _, f := range desc.Color {
		if !b.colorRenderable(f) {
			return unsupported("color attachment format %v", f)
		}
	}
	ds := desc.DepthStencil
	if ds == gputypes.TextureFormatUndefined {
		return nil
	}
	switch format.TextureKind(ds) {
	case format.KindDepth, format.KindStencil, format.KindDepthStencil:
	default:
		return errors.Errorf("%v is not a depth or stencil format", ds)
	}
	rb, req := format.RenderbufferFormat(ds, b.gles)
	if rb == format.Invalid || !b.feats.Has(req) {
		return unsupported("depth stencil format %v", ds)
	}
	return nil
}

func (b *Backend) colorRenderable(f gputypes.TextureFormat) bool {
	if format.TextureKind(f) != format.KindColor || !format.TextureSupported(f, b.gles, b.feats) {
		return false
	}
	if format.IsFloat(f) {
		return b.feats&(format.FeatureColorBufferHalfFloat|format.FeatureColorBufferFloat) != 0
	}
	return true
}

func (l *framebufferLayout) Desc() hal.FramebufferLayoutDesc {
	return l.desc
}

func (l *framebufferLayout) Release() {
	l.release()
}

func (b *Backend) NewFramebuffer(desc hal.FramebufferDesc) (hal.Framebuffer, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if !b.fbo {
		return nil, b.fail(hal.KindFramebuffer, unsupported("framebuffer objects"))
	}
	layout, err := lookup[*framebufferLayout](b, desc.Layout)
	if err != nil {
		return nil, b.fail(hal.KindFramebuffer, errors.Wrap(err, "layout"))
	}
	colors, depth, err := b.resolveAttachments(desc, layout.desc)
	if err != nil {
		return nil, b.fail(hal.KindFramebuffer, err)
	}
	f := b.funcs
	drainErrors(f)
	prev := b.glstate.drawFBO
	defer b.glstate.bindFramebuffer(f, gl.FRAMEBUFFER, prev)
	fbo := &framebuffer{desc: desc, layout: layout, obj: f.CreateFramebuffer()}
	b.glstate.bindFramebuffer(f, gl.FRAMEBUFFER, fbo.obj)
	for i, c := range colors {
		a := desc.Color[i]
		f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+gl.Enum(i), c.faceTarget(a.Face), c.obj, a.Level)
	}
	if ds := layout.desc.DepthStencil; ds != gputypes.TextureFormatUndefined {
		points := b.depthAttachments(ds)
		if depth != nil {
			a := desc.DepthStencil
			for _, p := range points {
				f.FramebufferTexture2D(gl.FRAMEBUFFER, p, depth.faceTarget(a.Face), depth.obj, a.Level)
			}
		} else {
			rb, _ := format.RenderbufferFormat(ds, b.gles)
			fbo.depthBuf = f.CreateRenderbuffer()
			fbo.hasDepth = true
			b.glstate.bindRenderbuffer(f, gl.RENDERBUFFER, fbo.depthBuf)
			f.RenderbufferStorage(gl.RENDERBUFFER, rb, desc.Width, desc.Height)
			for _, p := range points {
				f.FramebufferRenderbuffer(gl.FRAMEBUFFER, p, gl.RENDERBUFFER, fbo.depthBuf)
			}
		}
	}
	if err := glErr(f); err != nil {
		fbo.destroy()
		return nil, b.fail(hal.KindFramebuffer, err)
	}
	if st := f.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		fbo.destroy()
		return nil, b.fail(hal.KindFramebuffer, errors.Errorf("incomplete framebuffer, status = 0x%x", st))
	}
	b.register(fbo, hal.KindFramebuffer)
	return fbo, nil
}

// resolveAttachments checks the attachments of desc against the layout
// and returns their textures. The depth texture is nil when a
// renderbuffer stands in for it.
func (b *Backend) resolveAttachments(desc hal.FramebufferDesc, layout hal.FramebufferLayoutDesc) ([]*texture, *texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, nil, errors.Errorf("invalid framebuffer size %dx%d", desc.Width, desc.Height)
	}
	if max := b.caps.Limits.MaxRenderbufferSize; desc.Width > max || desc.Height > max {
		return nil, nil, unsupported("framebuffer size %dx%d exceeds %d", desc.Width, desc.Height, max)
	}
	if len(desc.Color) != len(layout.Color) {
		return nil, nil, errors.Errorf("%d color attachments for a layout of %d", len(desc.Color), len(layout.Color))
	}
	var colors []*texture
	for i, a := range desc.Color {
		t, err := b.attachment(desc, a, layout.Color[i])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "color attachment %d", i)
		}
		colors = append(colors, t)
	}
	if desc.DepthStencil == nil {
		return colors, nil, nil
	}
	if layout.DepthStencil == gputypes.TextureFormatUndefined {
		return nil, nil, errors.New("depth stencil attachment for a layout without depth")
	}
	depth, err := b.attachment(desc, *desc.DepthStencil, layout.DepthStencil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "depth stencil attachment")
	}
	return colors, depth, nil
}

func (b *Backend) attachment(desc hal.FramebufferDesc, a hal.Attachment, f gputypes.TextureFormat) (*texture, error) {
	t, err := lookup[*texture](b, a.Texture)
	if err != nil {
		return nil, err
	}
	td := t.desc
	switch {
	case td.Format != f:
		return nil, errors.Errorf("texture format %v, layout format %v", td.Format, f)
	case a.Level < 0 || a.Level >= t.levels:
		return nil, errors.Errorf("mip level %d out of range", a.Level)
	case a.Face < 0 || a.Face >= td.Faces():
		return nil, errors.Errorf("face %d out of range", a.Face)
	case mipSize(td.Width, a.Level) != desc.Width || mipSize(td.Height, a.Level) != desc.Height:
		return nil, errors.Errorf("attachment size %dx%d, framebuffer size %dx%d",
			mipSize(td.Width, a.Level), mipSize(td.Height, a.Level), desc.Width, desc.Height)
	}
	return t, nil
}

// depthAttachments returns the attachment points of a depth or stencil
// format. OpenGL ES 2 lacks the combined attachment point.
func (b *Backend) depthAttachments(f gputypes.TextureFormat) []gl.Enum {
	switch format.TextureKind(f) {
	case format.KindStencil:
		return []gl.Enum{gl.STENCIL_ATTACHMENT}
	case format.KindDepthStencil:
		if b.gles && b.glver[0] < 3 {
			return []gl.Enum{gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT}
		}
		return []gl.Enum{gl.DEPTH_STENCIL_ATTACHMENT}
	default:
		return []gl.Enum{gl.DEPTH_ATTACHMENT}
	}
}

func (fb *framebuffer) Desc() hal.FramebufferDesc {
	return fb.desc
}

func (fb *framebuffer) Release() {
	if fb.release() {
		fb.destroy()
	}
}

func (fb *framebuffer) destroy() {
	b := fb.layout.b
	b.glstate.deleteFramebuffer(b.funcs, fb.obj)
	if fb.hasDepth {
		b.glstate.deleteRenderbuffer(b.funcs, fb.depthBuf)
		fb.hasDepth = false
	}
}
