// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/gl"
	"gioui.org/glhal/internal/glfake"
)

func TestContextClearMasked(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	state := hal.DefaultRenderState()
	state.DepthWrite = false
	state.ColorMask = gputypes.ColorWriteMaskRed
	ctx.SetRenderPipeline(newTestPipeline(t, b, prog, state, positionLayout))

	fb := f.Framebuffer(gl.Framebuffer{})
	ctx.ClearFramebuffer(hal.ClearDepth, gputypes.Color{}, 0.5, 0)
	if fb.Depth != 0.5 {
		t.Errorf("depth = %v, want 0.5", fb.Depth)
	}
	if fb.Color != ([4]float32{}) {
		t.Errorf("depth clear touched color: %v", fb.Color)
	}
	if f.DepthWriteMask() {
		t.Error("depth writes left enabled")
	}
	if s := ctx.State(); s.ClearDepth != 0.5 || s.Render.DepthWrite {
		t.Errorf("captured state = %+v", s)
	}

	ctx.ClearFramebuffer(hal.ClearColor, gputypes.Color{R: 0, G: 1, B: 0, A: 1}, 0, 0)
	if want := [4]float32{0, 1, 0, 1}; fb.Color != want {
		t.Errorf("color = %v, want %v", fb.Color, want)
	}
	if want := [4]bool{true, false, false, false}; f.ColorWriteMask() != want {
		t.Errorf("color mask = %v, want %v", f.ColorWriteMask(), want)
	}

	ctx.SetStencilWriteMask(hal.FaceFrontAndBack, 0)
	ctx.ClearFramebuffer(hal.ClearStencil, gputypes.Color{}, 0, 5)
	if fb.Stencil != 5 {
		t.Errorf("stencil = %d, want 5", fb.Stencil)
	}
	if ctx.StencilWriteMask(hal.FaceBack) != 0 {
		t.Error("stencil write mask changed by clear")
	}
}

func TestContextClearIgnoresScissor(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	state := hal.DefaultRenderState()
	state.ScissorTest = true
	ctx.SetRenderPipeline(newTestPipeline(t, b, prog, state, positionLayout))
	ctx.SetScissor(image.Rect(0, 0, 4, 4))

	mark := f.Mark()
	ctx.ClearFramebuffer(hal.ClearColor, gputypes.Color{R: 1, A: 1}, 0, 0)
	var names []string
	for _, c := range f.Since(mark) {
		if c.Name == "Enable" || c.Name == "Disable" || c.Name == "Clear" {
			names = append(names, c.Name)
		}
	}
	if want := []string{"Disable", "Clear", "Enable"}; !reflect.DeepEqual(names, want) {
		t.Errorf("clear issued %v, want %v", names, want)
	}
	if !f.Enabled(gl.SCISSOR_TEST) {
		t.Error("scissor test not restored")
	}
}

func TestContextScissorFlip(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	r := image.Rect(2, 4, 12, 10)
	mark := f.Mark()
	ctx.SetScissor(r)
	want := []glfake.Call{{Name: "Scissor", Args: []interface{}{2, 22, 10, 6}}}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("SetScissor issued %v, want %v", calls, want)
	}
	if got := ctx.Scissor(); got != r {
		t.Errorf("Scissor() = %v, want %v", got, r)
	}
	mark = f.Mark()
	ctx.SetScissor(r)
	if calls := f.Since(mark); len(calls) != 0 {
		t.Errorf("unchanged scissor issued %v", calls)
	}
}

func TestContextViewport(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	if got, want := ctx.Viewport(), image.Rect(0, 0, 64, 32); got != want {
		t.Errorf("initial viewport = %v, want %v", got, want)
	}
	r := image.Rect(0, 0, 8, 8)
	mark := f.Mark()
	ctx.SetViewport(r)
	ctx.SetViewport(r)
	want := []glfake.Call{{Name: "Viewport", Args: []interface{}{0, 0, 8, 8}}}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("SetViewport issued %v, want %v", calls, want)
	}
}

func TestContextStencilFaces(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)

	mark := f.Mark()
	ctx.SetStencilReference(hal.FaceBack, 3)
	want := []glfake.Call{{Name: "StencilFuncSeparate", Args: []interface{}{
		gl.Enum(gl.BACK), gl.Enum(gl.ALWAYS), 3, uint32(0xFFFFFFFF),
	}}}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("SetStencilReference issued %v, want %v", calls, want)
	}
	if ctx.StencilReference(hal.FaceBack) != 3 || ctx.StencilReference(hal.FaceFront) != 0 {
		t.Error("reference not tracked per face")
	}

	// Only the front face differs.
	mark = f.Mark()
	ctx.SetStencilReference(hal.FaceFrontAndBack, 3)
	if calls := f.Since(mark); len(calls) != 1 || calls[0].Args[0] != gl.Enum(gl.FRONT) {
		t.Errorf("SetStencilReference issued %v", calls)
	}

	mark = f.Mark()
	ctx.SetStencilCompareMask(hal.FaceFront, 0x0F)
	ctx.SetStencilWriteMask(hal.FaceFront, 0xF0)
	want = []glfake.Call{
		{Name: "StencilFuncSeparate", Args: []interface{}{gl.Enum(gl.FRONT), gl.Enum(gl.ALWAYS), 3, uint32(0x0F)}},
		{Name: "StencilMaskSeparate", Args: []interface{}{gl.Enum(gl.FRONT), uint32(0xF0)}},
	}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("mask setters issued %v, want %v", calls, want)
	}
	if ctx.StencilCompareMask(hal.FaceBack) != 0xFFFFFFFF || ctx.StencilWriteMask(hal.FaceFront) != 0xF0 {
		t.Error("masks not tracked per face")
	}
}

func TestContextIndexBuffer(t *testing.T) {
	p := glfake.ES2()
	var exts []string
	for _, e := range p.Extensions {
		if e != "GL_OES_element_index_uint" {
			exts = append(exts, e)
		}
	}
	p.Extensions = exts
	b, f := newTestDevice(t, p)
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	ctx.SetRenderPipeline(newTestPipeline(t, b, prog, hal.DefaultRenderState(), positionLayout))
	ctx.SetVertexBuffer(0, newTestBuffer(t, b, gputypes.BufferUsageVertex, 48), 0)
	ib := newTestBuffer(t, b, gputypes.BufferUsageIndex, 64)

	ctx.SetIndexBuffer(ib, 0, gputypes.IndexFormatUint32)
	if ctx.IndexBuffer() != nil {
		t.Error("32-bit indices accepted without OES_element_index_uint")
	}
	ctx.SetIndexBuffer(newTestBuffer(t, b, gputypes.BufferUsageVertex, 64), 0, gputypes.IndexFormatUint16)
	if ctx.IndexBuffer() != nil {
		t.Error("vertex buffer accepted as index buffer")
	}
	ctx.DrawIndexed(6, 0)
	if n := countCalls(f.Calls, "DrawElements"); n != 0 {
		t.Errorf("%d indexed draws without an index buffer", n)
	}

	ctx.SetIndexBuffer(ib, 4, gputypes.IndexFormatUint16)
	if ctx.IndexBuffer() != ib {
		t.Fatal("16-bit index buffer rejected")
	}
	mark := f.Mark()
	ctx.DrawIndexed(6, 3)
	calls := f.Since(mark)
	want := glfake.Call{Name: "DrawElements", Args: []interface{}{
		gl.Enum(gl.TRIANGLES), 6, gl.Enum(gl.UNSIGNED_SHORT), 10,
	}}
	if last := calls[len(calls)-1]; !reflect.DeepEqual(last, want) {
		t.Errorf("DrawIndexed issued %v, want %v", last, want)
	}
}

func TestContextIndexBufferUint32(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	ctx.SetRenderPipeline(newTestPipeline(t, b, prog, hal.DefaultRenderState(), positionLayout))
	ib := newTestBuffer(t, b, gputypes.BufferUsageIndex, 64)
	ctx.SetIndexBuffer(ib, 0, gputypes.IndexFormatUint32)
	mark := f.Mark()
	ctx.DrawIndexed(3, 2)
	calls := f.Since(mark)
	want := glfake.Call{Name: "DrawElements", Args: []interface{}{
		gl.Enum(gl.TRIANGLES), 3, gl.Enum(gl.UNSIGNED_INT), 8,
	}}
	if last := calls[len(calls)-1]; !reflect.DeepEqual(last, want) {
		t.Errorf("DrawIndexed issued %v, want %v", last, want)
	}
}

func TestContextDrawWithoutPipeline(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	ctx.Draw(3, 0)
	ctx.Draw(0, 0)
	if n := countCalls(f.Calls, "DrawArrays"); n != 0 {
		t.Errorf("%d draws without a pipeline", n)
	}
}

func newTestTarget(t *testing.T, b *Backend, w, h int) hal.Texture {
	t.Helper()
	tex, err := b.NewTexture(hal.TextureDesc{
		Width:     w,
		Height:    h,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		MipLevels: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func newTestFramebuffer(t *testing.T, b *Backend, tex hal.Texture, depth gputypes.TextureFormat) hal.Framebuffer {
	t.Helper()
	layout, err := b.NewFramebufferLayout(hal.FramebufferLayoutDesc{
		Color:        []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm},
		DepthStencil: depth,
	})
	if err != nil {
		t.Fatal(err)
	}
	d := tex.Desc()
	fb, err := b.NewFramebuffer(hal.FramebufferDesc{
		Layout: layout,
		Width:  d.Width,
		Height: d.Height,
		Color:  []hal.Attachment{{Texture: tex}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

func TestFramebufferAttachments(t *testing.T) {
	for _, test := range []struct {
		name    string
		profile glfake.Profile
		points  []gl.Enum
	}{
		{"desktop", glfake.Desktop21(), []gl.Enum{gl.DEPTH_STENCIL_ATTACHMENT}},
		{"es2", glfake.ES2(), []gl.Enum{gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT}},
	} {
		t.Run(test.name, func(t *testing.T) {
			b, f := newTestDevice(t, test.profile)
			tex := newTestTarget(t, b, 16, 8)
			fb := newTestFramebuffer(t, b, tex, gputypes.TextureFormatDepth24PlusStencil8)
			ffb := f.Framebuffer(fb.(*framebuffer).obj)
			if a := ffb.Attachments[gl.COLOR_ATTACHMENT0]; a.Texture != tex.(*texture).obj.V {
				t.Errorf("color attachment = %+v", a)
			}
			if n := len(ffb.Attachments); n != len(test.points)+1 {
				t.Errorf("%d attachments, want %d", n, len(test.points)+1)
			}
			for _, p := range test.points {
				a := ffb.Attachments[p]
				rb := f.Renderbuffer(gl.Renderbuffer{V: a.Renderbuffer})
				if rb == nil || rb.Format != gl.DEPTH24_STENCIL8 || rb.Width != 16 || rb.Height != 8 {
					t.Errorf("attachment %#x: renderbuffer %+v", p, rb)
				}
			}
			fb.Release()
			if _, _, fbs, rbs, _ := f.Live(); fbs != 0 || rbs != 0 {
				t.Errorf("%d framebuffers and %d renderbuffers after release", fbs, rbs)
			}
		})
	}
}

func TestFramebufferValidation(t *testing.T) {
	b, f := newTestDevice(t, glfake.Desktop21())
	tex := newTestTarget(t, b, 16, 16)
	layout, err := b.NewFramebufferLayout(hal.FramebufferLayoutDesc{
		Color: []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm},
	})
	if err != nil {
		t.Fatal(err)
	}
	desc := hal.FramebufferDesc{
		Layout: layout,
		Width:  8,
		Height: 8,
		Color:  []hal.Attachment{{Texture: tex}},
	}
	if _, err := b.NewFramebuffer(desc); err == nil {
		t.Error("attachment size mismatch accepted")
	}
	desc.Color[0].Level = 1
	fb, err := b.NewFramebuffer(desc)
	if err != nil {
		t.Fatalf("level 1 attachment: %v", err)
	}
	fb.Release()

	f.Incomplete = true
	if _, err := b.NewFramebuffer(desc); err == nil {
		t.Error("incomplete framebuffer created")
	}
	f.Incomplete = false
	if _, _, fbs, rbs, _ := f.Live(); fbs != 0 || rbs != 0 {
		t.Errorf("%d framebuffers and %d renderbuffers leaked", fbs, rbs)
	}

	if _, err := b.NewFramebufferLayout(hal.FramebufferLayoutDesc{
		Color: []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
	}); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("two color attachments: %v", err)
	}
	if _, err := b.NewFramebufferLayout(hal.FramebufferLayoutDesc{
		DepthStencil: gputypes.TextureFormatRGBA8Unorm,
	}); err == nil {
		t.Error("color format accepted as depth")
	}

	bare := glfake.Desktop21()
	bare.Extensions = nil
	b2, _ := newTestDevice(t, bare)
	l2, err := b2.NewFramebufferLayout(hal.FramebufferLayoutDesc{
		Color: []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm},
	})
	if err != nil {
		t.Fatal(err)
	}
	tex2 := newTestTarget(t, b2, 8, 8)
	_, err = b2.NewFramebuffer(hal.FramebufferDesc{
		Layout: l2,
		Width:  8,
		Height: 8,
		Color:  []hal.Attachment{{Texture: tex2}},
	})
	if errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("framebuffer without framebuffer objects: %v", err)
	}
}

func TestContextReadFramebuffer(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	ctx.ClearFramebuffer(hal.ClearColor, gputypes.Color{R: 1, A: 1}, 0, 0)
	mark := f.Mark()
	img, err := ctx.ReadFramebuffer(image.Rect(0, 0, 4, 2))
	if err != nil {
		t.Fatal(err)
	}
	want := glfake.Call{Name: "ReadPixels", Args: []interface{}{
		0, 30, 4, 2, gl.Enum(gl.RGBA), gl.Enum(gl.UNSIGNED_BYTE),
	}}
	found := false
	for _, c := range f.Since(mark) {
		found = found || reflect.DeepEqual(c, want)
	}
	if !found {
		t.Errorf("no %v in %v", want, f.Since(mark))
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 4, 2) {
		t.Errorf("bounds = %v", got)
	}
	if got, want := img.RGBAAt(3, 1), (color.RGBA{R: 255, A: 255}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if _, err := ctx.ReadFramebuffer(image.Rect(60, 0, 70, 4)); err == nil {
		t.Error("read outside the framebuffer")
	}
}

func TestContextBlitFramebuffer(t *testing.T) {
	b, f := newTestDevice(t, glfake.Desktop21())
	ctx := newTestContext(t, b, f)
	fb := newTestFramebuffer(t, b, newTestTarget(t, b, 16, 16), gputypes.TextureFormatUndefined)

	ctx.SetFramebuffer(fb)
	if got := ctx.Viewport(); got != image.Rect(0, 0, 16, 16) {
		t.Errorf("viewport = %v after binding a 16x16 framebuffer", got)
	}
	ctx.ClearFramebuffer(hal.ClearColor, gputypes.Color{G: 1, A: 1}, 0, 0)
	ctx.SetFramebuffer(nil)

	mark := f.Mark()
	if err := ctx.BlitFramebuffer(fb, image.Rect(0, 0, 16, 16), nil, image.Rect(0, 0, 64, 32)); err != nil {
		t.Fatal(err)
	}
	want := glfake.Call{Name: "BlitFramebuffer", Args: []interface{}{
		0, 0, 16, 16, 0, 0, 64, 32, gl.Enum(gl.COLOR_BUFFER_BIT), gl.Enum(gl.NEAREST),
	}}
	found := false
	for _, c := range f.Since(mark) {
		found = found || reflect.DeepEqual(c, want)
	}
	if !found {
		t.Errorf("no %v in %v", want, f.Since(mark))
	}
	def := f.Framebuffer(gl.Framebuffer{})
	if want := [4]float32{0, 1, 0, 1}; def.Color != want {
		t.Errorf("default framebuffer color = %v, want %v", def.Color, want)
	}

	// The default framebuffer is bound again for drawing.
	ctx.ClearFramebuffer(hal.ClearColor, gputypes.Color{B: 1, A: 1}, 0, 0)
	if want := [4]float32{0, 0, 1, 1}; def.Color != want {
		t.Errorf("clear after blit hit another framebuffer: %v", def.Color)
	}

	b2, f2 := newTestDevice(t, glfake.ES2())
	ctx2 := newTestContext(t, b2, f2)
	if err := ctx2.BlitFramebuffer(nil, image.Rect(0, 0, 1, 1), nil, image.Rect(0, 0, 1, 1)); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("blit without EXT_framebuffer_blit: %v", err)
	}
}

func TestSwapchain(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	s := glfake.NewSurface(f)
	sc, err := b.NewSwapchain(hal.SwapchainDesc{Surface: s, Width: 64, Height: 32, Interval: hal.IntervalVsync2})
	if err != nil {
		t.Fatal(err)
	}
	if s.Interval != 2 {
		t.Errorf("swap interval = %d, want 2", s.Interval)
	}
	ctx, err := b.NewContext(hal.ContextDesc{Swapchain: sc})
	if err != nil {
		t.Fatal(err)
	}

	if err := sc.Resize(64, 32); err != nil || s.Refreshes != 0 {
		t.Errorf("same size resize: %v, %d refreshes", err, s.Refreshes)
	}
	if err := sc.Resize(128, 64); err != nil {
		t.Fatal(err)
	}
	if s.Refreshes != 1 {
		t.Errorf("%d refreshes, want 1", s.Refreshes)
	}
	if got := ctx.Viewport(); got != image.Rect(0, 0, 128, 64) {
		t.Errorf("viewport = %v after resize", got)
	}
	if err := sc.Resize(0, 10); err == nil {
		t.Error("resize to an empty size")
	}

	if err := ctx.Present(); err != nil || s.Presents != 1 {
		t.Errorf("present: %v, %d presents", err, s.Presents)
	}
	s.PresentErr = errors.New("lost surface")
	if err := sc.Present(); errors.Cause(err) != s.PresentErr {
		t.Errorf("present error = %v", err)
	}

	if err := sc.SetSwapInterval(hal.IntervalFree); err != nil || s.Interval != 0 {
		t.Errorf("set swap interval: %v, interval %d", err, s.Interval)
	}
	if err := sc.SetSwapInterval(3); err == nil {
		t.Error("swap interval 3 accepted")
	}

	sc.Release()
	if !s.Released {
		t.Error("surface not released with the swapchain")
	}
	if err := sc.Present(); errors.Cause(err) != hal.ErrStaleHandle {
		t.Errorf("present after release: %v", err)
	}
}

func TestSwapchainValidation(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	tests := []hal.SwapchainDesc{
		{Width: 4, Height: 4},
		{Surface: glfake.NewSurface(f), Width: 0, Height: 4},
		{Surface: glfake.NewSurface(f), Width: 4, Height: 4, Interval: 3},
		{Surface: glfake.NewSurface(f), Width: 4, Height: 4, ImageCount: -1},
		{Surface: glfake.NewSurface(f), Width: 4, Height: 4, ColorFormat: gputypes.TextureFormatDepth24Plus},
	}
	for i, desc := range tests {
		if _, err := b.NewSwapchain(desc); err == nil {
			t.Errorf("swapchain %d created", i)
		}
	}
}

func TestSecondContext(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	sc := ctx.Desc().Swapchain
	if _, err := b.NewContext(hal.ContextDesc{Swapchain: sc}); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("second context: %v", err)
	}
	ctx.Release()
	ctx2, err := b.NewContext(hal.ContextDesc{Swapchain: sc})
	if err != nil {
		t.Fatalf("context after release: %v", err)
	}
	ctx2.Release()
}
