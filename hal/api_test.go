// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
)

type otherAPI struct{}

func (otherAPI) implementsAPI() {}

func TestNewDeviceUnknownAPI(t *testing.T) {
	if _, err := NewDevice(otherAPI{}); err == nil {
		t.Error("created a device for an unknown API")
	}
}

func TestNewDeviceNoDriver(t *testing.T) {
	saved := NewOpenGLDevice
	defer func() { NewOpenGLDevice = saved }()
	NewOpenGLDevice = nil
	if _, err := NewDevice(OpenGL{}); err == nil {
		t.Error("created a device without a registered driver")
	}
}

func TestDefaultContextState(t *testing.T) {
	s := DefaultContextState(image.Pt(640, 480))
	if s.Viewport != image.Rect(0, 0, 640, 480) {
		t.Errorf("viewport %v", s.Viewport)
	}
	r := s.Render
	if !r.DepthTest || !r.DepthWrite || r.DepthFunc != gputypes.CompareFunctionLessEqual {
		t.Errorf("depth defaults %+v", r)
	}
	if r.Blend.Enable || r.Stencil.Enable || r.ScissorTest {
		t.Error("blend, stencil or scissor enabled by default")
	}
	if r.CullMode != gputypes.CullModeBack || r.FrontFace != gputypes.FrontFaceCW {
		t.Errorf("raster defaults %v %v", r.CullMode, r.FrontFace)
	}
	if r.Stencil.Back.WriteMask != 0xFFFFFFFF || r.StencilFace(FaceBack) != &r.Stencil.Back {
		t.Error("stencil back face")
	}
}

func TestTextureDescLevels(t *testing.T) {
	d := TextureDesc{Dimension: gputypes.TextureViewDimensionCube}
	if d.Levels() != 1 || d.Faces() != 6 {
		t.Errorf("levels %d faces %d", d.Levels(), d.Faces())
	}
}
