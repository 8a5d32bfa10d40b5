// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"image"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
)

// swapchain presents the default framebuffer, framebuffer object 0,
// through a platform surface.
type swapchain struct {
	resource
	desc hal.SwapchainDesc
}

func (b *Backend) NewSwapchain(desc hal.SwapchainDesc) (hal.Swapchain, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if err := validateSwapchain(desc); err != nil {
		return nil, b.fail(hal.KindSwapchain, err)
	}
	if err := desc.Surface.SetSwapInterval(desc.Interval.Frames()); err != nil {
		return nil, b.fail(hal.KindSwapchain, errors.Wrap(err, "swap interval"))
	}
	s := &swapchain{desc: desc}
	b.register(s, hal.KindSwapchain)
	logger().WithFields(logrus.Fields{
		"width":    desc.Width,
		"height":   desc.Height,
		"interval": desc.Interval.Frames(),
	}).Debug("swapchain created")
	return s, nil
}

func validateSwapchain(desc hal.SwapchainDesc) error {
	switch {
	case desc.Surface == nil:
		return errors.New("nil surface")
	case desc.Width <= 0 || desc.Height <= 0:
		return errors.Errorf("invalid swapchain size %dx%d", desc.Width, desc.Height)
	case desc.Interval > hal.IntervalVsync2:
		return errors.Errorf("invalid swap interval %d", desc.Interval)
	case desc.ImageCount < 0 || desc.SampleCount < 0:
		return errors.Errorf("negative image or sample count")
	}
	if f := desc.ColorFormat; f != 0 && format.TextureKind(f) != format.KindColor {
		return errors.Errorf("%v is not a color format", f)
	}
	return nil
}

func (s *swapchain) size() image.Point {
	return image.Pt(s.desc.Width, s.desc.Height)
}

func (s *swapchain) Desc() hal.SwapchainDesc {
	return s.desc
}

func (s *swapchain) Resize(width, height int) error {
	if s.released {
		return errors.Wrapf(hal.ErrStaleHandle, "swapchain %v", s.handle)
	}
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid swapchain size %dx%d", width, height)
	}
	if width == s.desc.Width && height == s.desc.Height {
		return nil
	}
	if err := s.desc.Surface.Refresh(); err != nil {
		return errors.Wrap(err, "refresh surface")
	}
	s.desc.Width, s.desc.Height = width, height
	// Follow the new size if the context draws to the default
	// framebuffer.
	if c := s.b.ctx; c != nil && c.swap == s && c.fb == nil {
		c.SetFramebuffer(nil)
	}
	return nil
}

func (s *swapchain) SetSwapInterval(interval hal.SwapInterval) error {
	if s.released {
		return errors.Wrapf(hal.ErrStaleHandle, "swapchain %v", s.handle)
	}
	if interval > hal.IntervalVsync2 {
		return errors.Errorf("invalid swap interval %d", interval)
	}
	if err := s.desc.Surface.SetSwapInterval(interval.Frames()); err != nil {
		return err
	}
	s.desc.Interval = interval
	return nil
}

func (s *swapchain) Present() error {
	if s.released {
		return errors.Wrapf(hal.ErrStaleHandle, "swapchain %v", s.handle)
	}
	if err := s.desc.Surface.Present(); err != nil {
		return errors.Wrap(err, "present")
	}
	return nil
}

// Release releases the surface along with the swapchain.
func (s *swapchain) Release() {
	if s.release() {
		s.desc.Surface.Release()
	}
}
