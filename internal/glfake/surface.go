// SPDX-License-Identifier: Unlicense OR MIT

package glfake

import "github.com/pkg/errors"

// Surface is a presentation surface whose context is a fake driver.
// It implements hal.Surface.
type Surface struct {
	F *Functions

	Locked    bool
	Presents  int
	Refreshes int
	Interval  int
	Released  bool
	// PresentErr is returned by Present when set.
	PresentErr error
}

func NewSurface(f *Functions) *Surface {
	return &Surface{F: f, Interval: 1}
}

func (s *Surface) Lock() error {
	if s.Released {
		return errors.New("glfake: surface released")
	}
	s.Locked = true
	return nil
}

func (s *Surface) Unlock() {
	s.Locked = false
}

func (s *Surface) Present() error {
	if s.PresentErr != nil {
		return s.PresentErr
	}
	s.Presents++
	return nil
}

func (s *Surface) Refresh() error {
	s.Refreshes++
	return nil
}

func (s *Surface) SetSwapInterval(frames int) error {
	if frames < 0 {
		return errors.Errorf("glfake: invalid swap interval %d", frames)
	}
	s.Interval = frames
	return nil
}

func (s *Surface) Release() {
	s.Released = true
}
