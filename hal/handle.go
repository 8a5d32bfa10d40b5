// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupported is returned for formats and features the driver
	// cannot express.
	ErrUnsupported = errors.New("hal: unsupported")
	// ErrStaleHandle is returned for handles of released resources.
	ErrStaleHandle = errors.New("hal: stale handle")
	// ErrForeignResource is returned for resources created by another
	// backend or device.
	ErrForeignResource = errors.New("hal: resource of another device")
	// ErrValueKind is returned when a slot is set to a value of the
	// wrong kind.
	ErrValueKind = errors.New("hal: value does not match uniform type")
)

// Kind identifies the type of a Resource.
type Kind uint8

const (
	KindShader Kind = iota + 1
	KindProgram
	KindTexture
	KindSampler
	KindBuffer
	KindFramebufferLayout
	KindFramebuffer
	KindRenderState
	KindInputLayout
	KindDescriptorSetLayout
	KindDescriptorSet
	KindPipeline
	KindSwapchain
	KindContext
)

var kindNames = [...]string{
	KindShader:              "shader",
	KindProgram:             "program",
	KindTexture:             "texture",
	KindSampler:             "sampler",
	KindBuffer:              "buffer",
	KindFramebufferLayout:   "framebuffer-layout",
	KindFramebuffer:         "framebuffer",
	KindRenderState:         "render-state",
	KindInputLayout:         "input-layout",
	KindDescriptorSetLayout: "descriptor-set-layout",
	KindDescriptorSet:       "descriptor-set",
	KindPipeline:            "pipeline",
	KindSwapchain:           "swapchain",
	KindContext:             "context",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Handle identifies a resource within the arena of its Device. The
// generation distinguishes a released resource from a later one
// reusing the same index. The zero Handle is never issued.
type Handle struct {
	Index uint32
	Gen   uint32
}

func (h Handle) Valid() bool {
	return h.Gen != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d#%d", h.Index, h.Gen)
}

// Arena is a table of live resources indexed by Handle. The zero
// Arena is empty and ready to use.
type Arena struct {
	slots []arenaSlot
	free  []uint32
	live  int
}

type arenaSlot struct {
	gen uint32
	res Resource
}

// Insert stores r and returns its handle.
func (a *Arena) Insert(r Resource) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.res = r
	a.live++
	return Handle{Index: idx, Gen: s.gen}
}

// Lookup returns the resource of h.
func (a *Arena) Lookup(h Handle) (Resource, error) {
	if !h.Valid() || int(h.Index) >= len(a.slots) {
		return nil, errors.Wrapf(ErrStaleHandle, "handle %v", h)
	}
	s := a.slots[h.Index]
	if s.gen != h.Gen || s.res == nil {
		return nil, errors.Wrapf(ErrStaleHandle, "handle %v", h)
	}
	return s.res, nil
}

// Remove drops h from the arena. The slot generation is bumped so
// that copies of h fail to resolve.
func (a *Arena) Remove(h Handle) error {
	if _, err := a.Lookup(h); err != nil {
		return err
	}
	s := &a.slots[h.Index]
	s.res = nil
	s.gen++
	a.free = append(a.free, h.Index)
	a.live--
	return nil
}

// Len returns the number of live resources.
func (a *Arena) Len() int {
	return a.live
}

// Live returns the live resources, most recently created index last.
func (a *Arena) Live() []Resource {
	res := make([]Resource, 0, a.live)
	for _, s := range a.slots {
		if s.res != nil {
			res = append(res, s.res)
		}
	}
	return res
}
