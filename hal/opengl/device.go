// SPDX-License-Identifier: Unlicense OR MIT

// Package opengl implements the hal backend for OpenGL 2.1 and
// OpenGL ES 2.0 drivers.
//
// The driver has a single global state. Resources are created through
// a Backend, which keeps a shadow copy of the driver bindings so that
// explicit bind calls turn into as few driver calls as possible.
package opengl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
	"gioui.org/glhal/internal/logging"
)

// Backend implements hal.Device.
type Backend struct {
	funcs gl.Functions

	glstate glState

	caps  hal.Caps
	feats format.Feature
	glver [2]int
	gles  bool
	// fbo reports support for framebuffer objects.
	fbo   bool
	debug bool

	arena hal.Arena
	// ctx is the live context, if any.
	ctx      *context
	released bool
}

// resource is embedded in every object a Backend creates.
type resource struct {
	b        *Backend
	kind     hal.Kind
	handle   hal.Handle
	released bool
}

// owned is implemented by the resources of a Backend.
type owned interface {
	hal.Resource
	base() *resource
}

func init() {
	hal.NewOpenGLDevice = newOpenGLDevice
}

func newOpenGLDevice(api hal.OpenGL) (hal.Device, error) {
	f, err := gl.NewFunctions(api.Context)
	if err != nil {
		return nil, err
	}
	info, err := queryDriver(f)
	if err != nil {
		return nil, err
	}
	b := &Backend{
		funcs: f,
		caps:  info.caps,
		feats: info.feats,
		glver: info.glver,
		gles:  info.gles,
		fbo:   info.fbo,
		debug: api.Debug,
	}
	b.glstate = queryState(f, info.caps.Limits)
	logger().WithFields(logrus.Fields{
		"version":  info.caps.Version,
		"renderer": info.caps.Renderer,
		"features": info.feats.Names(),
	}).Debug("device created")
	return b, nil
}

func logger() *logrus.Entry {
	return logging.For("opengl")
}

func (r *resource) Kind() hal.Kind {
	return r.kind
}

func (r *resource) Handle() hal.Handle {
	return r.handle
}

func (r *resource) base() *resource {
	return r
}

// release removes r from the arena of its backend and reports whether
// the caller should free the native object.
func (r *resource) release() bool {
	if r.released || r.b == nil {
		return false
	}
	r.released = true
	r.b.arena.Remove(r.handle)
	return true
}

func (b *Backend) register(r owned, kind hal.Kind) {
	base := r.base()
	base.b = b
	base.kind = kind
	base.handle = b.arena.Insert(r)
}

// owns checks that r is a live resource created by b.
func (b *Backend) owns(r hal.Resource) error {
	o, ok := r.(owned)
	if !ok || o.base().b != b {
		return errors.Wrapf(hal.ErrForeignResource, "%T", r)
	}
	if _, err := b.arena.Lookup(r.Handle()); err != nil {
		return errors.Wrapf(err, "%v %v", r.Kind(), r.Handle())
	}
	return nil
}

// lookup resolves r to the backend type T.
func lookup[T owned](b *Backend, r hal.Resource) (T, error) {
	var zero T
	if r == nil {
		return zero, errors.New("nil resource")
	}
	if err := b.owns(r); err != nil {
		return zero, err
	}
	t, ok := r.(T)
	if !ok {
		return zero, errors.Errorf("%v is not a %T", r.Kind(), zero)
	}
	return t, nil
}

func (b *Backend) checkLive() error {
	if b.released {
		return errors.New("opengl: device released")
	}
	return nil
}

// fail logs a creation failure and returns err.
func (b *Backend) fail(kind hal.Kind, err error) error {
	logger().WithFields(logrus.Fields{
		"resource": kind.String(),
		"err":      err,
	}).Warn("create failed")
	return err
}

// unsupported returns an ErrUnsupported wrapping the formatted reason.
func unsupported(msg string, args ...interface{}) error {
	return errors.Wrapf(hal.ErrUnsupported, msg, args...)
}

func (b *Backend) Caps() hal.Caps {
	return b.caps
}

func (b *Backend) Lookup(h hal.Handle) (hal.Resource, error) {
	return b.arena.Lookup(h)
}

// Release frees every live resource. The device must not be used
// afterwards.
func (b *Backend) Release() {
	if b.released {
		return
	}
	for _, r := range b.arena.Live() {
		r.Release()
	}
	b.released = true
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return errors.Errorf("glGetError: %#x", st)
	}
	return nil
}

// drainErrors discards pending driver errors so that a later check is
// not blamed on an earlier call.
func drainErrors(f gl.Functions) {
	for i := 0; i < 8 && f.GetError() != gl.NO_ERROR; i++ {
	}
}

var _ hal.Device = (*Backend)(nil)
