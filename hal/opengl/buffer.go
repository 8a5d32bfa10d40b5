// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/gl"
)

type buffer struct {
	resource
	desc   hal.BufferDesc
	obj    gl.Buffer
	target gl.Enum
	usage  gl.Enum
	// data mirrors the buffer contents. OpenGL ES 2 cannot map buffers
	// for reading.
	data []byte
}

func (b *Backend) NewBuffer(desc hal.BufferDesc) (hal.Buffer, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	vertex := desc.Usage.Contains(gputypes.BufferUsageVertex)
	index := desc.Usage.Contains(gputypes.BufferUsageIndex)
	switch {
	case desc.Size <= 0:
		return nil, b.fail(hal.KindBuffer, errors.Errorf("invalid buffer size %d", desc.Size))
	case vertex == index:
		return nil, b.fail(hal.KindBuffer, errors.Errorf("buffer usage %#x must be one of vertex or index", uint64(desc.Usage)))
	case desc.Data != nil && len(desc.Data) != desc.Size:
		return nil, b.fail(hal.KindBuffer, errors.Errorf("%d bytes of data for a %d byte buffer", len(desc.Data), desc.Size))
	}
	f := b.funcs
	drainErrors(f)
	buf := &buffer{
		desc:   desc,
		obj:    f.CreateBuffer(),
		target: gl.ARRAY_BUFFER,
		usage:  bufferUsage(desc.Hint),
		data:   make([]byte, desc.Size),
	}
	if index {
		buf.target = gl.ELEMENT_ARRAY_BUFFER
	}
	copy(buf.data, desc.Data)
	b.glstate.bindBuffer(f, buf.target, buf.obj)
	f.BufferData(buf.target, desc.Size, buf.usage, desc.Data)
	if err := glErr(f); err != nil {
		b.glstate.deleteBuffer(f, buf.obj)
		return nil, b.fail(hal.KindBuffer, err)
	}
	b.register(buf, hal.KindBuffer)
	return buf, nil
}

func bufferUsage(h hal.BufferHint) gl.Enum {
	switch h {
	case hal.HintDynamic:
		return gl.DYNAMIC_DRAW
	case hal.HintStream:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (b *buffer) Desc() hal.BufferDesc {
	return b.desc
}

func (b *buffer) Upload(offset int, data []byte) error {
	if b.released {
		return errors.Wrapf(hal.ErrStaleHandle, "buffer %v", b.handle)
	}
	if offset < 0 || offset+len(data) > b.desc.Size {
		return errors.Errorf("upload of %d bytes at %d overflows %d byte buffer", len(data), offset, b.desc.Size)
	}
	copy(b.data[offset:], data)
	f := b.b.funcs
	b.b.glstate.bindBuffer(f, b.target, b.obj)
	if offset == 0 && len(data) == b.desc.Size {
		// the iOS GL implementation doesn't recognize when BufferSubData
		// clears the entire buffer. Tell it and avoid GPU stalls.
		// See also https://github.com/godotengine/godot/issues/23956.
		f.BufferData(b.target, b.desc.Size, b.usage, nil)
	}
	f.BufferSubData(b.target, offset, data)
	return nil
}

func (b *buffer) Download(offset int, data []byte) error {
	if b.released {
		return errors.Wrapf(hal.ErrStaleHandle, "buffer %v", b.handle)
	}
	if offset < 0 || offset+len(data) > b.desc.Size {
		return errors.Errorf("download of %d bytes at %d overflows %d byte buffer", len(data), offset, b.desc.Size)
	}
	copy(data, b.data[offset:])
	return nil
}

func (b *buffer) Release() {
	if b.release() {
		b.b.glstate.deleteBuffer(b.b.funcs, b.obj)
		b.data = nil
	}
}
