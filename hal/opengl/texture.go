// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"image"
	"math/bits"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

type texture struct {
	resource
	desc    hal.TextureDesc
	obj     gl.Texture
	target  gl.Enum
	triple  format.Triple
	levels  int
	sampler hal.SamplerDesc
	// basePix holds the level 0 pixels of every face for drivers that
	// cannot generate mipmaps.
	basePix [][]byte
}

type sampler struct {
	resource
	desc hal.SamplerDesc
}

func (b *Backend) NewTexture(desc hal.TextureDesc) (hal.Texture, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if err := b.validateTexture(&desc); err != nil {
		return nil, b.fail(hal.KindTexture, err)
	}
	smp, err := b.normalizeSampler(desc.Sampler)
	if err != nil {
		return nil, b.fail(hal.KindTexture, err)
	}
	f := b.funcs
	drainErrors(f)
	tex := &texture{
		desc:    desc,
		obj:     f.CreateTexture(),
		target:  format.TextureTarget(desc.Dimension),
		triple:  format.TextureTriple(desc.Format, b.gles),
		levels:  desc.Levels(),
		sampler: smp,
	}
	b.glstate.bindTexture(f, 0, tex.target, tex.obj)
	tex.applySamplerState(b, smp)
	compressed := format.IsCompressed(desc.Format)
	for face := 0; face < desc.Faces(); face++ {
		target := tex.faceTarget(face)
		for l := 0; l < tex.levels; l++ {
			w, h := mipSize(desc.Width, l), mipSize(desc.Height, l)
			var data []byte
			if i := face*tex.levels + l; i < len(desc.Data) {
				data = desc.Data[i]
			}
			if compressed {
				if data == nil {
					data = make([]byte, format.ImageSize(desc.Format, w, h))
				}
				f.CompressedTexImage2D(target, l, tex.triple.Internal, w, h, data)
				continue
			}
			b.glstate.setUnpackAlignment(f, unpackAlignment(w*format.PixelSize(desc.Format)))
			f.TexImage2D(target, l, tex.triple.Internal, w, h, tex.triple.Format, tex.triple.Type, data)
		}
	}
	if b.needsBaseCopy(desc) {
		tex.basePix = make([][]byte, desc.Faces())
		for face := range tex.basePix {
			tex.basePix[face] = make([]byte, format.ImageSize(desc.Format, desc.Width, desc.Height))
			if i := face * tex.levels; i < len(desc.Data) {
				copy(tex.basePix[face], desc.Data[i])
			}
		}
	}
	if err := glErr(f); err != nil {
		b.glstate.deleteTexture(f, tex.obj)
		return nil, b.fail(hal.KindTexture, errors.Wrap(err, "texture upload"))
	}
	b.register(tex, hal.KindTexture)
	if desc.GenerateMipmaps && tex.levels > 1 {
		tex.generateMipmaps()
	}
	return tex, nil
}

func (b *Backend) validateTexture(desc *hal.TextureDesc) error {
	l := b.caps.Limits
	target := format.TextureTarget(desc.Dimension)
	switch {
	case desc.Width <= 0 || desc.Height <= 0:
		return errors.Errorf("invalid texture size %dx%d", desc.Width, desc.Height)
	case target == format.Invalid:
		return unsupported("texture dimension %v", desc.Dimension)
	case target == gl.TEXTURE_CUBE_MAP && desc.Width != desc.Height:
		return errors.Errorf("cube map faces must be square, got %dx%d", desc.Width, desc.Height)
	case target == gl.TEXTURE_CUBE_MAP && desc.Width > l.MaxCubeMapSize:
		return unsupported("cube map size %d exceeds %d", desc.Width, l.MaxCubeMapSize)
	case desc.Width > l.MaxTextureSize || desc.Height > l.MaxTextureSize:
		return unsupported("texture size %dx%d exceeds %d", desc.Width, desc.Height, l.MaxTextureSize)
	case !format.TextureSupported(desc.Format, b.gles, b.feats):
		return unsupported("texture format %v", desc.Format)
	}
	if n := maxLevels(desc.Width, desc.Height); desc.Levels() > n {
		return errors.Errorf("%d mip levels for a %dx%d texture, at most %d", desc.Levels(), desc.Width, desc.Height, n)
	}
	if n := desc.Faces() * desc.Levels(); len(desc.Data) > n {
		return errors.Errorf("%d initial images for %d levels", len(desc.Data), n)
	}
	for i, data := range desc.Data {
		if data == nil {
			continue
		}
		lvl := i % desc.Levels()
		want := format.ImageSize(desc.Format, mipSize(desc.Width, lvl), mipSize(desc.Height, lvl))
		if len(data) != want {
			return errors.Errorf("image %d: %d bytes, expected %d", i, len(data), want)
		}
	}
	return nil
}

// needsBaseCopy reports whether mipmaps of desc are generated on the
// CPU and need the base level pixels.
func (b *Backend) needsBaseCopy(desc hal.TextureDesc) bool {
	return desc.Levels() > 1 && !b.feats.Has(format.FeatureGenerateMipmap) && cpuMipmapFormat(desc.Format)
}

func cpuMipmapFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

func mipSize(n, level int) int {
	if n >>= uint(level); n < 1 {
		return 1
	}
	return n
}

func maxLevels(w, h int) int {
	if h > w {
		w = h
	}
	return bits.Len(uint(w))
}

// unpackAlignment returns the largest row alignment that divides
// rowBytes.
func unpackAlignment(rowBytes int) int {
	for _, a := range []int{8, 4, 2} {
		if rowBytes%a == 0 {
			return a
		}
	}
	return 1
}

func (t *texture) faceTarget(face int) gl.Enum {
	if t.target == gl.TEXTURE_CUBE_MAP {
		return gl.TEXTURE_CUBE_MAP_POSITIVE_X + gl.Enum(face)
	}
	return gl.TEXTURE_2D
}

func (t *texture) Desc() hal.TextureDesc {
	return t.desc
}

func (t *texture) Upload(level, face int, rect image.Rectangle, pixels []byte) error {
	if t.released {
		return errors.Wrapf(hal.ErrStaleHandle, "texture %v", t.handle)
	}
	d := t.desc
	w, h := mipSize(d.Width, level), mipSize(d.Height, level)
	switch {
	case level < 0 || level >= t.levels:
		return errors.Errorf("mip level %d out of range", level)
	case face < 0 || face >= d.Faces():
		return errors.Errorf("face %d out of range", face)
	case rect.Empty() || !rect.In(image.Rect(0, 0, w, h)):
		return errors.Errorf("rectangle %v outside %dx%d level", rect, w, h)
	}
	n := format.ImageSize(d.Format, rect.Dx(), rect.Dy())
	if len(pixels) < n {
		return errors.Errorf("%d bytes for a %v upload, expected %d", len(pixels), rect.Size(), n)
	}
	b, f := t.b, t.b.funcs
	b.glstate.bindTexture(f, 0, t.target, t.obj)
	target := t.faceTarget(face)
	if format.IsCompressed(d.Format) {
		if rect != image.Rect(0, 0, w, h) {
			return unsupported("partial upload of compressed format %v", d.Format)
		}
		f.CompressedTexImage2D(target, level, t.triple.Internal, w, h, pixels[:n])
	} else {
		b.glstate.setUnpackAlignment(f, unpackAlignment(rect.Dx()*format.PixelSize(d.Format)))
		f.TexSubImage2D(target, level, rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), t.triple.Format, t.triple.Type, pixels[:n])
	}
	if level == 0 && t.basePix != nil {
		stride := d.Width * format.PixelSize(d.Format)
		row := rect.Dx() * format.PixelSize(d.Format)
		for y := 0; y < rect.Dy(); y++ {
			off := (rect.Min.Y+y)*stride + rect.Min.X*format.PixelSize(d.Format)
			copy(t.basePix[face][off:off+row], pixels[y*row:])
		}
	}
	return glErr(f)
}

// generateMipmaps fills the levels below the base level.
func (t *texture) generateMipmaps() {
	b, f := t.b, t.b.funcs
	b.glstate.bindTexture(f, 0, t.target, t.obj)
	if b.feats.Has(format.FeatureGenerateMipmap) {
		f.GenerateMipmap(t.target)
		return
	}
	if t.basePix == nil {
		logger().WithFields(logrus.Fields{
			"format": t.desc.Format.String(),
		}).Warn("mipmap generation not supported")
		return
	}
	for face, pix := range t.basePix {
		src := &image.RGBA{
			Pix:    pix,
			Stride: t.desc.Width * 4,
			Rect:   image.Rect(0, 0, t.desc.Width, t.desc.Height),
		}
		target := t.faceTarget(face)
		for l := 1; l < t.levels; l++ {
			dst := image.NewRGBA(image.Rect(0, 0, mipSize(t.desc.Width, l), mipSize(t.desc.Height, l)))
			draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
			b.glstate.setUnpackAlignment(f, unpackAlignment(dst.Stride))
			f.TexImage2D(target, l, t.triple.Internal, dst.Rect.Dx(), dst.Rect.Dy(), t.triple.Format, t.triple.Type, dst.Pix)
			src = dst
		}
	}
}

// applySamplerState pushes s onto the texture bound to the active unit.
func (t *texture) applySamplerState(b *Backend, s hal.SamplerDesc) {
	f := b.funcs
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_S, int(format.AddressMode(s.AddressModeU)))
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_T, int(format.AddressMode(s.AddressModeV)))
	f.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, int(format.MagFilter(s.MagFilter)))
	f.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, int(format.MinFilter(s.MinFilter, s.MipmapFilter, t.levels > 1)))
	if b.feats.Has(format.FeatureAnisotropy) {
		aniso := float32(s.MaxAnisotropy)
		if limit := b.caps.Limits.MaxAnisotropy; aniso > limit {
			aniso = limit
		}
		f.TexParameterf(t.target, gl.TEXTURE_MAX_ANISOTROPY_EXT, aniso)
	}
	t.sampler = s
}

func (t *texture) Release() {
	if t.release() {
		t.b.glstate.deleteTexture(t.b.funcs, t.obj)
		t.basePix = nil
	}
}

func (b *Backend) NewSampler(desc hal.SamplerDesc) (hal.Sampler, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	desc, err := b.normalizeSampler(desc)
	if err != nil {
		return nil, b.fail(hal.KindSampler, err)
	}
	s := &sampler{desc: desc}
	b.register(s, hal.KindSampler)
	return s, nil
}

// normalizeSampler replaces undefined modes by their defaults and
// checks that the driver can express s.
func (b *Backend) normalizeSampler(s hal.SamplerDesc) (hal.SamplerDesc, error) {
	for _, m := range []*gputypes.AddressMode{&s.AddressModeU, &s.AddressModeV, &s.AddressModeW} {
		if *m == gputypes.AddressModeUndefined {
			*m = gputypes.AddressModeClampToEdge
		}
	}
	if s.MagFilter == gputypes.FilterModeUndefined {
		s.MagFilter = gputypes.FilterModeNearest
	}
	if s.MinFilter == gputypes.FilterModeUndefined {
		s.MinFilter = gputypes.FilterModeNearest
	}
	if s.MaxAnisotropy == 0 {
		s.MaxAnisotropy = 1
	}
	switch {
	case s.Compare != gputypes.CompareFunctionUndefined:
		return s, unsupported("comparison sampler")
	case format.AddressMode(s.AddressModeU) == format.Invalid || format.AddressMode(s.AddressModeV) == format.Invalid:
		return s, unsupported("address modes %v, %v", s.AddressModeU, s.AddressModeV)
	case format.MagFilter(s.MagFilter) == format.Invalid || format.MinFilter(s.MinFilter, s.MipmapFilter, true) == format.Invalid:
		return s, unsupported("filters %v, %v, %v", s.MinFilter, s.MagFilter, s.MipmapFilter)
	}
	return s, nil
}

func (s *sampler) Desc() hal.SamplerDesc {
	return s.desc
}

func (s *sampler) Release() {
	s.release()
}
