// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"bytes"
	"image"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/gl"
	"gioui.org/glhal/internal/glfake"
)

func solid(w, h int, c [4]byte) []byte {
	return bytes.Repeat(c[:], w*h)
}

func TestTextureDesc(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	desc := hal.TextureDesc{
		Label:     "albedo",
		Width:     8,
		Height:    4,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		MipLevels: 2,
		Data:      [][]byte{solid(8, 4, [4]byte{1, 2, 3, 4})},
	}
	tex, err := b.NewTexture(desc)
	if err != nil {
		t.Fatal(err)
	}
	if got := tex.Desc(); !reflect.DeepEqual(got, desc) {
		t.Errorf("desc = %+v, want %+v", got, desc)
	}
	levels := f.Texture(tex.(*texture).obj).Levels[gl.TEXTURE_2D]
	if l := levels[1]; l == nil || l.Width != 4 || l.Height != 2 {
		t.Errorf("level 1 = %+v", l)
	}
	if l := levels[0]; l == nil || !bytes.Equal(l.Data, desc.Data[0]) {
		t.Error("level 0 does not hold the initial pixels")
	}
}

func TestTextureCube(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	desc := hal.TextureDesc{
		Width:     8,
		Height:    8,
		Dimension: gputypes.TextureViewDimensionCube,
		Format:    gputypes.TextureFormatRGBA8Unorm,
	}
	tex, err := b.NewTexture(desc)
	if err != nil {
		t.Fatal(err)
	}
	ft := f.Texture(tex.(*texture).obj)
	if ft.Target != gl.TEXTURE_CUBE_MAP {
		t.Errorf("target = %#x", ft.Target)
	}
	for face := 0; face < 6; face++ {
		target := gl.Enum(gl.TEXTURE_CUBE_MAP_POSITIVE_X + face)
		if l := ft.Levels[target][0]; l == nil || l.Width != 8 {
			t.Errorf("face %d = %+v", face, l)
		}
	}
	if err := tex.Upload(0, 5, image.Rect(0, 0, 8, 8), solid(8, 8, [4]byte{})); err != nil {
		t.Errorf("upload to the last face: %v", err)
	}
	desc.Height = 4
	if _, err := b.NewTexture(desc); err == nil {
		t.Error("created a non-square cube map")
	}
}

func TestTextureValidation(t *testing.T) {
	b, _ := newTestDevice(t, glfake.ES2())
	base := hal.TextureDesc{
		Width:     4,
		Height:    4,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
	}
	tests := []struct {
		name   string
		modify func(d *hal.TextureDesc)
	}{
		{"empty", func(d *hal.TextureDesc) { d.Width = 0 }},
		{"3d", func(d *hal.TextureDesc) { d.Dimension = gputypes.TextureViewDimension3D }},
		{"levels", func(d *hal.TextureDesc) { d.MipLevels = 4 }},
		{"images", func(d *hal.TextureDesc) { d.Data = make([][]byte, 2) }},
		{"short image", func(d *hal.TextureDesc) { d.Data = [][]byte{make([]byte, 15)} }},
		// Float textures need OES_texture_float.
		{"format", func(d *hal.TextureDesc) { d.Format = gputypes.TextureFormatRGBA32Float }},
	}
	for _, test := range tests {
		d := base
		test.modify(&d)
		if _, err := b.NewTexture(d); err == nil {
			t.Errorf("%s: texture created", test.name)
		}
	}
	if _, err := b.NewTexture(hal.TextureDesc{
		Width:     4,
		Height:    4,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Sampler:   hal.SamplerDesc{Compare: gputypes.CompareFunctionLess},
	}); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("comparison sampler: %v", err)
	}
}

func TestTextureUpload(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	tex, err := b.NewTexture(hal.TextureDesc{
		Width:     4,
		Height:    4,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		MipLevels: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	pix := solid(2, 2, [4]byte{255, 0, 0, 255})
	mark := f.Mark()
	if err := tex.Upload(1, 0, image.Rect(0, 0, 2, 2), pix); err != nil {
		t.Fatal(err)
	}
	want := glfake.Call{Name: "TexSubImage2D", Args: []interface{}{
		gl.Enum(gl.TEXTURE_2D), 1, 0, 0, 2, 2, gl.Enum(gl.RGBA), gl.Enum(gl.UNSIGNED_BYTE),
	}}
	found := false
	for _, c := range f.Since(mark) {
		if reflect.DeepEqual(c, want) {
			found = true
		}
	}
	if !found {
		t.Errorf("no %v in %v", want, f.Since(mark))
	}

	bad := []struct {
		name        string
		level, face int
		rect        image.Rectangle
		pixels      []byte
	}{
		{"level", 3, 0, image.Rect(0, 0, 1, 1), pix},
		{"face", 0, 1, image.Rect(0, 0, 1, 1), pix},
		{"outside", 1, 0, image.Rect(1, 1, 3, 3), pix},
		{"empty", 0, 0, image.Rectangle{}, pix},
		{"short", 0, 0, image.Rect(0, 0, 4, 4), pix},
	}
	for _, test := range bad {
		if err := tex.Upload(test.level, test.face, test.rect, test.pixels); err == nil {
			t.Errorf("%s: upload accepted", test.name)
		}
	}
	tex.Release()
	if err := tex.Upload(0, 0, image.Rect(0, 0, 1, 1), pix); errors.Cause(err) != hal.ErrStaleHandle {
		t.Errorf("upload after release: %v", err)
	}
}

func TestTextureCompressedUpload(t *testing.T) {
	b, _ := newTestDevice(t, glfake.ES2())
	tex, err := b.NewTexture(hal.TextureDesc{
		Width:     8,
		Height:    8,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatBC1RGBAUnorm,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tex.Upload(0, 0, image.Rect(0, 0, 8, 8), make([]byte, 32)); err != nil {
		t.Errorf("full compressed upload: %v", err)
	}
	if err := tex.Upload(0, 0, image.Rect(0, 0, 4, 4), make([]byte, 8)); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("partial compressed upload: %v", err)
	}
}

func TestTextureGenerateMipmap(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	tex, err := b.NewTexture(hal.TextureDesc{
		Width:           4,
		Height:          4,
		Dimension:       gputypes.TextureViewDimension2D,
		Format:          gputypes.TextureFormatRGBA8Unorm,
		MipLevels:       3,
		GenerateMipmaps: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	ft := f.Texture(tex.(*texture).obj)
	if ft.Mipmaps != 1 {
		t.Errorf("%d GenerateMipmap calls at creation, want 1", ft.Mipmaps)
	}
	ctx.GenerateMipmap(tex)
	if ft.Mipmaps != 2 {
		t.Errorf("%d GenerateMipmap calls, want 2", ft.Mipmaps)
	}
	if tex.(*texture).basePix != nil {
		t.Error("base level copy kept with driver mipmaps")
	}

	// Single level textures have nothing to generate.
	one, err := b.NewTexture(hal.TextureDesc{
		Width:     4,
		Height:    4,
		Dimension: gputypes.TextureViewDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx.GenerateMipmap(one)
	if n := f.Texture(one.(*texture).obj).Mipmaps; n != 0 {
		t.Errorf("%d GenerateMipmap calls for a single level", n)
	}
}

func TestTextureCPUMipmaps(t *testing.T) {
	p := glfake.Desktop21()
	p.Extensions = nil
	b, f := newTestDevice(t, p)
	ctx := newTestContext(t, b, f)
	magenta := [4]byte{255, 0, 255, 255}
	tex, err := b.NewTexture(hal.TextureDesc{
		Width:           4,
		Height:          4,
		Dimension:       gputypes.TextureViewDimension2D,
		Format:          gputypes.TextureFormatRGBA8Unorm,
		MipLevels:       3,
		Data:            [][]byte{solid(4, 4, magenta)},
		GenerateMipmaps: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	ft := f.Texture(tex.(*texture).obj)
	if ft.Mipmaps != 0 {
		t.Errorf("GenerateMipmap called on a driver without it")
	}
	l1 := ft.Levels[gl.TEXTURE_2D][1]
	if l1 == nil || l1.Width != 2 || l1.Height != 2 {
		t.Fatalf("level 1 = %+v", l1)
	}
	if !bytes.Equal(l1.Data, solid(2, 2, magenta)) {
		t.Errorf("level 1 pixels = %v", l1.Data)
	}
	if l2 := ft.Levels[gl.TEXTURE_2D][2]; l2 == nil || !bytes.Equal(l2.Data, magenta[:]) {
		t.Errorf("level 2 = %+v", l2)
	}

	// Uploads to the base level feed the next generation.
	white := [4]byte{255, 255, 255, 255}
	if err := tex.Upload(0, 0, image.Rect(0, 0, 4, 4), solid(4, 4, white)); err != nil {
		t.Fatal(err)
	}
	ctx.GenerateMipmap(tex)
	if l1 := ft.Levels[gl.TEXTURE_2D][1]; !bytes.Equal(l1.Data, solid(2, 2, white)) {
		t.Errorf("regenerated level 1 pixels = %v", l1.Data)
	}
}

func TestTextureHelpers(t *testing.T) {
	for _, test := range []struct {
		row, align int
	}{
		{16, 8}, {12, 4}, {6, 2}, {3, 1},
	} {
		if got := unpackAlignment(test.row); got != test.align {
			t.Errorf("unpackAlignment(%d) = %d, want %d", test.row, got, test.align)
		}
	}
	if got := maxLevels(5, 17); got != 5 {
		t.Errorf("maxLevels(5, 17) = %d, want 5", got)
	}
	if got := mipSize(5, 3); got != 1 {
		t.Errorf("mipSize(5, 3) = %d, want 1", got)
	}
}
