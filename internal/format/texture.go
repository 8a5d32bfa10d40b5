// SPDX-License-Identifier: Unlicense OR MIT

package format

import (
	"github.com/gogpu/gputypes"

	"gioui.org/glhal/internal/gl"
)

// Kind classifies a texture format.
type Kind uint8

const (
	KindColor Kind = iota + 1
	KindDepth
	KindStencil
	KindDepthStencil
	KindCompressed
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindDepth:
		return "depth"
	case KindStencil:
		return "stencil"
	case KindDepthStencil:
		return "depth-stencil"
	case KindCompressed:
		return "compressed"
	default:
		return "undefined"
	}
}

type flags uint8

const (
	flagNormalized flags = 1 << iota
	flagFloat
	flagSRGB
	flagInteger
)

// textureInfo describes one abstract texture format. A zero es or
// desktop triple means the format has no native counterpart on that
// driver family.
type textureInfo struct {
	kind    Kind
	flags   flags
	es      Triple
	desktop Triple
	require Feature
	// bytes per pixel, or per block for compressed formats.
	bytes int
	block [2]int
}

const lastTextureFormat = gputypes.TextureFormatASTC12x12UnormSrgb

func color(fl flags, bytes int, req Feature, es, desktop Triple) textureInfo {
	return textureInfo{kind: KindColor, flags: fl, es: es, desktop: desktop, require: req, bytes: bytes, block: [2]int{1, 1}}
}

func noColor(fl flags, bytes int) textureInfo {
	return textureInfo{kind: KindColor, flags: fl, bytes: bytes, block: [2]int{1, 1}}
}

func depth(k Kind, bytes int, req Feature, es, desktop Triple) textureInfo {
	return textureInfo{kind: k, es: es, desktop: desktop, require: req, bytes: bytes, block: [2]int{1, 1}}
}

func compressed(internal gl.Enum, fl flags, req Feature, bytes, bw, bh int) textureInfo {
	t := Triple{Internal: internal}
	return textureInfo{kind: KindCompressed, flags: fl | flagNormalized, es: t, desktop: t, require: req, bytes: bytes, block: [2]int{bw, bh}}
}

func astc(i int, srgb bool, bw, bh int) textureInfo {
	if srgb {
		return compressed(gl.COMPRESSED_SRGB8_ALPHA8_ASTC_4x4_KHR+gl.Enum(i), flagSRGB, FeatureASTC, 16, bw, bh)
	}
	return compressed(gl.COMPRESSED_RGBA_ASTC_4x4_KHR+gl.Enum(i), 0, FeatureASTC, 16, bw, bh)
}

var textureTable = [lastTextureFormat + 1]textureInfo{
	gputypes.TextureFormatUndefined: {},

	gputypes.TextureFormatR8Unorm: color(flagNormalized, 1, 0,
		Triple{gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE},
		Triple{gl.LUMINANCE8, gl.LUMINANCE, gl.UNSIGNED_BYTE}),
	gputypes.TextureFormatR8Snorm: noColor(flagNormalized, 1),
	gputypes.TextureFormatR8Uint:  noColor(flagInteger, 1),
	gputypes.TextureFormatR8Sint:  noColor(flagInteger, 1),

	gputypes.TextureFormatR16Unorm: color(flagNormalized, 2, 0,
		Triple{},
		Triple{gl.LUMINANCE16, gl.LUMINANCE, gl.UNSIGNED_SHORT}),
	gputypes.TextureFormatR16Snorm: noColor(flagNormalized, 2),
	gputypes.TextureFormatR16Uint:  noColor(flagInteger, 2),
	gputypes.TextureFormatR16Sint:  noColor(flagInteger, 2),
	gputypes.TextureFormatR16Float: color(flagFloat, 2, FeatureHalfFloatTexture,
		Triple{gl.LUMINANCE, gl.LUMINANCE, gl.HALF_FLOAT_OES},
		Triple{gl.LUMINANCE16F_ARB, gl.LUMINANCE, gl.HALF_FLOAT}),
	gputypes.TextureFormatRG8Unorm: color(flagNormalized, 2, 0,
		Triple{gl.LUMINANCE_ALPHA, gl.LUMINANCE_ALPHA, gl.UNSIGNED_BYTE},
		Triple{gl.LUMINANCE8_ALPHA8, gl.LUMINANCE_ALPHA, gl.UNSIGNED_BYTE}),
	gputypes.TextureFormatRG8Snorm: noColor(flagNormalized, 2),
	gputypes.TextureFormatRG8Uint:  noColor(flagInteger, 2),
	gputypes.TextureFormatRG8Sint:  noColor(flagInteger, 2),

	gputypes.TextureFormatR32Float: color(flagFloat, 4, FeatureFloatTexture,
		Triple{gl.LUMINANCE, gl.LUMINANCE, gl.FLOAT},
		Triple{gl.LUMINANCE32F_ARB, gl.LUMINANCE, gl.FLOAT}),
	gputypes.TextureFormatR32Uint: noColor(flagInteger, 4),
	gputypes.TextureFormatR32Sint: noColor(flagInteger, 4),
	gputypes.TextureFormatRG16Unorm: color(flagNormalized, 4, 0,
		Triple{},
		Triple{gl.LUMINANCE16_ALPHA16, gl.LUMINANCE_ALPHA, gl.UNSIGNED_SHORT}),
	gputypes.TextureFormatRG16Snorm: noColor(flagNormalized, 4),
	gputypes.TextureFormatRG16Uint:  noColor(flagInteger, 4),
	gputypes.TextureFormatRG16Sint:  noColor(flagInteger, 4),
	gputypes.TextureFormatRG16Float: color(flagFloat, 4, FeatureHalfFloatTexture,
		Triple{gl.LUMINANCE_ALPHA, gl.LUMINANCE_ALPHA, gl.HALF_FLOAT_OES},
		Triple{gl.LUMINANCE_ALPHA16F_ARB, gl.LUMINANCE_ALPHA, gl.HALF_FLOAT}),
	gputypes.TextureFormatRGBA8Unorm: color(flagNormalized, 4, 0,
		Triple{gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE},
		Triple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}),
	gputypes.TextureFormatRGBA8UnormSrgb: color(flagNormalized|flagSRGB, 4, FeatureSRGB,
		Triple{gl.SRGB_ALPHA_EXT, gl.SRGB_ALPHA_EXT, gl.UNSIGNED_BYTE},
		Triple{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE}),
	gputypes.TextureFormatRGBA8Snorm: noColor(flagNormalized, 4),
	gputypes.TextureFormatRGBA8Uint:  noColor(flagInteger, 4),
	gputypes.TextureFormatRGBA8Sint:  noColor(flagInteger, 4),
	gputypes.TextureFormatBGRA8Unorm: color(flagNormalized, 4, FeatureBGRA,
		Triple{gl.BGRA_EXT, gl.BGRA_EXT, gl.UNSIGNED_BYTE},
		Triple{gl.RGBA8, gl.BGRA_EXT, gl.UNSIGNED_BYTE}),
	gputypes.TextureFormatBGRA8UnormSrgb: color(flagNormalized|flagSRGB, 4, FeatureBGRA|FeatureSRGB,
		Triple{},
		Triple{gl.SRGB8_ALPHA8, gl.BGRA_EXT, gl.UNSIGNED_BYTE}),

	gputypes.TextureFormatRGB10A2Uint: noColor(flagInteger, 4),
	gputypes.TextureFormatRGB10A2Unorm: color(flagNormalized, 4, FeatureRGB10A2,
		Triple{gl.RGBA, gl.RGBA, gl.UNSIGNED_INT_2_10_10_10_REV},
		Triple{gl.RGB10_A2, gl.RGBA, gl.UNSIGNED_INT_2_10_10_10_REV}),
	gputypes.TextureFormatRG11B10Ufloat: color(flagFloat, 4, FeaturePackedFloat,
		Triple{gl.RGB, gl.RGB, gl.UNSIGNED_INT_10F_11F_11F_REV},
		Triple{gl.R11F_G11F_B10F, gl.RGB, gl.UNSIGNED_INT_10F_11F_11F_REV}),
	gputypes.TextureFormatRGB9E5Ufloat: color(flagFloat, 4, FeaturePackedFloat,
		Triple{gl.RGB, gl.RGB, gl.UNSIGNED_INT_5_9_9_9_REV},
		Triple{gl.RGB9_E5, gl.RGB, gl.UNSIGNED_INT_5_9_9_9_REV}),

	gputypes.TextureFormatRG32Float: color(flagFloat, 8, FeatureFloatTexture,
		Triple{gl.LUMINANCE_ALPHA, gl.LUMINANCE_ALPHA, gl.FLOAT},
		Triple{gl.LUMINANCE_ALPHA32F_ARB, gl.LUMINANCE_ALPHA, gl.FLOAT}),
	gputypes.TextureFormatRG32Uint: noColor(flagInteger, 8),
	gputypes.TextureFormatRG32Sint: noColor(flagInteger, 8),
	gputypes.TextureFormatRGBA16Unorm: color(flagNormalized, 8, 0,
		Triple{},
		Triple{gl.RGBA16, gl.RGBA, gl.UNSIGNED_SHORT}),
	gputypes.TextureFormatRGBA16Snorm: noColor(flagNormalized, 8),
	gputypes.TextureFormatRGBA16Uint:  noColor(flagInteger, 8),
	gputypes.TextureFormatRGBA16Sint:  noColor(flagInteger, 8),
	gputypes.TextureFormatRGBA16Float: color(flagFloat, 8, FeatureHalfFloatTexture,
		Triple{gl.RGBA, gl.RGBA, gl.HALF_FLOAT_OES},
		Triple{gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT}),

	gputypes.TextureFormatRGBA32Float: color(flagFloat, 16, FeatureFloatTexture,
		Triple{gl.RGBA, gl.RGBA, gl.FLOAT},
		Triple{gl.RGBA32F, gl.RGBA, gl.FLOAT}),
	gputypes.TextureFormatRGBA32Uint: noColor(flagInteger, 16),
	gputypes.TextureFormatRGBA32Sint: noColor(flagInteger, 16),

	gputypes.TextureFormatStencil8: depth(KindStencil, 1, FeatureStencil8,
		Triple{gl.STENCIL_INDEX, gl.STENCIL_INDEX, gl.UNSIGNED_BYTE},
		Triple{}),
	gputypes.TextureFormatDepth16Unorm: depth(KindDepth, 2, FeatureDepthTexture,
		Triple{gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT},
		Triple{gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT}),
	gputypes.TextureFormatDepth24Plus: depth(KindDepth, 4, FeatureDepthTexture,
		Triple{gl.DEPTH_COMPONENT, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT},
		Triple{gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT}),
	gputypes.TextureFormatDepth24PlusStencil8: depth(KindDepthStencil, 4, FeatureDepthTexture|FeaturePackedDepthStencil,
		Triple{gl.DEPTH_STENCIL, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
		Triple{gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8}),
	gputypes.TextureFormatDepth32Float: depth(KindDepth, 4, FeatureDepthFloat,
		Triple{},
		Triple{gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT}),
	gputypes.TextureFormatDepth32FloatStencil8: depth(KindDepthStencil, 8, FeatureDepthFloat,
		Triple{},
		Triple{gl.DEPTH32F_STENCIL8, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV}),

	gputypes.TextureFormatBC1RGBAUnorm:     compressed(gl.COMPRESSED_RGBA_S3TC_DXT1_EXT, 0, FeatureDXT1, 8, 4, 4),
	gputypes.TextureFormatBC1RGBAUnormSrgb: compressed(gl.COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT, flagSRGB, FeatureS3TCSRGB, 8, 4, 4),
	gputypes.TextureFormatBC2RGBAUnorm:     compressed(gl.COMPRESSED_RGBA_S3TC_DXT3_EXT, 0, FeatureS3TC, 16, 4, 4),
	gputypes.TextureFormatBC2RGBAUnormSrgb: compressed(gl.COMPRESSED_SRGB_ALPHA_S3TC_DXT3_EXT, flagSRGB, FeatureS3TCSRGB, 16, 4, 4),
	gputypes.TextureFormatBC3RGBAUnorm:     compressed(gl.COMPRESSED_RGBA_S3TC_DXT5_EXT, 0, FeatureS3TC, 16, 4, 4),
	gputypes.TextureFormatBC3RGBAUnormSrgb: compressed(gl.COMPRESSED_SRGB_ALPHA_S3TC_DXT5_EXT, flagSRGB, FeatureS3TCSRGB, 16, 4, 4),
	gputypes.TextureFormatBC4RUnorm:        compressed(gl.COMPRESSED_RED_RGTC1, 0, FeatureRGTC, 8, 4, 4),
	gputypes.TextureFormatBC4RSnorm:        compressed(gl.COMPRESSED_SIGNED_RED_RGTC1, 0, FeatureRGTC, 8, 4, 4),
	gputypes.TextureFormatBC5RGUnorm:       compressed(gl.COMPRESSED_RG_RGTC2, 0, FeatureRGTC, 16, 4, 4),
	gputypes.TextureFormatBC5RGSnorm:       compressed(gl.COMPRESSED_SIGNED_RG_RGTC2, 0, FeatureRGTC, 16, 4, 4),
	gputypes.TextureFormatBC6HRGBUfloat:    compressed(gl.COMPRESSED_RGB_BPTC_UNSIGNED_FLOAT, flagFloat, FeatureBPTC, 16, 4, 4),
	gputypes.TextureFormatBC6HRGBFloat:     compressed(gl.COMPRESSED_RGB_BPTC_SIGNED_FLOAT, flagFloat, FeatureBPTC, 16, 4, 4),
	gputypes.TextureFormatBC7RGBAUnorm:     compressed(gl.COMPRESSED_RGBA_BPTC_UNORM, 0, FeatureBPTC, 16, 4, 4),
	gputypes.TextureFormatBC7RGBAUnormSrgb: compressed(gl.COMPRESSED_SRGB_ALPHA_BPTC_UNORM, flagSRGB, FeatureBPTC, 16, 4, 4),

	gputypes.TextureFormatETC2RGB8Unorm:       compressed(gl.COMPRESSED_RGB8_ETC2, 0, FeatureETC2, 8, 4, 4),
	gputypes.TextureFormatETC2RGB8UnormSrgb:   compressed(gl.COMPRESSED_SRGB8_ETC2, flagSRGB, FeatureETC2, 8, 4, 4),
	gputypes.TextureFormatETC2RGB8A1Unorm:     compressed(gl.COMPRESSED_RGB8_PUNCHTHROUGH_ALPHA1_ETC2, 0, FeatureETC2, 8, 4, 4),
	gputypes.TextureFormatETC2RGB8A1UnormSrgb: compressed(gl.COMPRESSED_SRGB8_PUNCHTHROUGH_ALPHA1_ETC2, flagSRGB, FeatureETC2, 8, 4, 4),
	gputypes.TextureFormatETC2RGBA8Unorm:      compressed(gl.COMPRESSED_RGBA8_ETC2_EAC, 0, FeatureETC2, 16, 4, 4),
	gputypes.TextureFormatETC2RGBA8UnormSrgb:  compressed(gl.COMPRESSED_SRGB8_ALPHA8_ETC2_EAC, flagSRGB, FeatureETC2, 16, 4, 4),
	gputypes.TextureFormatEACR11Unorm:         compressed(gl.COMPRESSED_R11_EAC, 0, FeatureETC2, 8, 4, 4),
	gputypes.TextureFormatEACR11Snorm:         compressed(gl.COMPRESSED_SIGNED_R11_EAC, 0, FeatureETC2, 8, 4, 4),
	gputypes.TextureFormatEACRG11Unorm:        compressed(gl.COMPRESSED_RG11_EAC, 0, FeatureETC2, 16, 4, 4),
	gputypes.TextureFormatEACRG11Snorm:        compressed(gl.COMPRESSED_SIGNED_RG11_EAC, 0, FeatureETC2, 16, 4, 4),

	gputypes.TextureFormatASTC4x4Unorm:       astc(0, false, 4, 4),
	gputypes.TextureFormatASTC4x4UnormSrgb:   astc(0, true, 4, 4),
	gputypes.TextureFormatASTC5x4Unorm:       astc(1, false, 5, 4),
	gputypes.TextureFormatASTC5x4UnormSrgb:   astc(1, true, 5, 4),
	gputypes.TextureFormatASTC5x5Unorm:       astc(2, false, 5, 5),
	gputypes.TextureFormatASTC5x5UnormSrgb:   astc(2, true, 5, 5),
	gputypes.TextureFormatASTC6x5Unorm:       astc(3, false, 6, 5),
	gputypes.TextureFormatASTC6x5UnormSrgb:   astc(3, true, 6, 5),
	gputypes.TextureFormatASTC6x6Unorm:       astc(4, false, 6, 6),
	gputypes.TextureFormatASTC6x6UnormSrgb:   astc(4, true, 6, 6),
	gputypes.TextureFormatASTC8x5Unorm:       astc(5, false, 8, 5),
	gputypes.TextureFormatASTC8x5UnormSrgb:   astc(5, true, 8, 5),
	gputypes.TextureFormatASTC8x6Unorm:       astc(6, false, 8, 6),
	gputypes.TextureFormatASTC8x6UnormSrgb:   astc(6, true, 8, 6),
	gputypes.TextureFormatASTC8x8Unorm:       astc(7, false, 8, 8),
	gputypes.TextureFormatASTC8x8UnormSrgb:   astc(7, true, 8, 8),
	gputypes.TextureFormatASTC10x5Unorm:      astc(8, false, 10, 5),
	gputypes.TextureFormatASTC10x5UnormSrgb:  astc(8, true, 10, 5),
	gputypes.TextureFormatASTC10x6Unorm:      astc(9, false, 10, 6),
	gputypes.TextureFormatASTC10x6UnormSrgb:  astc(9, true, 10, 6),
	gputypes.TextureFormatASTC10x8Unorm:      astc(10, false, 10, 8),
	gputypes.TextureFormatASTC10x8UnormSrgb:  astc(10, true, 10, 8),
	gputypes.TextureFormatASTC10x10Unorm:     astc(11, false, 10, 10),
	gputypes.TextureFormatASTC10x10UnormSrgb: astc(11, true, 10, 10),
	gputypes.TextureFormatASTC12x10Unorm:     astc(12, false, 12, 10),
	gputypes.TextureFormatASTC12x10UnormSrgb: astc(12, true, 12, 10),
	gputypes.TextureFormatASTC12x12Unorm:     astc(13, false, 12, 12),
	gputypes.TextureFormatASTC12x12UnormSrgb: astc(13, true, 12, 12),
}

func textureEntry(f gputypes.TextureFormat) (textureInfo, bool) {
	if f == gputypes.TextureFormatUndefined || f > lastTextureFormat {
		return textureInfo{}, false
	}
	return textureTable[f], true
}

// TextureFormats returns every defined abstract texture format.
func TextureFormats() []gputypes.TextureFormat {
	fs := make([]gputypes.TextureFormat, 0, lastTextureFormat)
	for f := gputypes.TextureFormatR8Unorm; f <= lastTextureFormat; f++ {
		fs = append(fs, f)
	}
	return fs
}

// TextureTriple maps f to the TexImage2D arguments for an ES
// (gles) or desktop driver. Unmapped formats return InvalidTriple.
// Compressed formats have zero Format and Type.
func TextureTriple(f gputypes.TextureFormat, gles bool) Triple {
	e, ok := textureEntry(f)
	if !ok {
		unsupported("texture", f, "undefined texture format")
		return InvalidTriple
	}
	t := e.desktop
	if gles {
		t = e.es
	}
	if t.Internal == 0 {
		unsupported("texture", f, "no native texture format")
		return InvalidTriple
	}
	return t
}

// TextureRequires returns the driver features needed to sample f.
func TextureRequires(f gputypes.TextureFormat) Feature {
	e, _ := textureEntry(f)
	return e.require
}

// TextureSupported reports whether f has a native mapping under the
// driver family and feature set, without logging.
func TextureSupported(f gputypes.TextureFormat, gles bool, feats Feature) bool {
	e, ok := textureEntry(f)
	if !ok {
		return false
	}
	t := e.desktop
	if gles {
		t = e.es
	}
	return t.Internal != 0 && feats.Has(e.require)
}

// TextureKind classifies f. Undefined formats return 0.
func TextureKind(f gputypes.TextureFormat) Kind {
	e, _ := textureEntry(f)
	return e.kind
}

func IsNormalized(f gputypes.TextureFormat) bool {
	e, _ := textureEntry(f)
	return e.flags&flagNormalized != 0
}

func IsFloat(f gputypes.TextureFormat) bool {
	e, _ := textureEntry(f)
	return e.flags&flagFloat != 0
}

func IsSRGB(f gputypes.TextureFormat) bool {
	e, _ := textureEntry(f)
	return e.flags&flagSRGB != 0
}

func IsDepth(f gputypes.TextureFormat) bool {
	k := TextureKind(f)
	return k == KindDepth || k == KindDepthStencil
}

func IsStencil(f gputypes.TextureFormat) bool {
	k := TextureKind(f)
	return k == KindStencil || k == KindDepthStencil
}

func IsCompressed(f gputypes.TextureFormat) bool {
	return TextureKind(f) == KindCompressed
}

// PixelSize returns the size in bytes of one pixel, or of one block
// for compressed formats.
func PixelSize(f gputypes.TextureFormat) int {
	e, _ := textureEntry(f)
	return e.bytes
}

// BlockSize returns the block dimensions of f; 1x1 for uncompressed
// formats.
func BlockSize(f gputypes.TextureFormat) (int, int) {
	e, _ := textureEntry(f)
	return e.block[0], e.block[1]
}

// ImageSize returns the byte size of a width by height image in f.
func ImageSize(f gputypes.TextureFormat, width, height int) int {
	bw, bh := BlockSize(f)
	if bw == 0 {
		return 0
	}
	return ((width + bw - 1) / bw) * ((height + bh - 1) / bh) * PixelSize(f)
}

// RenderbufferFormat maps f to a renderbuffer storage format and the
// features it requires.
func RenderbufferFormat(f gputypes.TextureFormat, gles bool) (gl.Enum, Feature) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		if gles {
			return gl.RGBA8, FeatureRGBA8Renderbuffer
		}
		return gl.RGBA8, 0
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return gl.SRGB8_ALPHA8, FeatureSRGB
	case gputypes.TextureFormatRGBA16Float:
		return gl.RGBA16F, FeatureColorBufferHalfFloat
	case gputypes.TextureFormatRGBA32Float:
		return gl.RGBA32F, FeatureColorBufferFloat
	case gputypes.TextureFormatStencil8:
		return gl.STENCIL_INDEX8, 0
	case gputypes.TextureFormatDepth16Unorm:
		return gl.DEPTH_COMPONENT16, 0
	case gputypes.TextureFormatDepth24Plus:
		if gles {
			return gl.DEPTH_COMPONENT24, FeatureDepth24
		}
		return gl.DEPTH_COMPONENT24, 0
	case gputypes.TextureFormatDepth24PlusStencil8:
		return gl.DEPTH24_STENCIL8, FeaturePackedDepthStencil
	case gputypes.TextureFormatDepth32Float:
		if gles {
			break
		}
		return gl.DEPTH_COMPONENT32F, FeatureDepthFloat
	}
	unsupported("renderbuffer", f, "no renderbuffer storage format")
	return Invalid, 0
}
