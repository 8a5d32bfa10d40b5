// SPDX-License-Identifier: Unlicense OR MIT

// Package format translates the abstract hal enumerations into the
// enumerations of OpenGL 2.1 and OpenGL ES 2.0 drivers.
//
// Every table is total over its abstract enumeration. Values without
// a native counterpart map to Invalid and are reported through the
// shared logger; they are never replaced by a similar format.
package format

import (
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/internal/gl"
	"gioui.org/glhal/internal/logging"
)

// Invalid is returned for abstract values with no native mapping.
const Invalid gl.Enum = gl.INVALID_ENUM

// Feature is a set of optional driver features, detected from the
// driver version and extension string.
type Feature uint64

const (
	FeatureBGRA Feature = 1 << iota
	FeatureSRGB
	FeatureFramebufferSRGB
	FeatureHalfFloatTexture
	FeatureFloatTexture
	FeatureColorBufferHalfFloat
	FeatureColorBufferFloat
	FeatureRGB10A2
	FeaturePackedFloat
	FeatureDepthTexture
	FeatureDepth24
	FeatureDepth32
	FeatureDepthFloat
	FeaturePackedDepthStencil
	FeatureStencil8
	FeatureRGBA8Renderbuffer
	FeatureDXT1
	FeatureS3TC
	FeatureS3TCSRGB
	FeatureRGTC
	FeatureBPTC
	FeatureETC2
	FeatureASTC
	FeatureVertexHalfFloat
	FeatureVertex1010102
	FeatureElementIndexUint
	FeatureBlendMinMax
	FeatureAnisotropy
	FeatureFramebufferBlit
	FeatureGenerateMipmap
	FeatureDebug
)

// Has reports whether all of the features in req are in f.
func (f Feature) Has(req Feature) bool {
	return f&req == req
}

var featureNames = [...]string{
	"bgra", "srgb", "framebuffer-srgb", "half-float-texture", "float-texture",
	"color-buffer-half-float", "color-buffer-float", "rgb10a2", "packed-float",
	"depth-texture", "depth24", "depth32", "depth-float", "packed-depth-stencil",
	"stencil8", "rgba8-renderbuffer", "dxt1", "s3tc", "s3tc-srgb", "rgtc", "bptc",
	"etc2", "astc", "vertex-half-float", "vertex-1010102", "element-index-uint",
	"blend-minmax", "anisotropy", "framebuffer-blit", "generate-mipmap", "debug",
}

// Names returns the names of the features in f, lowest bit first.
func (f Feature) Names() []string {
	var names []string
	for i, n := range featureNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, n)
		}
	}
	return names
}

// Triple holds the arguments of a TexImage2D call.
type Triple struct {
	Internal gl.Enum
	Format   gl.Enum
	Type     gl.Enum
}

// InvalidTriple is returned for unsupported texture formats.
var InvalidTriple = Triple{Invalid, Invalid, Invalid}

// Valid reports whether t names a native format.
func (t Triple) Valid() bool {
	return t.Internal != 0 && t.Internal != Invalid
}

func unsupported(table string, value interface{}, why string) {
	logging.For("format").WithFields(logrus.Fields{
		"table": table,
		"value": value,
	}).Warn(why)
}
