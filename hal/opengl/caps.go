// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

// extensionFeatures lists the extensions the backend knows about and
// the features they provide. Other extensions are ignored.
var extensionFeatures = map[string]format.Feature{
	"GL_EXT_texture_format_BGRA8888":        format.FeatureBGRA,
	"GL_APPLE_texture_format_BGRA8888":      format.FeatureBGRA,
	"GL_EXT_bgra":                           format.FeatureBGRA,
	"GL_EXT_sRGB":                           format.FeatureSRGB,
	"GL_EXT_texture_sRGB":                   format.FeatureSRGB | format.FeatureS3TCSRGB,
	"GL_EXT_sRGB_write_control":             format.FeatureFramebufferSRGB,
	"GL_ARB_framebuffer_sRGB":               format.FeatureFramebufferSRGB,
	"GL_EXT_framebuffer_sRGB":               format.FeatureFramebufferSRGB,
	"GL_OES_texture_half_float":             format.FeatureHalfFloatTexture,
	"GL_ARB_half_float_pixel":               format.FeatureHalfFloatTexture,
	"GL_OES_texture_float":                  format.FeatureFloatTexture,
	"GL_ARB_texture_float":                  format.FeatureFloatTexture | format.FeatureHalfFloatTexture,
	"GL_EXT_color_buffer_half_float":        format.FeatureColorBufferHalfFloat,
	"GL_EXT_color_buffer_float":             format.FeatureColorBufferFloat | format.FeatureColorBufferHalfFloat,
	"GL_ARB_color_buffer_float":             format.FeatureColorBufferFloat | format.FeatureColorBufferHalfFloat,
	"GL_EXT_texture_type_2_10_10_10_REV":    format.FeatureRGB10A2,
	"GL_EXT_packed_float":                   format.FeaturePackedFloat,
	"GL_APPLE_texture_packed_float":         format.FeaturePackedFloat,
	"GL_EXT_texture_shared_exponent":        format.FeaturePackedFloat,
	"GL_OES_depth_texture":                  format.FeatureDepthTexture,
	"GL_ANGLE_depth_texture":                format.FeatureDepthTexture | format.FeaturePackedDepthStencil,
	"GL_OES_depth24":                        format.FeatureDepth24,
	"GL_OES_depth32":                        format.FeatureDepth32,
	"GL_ARB_depth_buffer_float":             format.FeatureDepthFloat,
	"GL_OES_packed_depth_stencil":           format.FeaturePackedDepthStencil,
	"GL_EXT_packed_depth_stencil":           format.FeaturePackedDepthStencil,
	"GL_OES_texture_stencil8":               format.FeatureStencil8,
	"GL_OES_rgb8_rgba8":                     format.FeatureRGBA8Renderbuffer,
	"GL_ARM_rgba8":                          format.FeatureRGBA8Renderbuffer,
	"GL_EXT_texture_compression_dxt1":       format.FeatureDXT1,
	"GL_EXT_texture_compression_s3tc":       format.FeatureDXT1 | format.FeatureS3TC,
	"GL_EXT_texture_compression_s3tc_srgb":  format.FeatureS3TCSRGB,
	"GL_EXT_texture_compression_rgtc":       format.FeatureRGTC,
	"GL_ARB_texture_compression_rgtc":       format.FeatureRGTC,
	"GL_EXT_texture_compression_bptc":       format.FeatureBPTC,
	"GL_ARB_texture_compression_bptc":       format.FeatureBPTC,
	"GL_OES_compressed_ETC2_RGB8_texture":   format.FeatureETC2,
	"GL_ARB_ES3_compatibility":              format.FeatureETC2,
	"GL_KHR_texture_compression_astc_ldr":   format.FeatureASTC,
	"GL_OES_vertex_half_float":              format.FeatureVertexHalfFloat,
	"GL_ARB_half_float_vertex":              format.FeatureVertexHalfFloat,
	"GL_ARB_vertex_type_2_10_10_10_rev":     format.FeatureVertex1010102,
	"GL_OES_element_index_uint":             format.FeatureElementIndexUint,
	"GL_EXT_blend_minmax":                   format.FeatureBlendMinMax,
	"GL_EXT_texture_filter_anisotropic":     format.FeatureAnisotropy,
	"GL_ARB_texture_filter_anisotropic":     format.FeatureAnisotropy,
	"GL_EXT_framebuffer_blit":               format.FeatureFramebufferBlit,
	"GL_ANGLE_framebuffer_blit":             format.FeatureFramebufferBlit,
	"GL_NV_framebuffer_blit":                format.FeatureFramebufferBlit,
	"GL_ARB_framebuffer_object":             format.FeatureFramebufferBlit | format.FeatureGenerateMipmap | format.FeaturePackedDepthStencil,
	"GL_EXT_framebuffer_object":             format.FeatureGenerateMipmap,
	"GL_KHR_debug":                          format.FeatureDebug,
	"GL_EXT_texture_compression_s3tc_dxt1":  format.FeatureDXT1,
	"GL_WEBGL_compressed_texture_s3tc":      format.FeatureDXT1 | format.FeatureS3TC,
	"GL_WEBGL_compressed_texture_s3tc_srgb": format.FeatureS3TCSRGB,
	"GL_ANGLE_texture_compression_dxt5":     format.FeatureS3TC,
}

// framebufferExtensions make framebuffer objects available on desktop
// drivers older than 3.0.
var framebufferExtensions = []string{"GL_ARB_framebuffer_object", "GL_EXT_framebuffer_object"}

// baseFeatures returns the features that are core in the driver
// version.
func baseFeatures(ver [2]int, gles bool) format.Feature {
	if gles {
		// Core in OpenGL ES 2.0.
		f := format.FeatureGenerateMipmap
		if ver[0] >= 3 {
			f |= format.FeatureSRGB | format.FeatureHalfFloatTexture | format.FeatureFloatTexture |
				format.FeatureRGB10A2 | format.FeaturePackedFloat | format.FeatureDepthTexture |
				format.FeatureDepth24 | format.FeatureDepthFloat | format.FeaturePackedDepthStencil |
				format.FeatureRGBA8Renderbuffer | format.FeatureETC2 | format.FeatureVertexHalfFloat |
				format.FeatureVertex1010102 | format.FeatureElementIndexUint | format.FeatureBlendMinMax |
				format.FeatureFramebufferBlit
		}
		return f
	}
	// Core in OpenGL 2.1.
	f := format.FeatureBGRA | format.FeatureSRGB | format.FeatureRGB10A2 | format.FeatureDepthTexture |
		format.FeatureDepth24 | format.FeatureDepth32 | format.FeatureRGBA8Renderbuffer |
		format.FeatureElementIndexUint | format.FeatureBlendMinMax
	if ver[0] >= 3 {
		f |= format.FeatureFramebufferSRGB | format.FeatureHalfFloatTexture | format.FeatureFloatTexture |
			format.FeatureColorBufferHalfFloat | format.FeatureColorBufferFloat | format.FeaturePackedFloat |
			format.FeatureDepthFloat | format.FeaturePackedDepthStencil | format.FeatureVertexHalfFloat |
			format.FeatureFramebufferBlit | format.FeatureGenerateMipmap | format.FeatureRGTC
	}
	return f
}

// driverInfo is what the backend learns about the driver at creation.
type driverInfo struct {
	caps  hal.Caps
	feats format.Feature
	glver [2]int
	gles  bool
	// fbo reports framebuffer object support.
	fbo bool
}

func queryDriver(f gl.Functions) (driverInfo, error) {
	glVer := f.GetString(gl.VERSION)
	ver, gles, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return driverInfo{}, err
	}
	if ver[0] < 2 {
		return driverInfo{}, errors.Wrapf(hal.ErrUnsupported, "OpenGL version %d.%d", ver[0], ver[1])
	}
	all := gl.ParseExtensions(f.GetString(gl.EXTENSIONS))
	feats := baseFeatures(ver, gles)
	known := make(map[string]bool)
	for _, e := range all {
		if feat, ok := extensionFeatures[e]; ok {
			feats |= feat
			known[e] = true
		}
	}
	fbo := gles || ver[0] >= 3
	for _, e := range framebufferExtensions {
		if gl.HasExtension(all, e) {
			fbo = true
		}
	}
	if !fbo {
		feats &^= format.FeatureFramebufferBlit
	}
	info := driverInfo{feats: feats, glver: ver, gles: gles, fbo: fbo}
	c := &info.caps
	c.BottomLeftOrigin = true
	c.Vendor = f.GetString(gl.VENDOR)
	c.Renderer = f.GetString(gl.RENDERER)
	c.Version = glVer
	c.ShadingLanguage = f.GetString(gl.SHADING_LANGUAGE_VERSION)
	c.GLES = gles
	c.Major, c.Minor = ver[0], ver[1]
	c.Extensions = maps.Keys(known)
	slices.Sort(c.Extensions)

	l := &c.Limits
	l.MaxTextureSize = f.GetInteger(gl.MAX_TEXTURE_SIZE)
	l.MaxCubeMapSize = f.GetInteger(gl.MAX_CUBE_MAP_TEXTURE_SIZE)
	l.MaxRenderbufferSize = f.GetInteger(gl.MAX_RENDERBUFFER_SIZE)
	dims := f.GetInteger4(gl.MAX_VIEWPORT_DIMS)
	l.MaxViewportDims = [2]int{dims[0], dims[1]}
	l.MaxVertexAttribs = f.GetInteger(gl.MAX_VERTEX_ATTRIBS)
	l.MaxTextureUnits = f.GetInteger(gl.MAX_TEXTURE_IMAGE_UNITS)
	l.MaxCombinedTextureUnits = f.GetInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)
	l.MaxVaryingVectors = f.GetInteger(gl.MAX_VARYING_VECTORS)
	l.MaxVertexUniformVectors = f.GetInteger(gl.MAX_VERTEX_UNIFORM_VECTORS)
	l.MaxFragmentUniformVectors = f.GetInteger(gl.MAX_FRAGMENT_UNIFORM_VECTORS)
	l.MaxColorAttachments = 1
	l.MaxAnisotropy = 1
	if feats.Has(format.FeatureAnisotropy) {
		l.MaxAnisotropy = f.GetFloat(gl.MAX_TEXTURE_MAX_ANISOTROPY_EXT)
	}
	// Drivers that do not know a limit report an error.
	drainErrors(f)

	if fbo {
		for _, p := range floatTargets {
			if feats.Has(p.feat) && !probeRenderTarget(f, p.triple(gles)) {
				feats &^= p.feat
			}
		}
		info.feats = feats
	}
	c.Features = feats.Names()
	for _, tf := range format.TextureFormats() {
		if format.TextureSupported(tf, gles, feats) {
			c.TextureFormats = append(c.TextureFormats, tf)
		}
	}
	for _, vf := range format.VertexFormats() {
		if format.VertexSupported(vf, feats) {
			c.VertexFormats = append(c.VertexFormats, vf)
		}
	}
	return info, nil
}

// floatTarget is a float color buffer feature verified by rendering
// to it; drivers are known to advertise float color buffers they
// cannot complete.
type floatTarget struct {
	feat    format.Feature
	es      format.Triple
	desktop format.Triple
}

var floatTargets = []floatTarget{
	{format.FeatureColorBufferHalfFloat,
		format.Triple{Internal: gl.RGBA, Format: gl.RGBA, Type: gl.HALF_FLOAT_OES},
		format.Triple{Internal: gl.RGBA16F, Format: gl.RGBA, Type: gl.HALF_FLOAT}},
	{format.FeatureColorBufferFloat,
		format.Triple{Internal: gl.RGBA, Format: gl.RGBA, Type: gl.FLOAT},
		format.Triple{Internal: gl.RGBA32F, Format: gl.RGBA, Type: gl.FLOAT}},
}

func (t floatTarget) triple(gles bool) format.Triple {
	if gles {
		return t.es
	}
	return t.desktop
}

// probeRenderTarget reports whether a texture in the triple tt can be
// rendered to. The driver bindings are restored afterwards.
func probeRenderTarget(f gl.Functions, tt format.Triple) bool {
	tex := f.CreateTexture()
	defer f.DeleteTexture(tex)
	defTex := gl.Texture{V: uint(f.GetInteger(gl.TEXTURE_BINDING_2D))}
	defer f.BindTexture(gl.TEXTURE_2D, defTex)
	f.BindTexture(gl.TEXTURE_2D, tex)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	fbo := f.CreateFramebuffer()
	defer f.DeleteFramebuffer(fbo)
	defFBO := gl.Framebuffer{V: uint(f.GetInteger(gl.FRAMEBUFFER_BINDING))}
	f.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	defer f.BindFramebuffer(gl.FRAMEBUFFER, defFBO)
	const size = 16
	f.TexImage2D(gl.TEXTURE_2D, 0, tt.Internal, size, size, tt.Format, tt.Type, nil)
	f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	st := f.CheckFramebufferStatus(gl.FRAMEBUFFER)
	drainErrors(f)
	if st != gl.FRAMEBUFFER_COMPLETE {
		logger().WithField("triple", fmt.Sprintf("(0x%x, 0x%x, 0x%x)", tt.Internal, tt.Format, tt.Type)).
			Debugf("float render target incomplete: 0x%x", st)
		return false
	}
	return true
}
