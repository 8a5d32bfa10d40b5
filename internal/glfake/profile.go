// SPDX-License-Identifier: Unlicense OR MIT

package glfake

import "gioui.org/glhal/internal/gl"

// Profile describes the driver a Functions pretends to be.
type Profile struct {
	Vendor     string
	Renderer   string
	Version    string
	Extensions []string
	// Limits overrides the integer limits reported by GetInteger.
	Limits map[gl.Enum]int
	// ViewportDims is reported for MAX_VIEWPORT_DIMS.
	ViewportDims [2]int
	// MaxAnisotropy is reported for MAX_TEXTURE_MAX_ANISOTROPY_EXT.
	MaxAnisotropy float32
}

var defaultLimits = map[gl.Enum]int{
	gl.MAX_TEXTURE_SIZE:                 4096,
	gl.MAX_CUBE_MAP_TEXTURE_SIZE:        4096,
	gl.MAX_VERTEX_ATTRIBS:               16,
	gl.MAX_TEXTURE_IMAGE_UNITS:          16,
	gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 32,
	gl.MAX_VARYING_VECTORS:              8,
	gl.MAX_RENDERBUFFER_SIZE:            4096,
	gl.MAX_VERTEX_UNIFORM_VECTORS:       256,
	gl.MAX_FRAGMENT_UNIFORM_VECTORS:     224,
	gl.SUBPIXEL_BITS:                    4,
}

// ES2 is a bare OpenGL ES 2.0 driver with a few common extensions.
func ES2() Profile {
	return Profile{
		Vendor:   "glfake",
		Renderer: "glfake ES2",
		Version:  "OpenGL ES 2.0 glfake",
		Extensions: []string{
			"GL_OES_rgb8_rgba8",
			"GL_OES_depth_texture",
			"GL_OES_depth24",
			"GL_OES_packed_depth_stencil",
			"GL_OES_element_index_uint",
			"GL_EXT_texture_format_BGRA8888",
			"GL_EXT_sRGB",
			"GL_OES_texture_half_float",
			"GL_EXT_color_buffer_half_float",
			"GL_EXT_texture_compression_dxt1",
			"GL_EXT_texture_filter_anisotropic",
		},
		ViewportDims:  [2]int{4096, 4096},
		MaxAnisotropy: 16,
	}
}

// Desktop21 is an OpenGL 2.1 driver with framebuffer objects.
func Desktop21() Profile {
	return Profile{
		Vendor:   "glfake",
		Renderer: "glfake GL2.1",
		Version:  "2.1 glfake",
		Extensions: []string{
			"GL_ARB_framebuffer_object",
			"GL_EXT_framebuffer_blit",
			"GL_ARB_framebuffer_sRGB",
			"GL_ARB_texture_float",
			"GL_ARB_half_float_pixel",
			"GL_ARB_half_float_vertex",
			"GL_EXT_packed_depth_stencil",
			"GL_EXT_texture_compression_s3tc",
			"GL_ARB_texture_compression_rgtc",
			"GL_EXT_texture_filter_anisotropic",
		},
		ViewportDims:  [2]int{8192, 8192},
		MaxAnisotropy: 16,
	}
}

func (p Profile) limit(pname gl.Enum) (int, bool) {
	if v, ok := p.Limits[pname]; ok {
		return v, true
	}
	v, ok := defaultLimits[pname]
	return v, ok
}
