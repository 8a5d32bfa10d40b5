// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/exp/slices"
)

// Caps describes a driver. It is computed once when the Device is
// created.
type Caps struct {
	// BottomLeftOrigin is true if the driver has the origin in the lower
	// left corner. The OpenGL driver returns true.
	BottomLeftOrigin bool

	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
	GLES            bool
	Major, Minor    int

	// Extensions lists the recognised driver extensions.
	Extensions []string
	// Features names the optional features derived from the version
	// and extensions.
	Features []string

	Limits Limits

	TextureFormats []gputypes.TextureFormat
	VertexFormats  []gputypes.VertexFormat
}

type Limits struct {
	MaxTextureSize            int
	MaxCubeMapSize            int
	MaxRenderbufferSize       int
	MaxViewportDims           [2]int
	MaxVertexAttribs          int
	MaxTextureUnits           int
	MaxCombinedTextureUnits   int
	MaxVaryingVectors         int
	MaxVertexUniformVectors   int
	MaxFragmentUniformVectors int
	// MaxAnisotropy is 1 when anisotropic filtering is unsupported.
	MaxAnisotropy float32
	// MaxColorAttachments is 1 for OpenGL 2.x drivers.
	MaxColorAttachments int
}

// HasFeature reports whether the named feature is present.
func (c Caps) HasFeature(name string) bool {
	return slices.Contains(c.Features, name)
}

func (c Caps) SupportsTexture(f gputypes.TextureFormat) bool {
	return slices.Contains(c.TextureFormats, f)
}

func (c Caps) SupportsVertex(f gputypes.VertexFormat) bool {
	return slices.Contains(c.VertexFormats, f)
}
