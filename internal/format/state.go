// SPDX-License-Identifier: Unlicense OR MIT

package format

import (
	"github.com/gogpu/gputypes"

	"gioui.org/glhal/internal/gl"
)

func BlendFactor(f gputypes.BlendFactor) gl.Enum {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorOne:
		return gl.ONE
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	}
	unsupported("blend factor", f, "no native blend factor")
	return Invalid
}

// BlendOperation maps op to a blend equation and the features it
// requires.
func BlendOperation(op gputypes.BlendOperation) (gl.Enum, Feature) {
	switch op {
	case gputypes.BlendOperationAdd:
		return gl.FUNC_ADD, 0
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT, 0
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT, 0
	case gputypes.BlendOperationMin:
		return gl.MIN_EXT, FeatureBlendMinMax
	case gputypes.BlendOperationMax:
		return gl.MAX_EXT, FeatureBlendMinMax
	}
	unsupported("blend operation", op, "no native blend equation")
	return Invalid, 0
}

func CompareFunction(f gputypes.CompareFunction) gl.Enum {
	switch f {
	case gputypes.CompareFunctionNever:
		return gl.NEVER
	case gputypes.CompareFunctionLess:
		return gl.LESS
	case gputypes.CompareFunctionEqual:
		return gl.EQUAL
	case gputypes.CompareFunctionLessEqual:
		return gl.LEQUAL
	case gputypes.CompareFunctionGreater:
		return gl.GREATER
	case gputypes.CompareFunctionNotEqual:
		return gl.NOTEQUAL
	case gputypes.CompareFunctionGreaterEqual:
		return gl.GEQUAL
	case gputypes.CompareFunctionAlways:
		return gl.ALWAYS
	}
	unsupported("compare function", f, "no native compare function")
	return Invalid
}

func StencilOperation(op gputypes.StencilOperation) gl.Enum {
	switch op {
	case gputypes.StencilOperationKeep:
		return gl.KEEP
	case gputypes.StencilOperationZero:
		return gl.ZERO
	case gputypes.StencilOperationReplace:
		return gl.REPLACE
	case gputypes.StencilOperationInvert:
		return gl.INVERT
	case gputypes.StencilOperationIncrementClamp:
		return gl.INCR
	case gputypes.StencilOperationDecrementClamp:
		return gl.DECR
	case gputypes.StencilOperationIncrementWrap:
		return gl.INCR_WRAP
	case gputypes.StencilOperationDecrementWrap:
		return gl.DECR_WRAP
	}
	unsupported("stencil operation", op, "no native stencil operation")
	return Invalid
}

func AddressMode(m gputypes.AddressMode) gl.Enum {
	switch m {
	case gputypes.AddressModeClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gputypes.AddressModeRepeat:
		return gl.REPEAT
	case gputypes.AddressModeMirrorRepeat:
		return gl.MIRRORED_REPEAT
	}
	unsupported("address mode", m, "no native wrap mode")
	return Invalid
}

func MagFilter(f gputypes.FilterMode) gl.Enum {
	switch f {
	case gputypes.FilterModeNearest:
		return gl.NEAREST
	case gputypes.FilterModeLinear:
		return gl.LINEAR
	}
	unsupported("filter", f, "no native filter")
	return Invalid
}

// MinFilter combines the minification and mipmap filters. Textures
// without mipmaps ignore the mipmap filter.
func MinFilter(f gputypes.FilterMode, mip gputypes.MipmapFilterMode, mipmapped bool) gl.Enum {
	if !mipmapped || mip == gputypes.MipmapFilterModeUndefined {
		return MagFilter(f)
	}
	switch {
	case f == gputypes.FilterModeNearest && mip == gputypes.MipmapFilterModeNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case f == gputypes.FilterModeNearest && mip == gputypes.MipmapFilterModeLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case f == gputypes.FilterModeLinear && mip == gputypes.MipmapFilterModeNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case f == gputypes.FilterModeLinear && mip == gputypes.MipmapFilterModeLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	unsupported("filter", f, "no native minification filter")
	return Invalid
}

func PrimitiveTopology(t gputypes.PrimitiveTopology) gl.Enum {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case gputypes.PrimitiveTopologyTriangleList:
		return gl.TRIANGLES
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	}
	unsupported("topology", t, "no native primitive mode")
	return Invalid
}

// ShaderStage maps a single stage to a shader type. The legacy
// driver has no compute stage.
func ShaderStage(s gputypes.ShaderStage) gl.Enum {
	switch s {
	case gputypes.ShaderStageVertex:
		return gl.VERTEX_SHADER
	case gputypes.ShaderStageFragment:
		return gl.FRAGMENT_SHADER
	}
	unsupported("shader stage", s, "no native shader type")
	return Invalid
}

// IndexFormat maps f to the DrawElements index type and the features
// it requires.
func IndexFormat(f gputypes.IndexFormat) (gl.Enum, Feature) {
	switch f {
	case gputypes.IndexFormatUint16:
		return gl.UNSIGNED_SHORT, 0
	case gputypes.IndexFormatUint32:
		return gl.UNSIGNED_INT, FeatureElementIndexUint
	}
	unsupported("index format", f, "no native index type")
	return Invalid, 0
}

// CullMode maps m to the face passed to glCullFace. CullModeNone
// returns 0: culling is disabled.
func CullMode(m gputypes.CullMode) gl.Enum {
	switch m {
	case gputypes.CullModeNone:
		return 0
	case gputypes.CullModeFront:
		return gl.FRONT
	case gputypes.CullModeBack:
		return gl.BACK
	}
	unsupported("cull mode", m, "no native cull face")
	return Invalid
}

func FrontFace(f gputypes.FrontFace) gl.Enum {
	switch f {
	case gputypes.FrontFaceCCW:
		return gl.CCW
	case gputypes.FrontFaceCW:
		return gl.CW
	}
	unsupported("front face", f, "no native winding")
	return Invalid
}

// TextureTarget maps a view dimension to a texture target. Only 2D
// and cube textures exist on the legacy driver.
func TextureTarget(d gputypes.TextureViewDimension) gl.Enum {
	switch d {
	case gputypes.TextureViewDimension2D:
		return gl.TEXTURE_2D
	case gputypes.TextureViewDimensionCube:
		return gl.TEXTURE_CUBE_MAP
	}
	unsupported("texture target", d, "no native texture target")
	return Invalid
}
