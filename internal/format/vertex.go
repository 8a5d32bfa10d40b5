// SPDX-License-Identifier: Unlicense OR MIT

package format

import (
	"github.com/gogpu/gputypes"

	"gioui.org/glhal/internal/gl"
)

// Attrib holds the arguments of a VertexAttribPointer call derived
// from a vertex format.
type Attrib struct {
	Type       gl.Enum
	Size       int
	Normalized bool
	// Bytes is the size of one element.
	Bytes   int
	Require Feature
}

const lastVertexFormat = gputypes.VertexFormatUnorm1010102

var vertexTable = [lastVertexFormat + 1]Attrib{
	gputypes.VertexFormatUndefined: {},
	gputypes.VertexFormatUint8x2:   {gl.UNSIGNED_BYTE, 2, false, 2, 0},
	gputypes.VertexFormatUint8x4:   {gl.UNSIGNED_BYTE, 4, false, 4, 0},
	gputypes.VertexFormatSint8x2:   {gl.BYTE, 2, false, 2, 0},
	gputypes.VertexFormatSint8x4:   {gl.BYTE, 4, false, 4, 0},
	gputypes.VertexFormatUnorm8x2:  {gl.UNSIGNED_BYTE, 2, true, 2, 0},
	gputypes.VertexFormatUnorm8x4:  {gl.UNSIGNED_BYTE, 4, true, 4, 0},
	gputypes.VertexFormatSnorm8x2:  {gl.BYTE, 2, true, 2, 0},
	gputypes.VertexFormatSnorm8x4:  {gl.BYTE, 4, true, 4, 0},
	gputypes.VertexFormatUint16x2:  {gl.UNSIGNED_SHORT, 2, false, 4, 0},
	gputypes.VertexFormatUint16x4:  {gl.UNSIGNED_SHORT, 4, false, 8, 0},
	gputypes.VertexFormatSint16x2:  {gl.SHORT, 2, false, 4, 0},
	gputypes.VertexFormatSint16x4:  {gl.SHORT, 4, false, 8, 0},
	gputypes.VertexFormatUnorm16x2: {gl.UNSIGNED_SHORT, 2, true, 4, 0},
	gputypes.VertexFormatUnorm16x4: {gl.UNSIGNED_SHORT, 4, true, 8, 0},
	gputypes.VertexFormatSnorm16x2: {gl.SHORT, 2, true, 4, 0},
	gputypes.VertexFormatSnorm16x4: {gl.SHORT, 4, true, 8, 0},
	gputypes.VertexFormatFloat16x2: {gl.HALF_FLOAT, 2, false, 4, FeatureVertexHalfFloat},
	gputypes.VertexFormatFloat16x4: {gl.HALF_FLOAT, 4, false, 8, FeatureVertexHalfFloat},
	gputypes.VertexFormatFloat32:   {gl.FLOAT, 1, false, 4, 0},
	gputypes.VertexFormatFloat32x2: {gl.FLOAT, 2, false, 8, 0},
	gputypes.VertexFormatFloat32x3: {gl.FLOAT, 3, false, 12, 0},
	gputypes.VertexFormatFloat32x4: {gl.FLOAT, 4, false, 16, 0},
	gputypes.VertexFormatUint32:    {gl.UNSIGNED_INT, 1, false, 4, 0},
	gputypes.VertexFormatUint32x2:  {gl.UNSIGNED_INT, 2, false, 8, 0},
	gputypes.VertexFormatUint32x3:  {gl.UNSIGNED_INT, 3, false, 12, 0},
	gputypes.VertexFormatUint32x4:  {gl.UNSIGNED_INT, 4, false, 16, 0},
	gputypes.VertexFormatSint32:    {gl.INT, 1, false, 4, 0},
	gputypes.VertexFormatSint32x2:  {gl.INT, 2, false, 8, 0},
	gputypes.VertexFormatSint32x3:  {gl.INT, 3, false, 12, 0},
	gputypes.VertexFormatSint32x4:  {gl.INT, 4, false, 16, 0},

	gputypes.VertexFormatUnorm1010102: {gl.UNSIGNED_INT_2_10_10_10_REV, 4, true, 4, FeatureVertex1010102},
}

// VertexFormats returns every defined abstract vertex format.
func VertexFormats() []gputypes.VertexFormat {
	fs := make([]gputypes.VertexFormat, 0, lastVertexFormat)
	for f := gputypes.VertexFormatUint8x2; f <= lastVertexFormat; f++ {
		fs = append(fs, f)
	}
	return fs
}

// VertexAttrib maps f to its attribute pointer arguments. Unmapped
// formats return an Attrib with Type Invalid.
func VertexAttrib(f gputypes.VertexFormat, gles bool) Attrib {
	if f == gputypes.VertexFormatUndefined || f > lastVertexFormat {
		unsupported("vertex", f, "no native vertex type")
		return Attrib{Type: Invalid}
	}
	a := vertexTable[f]
	if gles && a.Type == gl.HALF_FLOAT {
		a.Type = gl.HALF_FLOAT_OES
	}
	return a
}

// VertexSupported reports whether f is usable under feats.
func VertexSupported(f gputypes.VertexFormat, feats Feature) bool {
	if f == gputypes.VertexFormatUndefined || f > lastVertexFormat {
		return false
	}
	return feats.Has(vertexTable[f].Require)
}

// ReflectedVertexFormat maps the type of an active attribute, as
// reported by glGetActiveAttrib, to the vertex format a shader
// consumes. Matrix attributes are not supported.
func ReflectedVertexFormat(ty gl.Enum) (gputypes.VertexFormat, bool) {
	switch ty {
	case gl.FLOAT:
		return gputypes.VertexFormatFloat32, true
	case gl.FLOAT_VEC2:
		return gputypes.VertexFormatFloat32x2, true
	case gl.FLOAT_VEC3:
		return gputypes.VertexFormatFloat32x3, true
	case gl.FLOAT_VEC4:
		return gputypes.VertexFormatFloat32x4, true
	case gl.INT:
		return gputypes.VertexFormatSint32, true
	case gl.INT_VEC2:
		return gputypes.VertexFormatSint32x2, true
	case gl.INT_VEC3:
		return gputypes.VertexFormatSint32x3, true
	case gl.INT_VEC4:
		return gputypes.VertexFormatSint32x4, true
	case gl.UNSIGNED_INT:
		return gputypes.VertexFormatUint32, true
	case gl.UNSIGNED_INT_VEC2:
		return gputypes.VertexFormatUint32x2, true
	case gl.UNSIGNED_INT_VEC3:
		return gputypes.VertexFormatUint32x3, true
	case gl.UNSIGNED_INT_VEC4:
		return gputypes.VertexFormatUint32x4, true
	}
	unsupported("attribute", ty, "unknown attribute type")
	return gputypes.VertexFormatUndefined, false
}
