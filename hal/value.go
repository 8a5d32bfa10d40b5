// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// UniformType is the declared type of a shader uniform.
type UniformType uint8

const (
	UniformTypeNull UniformType = 0
	UniformTypeBool UniformType = 1

	UniformTypeInt  UniformType = 5
	UniformTypeInt2 UniformType = 6
	UniformTypeInt3 UniformType = 7
	UniformTypeInt4 UniformType = 8

	UniformTypeUInt  UniformType = 9
	UniformTypeUInt2 UniformType = 10
	UniformTypeUInt3 UniformType = 11
	UniformTypeUInt4 UniformType = 12

	UniformTypeFloat    UniformType = 13
	UniformTypeFloat2   UniformType = 14
	UniformTypeFloat3   UniformType = 15
	UniformTypeFloat4   UniformType = 16
	UniformTypeFloat2x2 UniformType = 17
	UniformTypeFloat3x3 UniformType = 18
	UniformTypeFloat4x4 UniformType = 19

	UniformTypeIntArray  UniformType = 24
	UniformTypeInt2Array UniformType = 25
	UniformTypeInt3Array UniformType = 26
	UniformTypeInt4Array UniformType = 27

	UniformTypeUIntArray  UniformType = 28
	UniformTypeUInt2Array UniformType = 29
	UniformTypeUInt3Array UniformType = 30
	UniformTypeUInt4Array UniformType = 31

	UniformTypeFloatArray    UniformType = 32
	UniformTypeFloat2Array   UniformType = 33
	UniformTypeFloat3Array   UniformType = 34
	UniformTypeFloat4Array   UniformType = 35
	UniformTypeFloat2x2Array UniformType = 36
	UniformTypeFloat3x3Array UniformType = 37
	UniformTypeFloat4x4Array UniformType = 38

	UniformTypeSampler              UniformType = 39
	UniformTypeSamplerImage         UniformType = 40
	UniformTypeCombinedImageSampler UniformType = 41
	UniformTypeStorageImage         UniformType = 42
	UniformTypeStorageTexelBuffer   UniformType = 43
	UniformTypeStorageBuffer        UniformType = 44
	UniformTypeStorageBufferDynamic UniformType = 45
	UniformTypeUniformTexelBuffer   UniformType = 46
	UniformTypeUniformBuffer        UniformType = 47
	UniformTypeUniformBufferDynamic UniformType = 48
	UniformTypeInputAttachment      UniformType = 49
)

var uniformTypeNames = map[UniformType]string{
	UniformTypeNull:                 "null",
	UniformTypeBool:                 "bool",
	UniformTypeInt:                  "int",
	UniformTypeInt2:                 "int2",
	UniformTypeInt3:                 "int3",
	UniformTypeInt4:                 "int4",
	UniformTypeUInt:                 "uint",
	UniformTypeUInt2:                "uint2",
	UniformTypeUInt3:                "uint3",
	UniformTypeUInt4:                "uint4",
	UniformTypeFloat:                "float",
	UniformTypeFloat2:               "float2",
	UniformTypeFloat3:               "float3",
	UniformTypeFloat4:               "float4",
	UniformTypeFloat2x2:             "float2x2",
	UniformTypeFloat3x3:             "float3x3",
	UniformTypeFloat4x4:             "float4x4",
	UniformTypeIntArray:             "int[]",
	UniformTypeInt2Array:            "int2[]",
	UniformTypeInt3Array:            "int3[]",
	UniformTypeInt4Array:            "int4[]",
	UniformTypeUIntArray:            "uint[]",
	UniformTypeUInt2Array:           "uint2[]",
	UniformTypeUInt3Array:           "uint3[]",
	UniformTypeUInt4Array:           "uint4[]",
	UniformTypeFloatArray:           "float[]",
	UniformTypeFloat2Array:          "float2[]",
	UniformTypeFloat3Array:          "float3[]",
	UniformTypeFloat4Array:          "float4[]",
	UniformTypeFloat2x2Array:        "float2x2[]",
	UniformTypeFloat3x3Array:        "float3x3[]",
	UniformTypeFloat4x4Array:        "float4x4[]",
	UniformTypeSampler:              "sampler",
	UniformTypeSamplerImage:         "sampler-image",
	UniformTypeCombinedImageSampler: "combined-image-sampler",
	UniformTypeStorageImage:         "storage-image",
	UniformTypeStorageTexelBuffer:   "storage-texel-buffer",
	UniformTypeStorageBuffer:        "storage-buffer",
	UniformTypeStorageBufferDynamic: "storage-buffer-dynamic",
	UniformTypeUniformTexelBuffer:   "uniform-texel-buffer",
	UniformTypeUniformBuffer:        "uniform-buffer",
	UniformTypeUniformBufferDynamic: "uniform-buffer-dynamic",
	UniformTypeInputAttachment:      "input-attachment",
}

func (t UniformType) String() string {
	if n, ok := uniformTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("uniform(%d)", uint8(t))
}

// IsArray reports whether t is an array of scalars, vectors or
// matrices.
func (t UniformType) IsArray() bool {
	return t >= UniformTypeIntArray && t <= UniformTypeFloat4x4Array
}

// IsTexture reports whether values of t bind a texture.
func (t UniformType) IsTexture() bool {
	switch t {
	case UniformTypeSampler, UniformTypeSamplerImage, UniformTypeCombinedImageSampler, UniformTypeStorageImage, UniformTypeInputAttachment:
		return true
	}
	return false
}

// IsBuffer reports whether values of t bind a buffer.
func (t UniformType) IsBuffer() bool {
	return t >= UniformTypeStorageTexelBuffer && t <= UniformTypeUniformBufferDynamic
}

// Uniform is a uniform declaration recovered from a linked program.
// Uniforms are shared by the layouts and descriptor sets derived from
// the program and must not be modified.
type Uniform struct {
	// Name is the declared name without array subscript. For sampler
	// uniforms following the base_X_sampler convention it is the base.
	Name string
	// SamplerName is the part after the _X_ separator, if any.
	SamplerName string
	Type        UniformType
	// Location is the driver location, or -1.
	Location int
	// Unit is the texture unit assigned to texture uniforms.
	Unit int
	// Count is the number of array elements; 1 for non-arrays.
	Count int
}

// Matches reports whether u and o declare the same uniform, possibly
// in different programs.
func (u *Uniform) Matches(o *Uniform) bool {
	if u == o {
		return true
	}
	if u == nil || o == nil {
		return false
	}
	return u.Name == o.Name && u.SamplerName == o.SamplerName && u.Type == o.Type && u.Count == o.Count
}

// Value is the payload of a descriptor set slot. The set of
// implementations is closed; consumers switch over all of them.
type Value interface {
	UniformType() UniformType
	isValue()
}

type (
	Bool bool

	Int  int32
	Int2 [2]int32
	Int3 [3]int32
	Int4 [4]int32

	UInt  uint32
	UInt2 [2]uint32
	UInt3 [3]uint32
	UInt4 [4]uint32

	Float    float32
	Float2   mgl32.Vec2
	Float3   mgl32.Vec3
	Float4   mgl32.Vec4
	Float2x2 mgl32.Mat2
	Float3x3 mgl32.Mat3
	Float4x4 mgl32.Mat4

	IntArray  []int32
	Int2Array [][2]int32
	Int3Array [][3]int32
	Int4Array [][4]int32

	UIntArray  []uint32
	UInt2Array [][2]uint32
	UInt3Array [][3]uint32
	UInt4Array [][4]uint32

	FloatArray    []float32
	Float2Array   []mgl32.Vec2
	Float3Array   []mgl32.Vec3
	Float4Array   []mgl32.Vec4
	Float2x2Array []mgl32.Mat2
	Float3x3Array []mgl32.Mat3
	Float4x4Array []mgl32.Mat4
)

// TextureBinding pairs a texture with the sampler state to apply when
// it is bound. A nil Sampler keeps the texture's own sampler state.
type TextureBinding struct {
	Texture Texture
	Sampler Sampler
}

type BufferBinding struct {
	Buffer Buffer
	Offset int
	Size   int
}

func (Bool) UniformType() UniformType           { return UniformTypeBool }
func (Int) UniformType() UniformType            { return UniformTypeInt }
func (Int2) UniformType() UniformType           { return UniformTypeInt2 }
func (Int3) UniformType() UniformType           { return UniformTypeInt3 }
func (Int4) UniformType() UniformType           { return UniformTypeInt4 }
func (UInt) UniformType() UniformType           { return UniformTypeUInt }
func (UInt2) UniformType() UniformType          { return UniformTypeUInt2 }
func (UInt3) UniformType() UniformType          { return UniformTypeUInt3 }
func (UInt4) UniformType() UniformType          { return UniformTypeUInt4 }
func (Float) UniformType() UniformType          { return UniformTypeFloat }
func (Float2) UniformType() UniformType         { return UniformTypeFloat2 }
func (Float3) UniformType() UniformType         { return UniformTypeFloat3 }
func (Float4) UniformType() UniformType         { return UniformTypeFloat4 }
func (Float2x2) UniformType() UniformType       { return UniformTypeFloat2x2 }
func (Float3x3) UniformType() UniformType       { return UniformTypeFloat3x3 }
func (Float4x4) UniformType() UniformType       { return UniformTypeFloat4x4 }
func (IntArray) UniformType() UniformType       { return UniformTypeIntArray }
func (Int2Array) UniformType() UniformType      { return UniformTypeInt2Array }
func (Int3Array) UniformType() UniformType      { return UniformTypeInt3Array }
func (Int4Array) UniformType() UniformType      { return UniformTypeInt4Array }
func (UIntArray) UniformType() UniformType      { return UniformTypeUIntArray }
func (UInt2Array) UniformType() UniformType     { return UniformTypeUInt2Array }
func (UInt3Array) UniformType() UniformType     { return UniformTypeUInt3Array }
func (UInt4Array) UniformType() UniformType     { return UniformTypeUInt4Array }
func (FloatArray) UniformType() UniformType     { return UniformTypeFloatArray }
func (Float2Array) UniformType() UniformType    { return UniformTypeFloat2Array }
func (Float3Array) UniformType() UniformType    { return UniformTypeFloat3Array }
func (Float4Array) UniformType() UniformType    { return UniformTypeFloat4Array }
func (Float2x2Array) UniformType() UniformType  { return UniformTypeFloat2x2Array }
func (Float3x3Array) UniformType() UniformType  { return UniformTypeFloat3x3Array }
func (Float4x4Array) UniformType() UniformType  { return UniformTypeFloat4x4Array }
func (TextureBinding) UniformType() UniformType { return UniformTypeSamplerImage }
func (BufferBinding) UniformType() UniformType  { return UniformTypeUniformBuffer }

func (Bool) isValue()           {}
func (Int) isValue()            {}
func (Int2) isValue()           {}
func (Int3) isValue()           {}
func (Int4) isValue()           {}
func (UInt) isValue()           {}
func (UInt2) isValue()          {}
func (UInt3) isValue()          {}
func (UInt4) isValue()          {}
func (Float) isValue()          {}
func (Float2) isValue()         {}
func (Float3) isValue()         {}
func (Float4) isValue()         {}
func (Float2x2) isValue()       {}
func (Float3x3) isValue()       {}
func (Float4x4) isValue()       {}
func (IntArray) isValue()       {}
func (Int2Array) isValue()      {}
func (Int3Array) isValue()      {}
func (Int4Array) isValue()      {}
func (UIntArray) isValue()      {}
func (UInt2Array) isValue()     {}
func (UInt3Array) isValue()     {}
func (UInt4Array) isValue()     {}
func (FloatArray) isValue()     {}
func (Float2Array) isValue()    {}
func (Float3Array) isValue()    {}
func (Float4Array) isValue()    {}
func (Float2x2Array) isValue()  {}
func (Float3x3Array) isValue()  {}
func (Float4x4Array) isValue()  {}
func (TextureBinding) isValue() {}
func (BufferBinding) isValue()  {}

// Accepts reports whether a slot of type t can hold v.
func (t UniformType) Accepts(v Value) bool {
	if v == nil {
		return false
	}
	switch vt := v.UniformType(); {
	case t.IsTexture():
		return vt == UniformTypeSamplerImage
	case t.IsBuffer():
		return vt == UniformTypeUniformBuffer
	default:
		return vt == t
	}
}

// Len returns the number of elements of an array value, or 1.
func Len(v Value) int {
	switch v := v.(type) {
	case IntArray:
		return len(v)
	case Int2Array:
		return len(v)
	case Int3Array:
		return len(v)
	case Int4Array:
		return len(v)
	case UIntArray:
		return len(v)
	case UInt2Array:
		return len(v)
	case UInt3Array:
		return len(v)
	case UInt4Array:
		return len(v)
	case FloatArray:
		return len(v)
	case Float2Array:
		return len(v)
	case Float3Array:
		return len(v)
	case Float4Array:
		return len(v)
	case Float2x2Array:
		return len(v)
	case Float3x3Array:
		return len(v)
	case Float4x4Array:
		return len(v)
	}
	return 1
}

// ZeroValue returns the initial value of a slot of type t with count
// array elements. Null uniforms have no value.
func ZeroValue(t UniformType, count int) Value {
	if count < 1 {
		count = 1
	}
	switch t {
	case UniformTypeBool:
		return Bool(false)
	case UniformTypeInt:
		return Int(0)
	case UniformTypeInt2:
		return Int2{}
	case UniformTypeInt3:
		return Int3{}
	case UniformTypeInt4:
		return Int4{}
	case UniformTypeUInt:
		return UInt(0)
	case UniformTypeUInt2:
		return UInt2{}
	case UniformTypeUInt3:
		return UInt3{}
	case UniformTypeUInt4:
		return UInt4{}
	case UniformTypeFloat:
		return Float(0)
	case UniformTypeFloat2:
		return Float2{}
	case UniformTypeFloat3:
		return Float3{}
	case UniformTypeFloat4:
		return Float4{}
	case UniformTypeFloat2x2:
		return Float2x2(mgl32.Ident2())
	case UniformTypeFloat3x3:
		return Float3x3(mgl32.Ident3())
	case UniformTypeFloat4x4:
		return Float4x4(mgl32.Ident4())
	case UniformTypeIntArray:
		return make(IntArray, count)
	case UniformTypeInt2Array:
		return make(Int2Array, count)
	case UniformTypeInt3Array:
		return make(Int3Array, count)
	case UniformTypeInt4Array:
		return make(Int4Array, count)
	case UniformTypeUIntArray:
		return make(UIntArray, count)
	case UniformTypeUInt2Array:
		return make(UInt2Array, count)
	case UniformTypeUInt3Array:
		return make(UInt3Array, count)
	case UniformTypeUInt4Array:
		return make(UInt4Array, count)
	case UniformTypeFloatArray:
		return make(FloatArray, count)
	case UniformTypeFloat2Array:
		return make(Float2Array, count)
	case UniformTypeFloat3Array:
		return make(Float3Array, count)
	case UniformTypeFloat4Array:
		return make(Float4Array, count)
	case UniformTypeFloat2x2Array:
		return make(Float2x2Array, count)
	case UniformTypeFloat3x3Array:
		return make(Float3x3Array, count)
	case UniformTypeFloat4x4Array:
		return make(Float4x4Array, count)
	}
	switch {
	case t.IsTexture():
		return TextureBinding{}
	case t.IsBuffer():
		return BufferBinding{}
	}
	return nil
}

// Slot holds the current value of one uniform. Every Set bumps the
// slot version, which backends use to skip unchanged uploads.
type Slot struct {
	uniform *Uniform
	value   Value
	version uint64
}

func NewSlot(u *Uniform) *Slot {
	return &Slot{uniform: u, value: ZeroValue(u.Type, u.Count), version: 1}
}

func (s *Slot) Uniform() *Uniform {
	return s.uniform
}

func (s *Slot) Value() Value {
	return s.value
}

func (s *Slot) Version() uint64 {
	return s.version
}

// Set replaces the value. Values of another kind and arrays longer
// than the declared count are rejected with ErrValueKind.
func (s *Slot) Set(v Value) error {
	u := s.uniform
	if !u.Type.Accepts(v) {
		return errors.Wrapf(ErrValueKind, "%s: %s value for %s uniform", u.Name, typeName(v), u.Type)
	}
	if u.Type.IsArray() && Len(v) > u.Count {
		return errors.Wrapf(ErrValueKind, "%s: %d elements for %d element array", u.Name, Len(v), u.Count)
	}
	s.value = v
	s.version++
	return nil
}

func typeName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.UniformType().String()
}

// CopySlots copies into dst the values of the src slots declaring the
// same uniform. It returns the number of slots copied.
func CopySlots(dst, src []*Slot) int {
	n := 0
	for _, d := range dst {
		for _, s := range src {
			if d == s || !d.uniform.Matches(s.uniform) {
				continue
			}
			d.value = cloneValue(s.value)
			d.version++
			n++
			break
		}
	}
	return n
}

// cloneValue copies array payloads so that copied slots do not share
// backing storage.
func cloneValue(v Value) Value {
	switch v := v.(type) {
	case IntArray:
		return slices.Clone(v)
	case Int2Array:
		return slices.Clone(v)
	case Int3Array:
		return slices.Clone(v)
	case Int4Array:
		return slices.Clone(v)
	case UIntArray:
		return slices.Clone(v)
	case UInt2Array:
		return slices.Clone(v)
	case UInt3Array:
		return slices.Clone(v)
	case UInt4Array:
		return slices.Clone(v)
	case FloatArray:
		return slices.Clone(v)
	case Float2Array:
		return slices.Clone(v)
	case Float3Array:
		return slices.Clone(v)
	case Float4Array:
		return slices.Clone(v)
	case Float2x2Array:
		return slices.Clone(v)
	case Float3x3Array:
		return slices.Clone(v)
	case Float4x4Array:
		return slices.Clone(v)
	}
	return v
}
