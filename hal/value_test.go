// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func TestValueTypes(t *testing.T) {
	tests := []struct {
		v    Value
		want UniformType
	}{
		{Bool(true), UniformTypeBool},
		{Int(1), UniformTypeInt},
		{Int4{1, 2, 3, 4}, UniformTypeInt4},
		{UInt3{}, UniformTypeUInt3},
		{Float(1), UniformTypeFloat},
		{Float3{1, 2, 3}, UniformTypeFloat3},
		{Float4x4(mgl32.Ident4()), UniformTypeFloat4x4},
		{IntArray{1}, UniformTypeIntArray},
		{Float2Array{{1, 2}}, UniformTypeFloat2Array},
		{Float3x3Array{mgl32.Ident3()}, UniformTypeFloat3x3Array},
		{TextureBinding{}, UniformTypeSamplerImage},
		{BufferBinding{}, UniformTypeUniformBuffer},
	}
	for _, tt := range tests {
		if got := tt.v.UniformType(); got != tt.want {
			t.Errorf("%T reports %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestZeroValueCoversTypes(t *testing.T) {
	for ty := range uniformTypeNames {
		v := ZeroValue(ty, 3)
		if ty == UniformTypeNull {
			if v != nil {
				t.Errorf("null uniform has value %v", v)
			}
			continue
		}
		if !ty.Accepts(v) {
			t.Errorf("%v does not accept its zero value %T", ty, v)
		}
		if ty.IsArray() && Len(v) != 3 {
			t.Errorf("%v zero value has %d elements", ty, Len(v))
		}
	}
}

func TestSlotRejectsWrongKind(t *testing.T) {
	s := NewSlot(&Uniform{Name: "color", Type: UniformTypeFloat4, Count: 1})
	v := s.Version()
	if err := s.Set(Float3{1, 2, 3}); errors.Cause(err) != ErrValueKind {
		t.Fatalf("Set(Float3) = %v", err)
	}
	if s.Version() != v {
		t.Error("rejected value bumped the version")
	}
	if err := s.Set(Float4{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if s.Version() == v {
		t.Error("version unchanged after Set")
	}
	if got := s.Value().(Float4); got != (Float4{1, 2, 3, 4}) {
		t.Errorf("value %v", got)
	}
}

func TestSlotArrayLength(t *testing.T) {
	s := NewSlot(&Uniform{Name: "lights", Type: UniformTypeFloat4Array, Count: 2})
	if err := s.Set(Float4Array{{}, {}, {}}); err == nil {
		t.Error("accepted 3 elements for a 2 element array")
	}
	if err := s.Set(Float4Array{{1, 1, 1, 1}}); err != nil {
		t.Error(err)
	}
}

func TestSlotTextureKinds(t *testing.T) {
	for _, ty := range []UniformType{UniformTypeSamplerImage, UniformTypeCombinedImageSampler, UniformTypeStorageImage} {
		s := NewSlot(&Uniform{Name: "tex", Type: ty, Count: 1})
		if err := s.Set(TextureBinding{}); err != nil {
			t.Errorf("%v: %v", ty, err)
		}
		if err := s.Set(Float(1)); err == nil {
			t.Errorf("%v accepted a float", ty)
		}
	}
}

func TestCopySlots(t *testing.T) {
	a := &Uniform{Name: "a", Type: UniformTypeFloat3, Location: 0, Count: 1}
	tex := &Uniform{Name: "tex", Type: UniformTypeSamplerImage, Location: 1, Unit: 0, Count: 1}
	arr := &Uniform{Name: "weights", Type: UniformTypeFloatArray, Location: 2, Count: 2}
	src := []*Slot{NewSlot(a), NewSlot(tex), NewSlot(arr)}
	src[0].Set(Float3{1, 2, 3})
	src[2].Set(FloatArray{.5, .25})

	// Same declarations from another program, in another order.
	a2 := *a
	a2.Location = 7
	tex2 := *tex
	other := &Uniform{Name: "other", Type: UniformTypeInt, Location: 3, Count: 1}
	arr2 := *arr
	dst := []*Slot{NewSlot(other), NewSlot(&tex2), NewSlot(&a2), NewSlot(&arr2)}
	dst[0].Set(Int(42))

	if n := CopySlots(dst, src); n != 3 {
		t.Errorf("copied %d slots, want 3", n)
	}
	if got := dst[2].Value(); got != Value(Float3{1, 2, 3}) {
		t.Errorf("a = %v", got)
	}
	if got := dst[0].Value(); got != Value(Int(42)) {
		t.Errorf("unrelated slot changed to %v", got)
	}
	src[2].Value().(FloatArray)[0] = 9
	if got := dst[3].Value().(FloatArray); got[0] != .5 {
		t.Errorf("copied array shares storage: %v", got)
	}
}

func TestUniformMatches(t *testing.T) {
	u := &Uniform{Name: "m", Type: UniformTypeFloat4x4, Location: 1, Count: 1}
	v := &Uniform{Name: "m", Type: UniformTypeFloat4x4, Location: 5, Count: 1}
	w := &Uniform{Name: "m", Type: UniformTypeFloat3x3, Location: 1, Count: 1}
	if !u.Matches(v) {
		t.Error("locations affect identity")
	}
	if u.Matches(w) || u.Matches(nil) {
		t.Error("different declarations match")
	}
}
