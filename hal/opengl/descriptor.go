// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/gl"
)

type descriptorSet struct {
	resource
	desc   hal.DescriptorSetDesc
	layout *descriptorSetLayout
	slots  []*hal.Slot
	byName map[string]*hal.Slot
}

func (b *Backend) NewDescriptorSet(desc hal.DescriptorSetDesc) (hal.DescriptorSet, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	layout, err := lookup[*descriptorSetLayout](b, desc.Layout)
	if err != nil {
		return nil, b.fail(hal.KindDescriptorSet, errors.Wrap(err, "layout"))
	}
	s := &descriptorSet{
		desc:   desc,
		layout: layout,
		byName: make(map[string]*hal.Slot),
	}
	for _, u := range layout.desc.Uniforms {
		slot := hal.NewSlot(u)
		s.slots = append(s.slots, slot)
		s.byName[u.Name] = slot
		if u.SamplerName != "" {
			s.byName[u.Name+samplerSeparator+u.SamplerName] = slot
		}
	}
	b.register(s, hal.KindDescriptorSet)
	return s, nil
}

func (s *descriptorSet) Desc() hal.DescriptorSetDesc {
	return s.desc
}

func (s *descriptorSet) Slots() []*hal.Slot {
	return s.slots
}

func (s *descriptorSet) Slot(name string) *hal.Slot {
	return s.byName[name]
}

func (s *descriptorSet) Copy(sets ...hal.DescriptorSet) {
	for _, set := range sets {
		src, err := lookup[*descriptorSet](s.b, set)
		if err != nil {
			logger().WithError(err).Warn("descriptor set copy ignored")
			continue
		}
		hal.CopySlots(s.slots, src.slots)
	}
}

func (s *descriptorSet) Release() {
	if s.release() {
		for _, p := range s.b.arena.Live() {
			if p, ok := p.(*program); ok && p.set == s {
				p.set = nil
			}
		}
	}
}

// apply uploads the slots of s to the program of p. Slots are skipped
// when their version matches the version last uploaded to the program,
// unless force is set or another set was applied to the program since.
func (s *descriptorSet) apply(p *pipeline, force bool) {
	b := s.b
	prog := p.prog
	if prog.set != s {
		prog.set = s
		force = true
	}
	for i, u := range prog.uniforms {
		si := p.uniforms[i]
		if si < 0 || si >= len(s.slots) {
			continue
		}
		slot := s.slots[si]
		if u.Type.IsTexture() {
			// Texture units are shared by every program.
			b.bindTextureSlot(u, slot.Value())
			continue
		}
		if !force && prog.versions[i] == slot.Version() {
			continue
		}
		prog.versions[i] = slot.Version()
		if err := setUniform(b.funcs, gl.Uniform{V: u.Location}, slot.Value()); err != nil {
			logger().WithFields(logrus.Fields{
				"uniform": u.Name,
				"type":    u.Type.String(),
			}).Warn(err)
		}
	}
}

func (b *Backend) bindTextureSlot(u *hal.Uniform, v hal.Value) {
	tb, ok := v.(hal.TextureBinding)
	if !ok || tb.Texture == nil {
		return
	}
	t, err := lookup[*texture](b, tb.Texture)
	if err != nil {
		logger().WithField("uniform", u.Name).WithError(err).Warn("texture binding ignored")
		return
	}
	b.glstate.bindTexture(b.funcs, u.Unit, t.target, t.obj)
	if tb.Sampler == nil {
		return
	}
	smp, err := lookup[*sampler](b, tb.Sampler)
	if err != nil {
		logger().WithField("uniform", u.Name).WithError(err).Warn("sampler binding ignored")
		return
	}
	if smp.desc != t.sampler {
		t.applySamplerState(b, smp.desc)
	}
}

// setUniform uploads v to the uniform at loc of the current program.
func setUniform(f gl.Functions, loc gl.Uniform, v hal.Value) error {
	switch v := v.(type) {
	case hal.Bool:
		x := 0
		if v {
			x = 1
		}
		f.Uniform1i(loc, x)
	case hal.Int:
		f.Uniform1iv(loc, []int32{int32(v)})
	case hal.Int2:
		f.Uniform2iv(loc, v[:])
	case hal.Int3:
		f.Uniform3iv(loc, v[:])
	case hal.Int4:
		f.Uniform4iv(loc, v[:])
	case hal.Float:
		f.Uniform1fv(loc, []float32{float32(v)})
	case hal.Float2:
		f.Uniform2fv(loc, v[:])
	case hal.Float3:
		f.Uniform3fv(loc, v[:])
	case hal.Float4:
		f.Uniform4fv(loc, v[:])
	case hal.Float2x2:
		f.UniformMatrix2fv(loc, v[:])
	case hal.Float3x3:
		f.UniformMatrix3fv(loc, v[:])
	case hal.Float4x4:
		f.UniformMatrix4fv(loc, v[:])
	case hal.IntArray:
		f.Uniform1iv(loc, v)
	case hal.Int2Array:
		f.Uniform2iv(loc, flattenInts(len(v), 2, func(i int) []int32 { return v[i][:] }))
	case hal.Int3Array:
		f.Uniform3iv(loc, flattenInts(len(v), 3, func(i int) []int32 { return v[i][:] }))
	case hal.Int4Array:
		f.Uniform4iv(loc, flattenInts(len(v), 4, func(i int) []int32 { return v[i][:] }))
	case hal.FloatArray:
		f.Uniform1fv(loc, v)
	case hal.Float2Array:
		f.Uniform2fv(loc, flattenFloats(len(v), 2, func(i int) []float32 { return v[i][:] }))
	case hal.Float3Array:
		f.Uniform3fv(loc, flattenFloats(len(v), 3, func(i int) []float32 { return v[i][:] }))
	case hal.Float4Array:
		f.Uniform4fv(loc, flattenFloats(len(v), 4, func(i int) []float32 { return v[i][:] }))
	case hal.Float2x2Array:
		f.UniformMatrix2fv(loc, flattenFloats(len(v), 4, func(i int) []float32 { return v[i][:] }))
	case hal.Float3x3Array:
		f.UniformMatrix3fv(loc, flattenFloats(len(v), 9, func(i int) []float32 { return v[i][:] }))
	case hal.Float4x4Array:
		f.UniformMatrix4fv(loc, flattenFloats(len(v), 16, func(i int) []float32 { return v[i][:] }))
	case hal.UInt, hal.UInt2, hal.UInt3, hal.UInt4,
		hal.UIntArray, hal.UInt2Array, hal.UInt3Array, hal.UInt4Array:
		return errors.Wrap(hal.ErrUnsupported, "unsigned uniforms")
	case hal.BufferBinding:
		return errors.Wrap(hal.ErrUnsupported, "buffer uniforms")
	case nil:
	default:
		panic(errors.Errorf("unknown uniform value %T", v))
	}
	return nil
}

func flattenFloats(n, stride int, elem func(i int) []float32) []float32 {
	out := make([]float32, 0, n*stride)
	for i := 0; i < n; i++ {
		out = append(out, elem(i)...)
	}
	return out
}

func flattenInts(n, stride int, elem func(i int) []int32) []int32 {
	out := make([]int32, 0, n*stride)
	for i := 0; i < n; i++ {
		out = append(out, elem(i)...)
	}
	return out
}
