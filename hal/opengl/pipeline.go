// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

type renderStateObj struct {
	resource
	state hal.RenderState
}

type inputLayout struct {
	resource
	desc hal.InputLayoutDesc
}

type descriptorSetLayout struct {
	resource
	desc hal.DescriptorSetLayoutDesc
}

type pipeline struct {
	resource
	desc      hal.PipelineDesc
	state     *renderStateObj
	prog      *program
	layout    *inputLayout
	setLayout *descriptorSetLayout

	mode          gl.Enum
	slots         []vertexSlot
	usedLocations []bool
	// uniforms maps the uniforms of prog to the slots of setLayout, or
	// -1 for uniforms the layout lacks.
	uniforms []int
}

// vertexSlot holds the attribute pointers sourced from one vertex
// buffer slot.
type vertexSlot struct {
	slot    int
	stride  int
	attribs []boundAttrib
}

type boundAttrib struct {
	location   int
	size       int
	typ        gl.Enum
	normalized bool
	offset     int
}

func (b *Backend) NewRenderState(desc hal.RenderState) (hal.RenderStateObject, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	if err := validateRenderState(&desc, b.feats); err != nil {
		return nil, b.fail(hal.KindRenderState, err)
	}
	s := &renderStateObj{state: desc}
	b.register(s, hal.KindRenderState)
	return s, nil
}

func (s *renderStateObj) State() hal.RenderState {
	return s.state
}

func (s *renderStateObj) Release() {
	s.release()
}

func (b *Backend) NewInputLayout(desc hal.InputLayoutDesc) (hal.InputLayout, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	for _, a := range desc.Attributes {
		switch {
		case a.Slot < 0 || a.Offset < 0:
			return nil, b.fail(hal.KindInputLayout, errors.Errorf("attribute %s%d: negative slot or offset", a.Semantic, a.SemanticIndex))
		case !format.VertexSupported(a.Format, b.feats):
			return nil, b.fail(hal.KindInputLayout, unsupported("vertex format %v", a.Format))
		}
	}
	for _, vb := range desc.Bindings {
		if vb.Slot < 0 || vb.Stride < 0 {
			return nil, b.fail(hal.KindInputLayout, errors.Errorf("binding %d: negative slot or stride", vb.Slot))
		}
	}
	l := &inputLayout{desc: desc}
	b.register(l, hal.KindInputLayout)
	return l, nil
}

func (l *inputLayout) Desc() hal.InputLayoutDesc {
	return l.desc
}

func (l *inputLayout) Release() {
	l.release()
}

func (b *Backend) NewDescriptorSetLayout(desc hal.DescriptorSetLayoutDesc) (hal.DescriptorSetLayout, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	for i, u := range desc.Uniforms {
		if u == nil {
			return nil, b.fail(hal.KindDescriptorSetLayout, errors.Errorf("uniform %d is nil", i))
		}
	}
	l := &descriptorSetLayout{desc: desc}
	b.register(l, hal.KindDescriptorSetLayout)
	return l, nil
}

func (l *descriptorSetLayout) Desc() hal.DescriptorSetLayoutDesc {
	return l.desc
}

func (l *descriptorSetLayout) Release() {
	l.release()
}

func (b *Backend) NewPipeline(desc hal.PipelineDesc) (hal.Pipeline, error) {
	if err := b.checkLive(); err != nil {
		return nil, err
	}
	state, err := lookup[*renderStateObj](b, desc.State)
	if err != nil {
		return nil, b.fail(hal.KindPipeline, errors.Wrap(err, "render state"))
	}
	prog, err := lookup[*program](b, desc.Program)
	if err != nil {
		return nil, b.fail(hal.KindPipeline, errors.Wrap(err, "program"))
	}
	layout, err := lookup[*inputLayout](b, desc.InputLayout)
	if err != nil {
		return nil, b.fail(hal.KindPipeline, errors.Wrap(err, "input layout"))
	}
	setLayout, err := lookup[*descriptorSetLayout](b, desc.DescriptorSetLayout)
	if err != nil {
		return nil, b.fail(hal.KindPipeline, errors.Wrap(err, "descriptor set layout"))
	}
	p := &pipeline{
		desc:          desc,
		state:         state,
		prog:          prog,
		layout:        layout,
		setLayout:     setLayout,
		mode:          format.PrimitiveTopology(state.state.Topology),
		usedLocations: make([]bool, b.caps.Limits.MaxVertexAttribs),
	}
	if err := p.resolveAttributes(b.gles); err != nil {
		return nil, b.fail(hal.KindPipeline, err)
	}
	p.resolveUniforms()
	b.register(p, hal.KindPipeline)
	return p, nil
}

// resolveAttributes matches the input layout against the program
// attributes by semantic. Layout entries without a matching attribute
// are dropped.
func (p *pipeline) resolveAttributes(gles bool) error {
	bindings := make(map[int]hal.VertexBinding)
	for _, vb := range p.layout.desc.Bindings {
		if vb.StepMode == gputypes.VertexStepModeInstance {
			return unsupported("slot %d: per-instance vertex data", vb.Slot)
		}
		bindings[vb.Slot] = vb
	}
	bySlot := make(map[int]int)
	packed := make(map[int]int)
	for _, a := range p.layout.desc.Attributes {
		info := format.VertexAttrib(a.Format, gles)
		packed[a.Slot] += info.Bytes
		attr, ok := p.prog.attribute(a.Semantic, a.SemanticIndex)
		if !ok || attr.Location < 0 || attr.Location >= len(p.usedLocations) {
			logger().WithFields(logrus.Fields{
				"semantic": a.Semantic,
				"index":    a.SemanticIndex,
			}).Debug("vertex attribute not used by program")
			continue
		}
		i, ok := bySlot[a.Slot]
		if !ok {
			i = len(p.slots)
			bySlot[a.Slot] = i
			p.slots = append(p.slots, vertexSlot{slot: a.Slot})
		}
		vs := &p.slots[i]
		vs.attribs = append(vs.attribs, boundAttrib{
			location:   attr.Location,
			size:       info.Size,
			typ:        info.Type,
			normalized: info.Normalized,
			offset:     a.Offset,
		})
		p.usedLocations[attr.Location] = true
	}
	for i := range p.slots {
		vs := &p.slots[i]
		vs.stride = bindings[vs.slot].Stride
		if vs.stride == 0 {
			vs.stride = packed[vs.slot]
		}
	}
	return nil
}

func (p *pipeline) resolveUniforms() {
	p.uniforms = make([]int, len(p.prog.uniforms))
	for i, u := range p.prog.uniforms {
		p.uniforms[i] = -1
		for j, lu := range p.setLayout.desc.Uniforms {
			if u.Matches(lu) {
				p.uniforms[i] = j
				break
			}
		}
	}
}

// bindVertexBuffers points the attributes of the pipeline at the vertex
// buffers bound to c. Unless force is set, only slots whose buffer
// changed are respecified. Attribute arrays the pipeline does not use
// are disabled.
func (p *pipeline) bindVertexBuffers(c *context, force bool) {
	b := p.b
	for _, vs := range p.slots {
		vb := c.vertexBuffer(vs.slot)
		if !force && !vb.dirty {
			continue
		}
		if vb.buf == nil {
			logger().WithField("slot", vs.slot).Debug("no vertex buffer bound")
			for _, a := range vs.attribs {
				b.glstate.setVertexAttribArray(b.funcs, a.location, false)
			}
			continue
		}
		for _, a := range vs.attribs {
			b.glstate.vertexAttribPointer(b.funcs, vb.buf.obj, a.location, a.size, a.typ, a.normalized, vs.stride, vb.offset+a.offset)
			b.glstate.setVertexAttribArray(b.funcs, a.location, true)
		}
	}
	for loc, used := range p.usedLocations {
		if !used {
			b.glstate.setVertexAttribArray(b.funcs, loc, false)
		}
	}
	for i := range c.vertexBuffers {
		c.vertexBuffers[i].dirty = false
	}
}

func (p *pipeline) Desc() hal.PipelineDesc {
	return p.desc
}

func (p *pipeline) Release() {
	p.release()
}
