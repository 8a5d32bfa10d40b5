// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/gl"
	"gioui.org/glhal/internal/glfake"
)

func TestPipelineAttributeMatching(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	layout := hal.InputLayoutDesc{
		Attributes: []hal.VertexAttribute{
			{Semantic: "POSITION", Format: gputypes.VertexFormatFloat32x3, Offset: 0, Slot: 0},
			{Semantic: "COLOR", SemanticIndex: 2, Format: gputypes.VertexFormatFloat32x4, Offset: 12, Slot: 0},
			{Semantic: "TEXCOORD", Format: gputypes.VertexFormatFloat32x2, Offset: 4, Slot: 1},
		},
		Bindings: []hal.VertexBinding{
			{Slot: 0, StepMode: gputypes.VertexStepModeVertex},
			{Slot: 1, Stride: 16, StepMode: gputypes.VertexStepModeVertex},
		},
	}
	p := newTestPipeline(t, b, prog, hal.DefaultRenderState(), layout).(*pipeline)
	if len(p.slots) != 2 {
		t.Fatalf("got %d vertex slots, want 2", len(p.slots))
	}
	pos := p.slots[0]
	if pos.slot != 0 || len(pos.attribs) != 1 || pos.attribs[0].location != 0 {
		t.Errorf("slot 0 = %+v", pos)
	}
	// The packed stride counts the dropped COLOR2 attribute.
	if pos.stride != 28 {
		t.Errorf("slot 0 stride = %d, want 28", pos.stride)
	}
	if tc := p.slots[1]; tc.slot != 1 || tc.stride != 16 || len(tc.attribs) != 1 || tc.attribs[0].location != 1 {
		t.Errorf("slot 1 = %+v", tc)
	}

	vb0 := newTestBuffer(t, b, gputypes.BufferUsageVertex, 280)
	vb1 := newTestBuffer(t, b, gputypes.BufferUsageVertex, 160)
	ctx.SetRenderPipeline(p)
	ctx.SetVertexBuffer(0, vb0, 8)
	ctx.SetVertexBuffer(1, vb1, 0)
	mark := f.Mark()
	ctx.Draw(3, 0)
	calls := f.Since(mark)
	if n := countCalls(calls, "VertexAttribPointer"); n != 2 {
		t.Errorf("%d attribute pointers, want 2", n)
	}
	a0, a1 := f.Attrib(0), f.Attrib(1)
	want0 := glfake.AttribPointer{Enabled: true, Buffer: vb0.(*buffer).obj.V, Size: 3, Type: gl.FLOAT, Stride: 28, Offset: 8}
	if a0 != want0 {
		t.Errorf("attribute 0 = %+v, want %+v", a0, want0)
	}
	want1 := glfake.AttribPointer{Enabled: true, Buffer: vb1.(*buffer).obj.V, Size: 2, Type: gl.FLOAT, Stride: 16, Offset: 4}
	if a1 != want1 {
		t.Errorf("attribute 1 = %+v, want %+v", a1, want1)
	}
	if f.Attrib(2).Enabled {
		t.Error("attribute 2 enabled for a dropped layout entry")
	}
}

func TestPipelineUnboundSlotDisablesAttributes(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	layout := hal.InputLayoutDesc{
		Attributes: []hal.VertexAttribute{
			{Semantic: "POSITION", Format: gputypes.VertexFormatFloat32x3, Slot: 0},
			{Semantic: "TEXCOORD", Format: gputypes.VertexFormatFloat32x2, Slot: 1},
		},
	}
	p := newTestPipeline(t, b, prog, hal.DefaultRenderState(), layout)
	ctx.SetRenderPipeline(p)
	ctx.SetVertexBuffer(0, newTestBuffer(t, b, gputypes.BufferUsageVertex, 36), 0)
	ctx.SetVertexBuffer(1, newTestBuffer(t, b, gputypes.BufferUsageVertex, 24), 0)
	ctx.Draw(3, 0)
	if !f.Attrib(1).Enabled {
		t.Fatal("attribute 1 not enabled with a buffer bound")
	}

	ctx.SetVertexBuffer(1, nil, 0)
	ctx.Draw(3, 0)
	if f.Attrib(1).Enabled {
		t.Error("attribute 1 still reads the previous buffer")
	}
	if !f.Attrib(0).Enabled {
		t.Error("attribute 0 disabled")
	}
}

func TestPipelineUnbind(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	state := hal.DefaultRenderState()
	state.Blend.Enable = true
	p := newTestPipeline(t, b, prog, state, positionLayout)
	ctx.SetRenderPipeline(p)

	mark := f.Mark()
	ctx.SetRenderPipeline(nil)
	calls := f.Since(mark)
	disable := glfake.Call{Name: "Disable", Args: []interface{}{gl.Enum(gl.BLEND)}}
	found := false
	for _, c := range calls {
		if reflect.DeepEqual(c, disable) {
			found = true
		}
	}
	if !found {
		t.Errorf("unbind issued %v, want a blend disable", calls)
	}
	if got := ctx.State().Render; !reflect.DeepEqual(got, hal.DefaultRenderState()) {
		t.Errorf("captured state = %+v after unbind", got)
	}
	if got := f.CurrentProgram(); got.Valid() {
		t.Errorf("program %v still current", got)
	}
	if ctx.RenderPipeline() != nil {
		t.Error("pipeline still bound")
	}

	mark = f.Mark()
	ctx.SetRenderPipeline(nil)
	ctx.Draw(3, 0)
	if calls := f.Since(mark); len(calls) != 0 {
		t.Errorf("second unbind and draw issued %v", calls)
	}
}

func TestPipelineRejectsInstancing(t *testing.T) {
	b, _ := newTestDevice(t, glfake.ES2())
	prog := newTestProgram(t, b, testVert, testFrag)
	rs, err := b.NewRenderState(hal.DefaultRenderState())
	if err != nil {
		t.Fatal(err)
	}
	il, err := b.NewInputLayout(hal.InputLayoutDesc{
		Attributes: []hal.VertexAttribute{{Semantic: "POSITION", Format: gputypes.VertexFormatFloat32x3}},
		Bindings:   []hal.VertexBinding{{Slot: 0, StepMode: gputypes.VertexStepModeInstance}},
	})
	if err != nil {
		t.Fatal(err)
	}
	sl, err := b.NewDescriptorSetLayout(hal.DescriptorSetLayoutDesc{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = b.NewPipeline(hal.PipelineDesc{State: rs, Program: prog, InputLayout: il, DescriptorSetLayout: sl})
	if errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("per-instance binding: %v", err)
	}
}

func TestInputLayoutValidation(t *testing.T) {
	b, _ := newTestDevice(t, glfake.ES2())
	tests := []hal.InputLayoutDesc{
		{Attributes: []hal.VertexAttribute{{Semantic: "POSITION", Format: gputypes.VertexFormatFloat32x3, Offset: -4}}},
		{Attributes: []hal.VertexAttribute{{Semantic: "POSITION", Format: gputypes.VertexFormatFloat32x3, Slot: -1}}},
		// Half float vertices need OES_vertex_half_float.
		{Attributes: []hal.VertexAttribute{{Semantic: "POSITION", Format: gputypes.VertexFormatFloat16x4}}},
		{Bindings: []hal.VertexBinding{{Slot: 0, Stride: -1}}},
	}
	for i, desc := range tests {
		if _, err := b.NewInputLayout(desc); err == nil {
			t.Errorf("layout %d accepted", i)
		}
	}
}

func TestPipelineBindIdempotent(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)
	state := hal.DefaultRenderState()
	state.Blend.Enable = true
	state.DepthWrite = false
	p := newTestPipeline(t, b, prog, state, positionLayout)
	vb := newTestBuffer(t, b, gputypes.BufferUsageVertex, 36)
	ctx.SetVertexBuffer(0, vb, 0)

	ctx.SetRenderPipeline(p)
	mark := f.Mark()
	ctx.SetRenderPipeline(p)
	if calls := f.Since(mark); len(calls) != 0 {
		t.Errorf("second bind issued %v", calls)
	}

	ctx.Draw(3, 0)
	ctx.SetRenderPipeline(p)
	mark = f.Mark()
	ctx.Draw(3, 0)
	want := []glfake.Call{{Name: "DrawArrays", Args: []interface{}{gl.Enum(gl.TRIANGLES), 0, 3}}}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("second draw issued %v, want %v", calls, want)
	}
}

func TestPipelineBlendDiff(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	ctx := newTestContext(t, b, f)
	prog := newTestProgram(t, b, testVert, testFrag)

	a := hal.DefaultRenderState()
	a.Blend.Enable = false
	bs := a
	bs.Blend = hal.BlendState{
		Enable: true,
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
	pa := newTestPipeline(t, b, prog, a, positionLayout)
	pb := newTestPipeline(t, b, prog, bs, positionLayout)

	ctx.SetRenderPipeline(pa)
	mark := f.Mark()
	ctx.SetRenderPipeline(pb)
	want := []glfake.Call{
		{Name: "Enable", Args: []interface{}{gl.Enum(gl.BLEND)}},
		{Name: "BlendFuncSeparate", Args: []interface{}{
			gl.Enum(gl.SRC_ALPHA), gl.Enum(gl.ONE_MINUS_SRC_ALPHA),
			gl.Enum(gl.ONE), gl.Enum(gl.ONE_MINUS_SRC_ALPHA),
		}},
	}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("A to B issued %v, want %v", calls, want)
	}

	mark = f.Mark()
	ctx.SetRenderPipeline(pa)
	want = []glfake.Call{{Name: "Disable", Args: []interface{}{gl.Enum(gl.BLEND)}}}
	if calls := f.Since(mark); !reflect.DeepEqual(calls, want) {
		t.Errorf("B to A issued %v, want %v", calls, want)
	}
	if ctx.State().Render.Blend.Enable {
		t.Error("captured state still blends")
	}
}

func TestRenderStateValidation(t *testing.T) {
	b, _ := newTestDevice(t, glfake.ES2())
	s := hal.DefaultRenderState()
	s.Blend.Enable = true
	s.Blend.Color.Operation = gputypes.BlendOperationMin
	if _, err := b.NewRenderState(s); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("min blending without EXT_blend_minmax: %v", err)
	}
	s = hal.DefaultRenderState()
	s.LineWidth = 0
	if _, err := b.NewRenderState(s); err == nil {
		t.Error("zero line width accepted")
	}
}
