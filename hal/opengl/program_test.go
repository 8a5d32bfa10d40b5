// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/glfake"
	"gioui.org/shader"
)

func TestSemanticOf(t *testing.T) {
	tests := []struct {
		name string
		sem  string
		idx  int
	}{
		{"POSITION0", "POSITION", 0},
		{"in_POSITION0", "POSITION", 0},
		{"a_tex_COORD12", "COORD", 12},
		{"normal", "normal", 0},
		{"in_normal", "normal", 0},
		{"COLOR", "COLOR", 0},
		{"123", "123", 0},
		{"v_", "v_", 0},
		{"v_7", "v_7", 0},
		{"_TEXCOORD3", "TEXCOORD", 3},
		{"a_P99999999999999999999", "a_P99999999999999999999", 0},
	}
	for _, test := range tests {
		sem, idx := semanticOf(test.name)
		if sem != test.sem || idx != test.idx {
			t.Errorf("semanticOf(%q) = %q, %d, want %q, %d", test.name, sem, idx, test.sem, test.idx)
		}
	}
}

func TestProgramReflection(t *testing.T) {
	b, _ := newTestDevice(t, glfake.ES2())
	p := newTestProgram(t, b, testVert, testFrag)
	attrs := p.Attributes()
	if len(attrs) != 2 {
		t.Fatalf("got %d attributes, want 2", len(attrs))
	}
	want := []hal.Attribute{
		{Name: "in_POSITION0", Semantic: "POSITION", Format: gputypes.VertexFormatFloat32x3, Location: 0},
		{Name: "in_TEXCOORD0", Semantic: "TEXCOORD", Format: gputypes.VertexFormatFloat32x2, Location: 1},
	}
	for i, a := range attrs {
		if a != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, a, want[i])
		}
	}
	types := map[string]hal.UniformType{
		"mvp":    hal.UniformTypeFloat4x4,
		"tint":   hal.UniformTypeFloat3,
		"albedo": hal.UniformTypeSamplerImage,
	}
	if n := len(p.Uniforms()); n != len(types) {
		t.Fatalf("got %d uniforms, want %d", n, len(types))
	}
	for _, u := range p.Uniforms() {
		if types[u.Name] != u.Type {
			t.Errorf("uniform %s has type %v, want %v", u.Name, u.Type, types[u.Name])
		}
		if u.Type.IsTexture() != (u.Unit >= 0) {
			t.Errorf("uniform %s has unit %d", u.Name, u.Unit)
		}
	}
}

func TestProgramAnnotatedSemantics(t *testing.T) {
	const vert = `
attribute vec4 pos;
attribute vec4 v_7;
void main() {}
`
	b, _ := newTestDevice(t, glfake.ES2())
	p := newTestProgram(t, b, vert, testFrag,
		shader.InputLocation{Name: "pos", Location: 3, Semantic: "POSITION", SemanticIndex: 1},
	)
	got := make(map[string]hal.Attribute)
	for _, a := range p.Attributes() {
		got[a.Name] = a
	}
	if a := got["pos"]; a.Semantic != "POSITION" || a.SemanticIndex != 1 || a.Location != 3 {
		t.Errorf("annotated attribute = %+v", a)
	}
	// Unannotated names fall back to the name heuristic.
	if a := got["v_7"]; a.Semantic != "v_7" || a.SemanticIndex != 0 {
		t.Errorf("heuristic attribute = %+v", a)
	}
}

func TestProgramSamplerSuffix(t *testing.T) {
	const frag = `
uniform sampler2D albedo_X_linear;
uniform samplerCube sky;
uniform sampler2D shadows[2];
void main() {}
`
	b, f := newTestDevice(t, glfake.ES2())
	p := newTestProgram(t, b, testVert, frag)
	byName := make(map[string]*hal.Uniform)
	for _, u := range p.Uniforms() {
		byName[u.Name] = u
	}
	if u := byName["albedo"]; u == nil || u.SamplerName != "linear" || u.Unit != 0 {
		t.Errorf("albedo = %+v", u)
	}
	if u := byName["sky"]; u == nil || u.Unit != 1 {
		t.Errorf("sky = %+v", u)
	}
	if u := byName["shadows"]; u == nil || u.Type != hal.UniformTypeNull {
		t.Errorf("sampler array = %+v", u)
	}
	prog := p.(*program)
	if v, ok := f.UniformValue(prog.obj, "sky").([]int32); !ok || v[0] != 1 {
		t.Errorf("sky unit uniform = %v", f.UniformValue(prog.obj, "sky"))
	}
}

func TestProgramFailures(t *testing.T) {
	b, f := newTestDevice(t, glfake.ES2())
	if _, err := b.NewShader(hal.ShaderDesc{
		Stage:  gputypes.ShaderStageVertex,
		Source: shader.Sources{Name: "bad.vert", GLSL100ES: "#error\n"},
	}); err == nil {
		t.Error("compiled a broken shader")
	}
	if _, err := b.NewShader(hal.ShaderDesc{
		Stage:  gputypes.ShaderStageCompute,
		Source: shader.Sources{Name: "x.comp", GLSL100ES: "void main() {}"},
	}); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("compute shader: %v", err)
	}
	if _, err := b.NewShader(hal.ShaderDesc{
		Stage:  gputypes.ShaderStageVertex,
		Source: shader.Sources{Name: "glsl150-only.vert", GLSL150: "void main() {}"},
	}); errors.Cause(err) != hal.ErrUnsupported {
		t.Errorf("shader without an ES source: %v", err)
	}
	f.FailLink = true
	vs, err := b.NewShader(hal.ShaderDesc{
		Stage:  gputypes.ShaderStageVertex,
		Source: shader.Sources{Name: "test.vert", GLSL100ES: testVert},
	})
	if err != nil {
		t.Fatal(err)
	}
	fs, err := b.NewShader(hal.ShaderDesc{
		Stage:  gputypes.ShaderStageFragment,
		Source: shader.Sources{Name: "test.frag", GLSL100ES: testFrag},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.NewProgram(hal.ProgramDesc{Shaders: []hal.Shader{vs, fs}}); err == nil {
		t.Error("link failure not reported")
	}
	if _, err := b.NewProgram(hal.ProgramDesc{Shaders: []hal.Shader{vs}}); err == nil {
		t.Error("program without a fragment shader")
	}
	if _, _, _, _, programs := f.Live(); programs != 0 {
		t.Errorf("%d programs left after failures", programs)
	}
}
