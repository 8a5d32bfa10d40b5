// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"gioui.org/glhal/internal/config"
	"gioui.org/glhal/internal/format"
)

func testConfig(profile string) *config.Config {
	c := config.Default()
	c.Log.Console = false
	c.Driver.Profile = profile
	return c
}

func TestFormatRowsCoverEveryFormat(t *testing.T) {
	for _, profile := range []string{"es2", "gl21"} {
		dev, _, err := openDevice(testConfig(profile))
		if err != nil {
			t.Fatal(err)
		}
		caps := dev.Caps()
		rows := formatRows(caps)
		all := format.TextureFormats()
		if len(rows) != len(all) {
			t.Fatalf("%s: %d rows for %d formats", profile, len(rows), len(all))
		}
		supported := 0
		for i, r := range rows {
			if r.Format != all[i] {
				t.Errorf("%s: row %d is %v, want %v", profile, i, r.Format, all[i])
			}
			if r.Supported && !r.Mapped {
				t.Errorf("%s: %v supported without a native format", profile, r.Format)
			}
			if r.Supported {
				supported++
			}
		}
		if supported != len(caps.TextureFormats) {
			t.Errorf("%s: %d supported rows, caps lists %d", profile, supported, len(caps.TextureFormats))
		}
		dev.Release()
	}
}

func TestDriverProfile(t *testing.T) {
	c := testConfig("gl21")
	c.Driver.Renderer = "test renderer"
	c.Driver.Extensions = []string{}
	c.Driver.Limits = map[string]int{"max_texture_size": 1024}
	dev, _, err := openDevice(c)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Release()
	caps := dev.Caps()
	if caps.Renderer != "test renderer" {
		t.Errorf("renderer = %q", caps.Renderer)
	}
	if caps.Limits.MaxTextureSize != 1024 {
		t.Errorf("max texture size = %d, want 1024", caps.Limits.MaxTextureSize)
	}
	if caps.HasFeature("framebuffer-blit") {
		t.Error("blit reported without extensions")
	}

	c.Driver.Limits = map[string]int{"max_texture_depth": 1}
	if _, _, err := openDevice(c); err == nil {
		t.Error("unknown limit accepted")
	}
	c = testConfig("gl33")
	if _, _, err := openDevice(c); err == nil {
		t.Error("unknown profile accepted")
	}
}

func TestPrintFormats(t *testing.T) {
	var buf bytes.Buffer
	rows := []formatRow{
		{
			Format:    gputypes.TextureFormatRGBA8Unorm,
			Kind:      format.KindColor,
			Triple:    format.TextureTriple(gputypes.TextureFormatRGBA8Unorm, true),
			Mapped:    true,
			Supported: true,
		},
		{Format: gputypes.TextureFormatRGBA32Float, Kind: format.KindColor},
	}
	if err := printFormats(&buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if f := strings.Fields(lines[1]); f[2] != "0x1908" || f[len(f)-1] != "true" {
		t.Errorf("RGBA8 line = %q", lines[1])
	}
	if f := strings.Fields(lines[2]); f[2] != "-" || f[len(f)-1] != "false" {
		t.Errorf("unmapped line = %q", lines[2])
	}
}

func TestCapsCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"caps", "--profile", "es2", "--log-level", "error"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Renderer:", "glfake ES2", "OpenGL ES 2.0", "texture size"} {
		if !strings.Contains(out, want) {
			t.Errorf("caps output lacks %q:\n%s", want, out)
		}
	}
}

func TestRunFrames(t *testing.T) {
	c := testConfig("es2")
	c.Swapchain.Width, c.Swapchain.Height = 32, 16
	frames, err := runFrames(c, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	count := func(calls frameCalls, name string) int {
		n := 0
		for _, c := range calls {
			if c.Name == name {
				n++
			}
		}
		return n
	}
	for i, calls := range frames {
		if n := count(calls, "Clear"); n != 1 {
			t.Errorf("frame %d: %d clears", i, n)
		}
	}
	// Later frames only change the clear color.
	if len(frames[1]) != len(frames[2]) || len(frames[1]) > len(frames[0]) {
		t.Errorf("calls per frame: %d, %d, %d", len(frames[0]), len(frames[1]), len(frames[2]))
	}
	if _, err := runFrames(c, 0); err == nil {
		t.Error("zero frames accepted")
	}
	c.Swapchain.Interval = "adaptive"
	if _, err := runFrames(c, 1); err == nil {
		t.Error("unknown interval accepted")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "glhal "+version) {
		t.Errorf("version output = %q", buf.String())
	}
}
