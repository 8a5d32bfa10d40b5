// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "testing"

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in   string
		ver  [2]int
		gles bool
	}{
		{"2.1 Mesa 23.1.4", [2]int{2, 1}, false},
		{"4.6.0 NVIDIA 535.104.05", [2]int{4, 6}, false},
		{"OpenGL ES 2.0 build 1.15@5090381", [2]int{2, 0}, true},
		{"OpenGL ES 3.2 V@0502.0", [2]int{3, 2}, true},
		{"WebGL 1.0 (OpenGL ES 2.0 Chromium)", [2]int{2, 0}, true},
	}
	for _, test := range tests {
		ver, gles, err := ParseGLVersion(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if ver != test.ver || gles != test.gles {
			t.Errorf("%q: got %v, %v, want %v, %v", test.in, ver, gles, test.ver, test.gles)
		}
	}
	for _, bad := range []string{"", "OpenGL ES-CM 1.1", "unknown"} {
		if _, _, err := ParseGLVersion(bad); err == nil {
			t.Errorf("%q parsed", bad)
		}
	}
}

func TestHasExtension(t *testing.T) {
	exts := ParseExtensions(" GL_OES_depth24  GL_EXT_sRGB\nGL_OES_rgb8_rgba8 ")
	if len(exts) != 3 {
		t.Fatalf("got %d extensions: %q", len(exts), exts)
	}
	if !HasExtension(exts, "GL_EXT_sRGB") {
		t.Error("GL_EXT_sRGB not found")
	}
	for _, partial := range []string{"GL_OES_depth", "GL_OES_depth24 ", "sRGB"} {
		if HasExtension(exts, partial) {
			t.Errorf("%q matched a longer token", partial)
		}
	}
}
