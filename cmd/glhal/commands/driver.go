// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"github.com/pkg/errors"

	"gioui.org/glhal/hal"
	_ "gioui.org/glhal/hal/opengl"
	"gioui.org/glhal/internal/config"
	"gioui.org/glhal/internal/gl"
	"gioui.org/glhal/internal/glfake"
	"gioui.org/glhal/internal/logging"
)

// limitNames maps the driver.limits keys to the limits they override.
var limitNames = map[string]gl.Enum{
	"max_texture_size":                 gl.MAX_TEXTURE_SIZE,
	"max_cube_map_texture_size":        gl.MAX_CUBE_MAP_TEXTURE_SIZE,
	"max_renderbuffer_size":            gl.MAX_RENDERBUFFER_SIZE,
	"max_vertex_attribs":               gl.MAX_VERTEX_ATTRIBS,
	"max_texture_image_units":          gl.MAX_TEXTURE_IMAGE_UNITS,
	"max_combined_texture_image_units": gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS,
	"max_varying_vectors":              gl.MAX_VARYING_VECTORS,
	"max_vertex_uniform_vectors":       gl.MAX_VERTEX_UNIFORM_VECTORS,
	"max_fragment_uniform_vectors":     gl.MAX_FRAGMENT_UNIFORM_VECTORS,
}

// driverProfile returns the emulated driver described by c.
func driverProfile(c config.DriverConfig) (glfake.Profile, error) {
	var p glfake.Profile
	switch c.Profile {
	case "es2":
		p = glfake.ES2()
	case "gl21":
		p = glfake.Desktop21()
	default:
		return p, errors.Errorf("unknown driver profile %q", c.Profile)
	}
	if c.Version != "" {
		p.Version = c.Version
	}
	if c.Renderer != "" {
		p.Renderer = c.Renderer
	}
	if c.Extensions != nil {
		p.Extensions = c.Extensions
	}
	if len(c.Limits) > 0 {
		p.Limits = make(map[gl.Enum]int)
	}
	for name, v := range c.Limits {
		pname, ok := limitNames[name]
		if !ok {
			return p, errors.Errorf("unknown driver limit %q", name)
		}
		p.Limits[pname] = v
	}
	return p, nil
}

// openDevice creates a device on the emulated driver of c. The caller
// releases it.
func openDevice(c *config.Config) (hal.Device, *glfake.Functions, error) {
	p, err := driverProfile(c.Driver)
	if err != nil {
		return nil, nil, err
	}
	logging.For("glhal").WithField("profile", c.Driver.Profile).Debug("opening device")
	f := glfake.New(p)
	dev, err := hal.NewDevice(hal.OpenGL{Context: f, Debug: c.Debug})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening the %s driver", c.Driver.Profile)
	}
	return dev, f, nil
}

// swapInterval parses the swapchain.interval setting.
func swapInterval(s string) (hal.SwapInterval, error) {
	switch s {
	case "free":
		return hal.IntervalFree, nil
	case "vsync":
		return hal.IntervalVsync, nil
	case "vsync2":
		return hal.IntervalVsync2, nil
	}
	return 0, errors.Errorf("unknown swap interval %q", s)
}
