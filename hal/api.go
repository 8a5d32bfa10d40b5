// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"github.com/pkg/errors"

	"gioui.org/glhal/internal/gl"
)

// An API carries the necessary state to create a Device for a driver.
type API interface {
	implementsAPI()
}

// OpenGL denotes the OpenGL 2.x or OpenGL ES 2.0 API.
type OpenGL struct {
	// Context is a driver context. A Context implementing the driver
	// entry points directly is used as is; otherwise a native driver
	// must be linked and the context must be current when calling
	// NewDevice.
	Context gl.Context
	// Debug checks the driver error state after every Context
	// operation and logs failures.
	Debug bool
}

// API specific device constructors.
var (
	NewOpenGLDevice func(api OpenGL) (Device, error)
)

// NewDevice creates a new Device given the api.
//
// Note that the device does not assume ownership of the resources
// contained in api; the caller must ensure the resources are valid
// until the device is released.
func NewDevice(api API) (Device, error) {
	switch api := api.(type) {
	case OpenGL:
		if NewOpenGLDevice != nil {
			return NewOpenGLDevice(api)
		}
	}
	return nil, errors.Errorf("hal: no driver available for the API %T", api)
}

func (OpenGL) implementsAPI() {}
