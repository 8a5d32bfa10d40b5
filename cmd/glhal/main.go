// SPDX-License-Identifier: Unlicense OR MIT

// Command glhal describes what the OpenGL hal backend makes of a
// driver profile: its capabilities and its texture format mappings.
package main

import (
	"os"

	"gioui.org/glhal/cmd/glhal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
