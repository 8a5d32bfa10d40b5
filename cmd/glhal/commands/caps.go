// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gioui.org/glhal/hal"
)

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Show the capabilities of the configured driver",
	Long: `Open a device on the configured driver profile and print the
capabilities the backend derived from it: version, limits, optional
features and the usable texture and vertex formats.`,
	Args: cobra.NoArgs,
	RunE: runCaps,
}

func init() {
	rootCmd.AddCommand(capsCmd)
}

func runCaps(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Release()
	return printCaps(cmd.OutOrStdout(), dev.Caps())
}

func printCaps(out io.Writer, c hal.Caps) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	api := "OpenGL"
	if c.GLES {
		api = "OpenGL ES"
	}
	fmt.Fprintf(w, "Vendor:\t%s\n", c.Vendor)
	fmt.Fprintf(w, "Renderer:\t%s\n", c.Renderer)
	fmt.Fprintf(w, "Version:\t%s %d.%d (%s)\n", api, c.Major, c.Minor, c.Version)
	fmt.Fprintf(w, "Shading language:\t%s\n", c.ShadingLanguage)
	fmt.Fprintf(w, "Bottom-left origin:\t%v\n", c.BottomLeftOrigin)
	fmt.Fprintln(w)

	l := c.Limits
	fmt.Fprintln(w, "Limits:")
	fmt.Fprintf(w, "  texture size\t%d\n", l.MaxTextureSize)
	fmt.Fprintf(w, "  cube map size\t%d\n", l.MaxCubeMapSize)
	fmt.Fprintf(w, "  renderbuffer size\t%d\n", l.MaxRenderbufferSize)
	fmt.Fprintf(w, "  viewport\t%dx%d\n", l.MaxViewportDims[0], l.MaxViewportDims[1])
	fmt.Fprintf(w, "  vertex attributes\t%d\n", l.MaxVertexAttribs)
	fmt.Fprintf(w, "  texture units\t%d (%d combined)\n", l.MaxTextureUnits, l.MaxCombinedTextureUnits)
	fmt.Fprintf(w, "  varying vectors\t%d\n", l.MaxVaryingVectors)
	fmt.Fprintf(w, "  uniform vectors\t%d vertex, %d fragment\n", l.MaxVertexUniformVectors, l.MaxFragmentUniformVectors)
	fmt.Fprintf(w, "  anisotropy\t%g\n", l.MaxAnisotropy)
	fmt.Fprintf(w, "  color attachments\t%d\n", l.MaxColorAttachments)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Features:\t%s\n", strings.Join(c.Features, ", "))
	fmt.Fprintf(w, "Texture formats:\t%d\n", len(c.TextureFormats))
	fmt.Fprintf(w, "Vertex formats:\t%d\n", len(c.VertexFormats))
	fmt.Fprintf(w, "Extensions:\t%d\n", len(c.Extensions))
	return w.Flush()
}
