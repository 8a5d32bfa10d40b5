// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/gputypes"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/format"
	"gioui.org/glhal/internal/gl"
)

var (
	onlySupported bool
	sortByName    bool
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the native mapping of every texture format",
	Long: `List every abstract texture format together with the internal
format, pixel format and pixel type it maps to on the configured driver
family, the driver features it needs and whether the configured driver
supports it.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	formatsCmd.Flags().BoolVar(&onlySupported, "supported", false, "list supported formats only")
	formatsCmd.Flags().BoolVar(&sortByName, "sort", false, "sort by format name")
	rootCmd.AddCommand(formatsCmd)
}

// formatRow describes one abstract texture format.
type formatRow struct {
	Format    gputypes.TextureFormat
	Kind      format.Kind
	Triple    format.Triple
	Mapped    bool
	Requires  []string
	Supported bool
}

func runFormats(cmd *cobra.Command, args []string) error {
	dev, _, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Release()
	rows := formatRows(dev.Caps())
	if onlySupported {
		rows = slices.DeleteFunc(rows, func(r formatRow) bool { return !r.Supported })
	}
	if sortByName {
		slices.SortStableFunc(rows, func(a, b formatRow) int {
			return strings.Compare(a.Format.String(), b.Format.String())
		})
	}
	return printFormats(cmd.OutOrStdout(), rows)
}

// formatRows returns a row for every abstract texture format, in
// enumeration order.
func formatRows(c hal.Caps) []formatRow {
	all := format.TextureFormats()
	rows := make([]formatRow, 0, len(all))
	for _, f := range all {
		r := formatRow{
			Format:    f,
			Kind:      format.TextureKind(f),
			Requires:  format.TextureRequires(f).Names(),
			Supported: c.SupportsTexture(f),
		}
		// Probe the mapping with every feature so that unmapped formats
		// are skipped without a log entry.
		if format.TextureSupported(f, c.GLES, ^format.Feature(0)) {
			r.Mapped = true
			r.Triple = format.TextureTriple(f, c.GLES)
		}
		rows = append(rows, r)
	}
	return rows
}

func printFormats(out io.Writer, rows []formatRow) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tKIND\tINTERNAL\tFORMAT\tTYPE\tREQUIRES\tSUPPORTED")
	for _, r := range rows {
		internal, pix, ty := "-", "-", "-"
		if r.Mapped {
			internal = enumString(r.Triple.Internal)
			pix = enumString(r.Triple.Format)
			ty = enumString(r.Triple.Type)
		}
		req := "-"
		if len(r.Requires) > 0 {
			req = strings.Join(r.Requires, ",")
		}
		kind := r.Kind.String()
		if r.Kind == 0 {
			kind = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%v\n", r.Format, kind, internal, pix, ty, req, r.Supported)
	}
	return w.Flush()
}

func enumString(e gl.Enum) string {
	if e == 0 {
		return "-"
	}
	return fmt.Sprintf("%#04x", e)
}
