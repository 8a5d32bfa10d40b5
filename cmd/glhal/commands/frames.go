// SPDX-License-Identifier: Unlicense OR MIT

package commands

import (
	"fmt"
	"io"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gioui.org/glhal/hal"
	"gioui.org/glhal/internal/config"
	"gioui.org/glhal/internal/glfake"
)

var frameCount int

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Clear and present frames on the configured driver",
	Long: `Create a swapchain of the configured size and swap interval on the
emulated driver, then clear and present a number of frames, printing
the driver calls each frame issued. Frames after the first only issue
the calls the state cache could not elide.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		calls, err := runFrames(cfg, frameCount)
		if err != nil {
			return err
		}
		printFrames(cmd.OutOrStdout(), calls)
		return nil
	},
}

func init() {
	framesCmd.Flags().IntVarP(&frameCount, "count", "n", 3, "number of frames")
	rootCmd.AddCommand(framesCmd)
}

// frameCalls lists the driver calls of one frame.
type frameCalls []glfake.Call

// runFrames presents count cleared frames and returns the calls of
// each.
func runFrames(c *config.Config, count int) ([]frameCalls, error) {
	if count <= 0 {
		return nil, errors.Errorf("invalid frame count %d", count)
	}
	interval, err := swapInterval(c.Swapchain.Interval)
	if err != nil {
		return nil, err
	}
	dev, f, err := openDevice(c)
	if err != nil {
		return nil, err
	}
	defer dev.Release()
	sc, err := dev.NewSwapchain(hal.SwapchainDesc{
		Surface:     glfake.NewSurface(f),
		Width:       c.Swapchain.Width,
		Height:      c.Swapchain.Height,
		Interval:    interval,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		return nil, err
	}
	defer sc.Release()
	ctx, err := dev.NewContext(hal.ContextDesc{Swapchain: sc})
	if err != nil {
		return nil, err
	}
	defer ctx.Release()

	frames := make([]frameCalls, 0, count)
	for i := 0; i < count; i++ {
		mark := f.Mark()
		ctx.SetFramebuffer(nil)
		shade := float64(i%2) * 0.5
		ctx.ClearFramebuffer(hal.ClearAll, gputypes.Color{R: shade, G: shade, B: shade, A: 1}, 1, 0)
		if err := ctx.Present(); err != nil {
			return frames, errors.Wrapf(err, "frame %d", i)
		}
		frames = append(frames, append(frameCalls(nil), f.Since(mark)...))
	}
	return frames, nil
}

func printFrames(out io.Writer, frames []frameCalls) {
	for i, calls := range frames {
		fmt.Fprintf(out, "frame %d: %d driver calls\n", i, len(calls))
		for _, c := range calls {
			fmt.Fprintf(out, "  %s%v\n", c.Name, c.Args)
		}
	}
}
