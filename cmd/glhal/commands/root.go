// SPDX-License-Identifier: Unlicense OR MIT

// Package commands implements the glhal subcommands.
package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gioui.org/glhal/internal/config"
	"gioui.org/glhal/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile  string
	logLevel string
	profile  string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "glhal",
	Short: "Inspect the OpenGL hal backend",
	Long: `glhal reports how the OpenGL 2.1 / OpenGL ES 2.0 hal backend sees a
driver: the capabilities it derives and the native formats it maps the
abstract texture formats to.

The driver is an emulated profile selected by driver.profile in the
configuration, optionally overridden by driver.version,
driver.renderer, driver.extensions and driver.limits.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.glhal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "driver profile: es2 or gl21")
}

func initConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if profile != "" {
		c.Driver.Profile = profile
	}
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "validating flags")
	}
	if err := logging.Init(c.Log.Level, c.Log.File, c.Log.Console); err != nil {
		return errors.Wrap(err, "initializing logging")
	}
	cfg = c
	return nil
}
