// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/telemetryoff/cmd/telemetryoff/commands"
	"github.com/walteh/telemetryoff/cmd/telemetryoff/opts"
	"github.com/walteh/telemetryoff/pkg/config"
	"github.com/walteh/telemetryoff/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the root command; running it patches one extension directory
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetryoff <extension-dir>",
		Short: "Disable telemetry and online features in an unpacked Browser MCP extension",
		Long: `telemetryoff patches an unpacked Browser MCP extension in place.

It disables analytics and crash reporting, points every tracking endpoint at
an unreachable local address, turns login and session checks into no-ops,
removes the _metadata integrity directory, beautifies the patched scripts and
renames the directory so the browser does not update it over the changes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, ro)
		},
		RunE: commands.RunPatch(ro),
	}

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewCheckCmd(ro),
		newVersionCmd(ro),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", "", "config file path (.yaml, .hcl or .json)")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&ro.NoColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&ro.NoFormat, "no-format", false, "write patched scripts without beautifying them")
	cmd.Flags().BoolVar(&ro.StrictAuth, "strict-auth", false, "fail when no login/session call-site matched")
}

// useColor reports whether console output is styled
func useColor(ro *opts.RootOpts) bool {
	return !ro.NoColor && !color.NoColor
}

// newLogger configures zerolog based on flags. Structured logs only appear with --debug.
func newLogger(ro *opts.RootOpts) zerolog.Logger {
	if !ro.Debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: ro.Stderr, NoColor: !useColor(ro)}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// setup loads the config and puts both loggers in the command context
func setup(cmd *cobra.Command, ro *opts.RootOpts) error {
	zlog := newLogger(ro)
	ctx := zlog.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(ro.Stdout, zlog, useColor(ro)))

	cfg, err := config.Load(ctx, ro.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	ro.Config = cfg

	zlog.Debug().Str("command", cmd.Name()).Stringer("config", cfg).Msg("configured")

	cmd.SetContext(ctx)
	return nil
}
