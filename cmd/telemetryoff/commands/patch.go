package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/telemetryoff/cmd/telemetryoff/opts"
	"github.com/walteh/telemetryoff/pkg/beautify"
	"github.com/walteh/telemetryoff/pkg/operation"
	"github.com/walteh/telemetryoff/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// RunPatch is the root command's action: patch the extension directory in args[0]
func RunPatch(opts *opts.RootOpts) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		engine, err := patch.NewEngine(patch.WithExtraRedirects(opts.Config.ExtraRedirects()...))
		if err != nil {
			return errors.Errorf("creating patch engine: %w", err)
		}

		var formatter beautify.Formatter
		if opts.FormatEnabled() {
			formatter = beautify.New(beautify.DefaultOptions())
		}

		runner, err := operation.NewRunner(operation.Options{
			Engine:     engine,
			Formatter:  formatter,
			StrictAuth: opts.StrictAuthEnabled(),
		})
		if err != nil {
			return errors.Errorf("creating runner: %w", err)
		}

		summary := runner.Run(ctx, args[0])
		opts.ExitCode = summary.ExitCode()

		return nil
	}
}
