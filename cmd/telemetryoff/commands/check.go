package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/telemetryoff/cmd/telemetryoff/opts"
	"github.com/walteh/telemetryoff/pkg/log"
	"github.com/walteh/telemetryoff/pkg/patch"
	"github.com/walteh/telemetryoff/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <extension-dir>",
		Short: "Report telemetry left in an extension without changing it",
		Long: `Check reads every script under the extension directory and reports
enabled analytics or crash-reporting flags, analytics API keys and tracking
endpoints that a patch run would rewrite. It never writes.

Exits with status 1 when anything is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			scanner := scan.New(patch.Signatures(opts.Config.ExtraRedirects()...), opts.Config.ScanConcurrency)
			findings, err := scanner.Scan(ctx, args[0])
			if err != nil {
				return errors.Errorf("checking %s: %w", args[0], err)
			}

			if len(findings) == 0 {
				logger.Success("no telemetry signatures found")
				opts.ExitCode = 0
				return nil
			}

			table, err := findingsTable(findings, !opts.NoColor)
			if err != nil {
				return errors.Errorf("rendering findings: %w", err)
			}
			fmt.Fprint(opts.Stdout, table)

			logger.Warningf("%d telemetry signatures found in %d files", scan.Total(findings), countFiles(findings))
			opts.ExitCode = 1
			return nil
		},
	}

	return cmd
}

func findingsTable(findings []scan.Finding, useColor bool) (string, error) {
	data := pterm.TableData{{"File", "Category", "Signature", "Count"}}
	for _, f := range findings {
		data = append(data, []string{f.File, f.Category.String(), f.Label, strconv.Itoa(f.Count)})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	if !useColor {
		out = pterm.RemoveColorFromString(out)
	}
	return out + "\n", nil
}

func countFiles(findings []scan.Finding) int {
	seen := make(map[string]struct{})
	for _, f := range findings {
		seen[f.File] = struct{}{}
	}
	return len(seen)
}
