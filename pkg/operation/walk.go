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

package operation

import (
	"context"
	"os"

	"github.com/walteh/telemetryoff/pkg/log"
	"github.com/walteh/telemetryoff/pkg/patch"
	"github.com/walteh/telemetryoff/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileReport is the walker's record of one target
type FileReport struct {
	Target    Target
	Found     bool
	Processed bool // read, patched and written back
	Outcome   FileOutcome
	Err       error
}

// 📊 WalkResult aggregates the reports of every target in walk order
type WalkResult struct {
	Files          []FileReport
	EssentialFound bool     // at least one required target was processed
	Errors         []string // ordered error log
}

// AuthMatches counts the auth call-sites rewritten across processed files
func (w *WalkResult) AuthMatches() int {
	total := 0
	for _, f := range w.Files {
		if f.Processed {
			total += f.Outcome.Counts[patch.CategoryAuth]
		}
	}
	return total
}

// Formatted reports whether any processed file was beautified
func (w *WalkResult) Formatted() bool {
	for _, f := range w.Files {
		if f.Processed && f.Outcome.Formatted {
			return true
		}
	}
	return false
}

// 🚶 Walk processes the targets under root in order. It fails fast with
// ErrMissingRoot when root is not a directory; every other problem is recorded
// in the result.
func Walk(ctx context.Context, root string, proc *Processor, targets []Target) (*WalkResult, error) {
	logger := log.FromContext(ctx)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.Errorf("%w: %s", ErrMissingRoot, root)
	}

	result := &WalkResult{}
	for _, target := range targets {
		path := target.Path(root)
		report := FileReport{Target: target}

		if !target.Required {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				logger.Infof("%s not found at %s (this is normal if it carries no telemetry URLs)", target.Name, path)
				logger.LogFileOperation(ctx, log.FileOperation{Path: target.RelPath, State: status.FileSkipped})
				result.Files = append(result.Files, report)
				continue
			}
		}

		outcome, err := proc.Process(ctx, path)
		report.Outcome = outcome
		if err != nil {
			report.Err = err
			report.Found = !errors.Is(err, ErrMissingFile)
			result.Errors = append(result.Errors, err.Error())

			state := status.FileFailed
			if !report.Found {
				state = status.FileMissing
			}
			logger.LogFileOperation(ctx, log.FileOperation{Path: target.RelPath, State: state})
			logger.Error(err.Error())
			result.Files = append(result.Files, report)
			continue
		}

		report.Found = true
		report.Processed = true
		if target.Required {
			result.EssentialFound = true
		}
		if outcome.FormatErr != nil {
			logger.Warningf("could not beautify %s, wrote it unformatted: %v", target.Name, outcome.FormatErr)
		}
		logger.LogFileOperation(ctx, log.FileOperation{
			Path:         target.RelPath,
			State:        status.FilePatched,
			Replacements: outcome.Replacements,
			Formatted:    outcome.Formatted,
		})
		result.Files = append(result.Files, report)
	}

	if !result.EssentialFound {
		logger.LogNewline()
		logger.Error("no essential files were found or modified")
		logger.List("required files:", RequiredPaths(targets)...)
		if len(result.Errors) > 0 {
			logger.List("errors encountered:", result.Errors...)
		}
		logger.Warning("point telemetryoff at a Browser MCP extension directory containing the required files")
	}

	return result, nil
}
