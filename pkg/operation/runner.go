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
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/telemetryoff/pkg/beautify"
	"github.com/walteh/telemetryoff/pkg/log"
	"github.com/walteh/telemetryoff/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a Runner
type Options struct {
	Engine     *patch.Engine      // required
	Formatter  beautify.Formatter // nil disables beautification
	Targets    []Target           // defaults to DefaultTargets
	StrictAuth bool               // fail the run when no auth call-site matched
}

// 🏃 Runner sequences a patch run: walk the targets, then housekeeping, then the summary
type Runner struct {
	proc       *Processor
	engine     *patch.Engine
	targets    []Target
	formatting bool
	strictAuth bool

	removeMetadata func(ctx context.Context, root string) (bool, error)
	rename         func(ctx context.Context, root string) (string, bool, error)
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Engine == nil {
		return nil, errors.Errorf("engine is required")
	}
	targets := opts.Targets
	if len(targets) == 0 {
		targets = DefaultTargets()
	}
	return &Runner{
		proc:       NewProcessor(opts.Engine, opts.Formatter),
		engine:     opts.Engine,
		targets:    targets,
		formatting: opts.Formatter != nil,
		strictAuth: opts.StrictAuth,

		removeMetadata: RemoveIntegrityMetadata,
		rename:         RenameForUpdates,
	}, nil
}

// 📊 Summary is the outcome of a run
type Summary struct {
	Root            string
	FinalPath       string // where the patched extension lives after the run
	Success         bool
	Walk            *WalkResult
	MetadataRemoved bool
	Renamed         bool
	AlreadyRenamed  bool
	Errors          []error // fatal and housekeeping errors, in order
}

// ExitCode maps the verdict to a process exit status
func (s *Summary) ExitCode() int {
	if s.Success {
		return 0
	}
	return 1
}

// 🏃 Run patches the extension at root. Errors never escape; they are
// reported through the context logger and recorded in the summary.
func (r *Runner) Run(ctx context.Context, root string) *Summary {
	logger := log.FromContext(ctx)
	zlog := zerolog.Ctx(ctx)

	summary := &Summary{Root: root, FinalPath: root}
	if abs, err := filepath.Abs(root); err == nil {
		summary.Root = abs
		summary.FinalPath = abs
	}

	logger.Header("disabling telemetry in " + summary.Root)
	zlog.Debug().Str("auth_build", r.engine.AuthBuild()).Bool("format", r.formatting).Msg("starting run")

	walk, err := Walk(ctx, summary.Root, r.proc, r.targets)
	if err != nil {
		summary.Errors = append(summary.Errors, err)
		logger.Errorf("extension directory not found: %s", summary.Root)
		logger.Warning("provide a valid path to the Browser MCP extension directory")
		return summary
	}
	summary.Walk = walk

	if !walk.EssentialFound {
		return summary
	}

	if walk.AuthMatches() == 0 {
		mismatch := errors.Errorf("%w: expected build %s", ErrAuthMismatch, r.engine.AuthBuild())
		logger.Warningf("no login/session call-site matched; the extension may not be build %s", r.engine.AuthBuild())
		if r.strictAuth {
			summary.Errors = append(summary.Errors, mismatch)
			logger.Error("strict auth is enabled, leaving the directory in place")
			return summary
		}
		zlog.Debug().Err(mismatch).Msg("continuing despite auth mismatch")
	}

	summary.Success = true
	logger.LogNewline()
	r.housekeeping(ctx, summary)
	r.report(ctx, summary)

	return summary
}

func (r *Runner) housekeeping(ctx context.Context, summary *Summary) {
	logger := log.FromContext(ctx)

	removed, err := r.removeMetadata(ctx, summary.Root)
	switch {
	case err != nil:
		summary.Errors = append(summary.Errors, err)
		logger.Errorf("could not remove %s: %v", MetadataDir, err)
	case removed:
		summary.MetadataRemoved = true
		logger.Successf("removed %s directory (integrity checks disabled)", MetadataDir)
	default:
		logger.Infof("%s directory not found (integrity checks already disabled)", MetadataDir)
	}

	finalPath, already, err := r.rename(ctx, summary.Root)
	summary.FinalPath = finalPath
	switch {
	case err != nil:
		summary.Errors = append(summary.Errors, err)
		logger.Errorf("could not rename extension: %v", err)
	case already:
		summary.AlreadyRenamed = true
		renamed := RenamedPath(summary.Root)
		if strings.HasSuffix(filepath.Base(summary.Root), RenameSuffix) {
			renamed = finalPath
		}
		logger.Infof("extension already renamed to prevent updates: %s", filepath.Base(renamed))
	default:
		summary.Renamed = true
		logger.Successf("extension renamed to %s", filepath.Base(finalPath))
		logger.Note("the browser will no longer update it and overwrite these changes")
	}
}

func (r *Runner) report(ctx context.Context, summary *Summary) {
	logger := log.FromContext(ctx)

	logger.LogNewline()
	logger.Success("telemetry and online features disabled; the extension no longer sends analytics or contacts its services")

	changes := []string{
		"telemetry URLs point to " + patch.LocalAuthority + " (unreachable)",
		"integrity checks disabled so the modified extension loads",
		"login/logout disabled; the extension works offline only",
	}
	if summary.Walk.Formatted() {
		changes = append(changes, "patched scripts beautified for readability")
	}
	logger.List("changes:", changes...)
	logger.Note("reload the extension in your browser for the changes to take effect")

	logger.LogNewline()
	logger.Successf("modified extension folder: %s", summary.FinalPath)
	logger.List("installation:",
		"open chrome://extensions/",
		"enable Developer mode (toggle in the top right)",
		"click Load unpacked and select "+summary.FinalPath,
		"consider disabling automatic extension updates",
	)
}
