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

// Package scan looks for telemetry left in an extension without modifying it.
package scan

import (
	"context"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/telemetryoff/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ScriptPattern selects the files a scan reads
const ScriptPattern = "**/*.js"

// 🔎 Finding is one signature found in one file
type Finding struct {
	File     string // slash separated, relative to the scanned root
	Category patch.Category
	Label    string
	Count    int
}

// 🔍 Scanner counts telemetry signatures in scripts
type Scanner struct {
	signatures  []patch.Signature
	concurrency int
}

// 🏭 New creates a scanner. Concurrency below 1 reads one file at a time.
func New(signatures []patch.Signature, concurrency int) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scanner{
		signatures:  signatures,
		concurrency: concurrency,
	}
}

// 🔄 Scan reads every script under root and returns the findings ordered by
// file, then by signature order.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Finding, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("scanning %s: not a directory", root)
	}

	fsys := os.DirFS(root)
	files, err := doublestar.Glob(fsys, ScriptPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("matching %s: %w", ScriptPattern, err)
	}
	sort.Strings(files)

	logger.Debug().Int("files", len(files)).Int("concurrency", s.concurrency).Msg("scanning scripts")

	perFile := make([][]Finding, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)
	for i, file := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return errors.Errorf("reading %s: %w", file, err)
			}
			perFile[i] = s.scanContent(file, string(data))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, f := range perFile {
		findings = append(findings, f...)
	}
	return findings, nil
}

func (s *Scanner) scanContent(file, content string) []Finding {
	var out []Finding
	for _, sig := range s.signatures {
		n := sig.Rule.Count(content)
		if n == 0 {
			continue
		}
		label := sig.Rule.Name
		if sig.Category == patch.CategoryEndpoints {
			label = sig.Rule.FromText
		}
		out = append(out, Finding{
			File:     file,
			Category: sig.Category,
			Label:    label,
			Count:    n,
		})
	}
	return out
}

// Total sums the counts of findings
func Total(findings []Finding) int {
	total := 0
	for _, f := range findings {
		total += f.Count
	}
	return total
}
