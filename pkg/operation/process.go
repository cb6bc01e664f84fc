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
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/telemetryoff/pkg/beautify"
	"github.com/walteh/telemetryoff/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileOutcome describes one processed script
type FileOutcome struct {
	Path         string
	Modified     bool // the engine changed the content
	Formatted    bool // the formatter output was written
	Replacements int
	Counts       map[patch.Category]int
	FormatErr    error // wraps ErrFormat when the formatter gave up
}

// ⚙️ Processor patches one script on disk
type Processor struct {
	engine    *patch.Engine
	formatter beautify.Formatter
}

// 🏭 NewProcessor creates a processor. A nil formatter writes the patched text as is.
func NewProcessor(engine *patch.Engine, formatter beautify.Formatter) *Processor {
	return &Processor{
		engine:    engine,
		formatter: formatter,
	}
}

// 🔄 Process reads path, runs the engine, optionally formats, and writes the
// result back with the original permission bits.
func (p *Processor) Process(ctx context.Context, path string) (FileOutcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()
	outcome := FileOutcome{Path: path}
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return outcome, errors.Errorf("%s not found at %s: %w", name, path, ErrMissingFile)
		}
		return outcome, errors.Errorf("%w: %s: %v", ErrReadWrite, name, err)
	}
	if info.IsDir() {
		return outcome, errors.Errorf("%w: %s: is a directory", ErrReadWrite, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return outcome, errors.Errorf("%w: %s: %v", ErrReadWrite, name, err)
	}
	if !utf8.Valid(data) {
		return outcome, errors.Errorf("%w: %s: content is not valid UTF-8", ErrReadWrite, name)
	}

	result := p.engine.Apply(string(data))
	outcome.Modified = result.Modified
	outcome.Replacements = result.Total()
	outcome.Counts = result.Counts

	logger.Debug().
		Int("replacements", outcome.Replacements).
		Bool("modified", outcome.Modified).
		Msg("applied patch rules")

	content := result.Content
	if p.formatter != nil {
		formatted, err := p.formatter.Format(ctx, content)
		if err != nil {
			outcome.FormatErr = errors.Errorf("%w: %s: %v", ErrFormat, name, err)
			logger.Debug().Err(err).Msg("formatter failed, keeping unformatted content")
		} else {
			content = formatted
			outcome.Formatted = true
		}
	}

	if err := writeFileAtomic(path, []byte(content), info.Mode().Perm()); err != nil {
		return outcome, errors.Errorf("%w: %s: %v", ErrReadWrite, name, err)
	}

	return outcome, nil
}

// writeFileAtomic replaces path through a sibling temp file so an interrupted
// run never leaves a truncated script behind
func writeFileAtomic(path string, content []byte, perm os.FileMode) error {
	tempPath := path + ".telemetryoff.tmp"

	if err := os.WriteFile(tempPath, content, perm); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	// WriteFile is subject to the umask
	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
