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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/telemetryoff/pkg/status"
)

// 🎯 FileOperation represents a processed target file for logging
type FileOperation struct {
	Path         string           // Path relative to the extension root
	State        status.FileState // Outcome
	Replacements int              // Number of rule matches
	Formatted    bool             // Whether the output was beautified
}

// 🎯 Logger prints human status lines and mirrors them to zerolog
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	useColor   bool
	mu         sync.Mutex
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger, useColor bool) *Logger {
	return &Logger{
		zlog:     zlog,
		console:  console,
		useColor: useColor,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileOperation logs a processed file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, status.FormatFileOperation(op.Path, op.State, op.Replacements, l.useColor))

	l.zlog.Info().
		Str("file", op.Path).
		Str("state", op.State.String()).
		Int("replacements", op.Replacements).
		Bool("formatted", op.Formatted).
		Msg("file operation")
}

// Operations returns the file operations logged so far
func (l *Logger) Operations() []FileOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]FileOperation, len(l.operations))
	copy(out, l.operations)
	return out
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan)
	faint := color.New(color.Faint)
	if !l.useColor {
		name.DisableColor()
		faint.DisableColor()
	}
	fmt.Fprintf(l.console, "\n%s %s\n\n", name.Sprint("telemetryoff"), faint.Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 List renders a bullet list under an optional title
func (l *Logger) List(title string, items ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if title != "" {
		fmt.Fprintln(l.console, status.Format(status.LevelNote, title, l.useColor))
	}

	bullets := make([]pterm.BulletListItem, 0, len(items))
	for _, item := range items {
		bullets = append(bullets, pterm.BulletListItem{Level: 1, Text: item})
	}
	rendered, err := pterm.DefaultBulletList.WithItems(bullets).Srender()
	if err != nil {
		l.zlog.Debug().Err(err).Msg("rendering bullet list")
		for _, item := range items {
			fmt.Fprintf(l.console, "   • %s\n", item)
		}
		return
	}
	if !l.useColor {
		rendered = pterm.RemoveColorFromString(rendered)
	}
	fmt.Fprint(l.console, rendered)
	l.zlog.Debug().Str("title", title).Strs("items", items).Msg("list")
}

func (l *Logger) line(level status.Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, status.Format(level, msg, l.useColor))

	var ev *zerolog.Event
	switch level {
	case status.LevelError:
		ev = l.zlog.Error()
	case status.LevelWarning:
		ev = l.zlog.Warn()
	default:
		ev = l.zlog.Info()
	}
	ev.Str("level_hint", level.String()).Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) { l.line(status.LevelSuccess, msg) }

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) { l.line(status.LevelWarning, msg) }

// 📝 Error logs an error message
func (l *Logger) Error(msg string) { l.line(status.LevelError, msg) }

// 📝 Info logs an info message
func (l *Logger) Info(msg string) { l.line(status.LevelInfo, msg) }

// 📝 Note logs a note message
func (l *Logger) Note(msg string) { l.line(status.LevelNote, msg) }

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Notef logs a formatted note message
func (l *Logger) Notef(format string, args ...interface{}) {
	l.Note(fmt.Sprintf(format, args...))
}
