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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 12 // Width for status text
)

// 📊 Level is the severity of a status line
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
	LevelNote
)

// String returns a string representation of Level
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelNote:
		return "note"
	default:
		return "info"
	}
}

// Symbol returns the emoji prefix for the level
func (l Level) Symbol() string {
	switch l {
	case LevelSuccess:
		return "✅"
	case LevelWarning:
		return "⚠️ "
	case LevelError:
		return "❌"
	case LevelNote:
		return "📝"
	default:
		return "ℹ️ "
	}
}

func (l Level) attributes() []color.Attribute {
	switch l {
	case LevelSuccess:
		return []color.Attribute{color.FgGreen}
	case LevelWarning:
		return []color.Attribute{color.FgYellow}
	case LevelError:
		return []color.Attribute{color.FgRed}
	case LevelNote:
		return []color.Attribute{color.FgCyan}
	default:
		return []color.Attribute{color.FgHiWhite}
	}
}

// paint styles s without consulting color.NoColor
func paint(s string, useColor bool, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// 🎯 Format renders one status line for level
func Format(level Level, msg string, useColor bool) string {
	return fmt.Sprintf("%s %s", level.Symbol(), paint(msg, useColor, level.attributes()...))
}

// 📄 FileState is the outcome of processing one target file
type FileState int

const (
	FilePatched FileState = iota
	FileMissing
	FileFailed
	FileSkipped
)

// String returns a string representation of FileState
func (s FileState) String() string {
	switch s {
	case FilePatched:
		return "patched"
	case FileMissing:
		return "missing"
	case FileFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// 🎯 FormatFileOperation formats a file outcome row for display
func FormatFileOperation(path string, state FileState, replacements int, useColor bool) string {
	var prefix string
	switch state {
	case FilePatched:
		prefix = paint("✓", useColor, color.FgGreen)
	case FileMissing:
		prefix = paint("-", useColor, color.FgYellow)
	case FileFailed:
		prefix = paint("✗", useColor, color.FgRed)
	default:
		prefix = paint("•", useColor, color.FgHiBlack)
	}

	detail := ""
	if state == FilePatched {
		detail = fmt.Sprintf("%d replacements", replacements)
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %-*s %-*s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, path,
		statusWidth, state.String(),
		detail,
	), " ")
}
