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

// Package beautify reflows minified JavaScript for reading.
//
// Only whitespace between tokens changes. Tokens are taken from a tree-sitter
// parse so string, template and regex literals are never split, and a gap that
// held whitespace in the input always holds whitespace in the output.
package beautify

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"gitlab.com/tozd/go/errors"
)

// ✨ Formatter reformats source text without changing what it does
type Formatter interface {
	Format(ctx context.Context, src string) (string, error)
}

// 🔧 Options mirror the js-beautify settings the tool has always used
type Options struct {
	IndentSize          int  // spaces per brace level
	MaxPreserveNewlines int  // newlines kept from a run in the input
	CollapseBraces      bool // keep `} else {` and friends on one line
}

// DefaultOptions returns 2-space indent, at most 2 kept newlines, collapsed braces
func DefaultOptions() Options {
	return Options{
		IndentSize:          2,
		MaxPreserveNewlines: 2,
		CollapseBraces:      true,
	}
}

// JSFormatter is a Formatter for JavaScript
type JSFormatter struct {
	opts Options
}

// 🏭 New creates a JSFormatter
func New(opts Options) *JSFormatter {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultOptions().IndentSize
	}
	if opts.MaxPreserveNewlines < 1 {
		opts.MaxPreserveNewlines = 1
	}
	return &JSFormatter{opts: opts}
}

// atomic node types are emitted verbatim from the source
var atomic = map[string]bool{
	"string":          true,
	"template_string": true,
	"regex":           true,
	"comment":         true,
	"html_comment":    true,
	"hash_bang_line":  true,
	"jsx_text":        true,
}

type token struct {
	text     string
	newlines int  // newlines in the gap before the token
	spaced   bool // gap before the token was non-empty
}

// 🎨 Format implements Formatter.Format
func (f *JSFormatter) Format(ctx context.Context, src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return src, nil
	}

	tokens, err := tokenize(ctx, src)
	if err != nil {
		return "", err
	}

	out := f.render(tokens)
	if strings.HasSuffix(src, "\n") {
		out += "\n"
	}
	return out, nil
}

func tokenize(ctx context.Context, src string) ([]token, error) {
	content := []byte(src)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Errorf("parsing javascript: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.Errorf("javascript has syntax errors")
	}

	var (
		tokens  []token
		prevEnd uint32
		walkErr error
	)

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if walkErr != nil {
			return
		}
		if n.ChildCount() > 0 && !atomic[n.Type()] {
			for i := 0; i < int(n.ChildCount()); i++ {
				walk(n.Child(i))
			}
			return
		}

		start, end := n.StartByte(), n.EndByte()
		text := string(content[start:end])
		// automatic semicolons are zero-width or whitespace-only
		if strings.TrimSpace(text) == "" {
			return
		}
		if start < prevEnd {
			walkErr = errors.Errorf("overlapping tokens at byte %d", start)
			return
		}

		gap := string(content[prevEnd:start])
		if strings.TrimSpace(gap) != "" {
			walkErr = errors.Errorf("unexpected text between tokens at byte %d", prevEnd)
			return
		}

		tokens = append(tokens, token{
			text:     text,
			newlines: strings.Count(gap, "\n"),
			spaced:   len(gap) > 0,
		})
		prevEnd = end
	}
	walk(root)

	if walkErr != nil {
		return nil, walkErr
	}
	if rest := string(content[prevEnd:]); strings.TrimSpace(rest) != "" {
		return nil, errors.Errorf("unexpected trailing text at byte %d", prevEnd)
	}

	return tokens, nil
}
