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

package beautify

import (
	"strings"
)

// spacedOperators get a space on both sides
var spacedOperators = map[string]bool{
	"=": true, "==": true, "===": true, "!=": true, "!==": true,
	"=>": true, "&&": true, "||": true, "??": true, "?": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&&=": true, "||=": true, "??=": true, "<=": true, ">=": true,
	"<": true, ">": true,
}

// keywordsBeforeParen get a space before a following `(`
var keywordsBeforeParen = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true, "with": true,
}

// keywordsBeforeBrace get a space before a following `{`
var keywordsBeforeBrace = map[string]bool{
	")": true, "else": true, "try": true, "finally": true, "do": true, "=>": true,
}

// continuations stay on the closing brace's line
var continuations = map[string]bool{
	"else": true, "catch": true, "finally": true, "while": true,
}

func (f *JSFormatter) render(tokens []token) string {
	var (
		b     strings.Builder
		stack []string
	)

	braceDepth := func() int {
		depth := 0
		for _, open := range stack {
			if open == "{" {
				depth++
			}
		}
		return depth
	}
	top := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for i, tok := range tokens {
		if tok.text == "}" || tok.text == ")" || tok.text == "]" {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}

		if i > 0 {
			prev := tokens[i-1].text

			newlines := tok.newlines
			if newlines > f.opts.MaxPreserveNewlines {
				newlines = f.opts.MaxPreserveNewlines
			}
			if newlines == 0 && f.breakBetween(prev, tok.text, top()) {
				newlines = 1
			}

			if newlines > 0 {
				b.WriteString(strings.Repeat("\n", newlines))
				b.WriteString(strings.Repeat(" ", braceDepth()*f.opts.IndentSize))
			} else if tok.spaced || spaceBetween(prev, tok.text) {
				b.WriteByte(' ')
			}
		}

		b.WriteString(tok.text)

		if tok.text == "{" || tok.text == "(" || tok.text == "[" {
			stack = append(stack, tok.text)
		}
	}

	return b.String()
}

// breakBetween reports whether a line break is inserted where the input had
// none. Breaks only go after `{`, `;` or `}` and before `}`, which never
// changes how the code parses.
func (f *JSFormatter) breakBetween(prev, next, enclosing string) bool {
	switch {
	case prev == "{":
		return next != "}"
	case next == "}":
		return true
	case prev == ";":
		// for (;;) headers stay on one line
		return enclosing != "(" && enclosing != "["
	case prev == "}":
		if f.opts.CollapseBraces && continuations[next] {
			return false
		}
		return startsStatement(next)
	}
	return false
}

func spaceBetween(prev, next string) bool {
	switch {
	case spacedOperators[prev], spacedOperators[next]:
		return true
	case prev == ",", prev == ";":
		return true
	case next == "(" && keywordsBeforeParen[prev]:
		return true
	case next == "{" && keywordsBeforeBrace[prev]:
		return true
	case prev == "}" && continuations[next]:
		return true
	}
	return false
}

// startsStatement reports whether a token can begin a new statement line
// after a closing brace
func startsStatement(tok string) bool {
	if tok == "" {
		return false
	}
	switch tok {
	case "in", "instanceof", "else", "catch", "finally", "while":
		return false
	}
	c := tok[0]
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
