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

package text

import (
	"regexp"
	"strings"
)

// 🔀 MatchKind selects how a rule locates the text it replaces
type MatchKind int

const (
	MatchLiteral  MatchKind = iota // exact, case-sensitive substring
	MatchRegex                     // RE2 expression, $1 expansion in ToText
	MatchCallSite                  // literal that must not continue an identifier or member access
)

// String returns a string representation of MatchKind
func (k MatchKind) String() string {
	switch k {
	case MatchLiteral:
		return "literal"
	case MatchRegex:
		return "regex"
	case MatchCallSite:
		return "call-site"
	default:
		return "unknown"
	}
}

// ReplacementRule defines a single text replacement operation
type ReplacementRule struct {
	// Name is a short label used in logs and findings
	Name string

	// Kind selects the matcher
	Kind MatchKind

	// FromText is the literal to find, or the source of Pattern for regex rules
	FromText string

	// ToText is the replacement text
	ToText string

	// Pattern is the compiled expression for regex rules
	Pattern *regexp.Regexp
}

// 🏭 Literal creates a rule replacing every occurrence of from
func Literal(name, from, to string) ReplacementRule {
	return ReplacementRule{Name: name, Kind: MatchLiteral, FromText: from, ToText: to}
}

// 🏭 Regex creates a rule from an expression; it panics on an invalid expression
// and is meant for package-level rule tables.
func Regex(name, expr, to string) ReplacementRule {
	return ReplacementRule{Name: name, Kind: MatchRegex, FromText: expr, ToText: to, Pattern: regexp.MustCompile(expr)}
}

// 🏭 CallSite creates a rule for an exact minified call shape such as `QT()`
func CallSite(name, from, to string) ReplacementRule {
	return ReplacementRule{Name: name, Kind: MatchCallSite, FromText: from, ToText: to}
}

// 🔢 Count returns how many times the rule matches content
func (r ReplacementRule) Count(content string) int {
	switch r.Kind {
	case MatchRegex:
		if r.Pattern == nil {
			return 0
		}
		return len(r.Pattern.FindAllStringIndex(content, -1))
	case MatchCallSite:
		return len(callSiteOffsets(content, r.FromText))
	default:
		if r.FromText == "" {
			return 0
		}
		return strings.Count(content, r.FromText)
	}
}

// 🔄 Apply returns content with the rule applied and the number of matches
func (r ReplacementRule) Apply(content string) (string, int) {
	switch r.Kind {
	case MatchRegex:
		if r.Pattern == nil {
			return content, 0
		}
		n := len(r.Pattern.FindAllStringIndex(content, -1))
		if n == 0 {
			return content, 0
		}
		return r.Pattern.ReplaceAllString(content, r.ToText), n
	case MatchCallSite:
		offsets := callSiteOffsets(content, r.FromText)
		if len(offsets) == 0 {
			return content, 0
		}
		var b strings.Builder
		b.Grow(len(content) + len(offsets)*(len(r.ToText)-len(r.FromText)))
		last := 0
		for _, off := range offsets {
			b.WriteString(content[last:off])
			b.WriteString(r.ToText)
			last = off + len(r.FromText)
		}
		b.WriteString(content[last:])
		return b.String(), len(offsets)
	default:
		if r.FromText == "" {
			return content, 0
		}
		n := strings.Count(content, r.FromText)
		if n == 0 {
			return content, 0
		}
		return strings.ReplaceAll(content, r.FromText, r.ToText), n
	}
}

// callSiteOffsets finds non-overlapping occurrences of call whose preceding
// byte cannot extend an identifier or member expression and that do not name
// a function declaration. Shorthand methods (`{tI(e){...}}`) still match.
func callSiteOffsets(content, call string) []int {
	if call == "" {
		return nil
	}
	var offsets []int
	for pos := 0; pos <= len(content)-len(call); {
		idx := strings.Index(content[pos:], call)
		if idx < 0 {
			break
		}
		off := pos + idx
		if (off == 0 || !continuesIdentifier(content[off-1])) && !followsFunctionKeyword(content[:off]) {
			offsets = append(offsets, off)
			pos = off + len(call)
			continue
		}
		pos = off + 1
	}
	return offsets
}

// followsFunctionKeyword reports whether before ends in `function` or
// `function*`, optionally followed by whitespace
func followsFunctionKeyword(before string) bool {
	before = strings.TrimRight(before, " \t\r\n")
	before = strings.TrimSuffix(before, "*")
	before = strings.TrimRight(before, " \t\r\n")
	if !strings.HasSuffix(before, "function") {
		return false
	}
	rest := before[:len(before)-len("function")]
	return rest == "" || !continuesIdentifier(rest[len(rest)-1])
}

func continuesIdentifier(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '$', c == '.':
		return true
	case c >= 0x80:
		return true
	}
	return false
}
