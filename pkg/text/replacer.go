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
	"gitlab.com/tozd/go/errors"
)

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if the output differs from the input
	WasModified bool

	// ReplacementCount is the number of matches across all rules
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent string

	// ModifiedContent is the content after replacements
	ModifiedContent string
}

// ReplaceText applies rules to content in order. Each rule sees the output of
// the previous one. Rules that do not match are no-ops.
func ReplaceText(content string, rules []ReplacementRule) *ReplacementResult {
	result := &ReplacementResult{
		OriginalContent: content,
	}

	current := content
	for _, rule := range rules {
		var n int
		current, n = rule.Apply(current)
		result.ReplacementCount += n
	}

	result.ModifiedContent = current
	result.WasModified = current != content
	return result
}

// ValidateRules checks that every rule can match something
func ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d (%s): from_text is required", i, rule.Name)
		}
		switch rule.Kind {
		case MatchLiteral, MatchCallSite:
		case MatchRegex:
			if rule.Pattern == nil {
				return errors.Errorf("rule %d (%s): regex rule has no compiled pattern", i, rule.Name)
			}
		default:
			return errors.Errorf("rule %d (%s): unknown match kind %d", i, rule.Name, rule.Kind)
		}
	}
	return nil
}
