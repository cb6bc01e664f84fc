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

package patch

import (
	"github.com/walteh/telemetryoff/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📊 Result is the output of one engine pass
type Result struct {
	Content  string
	Modified bool
	Counts   map[Category]int
}

// Total returns the number of matches across all categories
func (r Result) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// ⚙️ Engine applies the rule categories to a buffer in fixed order:
// analytics, crash reporting, endpoint redirection, auth.
type Engine struct {
	analytics RuleSet
	crash     RuleSet
	endpoints RuleSet
	auth      AuthPatcher
}

// 🔧 Option configures an Engine
type Option func(*Engine)

// WithAuthPatcher swaps the auth call-site table
func WithAuthPatcher(p AuthPatcher) Option {
	return func(e *Engine) {
		e.auth = p
	}
}

// WithExtraRedirects appends redirects after the built-in endpoint table
func WithExtraRedirects(redirects ...Redirect) Option {
	return func(e *Engine) {
		e.endpoints = EndpointRules(redirects...)
	}
}

// 🏭 NewEngine creates an engine with the built-in tables
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		analytics: AnalyticsRules(),
		crash:     CrashReportingRules(),
		endpoints: EndpointRules(),
		auth:      DefaultAuthPatcher(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.auth == nil {
		return nil, errors.Errorf("auth patcher is required")
	}
	for _, set := range []RuleSet{e.analytics, e.crash, e.endpoints} {
		if err := text.ValidateRules(set.Rules); err != nil {
			return nil, errors.Errorf("validating %s rules: %w", set.Category, err)
		}
	}

	return e, nil
}

// AuthBuild returns the build targeted by the engine's auth patcher
func (e *Engine) AuthBuild() string {
	return e.auth.Build()
}

// 🔄 Apply runs every category over content, threading each output into the next
func (e *Engine) Apply(content string) Result {
	result := Result{Counts: make(map[Category]int, len(Categories))}

	current := content
	for _, category := range Categories {
		var n int
		switch category {
		case CategoryAnalytics:
			current, n = applySet(current, e.analytics)
		case CategoryCrashReporting:
			current, n = applySet(current, e.crash)
		case CategoryEndpoints:
			current, n = applySet(current, e.endpoints)
		case CategoryAuth:
			current, n = e.auth.Patch(current)
		}
		result.Counts[category] = n
	}

	result.Content = current
	result.Modified = current != content
	return result
}

func applySet(content string, set RuleSet) (string, int) {
	r := text.ReplaceText(content, set.Rules)
	return r.ModifiedContent, r.ReplacementCount
}
