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
)

// LocalAuthority is where every redirected endpoint points. Nothing listens there.
const LocalAuthority = "http://localhost:9999"

// 🏷️ Category tags a rule set. Categories run in declaration order.
type Category int

const (
	CategoryAnalytics Category = iota
	CategoryCrashReporting
	CategoryEndpoints
	CategoryAuth
)

// Categories lists every category in pipeline order
var Categories = []Category{
	CategoryAnalytics,
	CategoryCrashReporting,
	CategoryEndpoints,
	CategoryAuth,
}

// String returns a string representation of Category
func (c Category) String() string {
	switch c {
	case CategoryAnalytics:
		return "analytics"
	case CategoryCrashReporting:
		return "crash-reporting"
	case CategoryEndpoints:
		return "endpoints"
	case CategoryAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// 📦 RuleSet is an ordered group of rules sharing a category
type RuleSet struct {
	Category Category
	Rules    []text.ReplacementRule
}

// disabledAnalytics is the shape every analytics block is rewritten to.
const disabledAnalytics = `analytics:{enabled:false,amplitudeApiKey:"",posthogApiKey:""`

// The analytics blocks are matched within one object literal. Key literals are
// consumed through their closing quote so truncated prefixes still clear the
// whole key.
var analyticsRules = []text.ReplacementRule{
	text.Regex("analytics-fallback",
		`analyticsEnabled"\s*,\s*\{\s*fallback\s*:\s*!0`,
		`analyticsEnabled",{fallback:false`),
	text.Regex("analytics-development",
		`analytics\s*:\s*\{\s*enabled\s*:\s*!0\s*,\s*amplitudeApiKey\s*:\s*"bb45e733842c3732cd52d759e88826ca"\s*,\s*posthogApiKey\s*:\s*"phc_l85rVI7wMQYhw4kca0JJy8TAyztKch5WT3smy4VTEmg[^"]*"`,
		disabledAnalytics),
	text.Regex("analytics-production",
		`analytics\s*:\s*\{\s*enabled\s*:\s*!0\s*,\s*amplitudeApiKey\s*:\s*"10edd558159f01783d50d921d1ec4716"\s*,\s*posthogApiKey\s*:\s*"phc_KWOh1iNHba9C7csIG27O9Scq1[^"]*"`,
		disabledAnalytics),
	text.Regex("analytics-disabled",
		`analytics\s*:\s*\{\s*enabled\s*:\s*(?:!1|false)\s*,\s*amplitudeApiKey\s*:\s*""\s*,\s*posthogApiKey\s*:\s*""`,
		disabledAnalytics),
}

var crashReportingRules = []text.ReplacementRule{
	text.Regex("sentry",
		`sentry\s*:\s*\{\s*enabled\s*:\s*(?:!0|!1|true|false)\s*,\s*dsn\s*:\s*"[^"]*"`,
		`sentry:{enabled:false,dsn:""`),
}

// 🔀 Redirect maps a remote endpoint literal to a local one
type Redirect struct {
	Provider string
	From     string
	To       string
}

var endpointTable = []Redirect{
	{"amplitude", "https://api2.amplitude.com/2/httpapi", LocalAuthority + "/amplitude/api"},
	{"amplitude", "https://api.eu.amplitude.com/2/httpapi", LocalAuthority + "/amplitude/eu/api"},
	{"amplitude", "https://api2.amplitude.com/batch", LocalAuthority + "/amplitude/batch"},
	{"amplitude", "https://api.eu.amplitude.com/batch", LocalAuthority + "/amplitude/eu/batch"},
	{"amplitude", "https://sr-client-cfg.amplitude.com/config", LocalAuthority + "/amplitude/config"},
	{"amplitude", "https://sr-client-cfg.stag2.amplitude.com/config", LocalAuthority + "/amplitude/staging/config"},
	{"amplitude", "https://sr-client-cfg.eu.amplitude.com/config", LocalAuthority + "/amplitude/eu/config"},
	{"amplitude", "https://app.amplitude.com", LocalAuthority + "/amplitude/app"},
	{"amplitude", "https://app.eu.amplitude.com", LocalAuthority + "/amplitude/eu/app"},
	{"amplitude", "https://apps.stag2.amplitude.com", LocalAuthority + "/amplitude/staging/app"},

	{"posthog", "https://app.posthog.com", LocalAuthority + "/posthog/app"},
	{"posthog", "https://us.i.posthog.com", LocalAuthority + "/posthog/us"},
	{"posthog", "https://us.posthog.com", LocalAuthority + "/posthog/us/app"},
	{"posthog", "https://eu.i.posthog.com", LocalAuthority + "/posthog/eu"},
	{"posthog", "https://eu.posthog.com", LocalAuthority + "/posthog/eu/app"},
	{"posthog", "https://eu-assets.posthog.com", LocalAuthority + "/posthog/eu/assets"},
	{"posthog", "https://us-assets.posthog.com", LocalAuthority + "/posthog/us/assets"},

	{"sentry", "https://o447951.ingest.sentry.io", LocalAuthority + "/sentry/ingest"},
	{"sentry", "https://ingest.sentry.io", LocalAuthority + "/sentry/ingest"},
	{"sentry", "https://sentry.io", LocalAuthority + "/sentry"},
	{"sentry", "https://docs.sentry.io", LocalAuthority + "/sentry/docs"},

	{"amplitude", "https://www.docs.developers.amplitude.com", LocalAuthority + "/amplitude/docs"},
	{"posthog", "https://posthog.com/docs", LocalAuthority + "/posthog/docs"},

	{"browsermcp", "https://browsermcp.io", LocalAuthority + "/browsermcp"},
	{"browsermcp", "https://app.browsermcp.io", LocalAuthority + "/browsermcp/app"},
	{"browsermcp", "https://docs.browsermcp.io", LocalAuthority + "/browsermcp/docs"},
}

// Endpoints returns a copy of the built-in redirect table in application order
func Endpoints() []Redirect {
	out := make([]Redirect, len(endpointTable))
	copy(out, endpointTable)
	return out
}

// RedirectRules turns redirects into literal rules, preserving order
func RedirectRules(redirects []Redirect) []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(redirects))
	for _, r := range redirects {
		rules = append(rules, text.Literal(r.Provider, r.From, r.To))
	}
	return rules
}

// AnalyticsRules returns the analytics rule set
func AnalyticsRules() RuleSet {
	return RuleSet{Category: CategoryAnalytics, Rules: analyticsRules}
}

// CrashReportingRules returns the crash-reporting rule set
func CrashReportingRules() RuleSet {
	return RuleSet{Category: CategoryCrashReporting, Rules: crashReportingRules}
}

// EndpointRules returns the redirect rule set for the built-in table followed by extra
func EndpointRules(extra ...Redirect) RuleSet {
	all := append(Endpoints(), extra...)
	return RuleSet{Category: CategoryEndpoints, Rules: RedirectRules(all)}
}
