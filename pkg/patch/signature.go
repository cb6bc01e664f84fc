package patch

import (
	"github.com/walteh/telemetryoff/pkg/text"
)

// 🔎 Signature is a marker of live telemetry left in a script
type Signature struct {
	Category Category
	Rule     text.ReplacementRule
}

var enabledFlagSignatures = []Signature{
	{CategoryAnalytics, text.Regex("analytics-fallback-enabled", `analyticsEnabled"\s*,\s*\{\s*fallback\s*:\s*(?:!0|true)`, "")},
	{CategoryAnalytics, text.Regex("analytics-enabled", `analytics\s*:\s*\{\s*enabled\s*:\s*(?:!0|true)`, "")},
	{CategoryAnalytics, text.Literal("amplitude-key-development", "bb45e733842c3732cd52d759e88826ca", "")},
	{CategoryAnalytics, text.Literal("amplitude-key-production", "10edd558159f01783d50d921d1ec4716", "")},
	{CategoryAnalytics, text.Literal("posthog-key-development", "phc_l85rVI7wMQYhw4kca0JJy8TAyztKch5WT3smy4VTEmg", "")},
	{CategoryAnalytics, text.Literal("posthog-key-production", "phc_KWOh1iNHba9C7csIG27O9Scq1", "")},
	{CategoryCrashReporting, text.Regex("sentry-enabled", `sentry\s*:\s*\{\s*enabled\s*:\s*(?:!0|true)`, "")},
}

// Signatures lists the enabled-flag markers followed by every built-in endpoint
// literal and extra
func Signatures(extra ...Redirect) []Signature {
	out := make([]Signature, 0, len(enabledFlagSignatures)+len(endpointTable)+len(extra))
	out = append(out, enabledFlagSignatures...)
	for _, rule := range EndpointRules(extra...).Rules {
		out = append(out, Signature{Category: CategoryEndpoints, Rule: rule})
	}
	return out
}
