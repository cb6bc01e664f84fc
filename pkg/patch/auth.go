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

// 🔐 AuthPatcher disables login and session call-sites for one upstream build.
// Minified identifiers change between releases, so each build gets its own
// implementation.
type AuthPatcher interface {
	// Build names the upstream build the call-site table was taken from
	Build() string
	// Patch rewrites the call-sites and reports how many it matched
	Patch(content string) (string, int)
}

// DefaultBuild is the extension build the bundled call-site table targets.
// The popup chunk hash doubles as the build identifier.
const DefaultBuild = "popup-xxiXE7fj"

// CallSitePatcher is an AuthPatcher backed by an ordered rule table. Its rules
// match call shapes textually: a name declared with `function` is skipped, but
// a shorthand method of the same name would still be rewritten.
type CallSitePatcher struct {
	build string
	rules []text.ReplacementRule
}

// 🏭 NewCallSitePatcher creates a patcher for build applying rules in order
func NewCallSitePatcher(build string, rules []text.ReplacementRule) *CallSitePatcher {
	return &CallSitePatcher{build: build, rules: rules}
}

// 🏭 DefaultAuthPatcher returns the patcher for DefaultBuild
func DefaultAuthPatcher() *CallSitePatcher {
	return NewCallSitePatcher(DefaultBuild, []text.ReplacementRule{
		// login / logout event registrations keep the registration but drop the handler
		text.CallSite("login-handler", `Mb("logIn",RO)`, `Mb("logIn",()=>{})`),
		text.CallSite("logout-handler", `Mb("logOut",AO)`, `Mb("logOut",()=>{})`),
		text.CallSite("popup-login-handler", `bR("logIn",s8)`, `bR("logIn",()=>{})`),
		text.CallSite("popup-logout-handler", `bR("logOut",a8)`, `bR("logOut",()=>{})`),

		// session queries
		text.CallSite("user-query", `QT()`, `null`),
		text.CallSite("session-subscribe", `eI()`, `(()=>{})`),
		text.CallSite("session-refresh", `tI(`, `(()=>{})(`),
		text.CallSite("session-update", `nI(`, `(()=>{})(`),
		text.CallSite("session-clear", `rI(`, `(()=>{})(`),

		// web page handshake listeners
		text.CallSite("ping-listener", `MO("ping",async()=>{})`, `(()=>{})`),
		text.CallSite("version-listener", `LO("version",async`, `(()=>{})("version",async`),
	})
}

// Build implements AuthPatcher.Build
func (p *CallSitePatcher) Build() string {
	return p.build
}

// Patch implements AuthPatcher.Patch
func (p *CallSitePatcher) Patch(content string) (string, int) {
	result := text.ReplaceText(content, p.rules)
	return result.ModifiedContent, result.ReplacementCount
}

// Rules returns the patcher's rule table
func (p *CallSitePatcher) Rules() []text.ReplacementRule {
	return p.rules
}
