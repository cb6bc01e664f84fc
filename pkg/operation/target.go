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

package operation

import (
	"path/filepath"

	"github.com/walteh/telemetryoff/pkg/patch"
)

// 🎯 Target is a script patched at a fixed path inside the extension
type Target struct {
	Name     string // display name
	RelPath  string // slash separated, relative to the extension root
	Required bool   // counts towards a successful run
}

// Path resolves the target under root
func (t Target) Path(root string) string {
	return filepath.Join(root, filepath.FromSlash(t.RelPath))
}

// 📋 DefaultTargets returns the scripts of the supported build, required first
func DefaultTargets() []Target {
	return []Target{
		{Name: "background.js", RelPath: "background.js", Required: true},
		{Name: patch.DefaultBuild + ".js", RelPath: "chunks/" + patch.DefaultBuild + ".js", Required: true},
		{Name: "content.js", RelPath: "content-scripts/content.js", Required: false},
	}
}

// RequiredPaths lists the relative paths of the required targets
func RequiredPaths(targets []Target) []string {
	var out []string
	for _, t := range targets {
		if t.Required {
			out = append(out, t.RelPath)
		}
	}
	return out
}
