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

package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/telemetryoff/pkg/patch"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestScanner_Scan(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	root := writeTree(t, map[string]string{
		"background.js":            `fetch("https://api2.amplitude.com/2/httpapi");fetch("https://api2.amplitude.com/2/httpapi");`,
		"chunks/popup-xxiXE7fj.js": `const c={sentry:{enabled:!0,dsn:""}};const d=Ye("analyticsEnabled",{fallback:!0});`,
		"content-scripts/clean.js": `fetch("` + patch.LocalAuthority + `/posthog/us");`,
		"manifest.json":            `{"homepage_url":"https://browsermcp.io"}`,
	})

	findings, err := New(patch.Signatures(), 2).Scan(ctx, root)
	require.NoError(t, err)

	assert.Equal(t, []Finding{
		{File: "background.js", Category: patch.CategoryEndpoints, Label: "https://api2.amplitude.com/2/httpapi", Count: 2},
		{File: "chunks/popup-xxiXE7fj.js", Category: patch.CategoryAnalytics, Label: "analytics-fallback-enabled", Count: 1},
		{File: "chunks/popup-xxiXE7fj.js", Category: patch.CategoryCrashReporting, Label: "sentry-enabled", Count: 1},
	}, findings)
	assert.Equal(t, 4, Total(findings))
}

func TestScanner_PatchedOutputIsClean(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	engine, err := patch.NewEngine()
	require.NoError(t, err)

	raw := `const a={analytics:{enabled:!0,amplitudeApiKey:"10edd558159f01783d50d921d1ec4716",posthogApiKey:"phc_KWOh1iNHba9C7csIG27O9Scq1abc"},sentry:{enabled:!0,dsn:"https://x@o447951.ingest.sentry.io/1"}};fetch("https://us.i.posthog.com/e");`
	root := writeTree(t, map[string]string{"background.js": engine.Apply(raw).Content})

	findings, err := New(patch.Signatures(), 0).Scan(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestScanner_ExtraRedirects(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	root := writeTree(t, map[string]string{"a/b/c.js": `x("https://telemetry.example.com/v1")`})
	extra := patch.Redirect{Provider: "config", From: "https://telemetry.example.com", To: patch.LocalAuthority + "/example"}

	findings, err := New(patch.Signatures(extra), 4).Scan(ctx, root)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "a/b/c.js", findings[0].File)
	assert.Equal(t, "https://telemetry.example.com", findings[0].Label)
}

func TestScanner_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(nil, 1).Scan(ctx, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")

	file := filepath.Join(t.TempDir(), "file.js")
	require.NoError(t, os.WriteFile(file, []byte("1"), 0o644))
	_, err = New(nil, 1).Scan(ctx, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
