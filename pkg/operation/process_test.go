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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/telemetryoff/pkg/beautify"
	"github.com/walteh/telemetryoff/pkg/log"
	"github.com/walteh/telemetryoff/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

const (
	backgroundScript = `const Ke=Ye("analyticsEnabled",{fallback:!0});fetch("https://api2.amplitude.com/2/httpapi");Mb("logIn",RO);`
	popupScript      = `const u=QT();const c={sentry:{enabled:!0,dsn:"https://abc@o447951.ingest.sentry.io/1"}};`
	contentScript    = `fetch("https://us.i.posthog.com/e");`
)

// testContext returns a context carrying a console logger that writes into the returned buffer
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	return log.NewContext(ctx, log.New(buf, zlog, false)), buf
}

// writeExtension lays out files under a fresh "extension" directory and returns its path
func writeExtension(t *testing.T, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "extension")
	require.NoError(t, os.MkdirAll(root, 0o755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type failingFormatter struct{}

func (failingFormatter) Format(ctx context.Context, src string) (string, error) {
	return "", errors.New("unexpected token")
}

func newEngine(t *testing.T) *patch.Engine {
	t.Helper()
	engine, err := patch.NewEngine()
	require.NoError(t, err)
	return engine
}

func TestProcessor_Process(t *testing.T) {
	tests := []struct {
		name      string
		formatter beautify.Formatter
		setup     func(t *testing.T, dir string) string
		check     func(t *testing.T, path string, outcome FileOutcome)
		wantErr   error
	}{
		{
			name: "patches_and_preserves_permissions",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "background.js")
				require.NoError(t, os.WriteFile(path, []byte(backgroundScript), 0o640))
				return path
			},
			check: func(t *testing.T, path string, outcome FileOutcome) {
				content := readFile(t, path)
				assert.Contains(t, content, `analyticsEnabled",{fallback:false`)
				assert.Contains(t, content, patch.LocalAuthority+"/amplitude/api")
				assert.Contains(t, content, `Mb("logIn",()=>{})`)
				assert.True(t, outcome.Modified)
				assert.False(t, outcome.Formatted)
				assert.Equal(t, 3, outcome.Replacements)
				assert.Equal(t, 1, outcome.Counts[patch.CategoryAuth])

				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
			},
		},
		{
			name: "unmatched_content_is_still_processed",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "background.js")
				require.NoError(t, os.WriteFile(path, []byte("console.log(1);"), 0o644))
				return path
			},
			check: func(t *testing.T, path string, outcome FileOutcome) {
				assert.False(t, outcome.Modified)
				assert.Zero(t, outcome.Replacements)
				assert.Equal(t, "console.log(1);", readFile(t, path))
			},
		},
		{
			name:      "formats_with_formatter",
			formatter: beautify.New(beautify.DefaultOptions()),
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "content.js")
				require.NoError(t, os.WriteFile(path, []byte(`function a(){fetch("https://us.i.posthog.com/e");return 1}`), 0o644))
				return path
			},
			check: func(t *testing.T, path string, outcome FileOutcome) {
				assert.True(t, outcome.Formatted)
				assert.NoError(t, outcome.FormatErr)
				content := readFile(t, path)
				assert.Contains(t, content, "\n")
				assert.Contains(t, content, `"`+patch.LocalAuthority+`/posthog/us/e"`)
			},
		},
		{
			name:      "format_failure_falls_back",
			formatter: failingFormatter{},
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "background.js")
				require.NoError(t, os.WriteFile(path, []byte(backgroundScript), 0o644))
				return path
			},
			check: func(t *testing.T, path string, outcome FileOutcome) {
				assert.False(t, outcome.Formatted)
				require.Error(t, outcome.FormatErr)
				assert.True(t, errors.Is(outcome.FormatErr, ErrFormat))
				assert.Contains(t, readFile(t, path), patch.LocalAuthority+"/amplitude/api")
			},
		},
		{
			name: "missing_file",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "background.js")
			},
			wantErr: ErrMissingFile,
		},
		{
			name: "directory_in_place_of_file",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "background.js")
				require.NoError(t, os.Mkdir(path, 0o755))
				return path
			},
			wantErr: ErrReadWrite,
		},
		{
			name: "invalid_utf8_is_left_untouched",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "background.js")
				require.NoError(t, os.WriteFile(path, []byte{'a', 0xff, 0xfe, 'b'}, 0o644))
				return path
			},
			wantErr: ErrReadWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := testContext(t)
			path := tt.setup(t, t.TempDir())

			proc := NewProcessor(newEngine(t), tt.formatter)
			outcome, err := proc.Process(ctx, path)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Contains(t, err.Error(), "background.js")
				return
			}

			require.NoError(t, err)
			tt.check(t, path, outcome)
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "background.js")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, writeFileAtomic(path, []byte("new"), 0o600))
	assert.Equal(t, "new", readFile(t, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is not left behind")
}
