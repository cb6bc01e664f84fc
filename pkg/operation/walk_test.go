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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/telemetryoff/pkg/log"
	"github.com/walteh/telemetryoff/pkg/status"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		name          string
		files         map[string]string
		setup         func(t *testing.T, root string)
		wantEssential bool
		wantStates    []status.FileState
		wantErrors    int
		wantOutput    []string
	}{
		{
			name: "all_targets",
			files: map[string]string{
				"background.js":              backgroundScript,
				"chunks/popup-xxiXE7fj.js":   popupScript,
				"content-scripts/content.js": contentScript,
			},
			wantEssential: true,
			wantStates:    []status.FileState{status.FilePatched, status.FilePatched, status.FilePatched},
		},
		{
			name:          "optional_target_absent",
			files:         map[string]string{"chunks/popup-xxiXE7fj.js": popupScript},
			wantEssential: true,
			wantStates:    []status.FileState{status.FileMissing, status.FilePatched, status.FileSkipped},
			wantErrors:    1,
			wantOutput:    []string{"content.js not found", "background.js not found"},
		},
		{
			name: "required_target_unreadable",
			files: map[string]string{
				"background.js": backgroundScript,
			},
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.MkdirAll(filepath.Join(root, "chunks", "popup-xxiXE7fj.js"), 0o755))
			},
			wantEssential: true,
			wantStates:    []status.FileState{status.FilePatched, status.FileFailed, status.FileSkipped},
			wantErrors:    1,
		},
		{
			name:          "no_required_target",
			files:         map[string]string{"content-scripts/content.js": contentScript},
			wantEssential: false,
			wantStates:    []status.FileState{status.FileMissing, status.FileMissing, status.FilePatched},
			wantErrors:    2,
			wantOutput: []string{
				"no essential files were found or modified",
				"chunks/popup-xxiXE7fj.js",
				"errors encountered:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf := testContext(t)
			root := writeExtension(t, tt.files)
			if tt.setup != nil {
				tt.setup(t, root)
			}

			result, err := Walk(ctx, root, NewProcessor(newEngine(t), nil), DefaultTargets())
			require.NoError(t, err)

			assert.Equal(t, tt.wantEssential, result.EssentialFound)
			assert.Len(t, result.Errors, tt.wantErrors)

			var states []status.FileState
			for _, op := range log.FromContext(ctx).Operations() {
				states = append(states, op.State)
			}
			assert.Equal(t, tt.wantStates, states)

			for _, want := range tt.wantOutput {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	ctx, _ := testContext(t)
	root := filepath.Join(t.TempDir(), "nope")

	_, err := Walk(ctx, root, NewProcessor(newEngine(t), nil), DefaultTargets())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestWalk_RootIsFile(t *testing.T) {
	ctx, _ := testContext(t)
	root := filepath.Join(t.TempDir(), "extension.zip")
	require.NoError(t, os.WriteFile(root, []byte("zip"), 0o644))

	_, err := Walk(ctx, root, NewProcessor(newEngine(t), nil), DefaultTargets())
	assert.ErrorIs(t, err, ErrMissingRoot)
}

func TestWalkResult_AuthMatches(t *testing.T) {
	ctx, _ := testContext(t)
	root := writeExtension(t, map[string]string{
		"background.js":            backgroundScript,
		"chunks/popup-xxiXE7fj.js": popupScript,
	})

	result, err := Walk(ctx, root, NewProcessor(newEngine(t), nil), DefaultTargets())
	require.NoError(t, err)
	assert.Equal(t, 2, result.AuthMatches())
	assert.False(t, result.Formatted())
}
