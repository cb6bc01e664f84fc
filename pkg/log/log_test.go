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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/telemetryoff/pkg/status"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "background.js",
					State:        status.FilePatched,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"✓ background.js                       patched      2 replacements",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
				logger.Note("note message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
				"📝 note message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
				logger.Notef("note %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
				"📝 note test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("disabling telemetry")
			},
			wantLogs: []string{
				"telemetryoff • disabling telemetry",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)), false)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerList(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop(), false)

	logger.List("Installation instructions:", "Open chrome://extensions/", "Enable Developer mode")

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "📝 Installation instructions:\n"))
	assert.Contains(t, output, "Open chrome://extensions/")
	assert.Contains(t, output, "Enable Developer mode")
	assert.NotContains(t, output, "\x1b[")
	assert.Less(t, strings.Index(output, "Open chrome"), strings.Index(output, "Enable Developer"))
}

func TestLoggerOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop(), false)

	logger.LogFileOperation(context.Background(), FileOperation{Path: "a.js", State: status.FilePatched})
	logger.LogFileOperation(context.Background(), FileOperation{Path: "b.js", State: status.FileMissing})

	ops := logger.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "a.js", ops[0].Path)
	assert.Equal(t, status.FileMissing, ops[1].State)
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop(), false)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}
