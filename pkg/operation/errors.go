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
	"gitlab.com/tozd/go/errors"
)

// 🚨 Error kinds surfaced by a patch run. Only ErrMissingRoot stops a run
// before any mutation; the rest are recorded and reported.
var (
	ErrMissingRoot  = errors.New("extension directory not found")
	ErrMissingFile  = errors.New("target file not found")
	ErrReadWrite    = errors.New("reading or writing target file")
	ErrFormat       = errors.New("formatting patched script")
	ErrHousekeeping = errors.New("housekeeping")
	ErrAuthMismatch = errors.New("no auth call-site matched")
)
