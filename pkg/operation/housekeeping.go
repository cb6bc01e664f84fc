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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	// MetadataDir holds the store's integrity hashes for the unpacked files
	MetadataDir = "_metadata"
	// RenameSuffix is appended to the extension directory name
	RenameSuffix = "_telemetry_disabled"
)

// 🧹 RemoveIntegrityMetadata deletes root/_metadata. It reports false with no
// error when the directory is already gone.
func RemoveIntegrityMetadata(ctx context.Context, root string) (bool, error) {
	path := filepath.Join(root, MetadataDir)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no integrity metadata")
			return false, nil
		}
		return false, errors.Errorf("%w: checking %s: %v", ErrHousekeeping, MetadataDir, err)
	}

	if err := os.RemoveAll(path); err != nil {
		return false, errors.Errorf("%w: removing %s: %v", ErrHousekeeping, MetadataDir, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("removed integrity metadata")
	return true, nil
}

// RenamedPath returns the sibling path root is renamed to
func RenamedPath(root string) string {
	clean := filepath.Clean(root)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+RenameSuffix)
}

// 🏷️ RenameForUpdates renames root to RenamedPath(root) and returns the path
// now holding the patched files. When the target already exists, or root
// already carries the suffix, nothing is renamed and alreadyRenamed is true.
func RenameForUpdates(ctx context.Context, root string) (finalPath string, alreadyRenamed bool, err error) {
	logger := zerolog.Ctx(ctx)
	root = filepath.Clean(root)

	if strings.HasSuffix(filepath.Base(root), RenameSuffix) {
		logger.Debug().Str("path", root).Msg("directory already carries the rename suffix")
		return root, true, nil
	}

	target := RenamedPath(root)
	if _, err := os.Lstat(target); err == nil {
		logger.Debug().Str("target", target).Msg("rename target exists")
		return root, true, nil
	} else if !os.IsNotExist(err) {
		return root, false, errors.Errorf("%w: checking %s: %v", ErrHousekeeping, target, err)
	}

	if err := os.Rename(root, target); err != nil {
		return root, false, errors.Errorf("%w: renaming %s: %v", ErrHousekeeping, root, err)
	}

	logger.Debug().Str("from", root).Str("to", target).Msg("renamed extension directory")
	return target, false, nil
}
