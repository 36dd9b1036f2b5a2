// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"

	"github.com/pdiddy/vyt-pipe/pkg/types"
)

// writeAtomic writes data to path via a temporary file in the same
// directory plus a rename, so a crash mid-write never leaves a truncated
// artifact at the final path.
func writeAtomic(artifact, path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vyt-*.tmp")
	if err != nil {
		return &types.ExportIOError{Artifact: artifact, Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	writeErr := write(tmp)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return &types.ExportIOError{Artifact: artifact, Path: path, Err: writeErr}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &types.ExportIOError{Artifact: artifact, Path: path, Err: err}
	}
	return nil
}
