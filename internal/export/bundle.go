// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// WriteBundle zips the given files into a single archive, each stored
// under its base name. Missing inputs fail the bundle rather than being
// silently skipped.
func WriteBundle(path string, files []string) error {
	return writeAtomic("bundle", path, func(f *os.File) error {
		zw := zip.NewWriter(f)
		for _, file := range files {
			if err := addBundleFile(zw, file); err != nil {
				zw.Close()
				return err
			}
		}
		return zw.Close()
	})
}

func addBundleFile(zw *zip.Writer, file string) error {
	src, err := os.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(file))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
