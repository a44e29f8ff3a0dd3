// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension (case-insensitive, so both ".h2k" and
// ".H2K" exports match). It returns a sorted slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), strings.ToLower(extension)) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// WriteFileAtomic writes data to a temporary file in the destination's
// directory and renames it over the final path. A partially written document
// never becomes visible at the destination.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpName, err := StageFile(path, data, perm)
	if err != nil {
		return err
	}
	return PromoteFile(tmpName, path)
}

// StageFile writes data to a hidden temporary file in the destination's
// directory and returns its path. The staged file is invisible to consumers
// of the final path; callers either PromoteFile it or os.Remove it.
func StageFile(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write temp file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp file %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("chmod temp file %s: %w", tmpName, err)
	}
	return tmpName, nil
}

// PromoteFile atomically moves a staged file onto its final path.
func PromoteFile(tmpName, path string) error {
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}
