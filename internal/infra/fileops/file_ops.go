// Where: cli/internal/infra/fileops/file_ops.go
// What: Filesystem primitives for tree generation.
// Why: Keep permission, atomic-replace, and cleanup behavior consistent for every generated file.
package fileops

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirMode        fs.FileMode = 0o755
	fileMode       fs.FileMode = 0o644
	executableMode fs.FileMode = 0o755
	tempPattern                = ".svcgen-tmp-*"
)

// EnsureDir creates path and its parents; an existing directory is not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, dirMode)
}

// ModeFor returns the permission bits for a generated file.
func ModeFor(executable bool) fs.FileMode {
	if executable {
		return executableMode
	}
	return fileMode
}

// WriteFileAtomic replaces path with content through a temp file in the same directory.
// The temp file is closed on every path and removed unless the rename succeeded.
func WriteFileAtomic(path string, content []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	committed = true
	return nil
}

// RemoveFile deletes a regular file; a missing file is not an error.
func RemoveFile(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("is a directory")}
	}
	return os.Remove(path)
}

// RemoveEmptyParents removes empty directories from dir upwards, stopping at stop.
func RemoveEmptyParents(dir, stop string) {
	stop = filepath.Clean(stop)
	for dir = filepath.Clean(dir); dir != stop && len(dir) > len(stop); dir = filepath.Dir(dir) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
	}
}
