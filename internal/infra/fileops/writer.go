// Where: cli/internal/infra/fileops/writer.go
// What: Tree writer persisting rendered files under a base directory.
// Why: Give the orchestrator one seam for disk writes so failures can be isolated and simulated.
package fileops

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
)

var errEmptyRelativePath = errors.New("relative path is required")

// Writer persists one rendered file.
type Writer interface {
	Write(baseDir, relPath, content string, executable bool) error
	Remove(baseDir, relPath string) error
}

// DiskWriter writes to the local filesystem.
type DiskWriter struct{}

// NewDiskWriter returns the default Writer.
func NewDiskWriter() DiskWriter {
	return DiskWriter{}
}

// Write creates parents as needed and overwrites any previous content at relPath.
func (DiskWriter) Write(baseDir, relPath, content string, executable bool) error {
	target, err := Resolve(baseDir, relPath)
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(target, []byte(content), ModeFor(executable)); err != nil {
		return &failure.IOError{Op: "write", Path: target, Err: err}
	}
	return nil
}

// Remove deletes relPath and prunes directories it leaves empty below baseDir.
func (DiskWriter) Remove(baseDir, relPath string) error {
	target, err := Resolve(baseDir, relPath)
	if err != nil {
		return err
	}
	if err := RemoveFile(target); err != nil {
		return &failure.IOError{Op: "remove", Path: target, Err: err}
	}
	RemoveEmptyParents(filepath.Dir(target), baseDir)
	return nil
}

// Resolve joins a slash-separated relative path onto baseDir, rejecting escapes.
func Resolve(baseDir, relPath string) (string, error) {
	if strings.TrimSpace(relPath) == "" {
		return "", &failure.IOError{Op: "resolve", Path: baseDir, Err: errEmptyRelativePath}
	}
	local := filepath.FromSlash(relPath)
	if filepath.IsAbs(local) || !filepath.IsLocal(local) {
		return "", &failure.PathConflictError{Path: relPath, Reason: "path escapes the output directory"}
	}
	return filepath.Join(baseDir, local), nil
}
