// Where: cli/internal/infra/fileops/manifest.go
// What: Per-variant record of generated files.
// Why: Re-running the generator removes files a previous template set produced but the current one does not.
package fileops

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file inside each variant directory.
const ManifestName = ".svcgen-manifest.yaml"

const (
	manifestVersion = 1
	manifestHeader  = "# Generated by svcgen. Lists the files owned by this variant; do not edit.\n"
)

// Manifest lists the files written by the last successful run for one variant.
// It carries no timestamps so identical runs produce identical bytes.
type Manifest struct {
	Version      int            `yaml:"version"`
	Variant      string         `yaml:"variant"`
	Port         int            `yaml:"port"`
	ArtifactType string         `yaml:"artifact_type"`
	Files        []ManifestFile `yaml:"files"`
}

// ManifestFile describes one generated file.
type ManifestFile struct {
	Path   string `yaml:"path"`
	Mode   string `yaml:"mode"`
	SHA256 string `yaml:"sha256"`
}

// NewManifestFile records content written at relPath.
func NewManifestFile(relPath, content string, executable bool) ManifestFile {
	sum := sha256.Sum256([]byte(content))
	return ManifestFile{
		Path:   relPath,
		Mode:   fmt.Sprintf("%04o", ModeFor(executable).Perm()),
		SHA256: hex.EncodeToString(sum[:]),
	}
}

// ReadManifest loads dir's manifest. A missing manifest yields found=false and no error.
func ReadManifest(dir string) (Manifest, bool, error) {
	path := filepath.Join(dir, ManifestName)
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, false, nil
		}
		return Manifest{}, false, &failure.IOError{Op: "read", Path: path, Err: err}
	}
	var m Manifest
	if err := yaml.Unmarshal(payload, &m); err != nil {
		return Manifest{}, false, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return m, true, nil
}

// EncodeManifest renders m as YAML with files sorted by path.
func EncodeManifest(m Manifest) ([]byte, error) {
	m.Version = manifestVersion
	files := make([]ManifestFile, len(m.Files))
	copy(files, m.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	m.Files = files

	var buf bytes.Buffer
	buf.WriteString(manifestHeader)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&m); err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteManifest stores m in dir.
func WriteManifest(dir string, m Manifest) error {
	payload, err := EncodeManifest(m)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, ManifestName)
	if err := WriteFileAtomic(path, payload, fileMode); err != nil {
		return &failure.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Stale returns paths listed in previous but absent from keep, sorted.
func Stale(previous Manifest, keep []string) []string {
	wanted := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		wanted[p] = struct{}{}
	}
	var stale []string
	for _, f := range previous.Files {
		if _, ok := wanted[f.Path]; !ok {
			stale = append(stale, f.Path)
		}
	}
	sort.Strings(stale)
	return stale
}

// PruneStale removes, through w, every file the previous manifest lists that keep no longer does.
// It returns the removed paths relative to dir.
func PruneStale(w Writer, dir string, previous Manifest, keep []string) ([]string, error) {
	stale := Stale(previous, keep)
	removed := make([]string, 0, len(stale))
	for _, rel := range stale {
		if err := w.Remove(dir, rel); err != nil {
			return removed, err
		}
		removed = append(removed, rel)
	}
	return removed, nil
}
