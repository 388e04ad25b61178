// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poruru/svcgen/cli/internal/meta"
)

// Environment variable suffixes understood by the CLI.
const (
	SuffixOutputDir = "OUTPUT_DIR"
	SuffixVariants  = "VARIANTS"
	SuffixLogLevel  = "LOG_LEVEL"
)

// DefaultEnvFile is loaded from the working directory when no env file is given.
const DefaultEnvFile = ".env"

// HostEnvKey constructs a host-level environment variable name.
// Example: HostEnvKey("OUTPUT_DIR") returns "SVCGEN_OUTPUT_DIR".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv returns the trimmed value of the prefixed variable.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// LoadEnvFile loads key/value pairs from path without overriding variables already set.
// An empty path falls back to DefaultEnvFile, which may be absent.
// It reports whether a file was loaded.
func LoadEnvFile(path string) (bool, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultEnvFile
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load env file %s: %w", path, err)
	}
	return true, nil
}
