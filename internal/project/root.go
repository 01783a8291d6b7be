package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = "grammarworks.toml"

// ErrNoConfig is returned when no configuration file exists up to the
// filesystem root.
var ErrNoConfig = errors.New("no " + ConfigFileName + " found")

// FindConfig walks up from startDir to locate grammarworks.toml.
func FindConfig(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoConfig
}

// FindRoot returns the directory containing grammarworks.toml.
func FindRoot(startDir string) (string, error) {
	path, err := FindConfig(startDir)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
