package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ReadFile reads a build configuration file.
func ReadFile(path string) (*BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a build configuration document. Unknown keys are rejected
// so that typos do not silently drop selections.
func Parse(data []byte) (*BuildConfig, error) {
	var cfg BuildConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse build config: %w", err)
	}

	return &cfg, nil
}

const fileHeader = `# nattd build configuration
#
# selections: category/subcategory/entry, optionally :installation_type
# inputs:     values for entries that need one (set_hostname, extra_swap_space)
`

// WriteFile writes a build configuration file atomically.
func WriteFile(path string, cfg *BuildConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal build config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	content := append([]byte(fileHeader), data...)
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write build config: %w", err)
	}
	return nil
}
