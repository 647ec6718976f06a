package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the decoder from a file extension. Unknown extensions are YAML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// LoadRunner loads the runner configuration for a variant.
// The variant preset is the base; the first config file found is decoded on
// top of it, so a file only needs the keys it changes.
// Search order: customPath -> ~/.runner/configs/runner.{yaml,toml} -> ./configs/runner.{yaml,toml}
func LoadRunner(customPath string, v Variant) (RunnerConfig, error) {
	cfg := VariantConfig(v)

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := Decode(data, FormatFor(customPath), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := Decode(data, FormatFor(path), &candidate); err != nil {
			continue
		}
		if candidate.Validate() != nil {
			continue
		}
		return candidate, nil
	}

	return cfg, nil
}

// Decode overlays data in the given format onto cfg.
func Decode(data []byte, f Format, cfg *RunnerConfig) error {
	switch f {
	case FormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("toml decode: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	return nil
}

// Encode renders cfg in the given format.
func Encode(cfg RunnerConfig, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("toml encode: %w", err)
		}
		return buf.Bytes(), nil
	default:
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("yaml marshal: %w", err)
		}
		return out, nil
	}
}

// searchPaths returns the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".runner", "configs")
		paths = append(paths, filepath.Join(dir, "runner.yaml"), filepath.Join(dir, "runner.toml"))
	}
	return append(paths, filepath.Join("configs", "runner.yaml"), filepath.Join("configs", "runner.toml"))
}
