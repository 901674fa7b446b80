package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromPath reads a config file (YAML or JSON) and overlays it on the
// defaults. Format is detected by extension (.yaml/.yml/.json) or by the
// first non-whitespace character of the content.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config bytes over the defaults. ext is the file extension
// used as a format hint; empty means detect from content.
func Load(data []byte, ext string) (Config, error) {
	cfg := Default()

	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported extension %q", ext)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.SampleCap <= 0 {
		return fmt.Errorf("config: sample_cap must be positive, got %d", c.SampleCap)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("config: parallel must be positive, got %d", c.Parallel)
	}
	for _, t := range []struct {
		name string
		v    float64
	}{
		{"numeric_threshold", c.NumericThreshold},
		{"date_threshold", c.DateThreshold},
		{"missingness_threshold", c.MissingnessThreshold},
		{"required_missing_threshold", c.RequiredMissingThreshold},
		{"rename_similarity", c.RenameSimilarity},
	} {
		if t.v < 0 || t.v > 1 {
			return fmt.Errorf("config: %s must be in [0,1], got %v", t.name, t.v)
		}
	}
	switch c.PrevMode {
	case PrevAuto, PrevExplicit, PrevPointer, PrevFolder, PrevOff, "":
	default:
		return fmt.Errorf("config: unknown prev_mode %q", c.PrevMode)
	}
	return nil
}
