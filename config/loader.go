package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Mockable in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetenv      = os.Getenv
)

const (
	appDir         = "fazai-dash"
	configFileName = "config.yaml"
)

// Load layers defaults, the user file when present, and explicit when set.
// A missing user file is ignored; a missing explicit file is an error.
func Load(explicit string) (Config, error) {
	cfg := Default()

	if userPath, err := UserConfigPath(); err == nil {
		overlay, err := loadFile(userPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("user config %s: %w", userPath, err)
		default:
			cfg = Merge(cfg, overlay)
		}
	}

	if explicit != "" {
		overlay, err := loadFile(explicit)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", explicit, err)
		}
		cfg = Merge(cfg, overlay)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// UserConfigPath is $XDG_CONFIG_HOME/fazai-dash/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset
func UserConfigPath() (string, error) {
	if dir := osGetenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, configFileName), nil
	}
	home, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDir, configFileName), nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes one YAML layer. Unknown fields are rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
