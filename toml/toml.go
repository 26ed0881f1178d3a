// Package toml loads the eli5 configuration file.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/eli5"
)

// file is the on-disk layout of the configuration file.
type file struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model"`
	BaseURL      string `toml:"base_url"`
	Renderer     string `toml:"renderer"`
	GlamourStyle string `toml:"glamour_style"`
}

// DefaultPath returns ~/.config/eli5/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "eli5", "config.toml"), nil
}

// Load decodes the configuration file at path. Only the keys present in the
// file are set; merge the result over defaults with [eli5.Config.Merge].
// Unknown keys are an error.
func Load(path string) (eli5.Config, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return eli5.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return eli5.Config{}, fmt.Errorf("decode %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return eli5.Config{
		Provider:     f.Provider,
		Model:        f.Model,
		BaseURL:      f.BaseURL,
		Renderer:     f.Renderer,
		GlamourStyle: f.GlamourStyle,
	}, nil
}

// LoadOptional is like Load but returns an empty Config when path does not
// exist.
func LoadOptional(path string) (eli5.Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return eli5.Config{}, nil
	}
	return cfg, err
}
