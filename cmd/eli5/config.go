package main

import (
	"fmt"

	"github.com/fwojciec/eli5"
	eli5toml "github.com/fwojciec/eli5/toml"
)

// loadConfigFile reads the config file. An explicit path must exist; the
// default path is optional.
func loadConfigFile(path string) (eli5.Config, error) {
	if path != "" {
		cfg, err := eli5toml.Load(path)
		if err != nil {
			return eli5.Config{}, fmt.Errorf("config: %w", err)
		}
		return cfg, nil
	}
	path, err := eli5toml.DefaultPath()
	if err != nil {
		return eli5.Config{}, nil
	}
	cfg, err := eli5toml.LoadOptional(path)
	if err != nil {
		return eli5.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// resolveConfig layers defaults, the config file and flags, in that order.
func resolveConfig(file eli5.Config, opts options) (eli5.Config, error) {
	cfg := eli5.DefaultConfig().Merge(file).Merge(eli5.Config{
		Provider:     opts.provider,
		Model:        opts.model,
		BaseURL:      opts.baseURL,
		Renderer:     opts.renderer,
		GlamourStyle: opts.glamourStyle,
	})
	if err := cfg.Validate(); err != nil {
		return eli5.Config{}, err
	}
	return cfg, nil
}
