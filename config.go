package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".go-xmldoc.yaml"

// fileConfig is the optional on-disk configuration. Flags that were set
// explicitly always win over config values.
type fileConfig struct {
	Format        string `yaml:"format"`
	Output        string `yaml:"output"`
	Refs          string `yaml:"refs"`
	BaseURL       string `yaml:"base_url"`
	Title         string `yaml:"title"`
	PreserveCrefs bool   `yaml:"preserve_crefs"`
	Verbose       bool   `yaml:"verbose"`
}

// loadConfig reads the config at path. With an empty path the default name is
// tried and its absence is not an error; an explicitly named file must exist.
func loadConfig(path string) (fileConfig, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func mergeConfig(opts *options, cfg fileConfig, changed func(string) bool) {
	if cfg.Format != "" && !changed("format") {
		opts.format = cfg.Format
	}
	if cfg.Output != "" && !changed("output") {
		opts.outputPath = cfg.Output
	}
	if cfg.Refs != "" && !changed("refs") {
		opts.refsPath = cfg.Refs
	}
	if cfg.BaseURL != "" && !changed("base-url") {
		opts.baseURL = cfg.BaseURL
	}
	if cfg.Title != "" && !changed("title") {
		opts.title = cfg.Title
	}
	if cfg.PreserveCrefs && !changed("preserve-crefs") {
		opts.preserveCrefs = true
	}
	if cfg.Verbose && !changed("verbose") {
		opts.verbose = true
	}
}
