/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultPath is the default location of the configuration file.
	DefaultPath = "~/.config/xcts.yaml"

	// DefaultWorkers is the default number of cases run concurrently.
	DefaultWorkers = 1
)

// Config represents the main configuration structure.
type Config struct {
	// Suites maps suite names to the root directories of their spec files.
	Suites map[string]string `json:"suites,omitempty"`
	// Workers is the number of cases run concurrently.
	Workers int `json:"workers,omitempty"`
	// Results is the default path of the JSON results report. Empty disables the report.
	Results string `json:"results,omitempty"`
	// Debug keeps debug lines in case logs.
	Debug bool `json:"debug,omitempty"`
}

// Load loads an xcts configuration file. It returns os.ErrNotExist when the
// file does not exist, so that callers can use Fallback.
func Load(fs afero.Fs, configPath string) (*Config, error) {
	if !strings.HasSuffix(configPath, ".yaml") {
		return nil, fmt.Errorf("config file must have .yaml extension")
	}

	expandedPath, err := utils.ExpandTildeAbs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := afero.ReadFile(fs, expandedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		if err := utils.ValidateYAML(data); err != nil {
			return nil, fmt.Errorf("invalid YAML in config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if cfg.Suites == nil {
		cfg.Suites = make(map[string]string)
	}

	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	var errs []string

	for name, root := range cfg.Suites {
		expanded, err := utils.ExpandTildeAbs(root)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: failed to expand path: %v", name, err))
			continue
		}

		cfg.Suites[name] = expanded
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid suites in config file %s:\n%s", configPath, strings.Join(errs, "\n"))
	}

	return &cfg, nil
}

// Fallback returns the config used when no configuration file exists: no
// suites, which then come from the command line, and the default workers.
func Fallback() *Config {
	return &Config{
		Suites:  make(map[string]string),
		Workers: DefaultWorkers,
	}
}

// AddSuites adds suite roots given on the command line, overriding the
// configured ones.
func (c *Config) AddSuites(suites map[string]string) error {
	for name, root := range suites {
		expanded, err := utils.ExpandTildeAbs(root)
		if err != nil {
			return fmt.Errorf("suite %s: failed to expand path: %w", name, err)
		}

		c.Suites[name] = expanded
	}

	return nil
}
