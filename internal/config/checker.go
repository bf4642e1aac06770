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


// Package config provides loading and checking of the xcts configuration file.
package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/spf13/afero"
)

// CheckSuites checks that at least one suite is configured, that suite names
// are valid and that every root is an existing directory.
func (c *Config) CheckSuites(fs afero.Fs) error {
	if len(c.Suites) == 0 {
		return fmt.Errorf("no suites configured")
	}

	var invalidSuites []string

	for _, name := range slices.Sorted(maps.Keys(c.Suites)) {
		if !query.IsValidName(name) {
			invalidSuites = append(invalidSuites, fmt.Sprintf("%s: invalid suite name (allowed: alphanumeric, underscore)", name))
			continue
		}

		if err := utils.VerifyDirExists(fs, c.Suites[name]); err != nil {
			invalidSuites = append(invalidSuites, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(invalidSuites) > 0 {
		return fmt.Errorf("invalid suites:\n%s", strings.Join(invalidSuites, "\n"))
	}

	return nil
}

// CheckWorkers checks that the number of workers is positive.
func (c *Config) CheckWorkers() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	return nil
}

// Check runs every check and returns all problems found.
func (c *Config) Check(fs afero.Fs) error {
	var errs []string

	if err := c.CheckSuites(fs); err != nil {
		errs = append(errs, err.Error())
	}

	if err := c.CheckWorkers(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}

	return nil
}
