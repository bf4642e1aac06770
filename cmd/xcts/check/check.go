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

// Package check provides the check subcommand for the xcts tool.
package check

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/alecthomas/kong"
	configtypes "github.com/crossplane-contrib/xcts/internal/config"
	"github.com/crossplane-contrib/xcts/internal/dirloader"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/gertd/go-pluralize"
	"github.com/spf13/afero"
)

// Cmd represents the check subcommand.
type Cmd struct {
	Config     *configtypes.Config `kong:"-"`
	ConfigPath string              `kong:"-"`
	fs         afero.Fs
}

// AfterApply implements kong.AfterApply.
func (c *Cmd) AfterApply() error {
	c.fs = afero.NewOsFs()
	return nil
}

// Run executes the check subcommand.
func (c *Cmd) Run(_ *kong.Context) error {
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	if c.ConfigPath == "" {
		utils.OutputPrintf("No configuration file provided, using suites from the command line\n")
	} else {
		utils.OutputPrintf("Configuration file: %s\n\n", c.ConfigPath)
	}

	if err := c.Config.Check(c.fs); err != nil {
		return fmt.Errorf("configuration check failed:\n%w", err)
	}

	fl := dirloader.New(c.fs, c.Config.Suites)
	plural := pluralize.NewClient()

	utils.OutputPrintf("Configuration check successful\n")

	utils.OutputPrintf("\nSuites:\n")

	for _, name := range slices.Sorted(maps.Keys(c.Config.Suites)) {
		files, err := fl.ListFiles(context.Background(), name)
		if err != nil {
			return fmt.Errorf("configuration check failed:\n%w", err)
		}

		utils.OutputPrintf("- %s: %s (%s)\n", name, c.Config.Suites[name], plural.Pluralize("spec file", len(files), true))
	}

	utils.OutputPrintf("\nWorkers: %d\n", c.Config.Workers)

	if c.Config.Results != "" {
		utils.OutputPrintf("Results: %s\n", c.Config.Results)
	}

	return nil
}
