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

// Package run provides the run subcommand for the xcts tool.
package run

import (
	"context"

	"github.com/alecthomas/kong"
	internalcfg "github.com/crossplane-contrib/xcts/internal/config"
	"github.com/crossplane-contrib/xcts/internal/dirloader"
	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/runner"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/spf13/afero"
)

// Cmd represents the run subcommand.
type Cmd struct {
	Queries  []string            `arg:""                                                                         help:"Queries selecting the cases to run, e.g. 'webgpu:api,validation,*' or 'webgpu:api,compare:same:?x=1'."`
	Workers  int                 `help:"Number of cases run concurrently. Defaults to the configured workers." short:"j"`
	Results  string              `help:"Write the JSON results report to this path. Defaults to the configured results path." type:"path"`
	Progress bool                `help:"Show a progress bar on stderr while cases run."`
	Verbose  bool                `help:"Show the log lines of every case (similar to go test -v)"                short:"v"`
	Debug    bool                `help:"Keep debug log lines and show details about loading and running cases"`
	Config   *internalcfg.Config `kong:"-"`
	fs       afero.Fs
}

// AfterApply implements kong.AfterApply.
func (c *Cmd) AfterApply() error {
	c.fs = afero.NewOsFs()
	return nil
}

// Run executes the run subcommand.
func (c *Cmd) Run(_ *kong.Context) error {
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	queries := make([]query.Query, 0, len(c.Queries))

	for _, s := range c.Queries {
		q, err := query.Parse(s)
		if err != nil {
			return err
		}

		queries = append(queries, q)
	}

	if c.Progress && c.Verbose {
		utils.WarningPrintf("--progress is ignored with -v (verbose mode).\n")
	}

	options := c.newOptions(c.Config)
	log := logger.New(logger.WithDebug(options.Debug))

	if options.Debug {
		utils.DebugPrintf("Run ID: %s\n", log.RunID)
	}

	runErr := runner.NewRunner(options, dirloader.New(c.fs, c.Config.Suites), log).RunQueries(context.Background(), queries)

	results := c.Results
	if results == "" {
		results = c.Config.Results
	}

	if results != "" {
		if err := runner.WriteReport(c.fs, results, log); err != nil {
			utils.WarningPrintf("%v\n", err)
		} else if options.Debug {
			utils.DebugPrintf("Results written to %s\n", results)
		}
	}

	return runErr
}

// newOptions creates a runner.Options struct from a Command and Config.
func (c *Cmd) newOptions(cfg *internalcfg.Config) *runner.Options {
	workers := c.Workers
	if workers == 0 {
		workers = cfg.Workers
	}

	return &runner.Options{
		Workers:  workers,
		Verbose:  c.Verbose,
		Debug:    c.Debug || cfg.Debug,
		Progress: c.Progress && !c.Verbose,
	}
}
