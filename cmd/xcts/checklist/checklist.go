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

// Package checklist provides the checklist subcommand for the xcts tool.
package checklist

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/crossplane-contrib/xcts/internal/checklist"
	internalcfg "github.com/crossplane-contrib/xcts/internal/config"
	"github.com/crossplane-contrib/xcts/internal/dirloader"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/spf13/afero"
)

const usage = `Usage: xcts checklist FILE

Verify that the queries of FILE, one per line, match every test of their
suites exactly once.
`

// Cmd represents the checklist subcommand.
type Cmd struct {
	Files  []string            `arg:""                                                        help:"Checklist file, one query per line." optional:""`
	Strict bool                `help:"Report checklist items broader than one file as errors."`
	Config *internalcfg.Config `kong:"-"`
	fs     afero.Fs
}

// AfterApply implements kong.AfterApply.
func (c *Cmd) AfterApply() error {
	c.fs = afero.NewOsFs()
	return nil
}

// Run executes the checklist subcommand.
func (c *Cmd) Run(_ *kong.Context) error {
	switch len(c.Files) {
	case 0:
		utils.OutputPrintf("%s", usage)
		return nil
	case 1:
	default:
		fmt.Fprint(os.Stderr, usage) //nolint:errcheck // output function, error handling not practical
		return &utils.ExitError{Code: 1}
	}

	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	v := &checklist.Verifier{
		Fs:     c.fs,
		Loader: dirloader.New(c.fs, c.Config.Suites),
		Out:    os.Stdout,
		Strict: c.Strict,
	}

	if err := v.Verify(context.Background(), c.Files[0]); err != nil {
		utils.OutputPrintf("%v\n", err)
		return &utils.ExitError{Code: 1}
	}

	return nil
}
