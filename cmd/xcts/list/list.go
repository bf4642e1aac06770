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

// Package list provides the list subcommand for the xcts tool.
package list

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	internalcfg "github.com/crossplane-contrib/xcts/internal/config"
	"github.com/crossplane-contrib/xcts/internal/dirloader"
	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/tree"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/gertd/go-pluralize"
	"github.com/spf13/afero"
)

// Cmd represents the list subcommand.
type Cmd struct {
	Queries []string            `arg:""                                                                help:"Queries to list, e.g. 'webgpu:api,*'. Lists every configured suite when omitted." optional:""`
	Tree    bool                `help:"Print the whole tree of each query instead of its collapsed subtrees."`
	Empty   bool                `help:"Also list subtrees without any case."`
	Debug   bool                `help:"Show the number of subtrees and cases of each query."`
	Config  *internalcfg.Config `kong:"-"`
	fs      afero.Fs
}

// AfterApply implements kong.AfterApply.
func (c *Cmd) AfterApply() error {
	c.fs = afero.NewOsFs()
	return nil
}

// Run executes the list subcommand.
func (c *Cmd) Run(_ *kong.Context) error {
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	ctx := context.Background()
	fl := dirloader.New(c.fs, c.Config.Suites)

	queries, err := c.parseQueries(ctx, fl)
	if err != nil {
		return err
	}

	plural := pluralize.NewClient()

	for _, q := range queries {
		t, err := tree.LoadForQuery(ctx, fl, q, nil)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", q, err)
		}

		if c.Tree {
			utils.OutputPrintf("%s", t)
			continue
		}

		subtrees := 0

		for sub := range t.IterateCollapsed(c.Empty) {
			utils.OutputPrintf("%s\n", sub)
			subtrees++
		}

		if c.Debug {
			utils.DebugPrintf("%s: %s, %s\n", q,
				plural.Pluralize("subtree", subtrees, true), plural.Pluralize("case", t.CountLeaves(), true))
		}
	}

	return nil
}

func (c *Cmd) parseQueries(ctx context.Context, fl *dirloader.DirLoader) ([]query.Query, error) {
	if len(c.Queries) == 0 {
		suites, err := fl.ListSuites(ctx)
		if err != nil {
			return nil, err
		}

		if len(suites) == 0 {
			return nil, fmt.Errorf("no suites configured")
		}

		queries := make([]query.Query, 0, len(suites))
		for _, s := range suites {
			queries = append(queries, query.MultiSuite(s))
		}

		return queries, nil
	}

	queries := make([]query.Query, 0, len(c.Queries))

	for _, s := range c.Queries {
		q, err := query.Parse(s)
		if err != nil {
			return nil, err
		}

		queries = append(queries, q)
	}

	return queries, nil
}
