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


// Package runner runs the cases selected by queries and reports their results.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/crossplane-contrib/xcts/internal/loader"
	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/tree"
	"github.com/crossplane-contrib/xcts/internal/utils"
	"github.com/gertd/go-pluralize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Options configures a run.
type Options struct {
	Workers  int
	Verbose  bool
	Debug    bool
	Progress bool
}

// Runner runs the leaves of query trees against a Logger.
type Runner struct {
	*Options

	loader loader.FileLoader
	log    *logger.Logger
	output io.Writer
	// Mockable function fields
	loadTreeFunc func(ctx context.Context, fl loader.FileLoader, root query.Query, expand []query.Query) (*tree.Tree, error)
	now          func() time.Time
}

// NewRunner creates a new runner.
func NewRunner(options *Options, fl loader.FileLoader, log *logger.Logger) *Runner {
	return &Runner{
		Options:      options,
		loader:       fl,
		log:          log,
		output:       os.Stdout,
		loadTreeFunc: tree.LoadForQuery,
		now:          time.Now,
	}
}

// RunQueries runs the cases of every query in turn. A query that cannot be
// loaded is reported and the next one still runs. Misuse of the logger stops
// the run.
func (r *Runner) RunQueries(ctx context.Context, queries []query.Query) error {
	var hasErrors bool

	for _, q := range queries {
		err := r.RunQuery(ctx, q)
		if err == nil {
			continue
		}

		var misuseErr *logger.MisuseError
		if errors.As(err, &misuseErr) {
			return err
		}

		hasErrors = true
	}

	summary := r.log.Summary()

	if r.Debug {
		plural := pluralize.NewClient()
		utils.DebugPrintf("Ran %s: %d passed, %d warned, %d failed\n",
			plural.Pluralize("case", summary.Total(), true), summary.Pass, summary.Warn, summary.Fail)
	}

	if hasErrors || summary.HasFailures() {
		fmt.Fprintf(r.output, "FAIL\n") //nolint:errcheck // output function, error handling not practical
		return fmt.Errorf("run completed with errors")
	}

	return nil
}

// RunQuery loads the tree of q and runs its cases with up to Workers cases
// at a time. Cases are recorded under their test; results are printed in
// load order once every case has finished, followed by the query summary.
func (r *Runner) RunQuery(ctx context.Context, q query.Query) error {
	start := r.now()

	t, err := r.loadTreeFunc(ctx, r.loader, q, nil)
	if err != nil {
		return reportError(q.String(), "failed to load tree", err)
	}

	leaves := slices.Collect(t.IterateLeaves())

	if r.Debug {
		plural := pluralize.NewClient()
		utils.DebugPrintf("Found %s for %s\n", plural.Pluralize("case", len(leaves), true), q)
	}

	results := make([]*logger.CaseResult, len(leaves))

	var bar *progressbar.ProgressBar
	if r.Progress {
		bar = progressbar.NewOptions(len(leaves),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(q.String()),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))

	for i, leaf := range leaves {
		g.Go(func() error {
			lq := leaf.Query()
			params := lq.Params()

			_, group := r.log.Record(testName(lq))
			res, rec := group.Record(lq.String(), &params)
			results[i] = res

			if err := leaf.Run(gctx, rec); err != nil {
				return err
			}

			if bar != nil {
				_ = bar.Add(1)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reportError(q.String(), "case runner misuse", err)
	}

	failed := false

	for _, res := range results {
		res.Print(r.output, r.Verbose)

		if res.Snapshot().Status == logger.StatusFail {
			failed = true
		}
	}

	elapsed := r.now().Sub(start)

	if failed {
		fmt.Fprintf(r.output, "FAIL\t%s\t%.3fs\n", q, elapsed.Seconds()) //nolint:errcheck // output function, error handling not practical
		return fmt.Errorf("cases failed in %s", q)
	}

	fmt.Fprintf(r.output, "ok\t%s\t%.3fs\n", q, elapsed.Seconds()) //nolint:errcheck // output function, error handling not practical

	return nil
}

// testName is the name of the test of a case, e.g. "s:a,b:t".
func testName(q query.Query) string {
	return query.SingleCase(q.Suite(), q.FilePath(), q.TestPath(), query.Params{}).String()
}
