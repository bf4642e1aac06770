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


package checklist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/loader"
	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/tree"
	"github.com/gertd/go-pluralize"
	"github.com/spf13/afero"
)

// Verifier checks checklist files against the suites of a loader.
type Verifier struct {
	Fs     afero.Fs
	Loader loader.FileLoader
	// Out receives the progress report.
	Out io.Writer
	// Strict turns overbroad matches into coverage errors.
	Strict bool
}

// Verify checks the checklist at path suite by suite. A failing suite does not
// stop the others; the errors of all suites are joined.
func (v *Verifier) Verify(ctx context.Context, path string) error {
	v.printf("Loading queries...\n")

	suites, err := Load(v.Fs, path)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(suites))
	for _, sq := range suites {
		names = append(names, sq.Suite)
	}

	v.printf("  Found suites: %s\n", strings.Join(names, " "))

	var errs []error

	for _, sq := range suites {
		v.printf("Suite %q:\n", sq.Suite)

		if err := v.verifySuite(ctx, sq); err != nil {
			errs = append(errs, fmt.Errorf("suite %q: %w", sq.Suite, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	v.printf("Checklist looks good!\n")

	return nil
}

func (v *Verifier) verifySuite(ctx context.Context, sq SuiteQueries) error {
	if sq.Err != nil {
		return sq.Err
	}

	plural := pluralize.NewClient()

	v.printf("  Checking overlaps between %s...\n", plural.Pluralize("checklist item", len(sq.Queries), true))

	if err := CheckOverlaps(sq.Queries); err != nil {
		return err
	}

	suiteQuery := query.MultiSuite(sq.Suite)
	v.printf("  Loading tree %s...\n", suiteQuery)

	t, err := tree.LoadForQuery(ctx, v.Loader, suiteQuery, sq.Queries)
	if err != nil {
		return err
	}

	v.printf("  Found no invalid queries in the checklist. Checking for unmatched tests...\n")

	report, err := CheckUnmatched(t, sq.Queries)

	var internalErr *InternalError
	if errors.As(err, &internalErr) {
		return err
	}

	if len(report.Overbroad) > 0 {
		v.printf("  FYI, the following checklist items were broader than one file:\n")

		for _, o := range report.Overbroad {
			v.printf("    %s\n", o)
		}
	}

	if v.Strict && len(report.Overbroad) > 0 {
		coverageErr := &CoverageError{}
		errors.As(err, &coverageErr)
		coverageErr.Overbroad = report.Overbroad
		err = coverageErr
	}

	if err != nil {
		return err
	}

	v.printf("  No unmatched tests among %s!\n", plural.Pluralize("subtree", report.SubtreeCount, true))

	return nil
}

func (v *Verifier) printf(format string, args ...any) {
	fmt.Fprintf(v.Out, format, args...) //nolint:errcheck // output function, error handling not practical
}
