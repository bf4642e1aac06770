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


// Package checklist verifies that a checklist of queries partitions the cases
// of its suites: no two items overlap and every collapsed subtree is matched.
package checklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/spf13/afero"
)

// SuiteQueries holds the checklist items of one suite.
type SuiteQueries struct {
	Suite   string
	Queries []query.Query
	// Err holds the parse errors of the suite's lines. A suite with parse
	// errors is not checked.
	Err error
}

// Load reads a checklist file: one query per line, blank lines ignored.
// Items are grouped by suite in order of first appearance. A malformed line
// is attached to the suite named before its first ':'.
func Load(fs afero.Fs, path string) ([]SuiteQueries, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist %s: %w", path, err)
	}

	var suites []*SuiteQueries

	bySuite := make(map[string]*SuiteQueries)
	parseErrs := make(map[string][]error)

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, _, _ := strings.Cut(line, ":")

		sq, ok := bySuite[name]
		if !ok {
			sq = &SuiteQueries{Suite: name}
			bySuite[name] = sq
			suites = append(suites, sq)
		}

		q, err := query.Parse(line)
		if err != nil {
			parseErrs[name] = append(parseErrs[name], fmt.Errorf("%s:%d: %w", path, i+1, err))
			continue
		}

		sq.Queries = append(sq.Queries, q)
	}

	out := make([]SuiteQueries, 0, len(suites))
	for _, sq := range suites {
		sq.Err = errors.Join(parseErrs[sq.Suite]...)
		out = append(out, *sq)
	}

	return out, nil
}

// Overlap is a pair of checklist items that are not Unordered.
type Overlap struct {
	A, B     query.Query
	Ordering query.Ordering
}

// OverlapError lists every overlapping pair of a checklist.
type OverlapError struct {
	Pairs []Overlap
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	parts := make([]string, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		parts = append(parts, fmt.Sprintf("The following checklist items overlap:\n    %s\n    %s", p.A, p.B))
	}

	return strings.Join(parts, "\n")
}

// CheckOverlaps compares every pair of queries. Equal, StrictSubset and
// StrictSuperset pairs all overlap.
func CheckOverlaps(queries []query.Query) error {
	var pairs []Overlap

	for i, a := range queries {
		for _, b := range queries[i+1:] {
			if o := query.Compare(a, b); o != query.Unordered {
				pairs = append(pairs, Overlap{A: a, B: b, Ordering: o})
			}
		}
	}

	if len(pairs) > 0 {
		return &OverlapError{Pairs: pairs}
	}

	return nil
}
