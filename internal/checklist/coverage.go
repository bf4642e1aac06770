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
	"fmt"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/tree"
)

// Overbroad is a checklist item matching a collapsed subtree it strictly contains.
type Overbroad struct {
	Query   query.Query
	Subtree query.Query
}

// String renders the match as "query  >  subtree".
func (o Overbroad) String() string {
	return fmt.Sprintf("%s  >  %s", o.Query, o.Subtree)
}

// Report describes a coverage check.
type Report struct {
	// SubtreeCount is the number of collapsed subtrees checked.
	SubtreeCount int
	// Overbroad lists the matches by items broader than the subtree they matched.
	Overbroad []Overbroad
}

// CoverageError lists every subtree no checklist item matches, and in strict
// mode every overbroad match.
type CoverageError struct {
	Unmatched []query.Query
	Overbroad []Overbroad
}

// Error implements the error interface.
func (e *CoverageError) Error() string {
	var parts []string

	if len(e.Unmatched) > 0 {
		lines := make([]string, 0, len(e.Unmatched))
		for _, q := range e.Unmatched {
			lines = append(lines, q.String())
		}

		parts = append(parts, "Found unmatched tests:\n    "+strings.Join(lines, "\n    "))
	}

	if len(e.Overbroad) > 0 {
		lines := make([]string, 0, len(e.Overbroad))
		for _, o := range e.Overbroad {
			lines = append(lines, o.String())
		}

		parts = append(parts, "Found checklist items broader than one file:\n    "+strings.Join(lines, "\n    "))
	}

	return strings.Join(parts, "\n")
}

// InternalError reports a checklist item strictly inside a collapsed subtree.
// It means the tree was not expanded for that item, a bug in the tree loader
// rather than in the checklist.
type InternalError struct {
	Query   query.Query
	Subtree query.Query
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: checklist item %s is inside the collapsed subtree %s", e.Query, e.Subtree)
}

// CheckUnmatched matches every collapsed subtree of t, empty ones included,
// against queries. It does not stop at the first unmatched subtree: all of
// them are returned in one *CoverageError.
func CheckUnmatched(t *tree.Tree, queries []query.Query) (Report, error) {
	var (
		report    Report
		unmatched []query.Query
	)

	for subtree := range t.IterateCollapsed(true) {
		report.SubtreeCount++

		matched := false

		for _, q := range queries {
			switch query.Compare(q, subtree) {
			case query.StrictSubset:
				return report, &InternalError{Query: q, Subtree: subtree}
			case query.StrictSuperset:
				report.Overbroad = append(report.Overbroad, Overbroad{Query: q, Subtree: subtree})
				matched = true
			case query.Equal:
				matched = true
			case query.Unordered:
			}
		}

		if !matched {
			unmatched = append(unmatched, subtree)
		}
	}

	if len(unmatched) > 0 {
		return report, &CoverageError{Unmatched: unmatched}
	}

	return report, nil
}
