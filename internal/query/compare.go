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

package query

// Ordering is the partial-order relation between two queries.
type Ordering int

const (
	// Unordered means neither query contains the other.
	Unordered Ordering = iota
	// StrictSubset means the first query is contained in, and narrower than, the second.
	StrictSubset
	// Equal means both queries denote the same region.
	Equal
	// StrictSuperset means the first query contains, and is broader than, the second.
	StrictSuperset
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case StrictSubset:
		return "StrictSubset"
	case Equal:
		return "Equal"
	case StrictSuperset:
		return "StrictSuperset"
	default:
		return "Unordered"
	}
}

// Inverse returns the ordering of (b, a) given the ordering of (a, b).
func (o Ordering) Inverse() Ordering {
	switch o {
	case StrictSubset:
		return StrictSuperset
	case StrictSuperset:
		return StrictSubset
	default:
		return o
	}
}

// Compare returns the ordering of a relative to b.
//
// The levels are compared top-down. At each level a query is "big" when it
// matches everything below a path prefix at that level (MultiSuite and
// MultiFile at the file level, MultiTest at the test level). Parameters are
// never compared partially: two SingleCase queries are Equal only when every
// key/value pair matches, and Unordered otherwise.
func Compare(a, b Query) Ordering {
	if a.suite != b.suite {
		return Unordered
	}

	fileOrdering := comparePaths(a.file, b.file)

	aBig, bBig := a.kind <= KindMultiFile, b.kind <= KindMultiFile
	if fileOrdering != Equal || aBig || bBig {
		return compareOneLevel(fileOrdering, aBig, bBig)
	}

	testOrdering := comparePaths(a.test, b.test)

	aBig, bBig = a.kind == KindMultiTest, b.kind == KindMultiTest
	if testOrdering != Equal || aBig || bBig {
		return compareOneLevel(testOrdering, aBig, bBig)
	}

	if a.params.Equal(b.params) {
		return Equal
	}

	return Unordered
}

// compareOneLevel turns the ordering of two paths into the ordering of the
// queries, given which of them match everything below their path.
func compareOneLevel(ordering Ordering, aBig, bBig bool) Ordering {
	switch {
	case ordering == Unordered:
		return Unordered
	case aBig && bBig:
		return ordering
	case !aBig && !bBig:
		// Different paths name different files or tests.
		return Unordered
	case aBig && ordering != StrictSubset:
		return StrictSuperset
	case bBig && ordering != StrictSuperset:
		return StrictSubset
	default:
		return Unordered
	}
}

func comparePaths(a, b []string) Ordering {
	shorter := min(len(a), len(b))

	for i := range shorter {
		if a[i] != b[i] {
			return Unordered
		}
	}

	switch {
	case len(a) == len(b):
		return Equal
	case len(a) < len(b):
		return StrictSuperset
	default:
		return StrictSubset
	}
}
