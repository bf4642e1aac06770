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

// Package query provides the addressable namespace of the harness: queries over
// suite:file:test:case, their text form and their partial order.
package query

import (
	"strings"
)

const (
	bigSeparator   = ":"
	pathSeparator  = ","
	paramSeparator = "&"
	paramsPrefix   = "?"
	wildcard       = "*"
)

// Kind tells which of the four query shapes a Query has.
type Kind int

const (
	// KindMultiSuite matches an entire suite, e.g. "s:*".
	KindMultiSuite Kind = iota
	// KindMultiFile matches a file or a directory of files, e.g. "s:a,b,*".
	KindMultiFile
	// KindMultiTest matches a file or a test-path prefix within a file, e.g. "s:a,b:*" or "s:a,b:t,*".
	KindMultiTest
	// KindSingleCase matches exactly one parameterized case, e.g. "s:a,b:t:?x=1".
	KindSingleCase
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindMultiSuite:
		return "MultiSuite"
	case KindMultiFile:
		return "MultiFile"
	case KindMultiTest:
		return "MultiTest"
	case KindSingleCase:
		return "SingleCase"
	default:
		return "Unknown"
	}
}

// Query identifies a point or a region of the suite:file:test:case namespace.
// A Query is immutable: accessors return copies.
type Query struct {
	kind   Kind
	suite  string
	file   []string
	test   []string
	params Params
}

// MultiSuite returns the query matching every case of a suite.
func MultiSuite(suite string) Query {
	return Query{kind: KindMultiSuite, suite: suite}
}

// MultiFile returns the query matching the file or directory prefix file within suite.
// An empty file path is the same region as MultiSuite(suite) and yields that query.
func MultiFile(suite string, file ...string) Query {
	if len(file) == 0 {
		return MultiSuite(suite)
	}

	return Query{kind: KindMultiFile, suite: suite, file: clone(file)}
}

// MultiTest returns the query matching every test of file whose path starts with test.
func MultiTest(suite string, file, test []string) Query {
	return Query{kind: KindMultiTest, suite: suite, file: clone(file), test: clone(test)}
}

// SingleCase returns the query matching exactly one case.
func SingleCase(suite string, file, test []string, params Params) Query {
	return Query{kind: KindSingleCase, suite: suite, file: clone(file), test: clone(test), params: params}
}

// Kind returns the shape of the query.
func (q Query) Kind() Kind { return q.kind }

// Suite returns the suite name.
func (q Query) Suite() string { return q.suite }

// FilePath returns the file path segments (empty for MultiSuite).
func (q Query) FilePath() []string { return clone(q.file) }

// TestPath returns the test path segments (empty above the test level).
func (q Query) TestPath() []string { return clone(q.test) }

// Params returns the case parameters (empty unless the query is a SingleCase).
func (q Query) Params() Params { return q.params }

// String returns the text form of the query. Parse(q.String()) is equal to q.
func (q Query) String() string {
	var b strings.Builder

	b.WriteString(q.suite)
	b.WriteString(bigSeparator)

	switch q.kind {
	case KindMultiSuite:
		b.WriteString(wildcard)
	case KindMultiFile:
		b.WriteString(strings.Join(q.file, pathSeparator))
		b.WriteString(pathSeparator + wildcard)
	case KindMultiTest:
		b.WriteString(strings.Join(q.file, pathSeparator))
		b.WriteString(bigSeparator)

		if len(q.test) > 0 {
			b.WriteString(strings.Join(q.test, pathSeparator))
			b.WriteString(pathSeparator)
		}

		b.WriteString(wildcard)
	case KindSingleCase:
		b.WriteString(strings.Join(q.file, pathSeparator))
		b.WriteString(bigSeparator)
		b.WriteString(strings.Join(q.test, pathSeparator))

		if q.params.Len() > 0 {
			b.WriteString(bigSeparator + paramsPrefix)
			b.WriteString(q.params.String())
		}
	}

	return b.String()
}

// Equal reports whether q and other denote the same region.
func (q Query) Equal(other Query) bool {
	return Compare(q, other) == Equal
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	out := make([]string, len(s))
	copy(out, s)

	return out
}
