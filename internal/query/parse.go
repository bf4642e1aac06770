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

import (
	"fmt"
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var validPart = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ParseError reports malformed query text.
type ParseError struct {
	Query  string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid query %q: %s", e.Query, e.Reason)
}

// MustParse is like Parse but panics on malformed text.
func MustParse(s string) Query {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return q
}

// Parse parses the text form of a query:
//
//	suite:*                       MultiSuite
//	suite:a,b,*                   MultiFile
//	suite:a,b:*                   MultiTest (whole file)
//	suite:a,b:t,u,*               MultiTest (test-path prefix)
//	suite:a,b:t,u                 SingleCase without parameters
//	suite:a,b:t,u:?x=1&y="str"    SingleCase
func Parse(s string) (Query, error) {
	q, reason := parse(s)
	if reason != "" {
		return Query{}, &ParseError{Query: s, Reason: reason}
	}

	return q, nil
}

func parse(s string) (Query, string) {
	parts := strings.SplitN(s, bigSeparator, 4)

	suite := parts[0]
	if suite == "" {
		return Query{}, "empty suite name"
	}

	if !validPart.MatchString(suite) {
		return Query{}, fmt.Sprintf("suite name %q must match %s", suite, validPart)
	}

	if len(parts) == 1 {
		return Query{}, fmt.Sprintf("missing %q after the suite name; did you mean %s:*?", bigSeparator, suite)
	}

	file, fileWildcard, reason := parsePath(parts[1])
	if reason != "" {
		return Query{}, reason
	}

	if len(parts) == 2 {
		if !fileWildcard {
			return Query{}, "file-level query without wildcard; append ,* for a file-level query or :* for a test-level query"
		}

		return MultiFile(suite, file...), ""
	}

	if fileWildcard {
		return Query{}, "wildcard must be at the end of the query"
	}

	if len(file) == 0 {
		return Query{}, "empty file path"
	}

	test, testWildcard, reason := parsePath(parts[2])
	if reason != "" {
		return Query{}, reason
	}

	if testWildcard {
		if len(parts) == 4 {
			return Query{}, "wildcard must be at the end of the query"
		}

		return MultiTest(suite, file, test), ""
	}

	if len(test) == 0 {
		return Query{}, "empty test path"
	}

	if len(parts) == 3 {
		return SingleCase(suite, file, test, Params{}), ""
	}

	params, reason := parseParams(parts[3])
	if reason != "" {
		return Query{}, reason
	}

	return SingleCase(suite, file, test, params), ""
}

// parsePath splits a comma-separated path and reports a trailing wildcard.
func parsePath(s string) ([]string, bool, string) {
	if s == "" {
		return nil, false, ""
	}

	if s == wildcard {
		return nil, true, ""
	}

	segments := strings.Split(s, pathSeparator)

	hasWildcard := segments[len(segments)-1] == wildcard
	if hasWildcard {
		segments = segments[:len(segments)-1]
	}

	for _, seg := range segments {
		switch {
		case seg == "":
			return nil, false, fmt.Sprintf("empty path segment in %q", s)
		case strings.Contains(seg, wildcard):
			return nil, false, fmt.Sprintf("wildcard must be a whole, final path segment in %q", s)
		case !validPart.MatchString(seg):
			return nil, false, fmt.Sprintf("path segment %q must match %s", seg, validPart)
		}
	}

	return segments, hasWildcard, ""
}

func parseParams(s string) (Params, string) {
	if s == "" || s == paramsPrefix {
		return Params{}, ""
	}

	if !strings.HasPrefix(s, paramsPrefix) {
		return Params{}, fmt.Sprintf("case parameters must start with %q", paramsPrefix)
	}

	seen := make(map[string]bool)

	var ps []Param

	for _, part := range strings.Split(s[len(paramsPrefix):], paramSeparator) {
		if part == "" {
			return Params{}, "empty parameter"
		}

		k, raw, ok := strings.Cut(part, "=")
		if !ok {
			return Params{}, fmt.Sprintf("parameter %q is missing '='", part)
		}

		if !validPart.MatchString(k) {
			return Params{}, fmt.Sprintf("parameter name %q must match %s", k, validPart)
		}

		if seen[k] {
			return Params{}, fmt.Sprintf("duplicate parameter %q", k)
		}

		seen[k] = true

		v, err := parseValue(raw)
		if err != nil {
			return Params{}, fmt.Sprintf("invalid value for parameter %q: %v", k, err)
		}

		ps = append(ps, P(k, v))
	}

	return NewParams(ps...), ""
}

// IsValidName reports whether s can be used as a path segment or a parameter name.
func IsValidName(s string) bool {
	return validPart.MatchString(s)
}
