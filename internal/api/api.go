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


// Package api provides the API type definitions and validation methods for spec files.
package api

import (
	"fmt"
	"slices"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// FileSuffix is the suffix of spec files under a suite root.
const FileSuffix = ".spec.yaml"

// SpecFile represents the structure of a spec file: the tests of one file of a suite.
type SpecFile struct {
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Common      Common     `json:"common,omitempty"      yaml:"common,omitempty"`
	Tests       []TestSpec `json:"tests"                 yaml:"tests"`
}

// Common represents the settings shared by every test of a spec file.
type Common struct {
	Fn      string  `json:"fn,omitempty"      yaml:"fn,omitempty"`      // Default body of the tests
	Combine Options `json:"combine,omitempty" yaml:"combine,omitempty"` // Options combined into every test's cases
}

// TestSpec represents a single test: a body run once per case.
type TestSpec struct {
	Name        string    `json:"name"                  yaml:"name"`                  // Mandatory test path, segments separated by ','
	Description string    `json:"description,omitempty" yaml:"description,omitempty"` // Optional description
	Fn          string    `json:"fn,omitempty"          yaml:"fn,omitempty"`          // Name of a registered body
	Combine     Options   `json:"combine,omitempty"     yaml:"combine,omitempty"`     // Cartesian product of the options
	Cases       []CaseSet `json:"cases,omitempty"       yaml:"cases,omitempty"`       // Explicit cases, after the combined ones
}

// Option is one parameter and the values it takes.
type Option struct {
	Key    string
	Values []any
}

// Options is an ordered list of options. In YAML it is a mapping from
// parameter name to a list of values; the mapping order is kept.
type Options []Option

// CaseSet is the ordered parameters of one explicit case. In YAML it is a
// mapping from parameter name to value.
type CaseSet []query.Param

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: combine must be a mapping of parameter names to lists of values", node.Line)
	}

	out := make(Options, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if value.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: values of option '%s' must be a list", value.Line, key.Value)
		}

		var values []any
		if err := value.Decode(&values); err != nil {
			return fmt.Errorf("line %d: invalid values of option '%s': %w", value.Line, key.Value, err)
		}

		out = append(out, Option{Key: key.Value, Values: values})
	}

	*o = out

	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CaseSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: a case must be a mapping of parameter names to values", node.Line)
	}

	out := make(CaseSet, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var v any
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: invalid value of parameter '%s': %w", value.Line, key.Value, err)
		}

		out = append(out, query.P(key.Value, v))
	}

	*c = out

	return nil
}

// JSONSchema describes Options as an object of arrays.
func (Options) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Parameter names mapped to the values they take; cases are the cartesian product",
		AdditionalProperties: &jsonschema.Schema{Type: "array"},
	}
}

// JSONSchema describes a CaseSet as an object of parameter values.
func (CaseSet) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Parameter names mapped to their values",
		AdditionalProperties: jsonschema.TrueSchema,
	}
}

// Keys returns the parameter names of the options, in order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, opt := range o {
		keys = append(keys, opt.Key)
	}

	return keys
}

// HasCombine returns true if the test combines options.
func (ts *TestSpec) HasCombine() bool {
	return len(ts.Combine) > 0
}

// HasCases returns true if the test lists explicit cases.
func (ts *TestSpec) HasCases() bool {
	return len(ts.Cases) > 0
}

// HasParams returns true if the test has parameterized cases.
func (ts *TestSpec) HasParams() bool {
	return ts.HasCombine() || ts.HasCases()
}

// Path returns the test path.
func (ts *TestSpec) Path() []string {
	return strings.Split(ts.Name, ",")
}

// HasCommon returns true if any common settings are set in the spec file.
func (sf *SpecFile) HasCommon() bool {
	return sf.Common.Fn != "" || len(sf.Common.Combine) > 0
}

// MergeCommon merges the common settings into the test. The test's own body
// wins, and common options are prepended for the parameters the test does not
// combine itself.
func (ts *TestSpec) MergeCommon(common Common) {
	if ts.Fn == "" {
		ts.Fn = common.Fn
	}

	if len(common.Combine) == 0 {
		return
	}

	own := ts.Combine.Keys()

	merged := make(Options, 0, len(common.Combine)+len(ts.Combine))
	for _, opt := range common.Combine {
		if !slices.Contains(own, opt.Key) {
			merged = append(merged, Option{Key: opt.Key, Values: slices.Clone(opt.Values)})
		}
	}

	ts.Combine = append(merged, ts.Combine...)
}

// CheckValidSpecFile checks:
// - if test names are non-empty, well-formed and unique
// - if option and case parameter names are valid and not repeated
// - if every test has a body, given the names of the registered bodies
// and returns a list of all validation errors found.
func (sf *SpecFile) CheckValidSpecFile(bodies []string) error {
	var allErrors []string

	usedNames := make(map[string]bool)

	for i := range sf.Tests {
		test := &sf.Tests[i]

		if test.Name == "" {
			allErrors = append(allErrors, fmt.Sprintf("test #%d has empty name", i+1))
		} else {
			if !hasValidPath(test.Name) {
				allErrors = append(allErrors, fmt.Sprintf("test name '%s' contains invalid characters (allowed: alphanumeric, underscore, comma between segments)", test.Name))
			}

			if usedNames[test.Name] {
				allErrors = append(allErrors, fmt.Sprintf("duplicate test name '%s' found", test.Name))
			} else {
				usedNames[test.Name] = true
			}
		}

		fn := test.Fn
		if fn == "" {
			fn = sf.Common.Fn
		}

		switch {
		case fn == "":
			allErrors = append(allErrors, fmt.Sprintf("test '%s' has no fn (it can be specified either in the test or in common)", test.Name))
		case !slices.Contains(bodies, fn):
			allErrors = append(allErrors, fmt.Sprintf("test '%s' uses unknown fn '%s' (known: %s)", test.Name, fn, strings.Join(bodies, ", ")))
		}

		owner := fmt.Sprintf("test '%s'", test.Name)
		allErrors = append(allErrors, checkNames(owner, "option", test.Combine.Keys())...)

		for j, c := range test.Cases {
			keys := make([]string, 0, len(c))
			for _, p := range c {
				keys = append(keys, p.Key)
			}

			allErrors = append(allErrors, checkNames(owner, fmt.Sprintf("case #%d parameter", j+1), keys)...)
		}
	}

	allErrors = append(allErrors, checkNames("common", "option", sf.Common.Combine.Keys())...)

	if len(allErrors) > 0 {
		return fmt.Errorf("invalid spec file:\n- %s", strings.Join(allErrors, "\n- "))
	}

	return nil
}

func hasValidPath(name string) bool {
	for _, seg := range strings.Split(name, ",") {
		if !query.IsValidName(seg) {
			return false
		}
	}

	return true
}

func checkNames(owner, what string, names []string) []string {
	var errs []string

	seen := make(map[string]bool)

	for _, name := range names {
		if !query.IsValidName(name) {
			errs = append(errs, fmt.Sprintf("%s: %s name '%s' contains invalid characters (allowed: alphanumeric, underscore)", owner, what, name))
		}

		if seen[name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate %s '%s'", owner, what, name))
		}

		seen[name] = true
	}

	return errs
}

// Schema returns the JSON schema of the spec-file format.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true}

	s := r.Reflect(&SpecFile{})
	s.Title = "xcts spec file"
	s.Description = "Tests of one file of a conformance suite (*" + FileSuffix + ")"

	return s
}
