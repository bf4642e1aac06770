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


package testgroup

import (
	"fmt"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/query"
)

// Validate checks the group and returns every problem found:
// - test names are non-empty and made of valid path segments
// - test names are unique, and no test path is a prefix of another
// - no test repeats a parameter record
// - every test has a body.
func (g *Group) Validate() error {
	var allErrors []string

	seen := make(map[string]bool)

	for _, t := range g.tests {
		if t.name == "" {
			allErrors = append(allErrors, "test has empty name")
			continue
		}

		if !validTestName(t.name) {
			allErrors = append(allErrors, fmt.Sprintf("test name '%s' contains invalid characters (allowed: alphanumeric, underscore, comma between segments)", t.name))
		}

		if seen[t.name] {
			allErrors = append(allErrors, fmt.Sprintf("duplicate test name '%s' found", t.name))
		}

		seen[t.name] = true

		if t.fn == nil {
			allErrors = append(allErrors, fmt.Sprintf("test '%s' has no body", t.name))
		}

		for i, p := range t.params {
			for _, prev := range t.params[:i] {
				if prev.Equal(p) {
					allErrors = append(allErrors, fmt.Sprintf("test '%s' has duplicate parameters '%s'", t.name, p))
					break
				}
			}
		}
	}

	for _, a := range g.tests {
		for _, b := range g.tests {
			if a.name != "" && a.name != b.name && strings.HasPrefix(b.name, a.name+pathSeparator) {
				allErrors = append(allErrors, fmt.Sprintf("test path '%s' is a prefix of test path '%s'", a.name, b.name))
			}
		}
	}

	if len(allErrors) > 0 {
		return fmt.Errorf("invalid test group:\n- %s", strings.Join(allErrors, "\n- "))
	}

	return nil
}

func validTestName(name string) bool {
	for _, seg := range strings.Split(name, pathSeparator) {
		if !query.IsValidName(seg) {
			return false
		}
	}

	return true
}
