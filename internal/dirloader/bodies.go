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


package dirloader

import (
	"fmt"

	"github.com/crossplane-contrib/xcts/internal/testgroup"
	"github.com/google/go-cmp/cmp"
)

// Builtins returns the test bodies every DirLoader knows:
//
//	pass   records a passed check
//	warn   records a warning, the "message" parameter if set
//	fail   records a failure, the "message" parameter if set
//	throw  panics with the "message" parameter if set
//	equal  expects the "got" parameter to equal the "want" parameter
func Builtins() map[string]testgroup.Fn {
	return map[string]testgroup.Fn{
		"pass":  pass,
		"warn":  warn,
		"fail":  fail,
		"throw": throw,
		"equal": equal,
	}
}

func pass(t *testgroup.T) {
	t.OK("passed")
}

func warn(t *testgroup.T) {
	t.Warn(message(t, "warning"))
}

func fail(t *testgroup.T) {
	t.Fail(message(t, "failed"))
}

func throw(t *testgroup.T) {
	panic(message(t, "thrown"))
}

func equal(t *testgroup.T) {
	diff := cmp.Diff(t.Param("want"), t.Param("got"))
	if diff == "" {
		t.OK("got equals want")
		return
	}

	t.Fail(fmt.Sprintf("got != want (-want +got):\n%s", diff))
}

func message(t *testgroup.T, fallback string) string {
	if s, ok := t.Param("message").(string); ok {
		return s
	}

	return fallback
}
