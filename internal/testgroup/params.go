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
	"github.com/crossplane-contrib/xcts/internal/query"
)

// Options returns one parameter record per value, each setting key.
func Options(key string, values ...any) []query.Params {
	out := make([]query.Params, 0, len(values))
	for _, v := range values {
		out = append(out, query.NewParams(query.P(key, v)))
	}

	return out
}

// Combine returns the cartesian product of the given record lists, merging
// the records of each combination in argument order. The first list varies
// slowest.
func Combine(lists ...[]query.Params) []query.Params {
	out := []query.Params{query.NewParams()}

	for _, list := range lists {
		next := make([]query.Params, 0, len(out)*len(list))

		for _, prefix := range out {
			for _, p := range list {
				next = append(next, prefix.Merge(p))
			}
		}

		out = next
	}

	return out
}
