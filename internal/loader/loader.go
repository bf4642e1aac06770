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


// Package loader defines how the harness reaches test files: a FileLoader
// lists the suites and files it knows and imports a file into a Spec, whose
// group iterates into tests and cases.
package loader

import (
	"context"
	"iter"

	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/crossplane-contrib/xcts/internal/query"
)

// FileLoader discovers and imports test files.
type FileLoader interface {
	// ListSuites returns the names of the known suites.
	ListSuites(ctx context.Context) ([]string, error)
	// ListFiles returns the path of every file of a suite, in listing order.
	ListFiles(ctx context.Context, suite string) ([][]string, error)
	// Import loads one file. It may be called concurrently for different files.
	Import(ctx context.Context, suite string, file []string) (*Spec, error)
}

// Spec is the content of one imported test file.
type Spec struct {
	Description string
	Group       TestGroup
}

// TestGroup is the set of tests defined by a file.
type TestGroup interface {
	Tests() iter.Seq[Test]
}

// Test is one test of a file. Its path is the test-level part of its queries.
type Test interface {
	Path() []string
	Description() string
	Cases() iter.Seq[Case]
}

// Case is one parameterization of a test.
type Case interface {
	Params() query.Params
	// Run executes the case against rec, which it starts and finishes. Test
	// failures are recorded on rec; the returned error is reserved for misuse
	// of the recorder.
	Run(ctx context.Context, rec *logger.CaseRecorder, q query.Query) error
}
