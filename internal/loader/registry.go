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


package loader

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry is an in-memory FileLoader. Suites and files are listed in the
// order they were added.
type Registry struct {
	mu     sync.Mutex
	suites []string
	files  map[string][]registeredFile
}

type registeredFile struct {
	path []string
	spec *Spec
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{files: make(map[string][]registeredFile)}
}

// Add registers spec as the file at path in suite, replacing any spec
// previously registered there.
func (r *Registry) Add(suite string, path []string, spec *Spec) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, ok := r.files[suite]
	if !ok {
		r.suites = append(r.suites, suite)
	}

	for i := range files {
		if slices.Equal(files[i].path, path) {
			files[i].spec = spec
			return r
		}
	}

	r.files[suite] = append(files, registeredFile{path: slices.Clone(path), spec: spec})

	return r
}

// ListSuites implements FileLoader.
func (r *Registry) ListSuites(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.suites), nil
}

// ListFiles implements FileLoader.
func (r *Registry) ListFiles(_ context.Context, suite string) ([][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, ok := r.files[suite]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q", suite)
	}

	paths := make([][]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, slices.Clone(f.path))
	}

	return paths, nil
}

// Import implements FileLoader.
func (r *Registry) Import(ctx context.Context, suite string, file []string) (*Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.files[suite] {
		if slices.Equal(f.path, file) {
			return f.spec, nil
		}
	}

	return nil, fmt.Errorf("no file %s in suite %q", strings.Join(file, ","), suite)
}
