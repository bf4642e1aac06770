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


// Package dirloader loads suites from directories of YAML spec files.
package dirloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/api"
	"github.com/crossplane-contrib/xcts/internal/loader"
	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/testgroup"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DirLoader is a loader.FileLoader reading each suite from a root directory.
// Every *.spec.yaml file under the root is a file of the suite; its path
// segments are the directories below the root and the base name without the
// suffix.
type DirLoader struct {
	fs     afero.Fs
	roots  map[string]string
	bodies map[string]testgroup.Fn
}

// Option configures a DirLoader.
type Option func(*DirLoader)

// WithBody registers a named test body, replacing a built-in one of the same name.
func WithBody(name string, fn testgroup.Fn) Option {
	return func(l *DirLoader) {
		l.bodies[name] = fn
	}
}

// New creates a DirLoader for the given suite roots.
func New(fs afero.Fs, roots map[string]string, opts ...Option) *DirLoader {
	l := &DirLoader{
		fs:     fs,
		roots:  maps.Clone(roots),
		bodies: Builtins(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Bodies returns the names of the registered test bodies, sorted.
func (l *DirLoader) Bodies() []string {
	return slices.Sorted(maps.Keys(l.bodies))
}

// ListSuites implements loader.FileLoader. Suites are sorted by name.
func (l *DirLoader) ListSuites(context.Context) ([]string, error) {
	return slices.Sorted(maps.Keys(l.roots)), nil
}

// ListFiles implements loader.FileLoader.
func (l *DirLoader) ListFiles(ctx context.Context, suite string) ([][]string, error) {
	root, err := l.root(suite)
	if err != nil {
		return nil, err
	}

	var (
		files   [][]string
		invalid []string
	)

	err = afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), api.FileSuffix) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		file := strings.Split(strings.TrimSuffix(filepath.ToSlash(rel), api.FileSuffix), "/")
		if !slices.ContainsFunc(file, func(seg string) bool { return !query.IsValidName(seg) }) {
			files = append(files, file)
		} else {
			invalid = append(invalid, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list spec files of suite %q in %s: %w", suite, root, err)
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid spec file names in %s (allowed: alphanumeric, underscore):\n- %s", root, strings.Join(invalid, "\n- "))
	}

	return files, nil
}

// Import implements loader.FileLoader.
func (l *DirLoader) Import(ctx context.Context, suite string, file []string) (*loader.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.root(suite)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(append([]string{root}, file...)...) + api.FileSuffix

	specFile, err := l.load(path)
	if err != nil {
		return nil, err
	}

	group := l.build(specFile)
	if err := group.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &loader.Spec{Description: specFile.Description, Group: group}, nil
}

func (l *DirLoader) root(suite string) (string, error) {
	root, ok := l.roots[suite]
	if !ok {
		return "", fmt.Errorf("unknown suite %q", suite)
	}

	return root, nil
}

// load reads, parses and validates a single spec file.
func (l *DirLoader) load(path string) (*api.SpecFile, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}

	var specFile api.SpecFile
	if err := yaml.Unmarshal(data, &specFile); err != nil {
		return nil, fmt.Errorf("failed to parse spec file %s: %w", path, err)
	}

	if err := specFile.CheckValidSpecFile(l.Bodies()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &specFile, nil
}

// build turns a validated spec file into a test group. Combined cases come
// first, then the explicit ones.
func (l *DirLoader) build(specFile *api.SpecFile) *testgroup.Group {
	g := testgroup.New()

	for i := range specFile.Tests {
		test := specFile.Tests[i]
		test.MergeCommon(specFile.Common)

		b := g.Test(test.Name).Desc(test.Description)

		if test.HasParams() {
			b = b.Params(caseParams(&test)...)
		}

		b.Fn(l.bodies[test.Fn])
	}

	return g
}

func caseParams(test *api.TestSpec) []query.Params {
	var params []query.Params

	if test.HasCombine() {
		lists := make([][]query.Params, 0, len(test.Combine))
		for _, opt := range test.Combine {
			lists = append(lists, testgroup.Options(opt.Key, opt.Values...))
		}

		params = testgroup.Combine(lists...)
	}

	for _, c := range test.Cases {
		params = append(params, query.NewParams(c...))
	}

	return params
}
