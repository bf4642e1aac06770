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


package tree

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/loader"
	"github.com/crossplane-contrib/xcts/internal/query"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentImports = 8

// LoadError lists every reason a tree could not be loaded for a query.
type LoadError struct {
	Query    query.Query
	Problems []string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load tree for %s:\n- %s", e.Query, strings.Join(e.Problems, "\n- "))
}

// LoadForQuery loads the cases of root into a tree, importing only the files
// root can reach. Each query of expand must name a node of the tree; nodes
// holding an expand query strictly inside them are not collapsible, so that
// collapsed iteration reaches the granularity of every expand query.
//
// Unknown suites, expand queries that match nothing and a root that matches
// no case are reported together in one *LoadError. Import failures are
// returned wrapped with the query of the file.
func LoadForQuery(ctx context.Context, fl loader.FileLoader, root query.Query, expand []query.Query) (*Tree, error) {
	suite := root.Suite()

	suites, err := fl.ListSuites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suites: %w", err)
	}

	if !slices.Contains(suites, suite) {
		return nil, &LoadError{Query: root, Problems: []string{
			fmt.Sprintf("suite %q not found (known suites: %s)", suite, strings.Join(suites, ", ")),
		}}
	}

	files, err := fl.ListFiles(ctx, suite)
	if err != nil {
		return nil, fmt.Errorf("failed to list files of suite %q: %w", suite, err)
	}

	b := newBuilder(root, expand)

	var selected [][]string

	for _, file := range files {
		if len(file) == 0 {
			b.problem("suite %q lists a file with an empty path", suite)
			continue
		}

		if query.Compare(query.MultiTest(suite, file, nil), root) != query.Unordered {
			selected = append(selected, file)
		}
	}

	specs, err := importAll(ctx, fl, suite, selected)
	if err != nil {
		return nil, err
	}

	for i, file := range selected {
		b.addFile(file, specs[i])
	}

	return b.finish()
}

// importAll imports files concurrently. Results are in the order of files.
func importAll(ctx context.Context, fl loader.FileLoader, suite string, files [][]string) ([]*loader.Spec, error) {
	specs := make([]*loader.Spec, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentImports)

	for i, file := range files {
		g.Go(func() error {
			spec, err := fl.Import(gctx, suite, file)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", query.MultiTest(suite, file, nil), err)
			}

			if spec == nil || spec.Group == nil {
				return fmt.Errorf("failed to import %s: no test group", query.MultiTest(suite, file, nil))
			}

			specs[i] = spec

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return specs, nil
}

type builder struct {
	root      query.Query
	expand    []query.Query
	seen      []bool
	tree      *Node
	problems  []string
	foundCase bool
}

func newBuilder(root query.Query, expand []query.Query) *builder {
	b := &builder{
		root:   root,
		expand: expand,
		seen:   make([]bool, len(expand)),
	}

	suiteQuery := query.MultiSuite(root.Suite())
	b.visit(suiteQuery)
	b.tree = &Node{query: suiteQuery}

	return b
}

func (b *builder) problem(format string, args ...any) {
	b.problems = append(b.problems, fmt.Sprintf(format, args...))
}

// visit marks the expand queries naming q as seen.
func (b *builder) visit(q query.Query) {
	for i, e := range b.expand {
		if query.Compare(e, q) == query.Equal {
			b.seen[i] = true
		}
	}
}

// collapsible reports whether q stands for its whole subtree: q lies within
// root and no expand query is strictly inside q.
func (b *builder) collapsible(q query.Query) bool {
	if o := query.Compare(q, b.root); o != query.Equal && o != query.StrictSubset {
		return false
	}

	for _, e := range b.expand {
		if query.Compare(e, q) == query.StrictSubset {
			return false
		}
	}

	return true
}

func (b *builder) addFile(file []string, spec *loader.Spec) {
	suite := b.root.Suite()

	// Every prefix of the file path, the full path included, is a directory
	// node; the file node sits under the last one.
	parent := b.tree
	for i := range file {
		q := query.MultiFile(suite, file[:i+1]...)
		parent, _ = parent.child(file[i], func() *Node {
			b.visit(q)
			return &Node{query: q}
		})
	}

	fq := query.MultiTest(suite, file, nil)
	fileNode, _ := parent.child("", func() *Node {
		b.visit(fq)
		return &Node{query: fq, description: strings.TrimSpace(spec.Description), collapsible: b.collapsible(fq)}
	})

	hasTests := false

	for t := range spec.Group.Tests() {
		hasTests = true

		b.addTest(fileNode, file, t)
	}

	if !hasTests && !strings.Contains(spec.Description, "TODO") {
		b.problem("%s has no tests; it must have \"TODO\" in its description", fq)
	}
}

func (b *builder) addTest(fileNode *Node, file []string, t loader.Test) {
	suite := b.root.Suite()
	path := t.Path()

	if len(path) == 0 {
		b.problem("%s has a test with an empty path", fileNode.query)
		return
	}

	tq := query.MultiTest(suite, file, path)

	ordering := query.Compare(tq, b.root)
	if ordering == query.Unordered {
		return
	}

	node := fileNode

	for i := range path {
		q := query.MultiTest(suite, file, path[:i+1])

		var created bool

		node, created = node.child(path[i], func() *Node {
			b.visit(q)
			return &Node{query: q, collapsible: b.collapsible(q)}
		})

		last := i == len(path)-1

		switch {
		case node.isTest && last:
			b.problem("duplicate test %s", tq)
			return
		case node.isTest:
			b.problem("test path %s is a prefix of test path %s", node.query, tq)
			return
		case last && !created:
			b.problem("test path %s is a prefix of another test path", tq)
			return
		}
	}

	node.isTest = true
	node.description = strings.TrimSpace(t.Description())

	if ordering != query.StrictSuperset && node.collapsible {
		for range t.Cases() {
			node.sealed = t
			b.foundCase = true

			break
		}

		return
	}

	for c := range t.Cases() {
		cq := query.SingleCase(suite, file, path, c.Params())
		if o := query.Compare(cq, b.root); o != query.Equal && o != query.StrictSubset {
			continue
		}

		_, created := node.child(c.Params().Key(), func() *Node {
			b.visit(cq)
			return &Node{query: cq, leaf: &Leaf{query: cq, c: c}}
		})
		if !created {
			b.problem("duplicate case %s", cq)
			continue
		}

		b.foundCase = true
	}
}

func (b *builder) finish() (*Tree, error) {
	for i, e := range b.expand {
		if !b.seen[i] {
			b.problem("expansion query did not match anything (could be wrong, or could be redundant with a previous one): %s", e)
		}
	}

	if !b.foundCase {
		b.problem("query %s does not match any cases", b.root)
	}

	if len(b.problems) > 0 {
		return nil, &LoadError{Query: b.root, Problems: b.problems}
	}

	return &Tree{forQuery: b.root, root: b.tree}, nil
}
