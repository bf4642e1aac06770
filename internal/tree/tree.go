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


// Package tree builds the executable tree of the cases selected by a query:
// suite, directories, files, test paths and case leaves.
package tree

import (
	"context"
	"iter"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/loader"
	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/crossplane-contrib/xcts/internal/query"
)

// Tree is the loaded subset of a suite. Its root is always the suite node.
type Tree struct {
	forQuery query.Query
	root     *Node
}

// ForQuery returns the query the tree was loaded for.
func (t *Tree) ForQuery() query.Query {
	return t.forQuery
}

// Root returns the suite node.
func (t *Tree) Root() *Node {
	return t.root
}

// Node is a subtree of a Tree, or a case leaf.
type Node struct {
	query       query.Query
	description string
	children    []*Node
	index       map[string]*Node
	collapsible bool
	isTest      bool
	leaf        *Leaf
	// sealed holds the test of a collapsible test node whose cases are
	// produced only when leaves are iterated.
	sealed loader.Test
}

// Query returns the query naming the node.
func (n *Node) Query() query.Query {
	return n.query
}

// Description returns the description of the file or test the node stands for.
func (n *Node) Description() string {
	return n.description
}

// Children returns the materialized children of the node, in load order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Collapsible reports whether the node's query alone describes its subtree.
func (n *Node) Collapsible() bool {
	return n.collapsible
}

// Sealed reports whether the node's cases are not materialized.
func (n *Node) Sealed() bool {
	return n.sealed != nil
}

// Leaf returns the case held by a leaf node, or nil.
func (n *Node) Leaf() *Leaf {
	return n.leaf
}

func (n *Node) empty() bool {
	return len(n.children) == 0 && n.sealed == nil
}

func (n *Node) child(key string, create func() *Node) (*Node, bool) {
	if c, ok := n.index[key]; ok {
		return c, false
	}

	c := create()
	if n.index == nil {
		n.index = make(map[string]*Node)
	}

	n.index[key] = c
	n.children = append(n.children, c)

	return c, true
}

// Leaf is a runnable case.
type Leaf struct {
	query query.Query
	c     loader.Case
}

// Query returns the SingleCase query of the case.
func (l *Leaf) Query() query.Query {
	return l.query
}

// Case returns the case.
func (l *Leaf) Case() loader.Case {
	return l.c
}

// Run runs the case against rec.
func (l *Leaf) Run(ctx context.Context, rec *logger.CaseRecorder) error {
	return l.c.Run(ctx, rec, l.query)
}

// IterateCollapsed yields the coarsest queries covering the tree: a
// collapsible subtree is yielded as its own query, any other subtree is
// descended into. Empty subtrees are yielded only if includeEmpty is set.
func (t *Tree) IterateCollapsed(includeEmpty bool) iter.Seq[query.Query] {
	return func(yield func(query.Query) bool) {
		iterateCollapsed(t.root, includeEmpty, yield)
	}
}

func iterateCollapsed(n *Node, includeEmpty bool, yield func(query.Query) bool) bool {
	for _, child := range n.children {
		switch {
		case child.leaf != nil:
			if !yield(child.query) {
				return false
			}
		case !child.empty() && !child.collapsible:
			if !iterateCollapsed(child, includeEmpty, yield) {
				return false
			}
		case !child.empty() || includeEmpty:
			if !yield(child.query) {
				return false
			}
		}
	}

	return true
}

// IterateLeaves yields every case of the tree in load order, producing the
// cases of sealed tests on demand.
func (t *Tree) IterateLeaves() iter.Seq[*Leaf] {
	return func(yield func(*Leaf) bool) {
		iterateLeaves(t.root, yield)
	}
}

func iterateLeaves(n *Node, yield func(*Leaf) bool) bool {
	if n.leaf != nil {
		return yield(n.leaf)
	}

	if n.sealed != nil {
		for _, leaf := range sealedLeaves(n) {
			if !yield(leaf) {
				return false
			}
		}

		return true
	}

	for _, child := range n.children {
		if !iterateLeaves(child, yield) {
			return false
		}
	}

	return true
}

func sealedLeaves(n *Node) []*Leaf {
	var leaves []*Leaf

	q := n.query
	for c := range n.sealed.Cases() {
		leaves = append(leaves, &Leaf{
			query: query.SingleCase(q.Suite(), q.FilePath(), q.TestPath(), c.Params()),
			c:     c,
		})
	}

	return leaves
}

// CountLeaves returns the number of cases in the tree.
func (t *Tree) CountLeaves() int {
	n := 0
	for range t.IterateLeaves() {
		n++
	}

	return n
}

// String renders the tree, one node per line. Markers tell leaves (>),
// collapsible subtrees (+) and expanded subtrees (-) apart.
func (t *Tree) String() string {
	var b strings.Builder

	b.WriteString(t.root.label() + "\n")
	writeChildren(&b, t.root, "")

	return b.String()
}

func writeChildren(b *strings.Builder, n *Node, prefix string) {
	children := n.children
	if n.sealed != nil {
		children = nil
		for _, leaf := range sealedLeaves(n) {
			children = append(children, &Node{query: leaf.query, leaf: leaf})
		}
	}

	for i, c := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}

		b.WriteString(prefix + branch + c.label() + "\n")
		writeChildren(b, c, prefix+next)
	}
}

func (n *Node) label() string {
	marker := "-"

	switch {
	case n.leaf != nil:
		marker = ">"
	case n.collapsible:
		marker = "+"
	}

	return marker + " " + n.query.String()
}
