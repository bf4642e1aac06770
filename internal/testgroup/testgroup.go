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


// Package testgroup builds the tests of a file in Go:
//
//	g := testgroup.New()
//	g.Test("lodMinAndMaxClamp").
//		Desc("min/max clamp combinations").
//		Params(testgroup.Combine(
//			testgroup.Options("lodMinClamp", -1, 0, 1),
//			testgroup.Options("lodMaxClamp", 0, 1),
//		)...).
//		Fn(func(t *testgroup.T) { ... })
package testgroup

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/loader"
	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/crossplane-contrib/xcts/internal/query"
)

const pathSeparator = ","

// Fn is the body of a test, run once per case.
type Fn func(t *T)

// T is handed to a test body. Embedding the recorder gives the body Info, OK,
// Warn, Fail and Expect.
type T struct {
	*logger.CaseRecorder

	// Params holds the parameters of the running case.
	Params query.Params
	// Query is the query of the running case.
	Query query.Query

	ctx context.Context //nolint:containedctx // scoped to one case run
}

// Context returns the context of the run.
func (t *T) Context() context.Context {
	return t.ctx
}

// Param returns the value of a parameter, or query.Undefined if the case does not set it.
func (t *T) Param(key string) any {
	if v, ok := t.Params.Get(key); ok {
		return v
	}

	return query.Undefined
}

// Group is a set of tests. It implements loader.TestGroup.
type Group struct {
	tests []*Test
}

// New creates an empty Group.
func New() *Group {
	return &Group{}
}

// Test adds a test to the group. Nested test paths are written with commas,
// e.g. "sampler,lod".
func (g *Group) Test(name string) *Builder {
	t := &Test{name: name}
	g.tests = append(g.tests, t)

	return &Builder{test: t}
}

// Tests implements loader.TestGroup.
func (g *Group) Tests() iter.Seq[loader.Test] {
	return func(yield func(loader.Test) bool) {
		for _, t := range g.tests {
			if !yield(t) {
				return
			}
		}
	}
}

// Builder sets up a test added with Group.Test.
type Builder struct {
	test *Test
}

// Desc sets the description of the test.
func (b *Builder) Desc(description string) *Builder {
	b.test.description = strings.TrimSpace(description)
	return b
}

// Params appends cases to the test, one per parameter record. A test without
// parameters has a single case with empty parameters.
func (b *Builder) Params(params ...query.Params) *Builder {
	b.test.params = append(b.test.params, params...)
	b.test.hasParams = true

	return b
}

// Fn sets the body of the test.
func (b *Builder) Fn(fn Fn) {
	b.test.fn = fn
}

// Test is one test of a Group. It implements loader.Test.
type Test struct {
	name        string
	description string
	params      []query.Params
	hasParams   bool
	fn          Fn
}

// Path implements loader.Test.
func (t *Test) Path() []string {
	return strings.Split(t.name, pathSeparator)
}

// Description implements loader.Test.
func (t *Test) Description() string {
	return t.description
}

// Cases implements loader.Test.
func (t *Test) Cases() iter.Seq[loader.Case] {
	return func(yield func(loader.Case) bool) {
		if !t.hasParams {
			yield(&Case{test: t})
			return
		}

		for _, p := range t.params {
			if !yield(&Case{test: t, params: p}) {
				return
			}
		}
	}
}

// Case is one parameterization of a Test. It implements loader.Case.
type Case struct {
	test   *Test
	params query.Params
}

// Params implements loader.Case.
func (c *Case) Params() query.Params {
	return c.params
}

// Run implements loader.Case. A panicking body is recorded as an exception
// and the case still finishes.
func (c *Case) Run(ctx context.Context, rec *logger.CaseRecorder, q query.Query) error {
	if err := rec.Start(); err != nil {
		return err
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				rec.Threw(r)
			}
		}()

		if c.test.fn == nil {
			rec.Fail(fmt.Sprintf("test %s has no body", c.test.name))
			return
		}

		c.test.fn(&T{CaseRecorder: rec, Params: c.params, Query: q, ctx: ctx})
	}()

	return rec.Finish()
}
