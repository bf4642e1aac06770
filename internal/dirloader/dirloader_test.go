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
	"context"
	"testing"

	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/crossplane-contrib/xcts/internal/testgroup"
	"github.com/crossplane-contrib/xcts/internal/tree"
	unittestsUtils "github.com/crossplane-contrib/xcts/internal/unittests/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"  //nolint:depguard // testify is widely used for testing
	"github.com/stretchr/testify/require" //nolint:depguard // testify is widely used for testing
)

const samplerSpec = `
description: createSampler validation tests.
common:
  fn: pass
tests:
  - name: lodMinAndMaxClamp
    description: min/max clamp combinations
    combine:
      lodMinClamp: [-1, 0]
      lodMaxClamp: [0, 1]
    cases:
      - {lodMinClamp: 2, lodMaxClamp: 1}
  - name: maxAnisotropy,basic
    fn: warn
`

const compareSpec = `
tests:
  - name: same
    fn: equal
    cases:
      - {got: [1, 2], want: [1, 2]}
  - name: different
    fn: equal
    cases:
      - {got: {a: 1}, want: {a: 2}}
  - name: boom
    fn: throw
    cases:
      - {message: "kaboom"}
  - name: custom
    fn: double
    combine:
      x: [2]
`

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	return unittestsUtils.WriteFiles(t, afero.NewMemMapFs(), files)
}

func newLoader(t *testing.T, opts ...Option) *DirLoader {
	t.Helper()

	fs := newFs(t, map[string]string{
		"/suites/webgpu/api/validation/createSampler.spec.yaml": samplerSpec,
		"/suites/webgpu/api/compare.spec.yaml":                  compareSpec,
		"/suites/webgpu/todo.spec.yaml":                         "description: TODO\ntests: []\n",
		"/suites/webgpu/README.md":                              "not a spec file",
		"/suites/other/f.spec.yaml":                             "tests:\n  - {name: t, fn: pass}\n",
	})

	return New(fs, map[string]string{"webgpu": "/suites/webgpu", "other": "/suites/other"}, opts...)
}

func TestDirLoader_List(t *testing.T) {
	l := newLoader(t)

	suites, err := l.ListSuites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "webgpu"}, suites)

	files, err := l.ListFiles(context.Background(), "webgpu")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"api", "compare"},
		{"api", "validation", "createSampler"},
		{"todo"},
	}, files)

	_, err = l.ListFiles(context.Background(), "nope")
	assert.EqualError(t, err, `unknown suite "nope"`)
}

func TestDirLoader_ListInvalidNames(t *testing.T) {
	fs := newFs(t, map[string]string{
		"/s/ok.spec.yaml":       "tests: []",
		"/s/bad-name.spec.yaml": "tests: []",
		"/s/my dir/x.spec.yaml": "tests: []",
		"/s/other.yaml":         "ignored",
	})

	_, err := New(fs, map[string]string{"s": "/s"}).ListFiles(context.Background(), "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/s/bad-name.spec.yaml")
	assert.Contains(t, err.Error(), "/s/my dir/x.spec.yaml")
	assert.NotContains(t, err.Error(), "ok.spec.yaml")
}

func TestDirLoader_Import(t *testing.T) {
	l := newLoader(t)

	spec, err := l.Import(context.Background(), "webgpu", []string{"api", "validation", "createSampler"})
	require.NoError(t, err)
	assert.Equal(t, "createSampler validation tests.", spec.Description)

	var (
		paths [][]string
		cases []string
	)

	for test := range spec.Group.Tests() {
		paths = append(paths, test.Path())

		for c := range test.Cases() {
			cases = append(cases, c.Params().String())
		}
	}

	assert.Equal(t, [][]string{{"lodMinAndMaxClamp"}, {"maxAnisotropy", "basic"}}, paths)
	assert.Equal(t, []string{
		"lodMinClamp=-1&lodMaxClamp=0",
		"lodMinClamp=-1&lodMaxClamp=1",
		"lodMinClamp=0&lodMaxClamp=0",
		"lodMinClamp=0&lodMaxClamp=1",
		"lodMinClamp=2&lodMaxClamp=1",
		"",
	}, cases)
}

func TestDirLoader_ImportErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr []string
	}{
		{
			name:    "malformed yaml",
			content: "tests: [",
			wantErr: []string{"failed to parse spec file /s/f.spec.yaml"},
		},
		{
			name:    "invalid spec file",
			content: "tests:\n  - name: a-b\n    fn: pass\n  - name: c\n    fn: nope\n",
			wantErr: []string{
				"/s/f.spec.yaml: invalid spec file:",
				"test name 'a-b' contains invalid characters",
				"test 'c' uses unknown fn 'nope'",
			},
		},
		{
			name:    "duplicate cases",
			content: "tests:\n  - name: t\n    fn: pass\n    combine:\n      x: [1, 1]\n",
			wantErr: []string{"/s/f.spec.yaml: invalid test group:", "test 't' has duplicate parameters 'x=1'"},
		},
		{
			name:    "test path prefix",
			content: "common:\n  fn: pass\ntests:\n  - name: a\n  - name: a,b\n",
			wantErr: []string{"test path 'a' is a prefix of test path 'a,b'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFs(t, map[string]string{"/s/f.spec.yaml": tt.content})

			_, err := New(fs, map[string]string{"s": "/s"}).Import(context.Background(), "s", []string{"f"})
			require.Error(t, err)

			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := newLoader(t).Import(context.Background(), "webgpu", []string{"nope"})
		assert.ErrorContains(t, err, "failed to read spec file /suites/webgpu/nope.spec.yaml")
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newLoader(t).Import(ctx, "webgpu", []string{"todo"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func double(t *testgroup.T) {
	x, _ := t.Param("x").(float64)
	t.Expect(x*2 == 4, "x doubled is 4")
}

func TestDirLoader_Tree(t *testing.T) {
	l := newLoader(t, WithBody("double", double))

	tr, err := tree.LoadForQuery(context.Background(), l, query.MustParse("webgpu:*"), nil)
	require.NoError(t, err)

	var collapsed []string
	for q := range tr.IterateCollapsed(false) {
		collapsed = append(collapsed, q.String())
	}

	assert.Equal(t, []string{"webgpu:api,compare:*", "webgpu:api,validation,createSampler:*"}, collapsed)
	assert.Equal(t, 10, tr.CountLeaves())
}

func TestBuiltins(t *testing.T) {
	l := newLoader(t, WithBody("double", double))
	assert.Equal(t, []string{"double", "equal", "fail", "pass", "throw", "warn"}, l.Bodies())

	tr, err := tree.LoadForQuery(context.Background(), l, query.MustParse("webgpu:api,compare:*"), nil)
	require.NoError(t, err)

	log := logger.New()
	_, group := log.Record("webgpu:api,compare:*")

	got := make(map[string]*logger.CaseResult)

	for leaf := range tr.IterateLeaves() {
		params := leaf.Case().Params()
		res, rec := group.Record(leaf.Query().String(), &params)
		require.NoError(t, leaf.Run(context.Background(), rec))

		got[leaf.Query().String()] = res
	}

	require.Len(t, got, 4)

	same := got[`webgpu:api,compare:same:?got=[1,2]&want=[1,2]`]
	require.NotNil(t, same)
	assert.Equal(t, logger.StatusPass, same.Status)

	different := got[`webgpu:api,compare:different:?got={"a":1}&want={"a":2}`]
	require.NotNil(t, different)
	assert.Equal(t, logger.StatusFail, different.Status)
	require.Len(t, different.Logs, 1)
	assert.Contains(t, different.Logs[0].Message, "got != want (-want +got):")

	boom := got[`webgpu:api,compare:boom:?message="kaboom"`]
	require.NotNil(t, boom)
	assert.Equal(t, logger.StatusFail, boom.Status)
	assert.Equal(t, logger.LevelException, boom.Logs[0].Level)
	assert.Equal(t, "kaboom", boom.Logs[0].Message)

	custom := got["webgpu:api,compare:custom:?x=2"]
	require.NotNil(t, custom)
	assert.Equal(t, logger.StatusPass, custom.Status)
}
