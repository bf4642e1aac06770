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

package list

import (
	"testing"

	"github.com/alecthomas/kong"
	internalcfg "github.com/crossplane-contrib/xcts/internal/config"
	unittestsUtils "github.com/crossplane-contrib/xcts/internal/unittests/utils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"  //nolint:depguard // testify is widely used for testing
	"github.com/stretchr/testify/require" //nolint:depguard // testify is widely used for testing
)

func newCmd(t *testing.T, suites map[string]string, queries ...string) *Cmd {
	t.Helper()

	fs := unittestsUtils.WriteFiles(t, afero.NewMemMapFs(), map[string]string{
		"/suites/s/a.spec.yaml":    "tests:\n  - {name: t, fn: pass, combine: {x: [1, 2]}}\n",
		"/suites/s/b.spec.yaml":    "tests:\n  - {name: v, fn: pass}\n",
		"/suites/s/todo.spec.yaml": "description: TODO\ntests: []\n",
		"/suites/u/f.spec.yaml":    "tests:\n  - {name: w, fn: pass}\n",
	})

	return &Cmd{
		Queries: queries,
		Config:  &internalcfg.Config{Suites: suites},
		fs:      fs,
	}
}

func TestCmd_Run(t *testing.T) {
	suites := map[string]string{"s": "/suites/s", "u": "/suites/u"}

	tests := []struct {
		name       string
		suites     map[string]string
		queries    []string
		tree       bool
		empty      bool
		wantOutput string
		wantErr    string
	}{
		{
			name:       "every configured suite",
			suites:     suites,
			wantOutput: "s:a:*\ns:b:*\nu:f:*\n",
		},
		{
			name:       "empty subtrees",
			suites:     suites,
			queries:    []string{"s:*"},
			empty:      true,
			wantOutput: "s:a:*\ns:b:*\ns:todo:*\n",
		},
		{
			name:       "cases of a test",
			suites:     suites,
			queries:    []string{"s:a:t:?x=2", "u:f:*"},
			wantOutput: "s:a:t:?x=2\nu:f:*\n",
		},
		{
			name:    "tree",
			suites:  suites,
			queries: []string{"s:b:*"},
			tree:    true,
			wantOutput: "- s:*\n" +
				"└── - s:b,*\n" +
				"    └── + s:b:*\n" +
				"        └── + s:b:v,*\n" +
				"            └── > s:b:v\n",
		},
		{
			name:    "invalid query",
			suites:  suites,
			queries: []string{"s:a"},
			wantErr: `invalid query "s:a"`,
		},
		{
			name:    "unknown suite",
			suites:  suites,
			queries: []string{"v:*"},
			wantErr: `suite "v" not found`,
		},
		{
			name:    "no suites",
			suites:  map[string]string{},
			wantErr: "no suites configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCmd(t, tt.suites, tt.queries...)
			cmd.Tree = tt.tree
			cmd.Empty = tt.empty

			var err error

			output := unittestsUtils.CaptureStdout(func() {
				err = cmd.Run(&kong.Context{})
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, output)
		})
	}
}

func TestCmd_Run_Debug(t *testing.T) {
	cmd := newCmd(t, map[string]string{"s": "/suites/s"}, "s:a:*")
	cmd.Debug = true

	output := unittestsUtils.CaptureOutput(func() {
		require.NoError(t, cmd.Run(&kong.Context{}))
	})

	assert.Equal(t, "s:a:*\n", output.Stdout)
	assert.Equal(t, "DEBUG: s:a:*: 1 subtree, 2 cases\n", output.Stderr)
}
