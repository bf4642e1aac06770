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

package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"  //nolint:depguard // testify is widely used for testing
	"github.com/stretchr/testify/require" //nolint:depguard // testify is widely used for testing
)

func TestCLI_Parse(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantCommand string
		check       func(t *testing.T, cli *CLI)
	}{
		{
			name:        "run with suites",
			args:        []string{"-s", "webgpu=/suites/webgpu", "--suite", "other=/suites/other", "run", "-j", "4", "-v", "webgpu:*"},
			wantCommand: "run <queries>",
			check: func(t *testing.T, cli *CLI) {
				t.Helper()
				assert.Equal(t, map[string]string{"webgpu": "/suites/webgpu", "other": "/suites/other"}, cli.Suite)
				assert.Equal(t, []string{"webgpu:*"}, cli.Run.Queries)
				assert.Equal(t, 4, cli.Run.Workers)
				assert.True(t, cli.Run.Verbose)
			},
		},
		{
			name:        "checklist without file",
			args:        []string{"checklist"},
			wantCommand: "checklist",
			check: func(t *testing.T, cli *CLI) {
				t.Helper()
				assert.Empty(t, cli.Checklist.Files)
			},
		},
		{
			name:        "list tree",
			args:        []string{"list", "--tree", "webgpu:api,*"},
			wantCommand: "list <queries>",
			check: func(t *testing.T, cli *CLI) {
				t.Helper()
				assert.True(t, cli.List.Tree)
				assert.Equal(t, []string{"webgpu:api,*"}, cli.List.Queries)
			},
		},
		{
			name:        "version",
			args:        []string{"version"},
			wantCommand: "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI

			parser, err := kong.New(&cli, kong.Name("xcts"))
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, ctx.Command())

			if tt.check != nil {
				tt.check(t, &cli)
			}
		})
	}
}
