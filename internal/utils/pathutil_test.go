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


package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/spf13/afero"
)

func TestExpandTilde(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "path without tilde", path: "/absolute/path", want: "/absolute/path"},
		{name: "path with tilde", path: "~/relative/path", want: filepath.Join(os.Getenv("HOME"), "relative/path")},
		{name: "tilde not at start", path: "/path/with/~/tilde", want: "/path/with/~/tilde"},
		{name: "tilde without slash", path: "~", want: "~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTilde(tt.path)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandTildeAbs(t *testing.T) {
	fakeHome := "/tmp/fakehome"
	t.Setenv("HOME", fakeHome)

	relative, _ := filepath.Abs("../")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "absolute path", path: "/tmp/test", want: "/tmp/test"},
		{name: "tilde path", path: "~/suites", want: filepath.Join(fakeHome, "suites")},
		{name: "relative path", path: "../", want: relative},
		{name: "empty path", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTildeAbs(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("without home", func(t *testing.T) {
		t.Setenv("HOME", "")

		_, err := ExpandTildeAbs("~/suites")
		assert.Error(t, err)
	})
}

func TestVerifyDirExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, fs.MkdirAll("/suites/webgpu", 0o755))
	assert.NoError(t, afero.WriteFile(fs, "/suites/file.txt", []byte("data"), 0o644))

	assert.NoError(t, VerifyDirExists(fs, "/suites/webgpu"))
	assert.EqualError(t, VerifyDirExists(fs, "/suites/file.txt"), "/suites/file.txt is not a directory")
	assert.Error(t, VerifyDirExists(fs, "/suites/nope"))
}

func TestValidateYAML(t *testing.T) {
	assert.NoError(t, ValidateYAML([]byte("key: value\narray:\n  - item1\n  - item2")))
	assert.Error(t, ValidateYAML([]byte("key: value\nbroken: [array")))
	assert.Error(t, ValidateYAML([]byte("- a list\n- not a mapping")))
}
