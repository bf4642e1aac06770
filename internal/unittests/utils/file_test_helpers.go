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


// Package utils from internal/unittests provides helper functions for unit tests.
package utils

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// WriteFiles writes each content to its path on fs, creating parent
// directories, and returns fs.
// Example:
//
//	fs := testutils.WriteFiles(t, afero.NewMemMapFs(), map[string]string{
//	   "/suites/webgpu/api/createSampler.spec.yaml": "tests: []",
//	})
func WriteFiles(t *testing.T, fs afero.Fs, files map[string]string) afero.Fs {
	t.Helper()

	for path, content := range files {
		WriteTestFile(t, fs, path, content)
	}

	return fs
}

// WriteTestFile writes content to path on fs, creating parent directories if needed.
func WriteTestFile(t *testing.T, fs afero.Fs, path, content string) string {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create directory %s: %v", filepath.Dir(path), err)
	}

	if err := afero.WriteFile(fs, path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}

	return path
}
