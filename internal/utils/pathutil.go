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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ExpandTilde replaces a leading "~/" with the user's home directory.
func ExpandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[2:]), nil
}

// ExpandTildeAbs expands a leading "~/" and makes the path absolute.
func ExpandTildeAbs(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}

	expanded, err := ExpandTilde(path)
	if err != nil {
		return "", err
	}

	return filepath.Abs(expanded)
}

// VerifyDirExists returns an error unless path is an existing directory on fs.
func VerifyDirExists(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	return nil
}

// ValidateYAML checks that data holds a YAML mapping.
func ValidateYAML(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	return nil
}
