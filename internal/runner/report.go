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


package runner

import (
	"fmt"
	"path/filepath"

	"github.com/crossplane-contrib/xcts/internal/logger"
	"github.com/spf13/afero"
)

// WriteReport writes the JSON results report of log to path, creating its directory.
func WriteReport(fs afero.Fs, path string, log *logger.Logger) (err error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report %s: %w", path, cerr)
		}
	}()

	return log.WriteJSON(f)
}
