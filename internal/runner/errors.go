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
	"os"
)

// reportError prints a detailed error and a go test style FAIL line for
// target to stderr, and returns the error for tracking. The original error
// stays reachable with errors.As.
func reportError(target, failureReason string, err error) error {
	fmt.Fprintf(os.Stderr, "# %s\n%s in %s: %v\n", target, failureReason, target, err) //nolint:errcheck // output function, error handling not practical
	fmt.Fprintf(os.Stderr, "FAIL\t%s\t[%s]\n", target, failureReason)                 //nolint:errcheck // output function, error handling not practical

	return fmt.Errorf("%s in %s: %w", failureReason, target, err)
}
