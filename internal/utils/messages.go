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


// Package utils provides message printing and path helpers shared by the commands.
package utils

import (
	"fmt"
	"os"
)

// OutputPrintf prints a message to stdout.
func OutputPrintf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...) //nolint:errcheck // output function, error handling not practical
}

// WarningPrintf prints a warning message to stderr.
func WarningPrintf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARNING: "+format, args...) //nolint:errcheck // output function, error handling not practical
}

// DebugPrintf prints a debug message to stderr.
func DebugPrintf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "DEBUG: "+format, args...) //nolint:errcheck // output function, error handling not practical
}
