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


// Package version holds the build version of xcts.
package version

import (
	"runtime/debug"
)

// version is set at build time with
// -ldflags "-X github.com/crossplane-contrib/xcts/internal/version.version=v0.1.0".
//
//nolint:gochecknoglobals // set by the linker
var version = ""

// GetVersion returns the version set at build time, falling back to the
// module version recorded in the binary, then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}
