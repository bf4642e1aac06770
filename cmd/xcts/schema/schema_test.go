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

package schema

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/kong"
	unittestsUtils "github.com/crossplane-contrib/xcts/internal/unittests/utils"
	"github.com/stretchr/testify/assert"  //nolint:depguard // testify is widely used for testing
	"github.com/stretchr/testify/require" //nolint:depguard // testify is widely used for testing
)

func TestCmd_Run(t *testing.T) {
	cmd := &Cmd{}

	output := unittestsUtils.CaptureStdout(func() {
		require.NoError(t, cmd.Run(&kong.Context{}))
	})

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &schema))

	assert.Equal(t, "xcts spec file", schema["title"])
	assert.Contains(t, schema["properties"], "tests")
}
