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
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert" //nolint:depguard // testify is widely used for testing
)

func TestCapture(t *testing.T) {
	tests := []struct {
		name       string
		f          func()
		wantStdout string
		wantStderr string
	}{
		{
			name: "empty output",
			f:    func() {},
		},
		{
			name:       "stdout only",
			f:          func() { fmt.Fprint(os.Stdout, "only stdout") },
			wantStdout: "only stdout",
		},
		{
			name:       "stderr only",
			f:          func() { fmt.Fprint(os.Stderr, "only stderr") },
			wantStderr: "only stderr",
		},
		{
			name: "interleaved writes",
			f: func() {
				fmt.Fprint(os.Stdout, "A")
				fmt.Fprint(os.Stderr, "1")
				fmt.Fprint(os.Stdout, "B\nC")
				fmt.Fprint(os.Stderr, "2\n3")
			},
			wantStdout: "AB\nC",
			wantStderr: "12\n3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := CaptureOutput(tt.f)
			assert.Equal(t, tt.wantStdout, output.Stdout)
			assert.Equal(t, tt.wantStderr, output.Stderr)

			assert.Equal(t, tt.wantStdout, CaptureStdout(func() {
				CaptureStderr(tt.f)
			}))
		})
	}
}

func TestCaptureLargeOutput(t *testing.T) {
	line := strings.Repeat("x", 1023) + "\n"

	output := CaptureStdout(func() {
		for range 256 {
			fmt.Fprint(os.Stdout, line)
		}
	})

	assert.Len(t, output, 256*1024)
}

func TestCapturePanicHandling(t *testing.T) {
	origStdout := os.Stdout
	origStderr := os.Stderr

	assert.NotPanics(t, func() {
		CaptureOutput(func() {
			fmt.Fprint(os.Stdout, "before panic")
			panic("test panic")
		})
	})

	assert.Equal(t, origStdout, os.Stdout, "Stdout should be restored after panic")
	assert.Equal(t, origStderr, os.Stderr, "Stderr should be restored after panic")

	output := CaptureOutput(func() {
		fmt.Fprint(os.Stdout, "stdout works")
		fmt.Fprint(os.Stderr, "stderr works")
	})

	assert.Equal(t, "stdout works", output.Stdout)
	assert.Equal(t, "stderr works", output.Stderr)
}
