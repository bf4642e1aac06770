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


package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/stretchr/testify/assert"  //nolint:depguard // testify is widely used for testing
	"github.com/stretchr/testify/require" //nolint:depguard // testify is widely used for testing
)

func TestCaseResult_Print(t *testing.T) {
	t.Run("passing case is silent in non-verbose mode", func(t *testing.T) {
		res, rec := newTestCase(t)
		require.NoError(t, rec.Start())
		require.NoError(t, rec.Finish())

		var buf bytes.Buffer
		res.Print(&buf, false)

		assert.Empty(t, buf.String())
	})

	t.Run("passing case in verbose mode", func(t *testing.T) {
		res, rec := newTestCase(t)
		require.NoError(t, rec.Start())
		rec.OK("fine")
		require.NoError(t, rec.Finish())

		var buf bytes.Buffer
		res.Print(&buf, true)

		output := buf.String()
		assert.Contains(t, output, "=== RUN   baz")
		assert.Contains(t, output, "PASS")
		assert.Contains(t, output, ": baz (0.00s)")
		assert.Contains(t, output, "    [✓] OK: fine")
	})

	t.Run("failing case prints its lines and stack", func(t *testing.T) {
		res, rec := newTestCase(t)
		require.NoError(t, rec.Start())
		rec.Warn("first\nsecond")
		rec.Threw("boom")
		require.NoError(t, rec.Finish())

		var buf bytes.Buffer
		res.Print(&buf, false)

		output := buf.String()
		assert.NotContains(t, output, "=== RUN")
		assert.Contains(t, output, "FAIL")
		assert.Contains(t, output, "    [!] WARN: first\n        second\n")
		assert.Contains(t, output, "    [x] EXCEPTION: boom\n        goroutine")
	})
}

func TestLogger_WriteJSON(t *testing.T) {
	l := New(WithClock(tickingClock()))
	_, rec := l.Record("s:a:t")

	params := query.NewParams(query.P("x", 1), query.P("a", query.Undefined))
	_, done := rec.Record("s:a:t:?x=1&a=undefined", &params)
	require.NoError(t, done.Start())
	done.Warn("careful")
	require.NoError(t, done.Finish())

	rec.Record("s:a:t:?x=2", nil)

	var buf bytes.Buffer
	require.NoError(t, l.WriteJSON(&buf))

	var report struct {
		RunID   string         `json:"runId"`
		Summary map[string]int `json:"summary"`
		Results []struct {
			Path  []string `json:"path"`
			Cases []struct {
				Name   string          `json:"name"`
				Params json.RawMessage `json:"params"`
				Status string          `json:"status"`
				TimeMS float64         `json:"timems"`
				Logs   []LogLine       `json:"logs"`
			} `json:"cases"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, l.RunID, report.RunID)
	assert.Equal(t, map[string]int{"pass": 0, "warn": 1, "fail": 0, "running": 1}, report.Summary)
	require.Len(t, report.Results, 1)
	assert.Equal(t, []string{"s:a:t"}, report.Results[0].Path)

	cases := report.Results[0].Cases
	require.Len(t, cases, 2)

	assert.Equal(t, "warn", cases[0].Status)
	assert.JSONEq(t, `{"x":1,"a":null}`, string(cases[0].Params))
	assert.InDelta(t, 1.0, cases[0].TimeMS, 0.001)
	assert.Equal(t, []LogLine{{Level: LevelWarn, Message: "careful"}}, cases[0].Logs)

	assert.Equal(t, "running", cases[1].Status)
	assert.Nil(t, cases[1].Params)
	assert.InDelta(t, -1.0, cases[1].TimeMS, 0)
	assert.Empty(t, cases[1].Logs)
}
