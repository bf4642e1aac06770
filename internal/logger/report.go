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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/fatih/color"
)

const (
	spaces = "    " // Indentation of log lines under a case.
)

//nolint:gochecknoglobals // color palette
var statusColors = map[Status]*color.Color{
	StatusPass:    color.New(color.FgGreen),
	StatusWarn:    color.New(color.FgYellow),
	StatusFail:    color.New(color.FgRed),
	StatusRunning: color.New(color.FgCyan),
}

// Colored returns the status name, colored when the output supports it.
func (s Status) Colored() string {
	return statusColors[s].Sprint(s.String())
}

// Print prints the case in go test format, followed by its log lines.
// Passing cases are printed only in verbose mode.
func (cr *CaseResult) Print(w io.Writer, verbose bool) {
	snap := cr.Snapshot()
	if snap.Status == StatusPass && !verbose {
		return
	}

	if verbose {
		fmt.Fprintf(w, "=== RUN   %s\n", snap.Name) //nolint:errcheck // output function, error handling not practical
	}

	elapsed := max(snap.Elapsed, 0)
	fmt.Fprintf(w, "--- %s: %s (%.2fs)\n", snap.Status.Colored(), snap.Name, elapsed.Seconds()) //nolint:errcheck // output function, error handling not practical
	fmt.Fprint(w, formatLogLines(snap.Logs))                                                    //nolint:errcheck // output function, error handling not practical
}

// formatLogLines indents each log line under its case, continuation lines
// (stacks, multi-line messages) aligned under the message.
func formatLogLines(logs []LogLine) string {
	if len(logs) == 0 {
		return ""
	}

	var b strings.Builder

	continuation := spaces + spaces

	for _, l := range logs {
		lines := strings.Split(strings.TrimSuffix(l.Message, "\n"), "\n")
		if l.Stack != "" {
			lines = append(lines, strings.Split(strings.TrimSuffix(l.Stack, "\n"), "\n")...)
		}

		for i, line := range lines {
			if i == 0 {
				fmt.Fprintf(&b, "%s%s %s: %s\n", spaces, l.Level.severity().Symbol(), l.Level, line)
				continue
			}

			b.WriteString(continuation + line + "\n")
		}
	}

	return b.String()
}

type jsonReport struct {
	RunID   string      `json:"runId"`
	Summary jsonSummary `json:"summary"`
	Results []jsonGroup `json:"results"`
}

type jsonSummary struct {
	Pass    int `json:"pass"`
	Warn    int `json:"warn"`
	Fail    int `json:"fail"`
	Running int `json:"running"`
}

type jsonGroup struct {
	Path  []string   `json:"path"`
	Cases []jsonCase `json:"cases"`
}

type jsonCase struct {
	Name      string        `json:"name"`
	Params    *query.Params `json:"params,omitempty"`
	Status    Status        `json:"status"`
	ElapsedMS float64       `json:"timems"`
	Logs      []LogLine     `json:"logs,omitempty"`
}

// WriteJSON writes the results of the run as an indented JSON document.
// Unfinished cases report a negative elapsed time.
func (l *Logger) WriteJSON(w io.Writer) error {
	summary := l.Summary()
	report := jsonReport{
		RunID: l.RunID,
		Summary: jsonSummary{
			Pass:    summary.Pass,
			Warn:    summary.Warn,
			Fail:    summary.Fail,
			Running: summary.Running,
		},
		Results: []jsonGroup{},
	}

	for _, group := range l.Results() {
		jg := jsonGroup{Path: group.Path, Cases: []jsonCase{}}

		for _, cr := range group.Cases() {
			c := cr.Snapshot()

			elapsed := float64(c.Elapsed.Microseconds()) / 1000
			if c.Elapsed < 0 {
				elapsed = -1
			}

			jg.Cases = append(jg.Cases, jsonCase{
				Name:      c.Name,
				Params:    c.Params,
				Status:    c.Status,
				ElapsedMS: elapsed,
				Logs:      c.Logs,
			})
		}

		report.Results = append(report.Results, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write results report: %w", err)
	}

	return nil
}
