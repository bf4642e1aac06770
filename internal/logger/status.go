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
	"strings"
)

// Status is the outcome of a case. Statuses are ordered by severity, so the
// status of a finished case is the max over its log lines.
type Status int

const (
	// StatusRunning is the status of a case that was recorded but has not finished.
	StatusRunning Status = iota
	// StatusPass is the status of a case that finished with nothing worse than OK/info lines.
	StatusPass
	// StatusWarn is the status of a case that logged at least one warning.
	StatusWarn
	// StatusFail is the status of a case that logged at least one failure.
	StatusFail
)

// String implements fmt.Stringer so status prints as its canonical value.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "RUNNING"
	}
}

// Symbol returns the display symbol of the status.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "[✓]"
	case StatusWarn:
		return "[!]"
	case StatusFail:
		return "[x]"
	default:
		return "[~]"
	}
}

// MarshalJSON writes the status as its lower-case name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(s.String()))
}

// Level is the kind of a single log line.
type Level string

// Log line levels.
const (
	LevelDebug     Level = "DEBUG"
	LevelInfo      Level = "INFO"
	LevelOK        Level = "OK"
	LevelWarn      Level = "WARN"
	LevelFail      Level = "FAIL"
	LevelException Level = "EXCEPTION"
)

// severity is the status a line of the given level contributes to its case.
func (l Level) severity() Status {
	switch l {
	case LevelWarn:
		return StatusWarn
	case LevelFail, LevelException:
		return StatusFail
	default:
		return StatusPass
	}
}

// LogLine is one message recorded against a case.
type LogLine struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}
