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
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/crossplane-contrib/xcts/internal/query"
)

// CaseResult is the outcome of a single case. Its recorder writes Status,
// Elapsed and Logs while other goroutines may read the result; read them
// through Snapshot while the case may still be running.
type CaseResult struct {
	Name   string
	Params *query.Params // nil when the case has no parameter record
	Status Status
	// Elapsed is negative until the case finishes, and at least 1ns after.
	Elapsed time.Duration
	// Logs is nil until the first line is recorded.
	Logs []LogLine

	mu sync.Mutex
}

// Snapshot returns a copy of the case as it is now.
func (cr *CaseResult) Snapshot() CaseResult {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	return CaseResult{
		Name:    cr.Name,
		Params:  cr.Params,
		Status:  cr.Status,
		Elapsed: cr.Elapsed,
		Logs:    slices.Clone(cr.Logs),
	}
}

// Finished reports whether the case has finished.
func (cr *CaseResult) Finished() bool {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	return cr.Status != StatusRunning
}

// MisuseError reports a recorder driven out of order: Start twice, Finish
// before Start, or Finish twice.
type MisuseError struct {
	Case string
	Op   string
	Msg  string
}

// Error implements the error interface.
func (e *MisuseError) Error() string {
	return fmt.Sprintf("logger misuse on case %q: %s: %s", e.Case, e.Op, e.Msg)
}

// minElapsed is the elapsed time of a case finishing within one clock tick.
const minElapsed = time.Nanosecond

type caseState int

const (
	stateRecorded caseState = iota
	stateStarted
	stateFinished
)

// CaseRecorder appends log lines to one case and times it. A recorder is owned
// by the goroutine running the case and must not be shared.
type CaseRecorder struct {
	result *CaseResult
	debug  bool
	now    func() time.Time

	state caseState
	start time.Time
	worst Status
}

// Result returns the case this recorder writes to.
func (r *CaseRecorder) Result() *CaseResult {
	return r.result
}

// Start marks the beginning of the case.
func (r *CaseRecorder) Start() error {
	if r.state != stateRecorded {
		return r.misuse("Start", "case already started")
	}

	r.state = stateStarted
	r.start = r.now()

	return nil
}

// Finish freezes the case: its status becomes the worst severity logged and
// its elapsed time is set. Lines recorded afterwards are dropped.
func (r *CaseRecorder) Finish() error {
	switch r.state {
	case stateRecorded:
		return r.misuse("Finish", "case not started")
	case stateFinished:
		return r.misuse("Finish", "case already finished")
	case stateStarted:
	}

	r.state = stateFinished

	r.result.mu.Lock()
	defer r.result.mu.Unlock()

	r.result.Elapsed = max(r.now().Sub(r.start), minElapsed)
	r.result.Status = r.worst

	return nil
}

// Debug records a debug line. It is kept only when the logger runs in debug mode.
func (r *CaseRecorder) Debug(msg string) {
	if r.debug {
		r.log(LevelDebug, msg, "")
	}
}

// Info records an informational line.
func (r *CaseRecorder) Info(msg string) {
	r.log(LevelInfo, msg, "")
}

// OK records a passed check.
func (r *CaseRecorder) OK(msg string) {
	r.log(LevelOK, msg, "")
}

// Warn records a warning. The case finishes no better than StatusWarn.
func (r *CaseRecorder) Warn(msg string) {
	r.log(LevelWarn, msg, "")
}

// Fail records a failure. The case finishes with StatusFail whatever is logged after.
func (r *CaseRecorder) Fail(msg string) {
	r.log(LevelFail, msg, "")
}

// Expect records msg as a passed check when cond holds and as a failure
// otherwise, and returns cond.
func (r *CaseRecorder) Expect(cond bool, msg string) bool {
	if cond {
		r.OK(msg)
	} else {
		r.Fail(msg)
	}

	return cond
}

// Threw records a value recovered from a panicking case body, with the stack
// of the calling goroutine.
func (r *CaseRecorder) Threw(recovered any) {
	if err, ok := recovered.(error); ok {
		r.log(LevelException, err.Error(), string(debug.Stack()))
		return
	}

	r.log(LevelException, fmt.Sprint(recovered), string(debug.Stack()))
}

func (r *CaseRecorder) log(level Level, msg, stack string) {
	if r.state == stateFinished {
		return
	}

	r.worst = max(r.worst, level.severity())

	r.result.mu.Lock()
	defer r.result.mu.Unlock()

	r.result.Logs = append(r.result.Logs, LogLine{Level: level, Message: msg, Stack: stack})
}

func (r *CaseRecorder) misuse(op, msg string) error {
	return &MisuseError{Case: r.result.Name, Op: op, Msg: msg}
}
