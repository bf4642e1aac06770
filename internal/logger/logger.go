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


// Package logger records the outcome of every case of a run: a log of
// pass/warn/fail lines per case, grouped under the test that owns it.
package logger

import (
	"strings"
	"sync"
	"time"

	"github.com/crossplane-contrib/xcts/internal/query"
	"github.com/google/uuid"
)

// pathKeySeparator joins path segments into map keys. It cannot appear in a
// query, so distinct paths never share a key.
const pathKeySeparator = "\x00"

// Logger owns the results of one run. It is safe for concurrent use.
type Logger struct {
	// RunID identifies the run in reports.
	RunID string

	debug bool
	now   func() time.Time

	mu     sync.Mutex
	groups map[string]*GroupResult
	order  []*GroupResult
}

// Option configures a Logger.
type Option func(*Logger)

// WithDebug keeps debug lines in case logs. They are dropped otherwise.
func WithDebug(debug bool) Option {
	return func(l *Logger) {
		l.debug = debug
	}
}

// WithClock replaces the clock used to time cases.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// New creates an empty Logger.
func New(opts ...Option) *Logger {
	l := &Logger{
		RunID:  uuid.NewString(),
		now:    time.Now,
		groups: make(map[string]*GroupResult),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Debug reports whether debug lines are kept.
func (l *Logger) Debug() bool {
	return l.debug
}

// Record returns the result for the group at path, creating it on first use,
// and a recorder appending cases to it. Concurrent calls with the same path
// return the same *GroupResult.
func (l *Logger) Record(path ...string) (*GroupResult, *GroupRecorder) {
	key := strings.Join(path, pathKeySeparator)

	l.mu.Lock()
	defer l.mu.Unlock()

	group, ok := l.groups[key]
	if !ok {
		group = &GroupResult{Path: append([]string(nil), path...)}
		l.groups[key] = group
		l.order = append(l.order, group)
	}

	return group, &GroupRecorder{logger: l, result: group}
}

// Results returns the groups in the order they were first recorded.
func (l *Logger) Results() []*GroupResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*GroupResult(nil), l.order...)
}

// Summary counts the cases recorded so far by status.
type Summary struct {
	Pass    int
	Warn    int
	Fail    int
	Running int
}

// Total returns the number of cases counted.
func (s Summary) Total() int {
	return s.Pass + s.Warn + s.Fail + s.Running
}

// HasFailures returns true if any case failed.
func (s Summary) HasFailures() bool {
	return s.Fail > 0
}

// Summary counts the recorded cases by status.
func (l *Logger) Summary() Summary {
	var s Summary

	for _, group := range l.Results() {
		for _, c := range group.Cases() {
			switch c.Snapshot().Status {
			case StatusPass:
				s.Pass++
			case StatusWarn:
				s.Warn++
			case StatusFail:
				s.Fail++
			case StatusRunning:
				s.Running++
			}
		}
	}

	return s
}

// GroupResult holds the cases recorded under one path, usually a test query.
type GroupResult struct {
	Path []string

	mu    sync.Mutex
	cases []*CaseResult
}

// Cases returns the cases of the group in recording order.
func (g *GroupResult) Cases() []*CaseResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]*CaseResult(nil), g.cases...)
}

// Status returns the worst status among the cases of the group.
// An empty group passes.
func (g *GroupResult) Status() Status {
	status := StatusPass

	for _, c := range g.Cases() {
		cs := c.Snapshot().Status
		if cs == StatusRunning {
			return StatusRunning
		}

		status = max(status, cs)
	}

	return status
}

func (g *GroupResult) add(c *CaseResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cases = append(g.cases, c)
}

// GroupRecorder appends cases to a group.
type GroupRecorder struct {
	logger *Logger
	result *GroupResult
}

// Record appends a new running case to the group. Recording the same name
// twice appends two cases.
func (r *GroupRecorder) Record(name string, params *query.Params) (*CaseResult, *CaseRecorder) {
	result := &CaseResult{
		Name:    name,
		Params:  params,
		Status:  StatusRunning,
		Elapsed: -1,
	}
	r.result.add(result)

	return result, &CaseRecorder{
		result: result,
		debug:  r.logger.debug,
		now:    r.logger.now,
		worst:  StatusPass,
	}
}
