// Package testing provides test utilities and helpers for query users.
// These utilities help users test their own query-based applications.
package testing

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/xt4l/query"
	"github.com/zoobzio/capitan"
)

// BuiltStatement represents a captured statement-built event.
type BuiltStatement struct {
	SQL       string
	Dialect   string
	Args      int
	Timestamp time.Time
}

// BuildCapture captures built SQL statements for testing and verification.
// Thread-safe for concurrent capture.
type BuildCapture struct {
	statements []BuiltStatement
	mu         sync.Mutex
}

// NewBuildCapture creates a new BuildCapture instance.
func NewBuildCapture() *BuildCapture {
	return &BuildCapture{
		statements: make([]BuiltStatement, 0),
	}
}

// Handler returns an EventCallback that captures statement-built events.
func (bc *BuildCapture) Handler() capitan.EventCallback {
	return func(_ context.Context, e *capitan.Event) {
		if e.Signal() != query.StatementBuilt {
			return
		}

		sql, _ := query.KeySQL.From(e)
		dialect, _ := query.KeyDialect.From(e)
		argsText, _ := query.KeyArgs.From(e)
		args, _ := strconv.Atoi(argsText)

		bc.mu.Lock()
		defer bc.mu.Unlock()
		bc.statements = append(bc.statements, BuiltStatement{
			SQL:       sql,
			Dialect:   dialect,
			Args:      args,
			Timestamp: time.Now(),
		})
	}
}

// Statements returns a copy of all captured statements.
func (bc *BuildCapture) Statements() []BuiltStatement {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	result := make([]BuiltStatement, len(bc.statements))
	copy(result, bc.statements)
	return result
}

// Count returns the number of captured statements.
func (bc *BuildCapture) Count() int {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return len(bc.statements)
}

// Reset clears all captured statements.
func (bc *BuildCapture) Reset() {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	bc.statements = bc.statements[:0]
}

// Last returns the most recently captured statement, or nil if none.
func (bc *BuildCapture) Last() *BuiltStatement {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if len(bc.statements) == 0 {
		return nil
	}
	s := bc.statements[len(bc.statements)-1]
	return &s
}

// ByDialect returns all captured statements for a specific dialect.
func (bc *BuildCapture) ByDialect(dialect string) []BuiltStatement {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	result := make([]BuiltStatement, 0)
	for _, s := range bc.statements {
		if s.Dialect == dialect {
			result = append(result, s)
		}
	}
	return result
}

// WaitForCount blocks until the capture has at least n statements or timeout occurs.
func (bc *BuildCapture) WaitForCount(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if bc.Count() >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

// ParseFailure represents a captured parse-failed event.
type ParseFailure struct {
	Token     string
	Error     string
	Timestamp time.Time
}

// ParseFailureCapture captures URL-query parse failures.
// Thread-safe for concurrent capture.
type ParseFailureCapture struct {
	failures []ParseFailure
	mu       sync.Mutex
}

// NewParseFailureCapture creates a new ParseFailureCapture instance.
func NewParseFailureCapture() *ParseFailureCapture {
	return &ParseFailureCapture{
		failures: make([]ParseFailure, 0),
	}
}

// Handler returns an EventCallback that captures parse failures.
func (pc *ParseFailureCapture) Handler() capitan.EventCallback {
	return func(_ context.Context, e *capitan.Event) {
		if e.Signal() != query.ParseFailed {
			return
		}

		token, _ := query.KeyToken.From(e)
		errText, _ := query.KeyError.From(e)

		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.failures = append(pc.failures, ParseFailure{
			Token:     token,
			Error:     errText,
			Timestamp: time.Now(),
		})
	}
}

// Failures returns a copy of all captured failures.
func (pc *ParseFailureCapture) Failures() []ParseFailure {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	result := make([]ParseFailure, len(pc.failures))
	copy(result, pc.failures)
	return result
}

// Count returns the number of captured failures.
func (pc *ParseFailureCapture) Count() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.failures)
}

// Reset clears all captured failures.
func (pc *ParseFailureCapture) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.failures = pc.failures[:0]
}

// TypeMapBuilder helps construct converter maps for tests.
type TypeMapBuilder struct {
	types query.TypeMap
}

// NewTypeMapBuilder creates a new TypeMapBuilder instance.
func NewTypeMapBuilder() *TypeMapBuilder {
	return &TypeMapBuilder{
		types: make(query.TypeMap),
	}
}

// Set adds a converter to the builder.
func (tb *TypeMapBuilder) Set(field string, conv query.Conv) *TypeMapBuilder {
	tb.types[field] = conv
	return tb
}

// Build returns the constructed converter map.
func (tb *TypeMapBuilder) Build() query.TypeMap {
	result := make(query.TypeMap, len(tb.types))
	for k, v := range tb.types {
		result[k] = v
	}
	return result
}

// Reset clears the builder.
func (tb *TypeMapBuilder) Reset() *TypeMapBuilder {
	tb.types = make(query.TypeMap)
	return tb
}
