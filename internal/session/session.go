// Package session ties together one compilation's TokenBuffer,
// TypeBuffer, and ExprBuffer along with the cross-cutting collaborators
// every subsystem needs: a diagnostic Reporter and an optional
// Allocator/out-of-memory hook. The OOM hook is session-scoped, never
// package-level state, so two sessions cannot observe each other.
package session

import (
	"unsafe"

	"github.com/colt-lang/coltgo/internal/diag"
	"github.com/colt-lang/coltgo/internal/expr"
	"github.com/colt-lang/coltgo/internal/extern"
	"github.com/colt-lang/coltgo/internal/lexer"
	"github.com/colt-lang/coltgo/internal/types"
)

// Session owns one compilation's buffers. A zero Session is not valid;
// construct one with New.
type Session struct {
	Types *types.TypeBuffer
	Exprs *expr.ExprBuffer

	Report diag.Reporter
	Warns  WarnFor

	Allocator extern.Allocator
	OnOOM     func()

	tokens *lexer.TokenBuffer
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithReporter overrides the default Sink reporter.
func WithReporter(r diag.Reporter) SessionOption {
	return func(s *Session) { s.Report = r }
}

// WithAllocator installs an Allocator used by Alloc.
func WithAllocator(a extern.Allocator) SessionOption {
	return func(s *Session) { s.Allocator = a }
}

// WithOnOOM installs a hook run once before OutOfMemory panics.
func WithOnOOM(fn func()) SessionOption {
	return func(s *Session) { s.OnOOM = fn }
}

// New constructs a Session with a fresh TypeBuffer and ExprBuffer,
// defaulting to a Sink reporter until overridden by WithReporter.
func New(opts ...SessionOption) *Session {
	tb := types.NewTypeBuffer()
	s := &Session{
		Types:  tb,
		Exprs:  expr.NewExprBuffer(tb),
		Report: diag.Sink{},
		Warns:  WarnAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lex scans source into the session's TokenBuffer, replacing whatever
// was lexed before it: a Session compiles one file at a time.
func (s *Session) Lex(source string, lexOpts ...lexer.LexerOption) []lexer.LexerError {
	tb, errs := lexer.New(source, lexOpts...).Lex()
	s.tokens = tb
	for _, e := range errs {
		s.Report.Error(e.Message, &diag.SourceInfo{Line: e.Pos.Line, Column: e.Pos.Column}, nil)
	}
	return errs
}

// Tokens returns the buffer from the most recent Lex call, or nil if
// none has run yet.
func (s *Session) Tokens() *lexer.TokenBuffer { return s.tokens }

// Alloc requests size bytes aligned to align from the session's
// Allocator, triggering OutOfMemory if none is installed or the
// request fails.
func (s *Session) Alloc(size, align uintptr) unsafe.Pointer {
	if s.Allocator == nil {
		s.OutOfMemory()
		return nil
	}
	p, ok := s.Allocator.Alloc(size, align)
	if !ok {
		s.OutOfMemory()
	}
	return p
}

// Free releases p back to the session's Allocator, a no-op if none is
// installed.
func (s *Session) Free(p unsafe.Pointer) {
	if s.Allocator != nil {
		s.Allocator.Free(p)
	}
}

// OutOfMemory runs OnOOM, if set, then panics. Called by Alloc and
// available directly to any subsystem that detects an allocation
// failure outside the Allocator interface.
func (s *Session) OutOfMemory() {
	if s.OnOOM != nil {
		s.OnOOM()
	}
	panic("session: out of memory")
}
