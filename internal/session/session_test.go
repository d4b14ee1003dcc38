package session

import (
	"testing"
	"unsafe"

	"github.com/colt-lang/coltgo/internal/lexer"
)

func TestNew_DefaultsToSinkReporter(t *testing.T) {
	s := New()
	if s.Types == nil || s.Exprs == nil {
		t.Fatalf("New() left Types/Exprs nil")
	}
	if s.Report == nil {
		t.Errorf("New() left Report nil, want a default Sink")
	}
}

func TestLex_PopulatesTokensAndReportsErrors(t *testing.T) {
	s := New()
	errs := s.Lex("let x = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if s.Tokens() == nil {
		t.Fatalf("Tokens() is nil after Lex")
	}
	if s.Tokens().At(0).Type != lexer.KW_LET {
		t.Errorf("first token = %v, want KW_LET", s.Tokens().At(0).Type)
	}
}

func TestLex_ReplacesPreviousTokens(t *testing.T) {
	s := New()
	s.Lex("let x = 1;")
	first := s.Tokens()
	s.Lex("let y = 2;")
	if s.Tokens() == first {
		t.Errorf("Lex did not replace the previous TokenBuffer")
	}
}

type fakeAllocator struct {
	nextOK bool
	freed  []unsafe.Pointer
}

func (a *fakeAllocator) Alloc(size, align uintptr) (unsafe.Pointer, bool) {
	if !a.nextOK {
		return nil, false
	}
	buf := make([]byte, size)
	return unsafe.Pointer(&buf[0]), true
}

func (a *fakeAllocator) Free(p unsafe.Pointer) {
	a.freed = append(a.freed, p)
}

func TestAlloc_SucceedsThroughAllocator(t *testing.T) {
	alloc := &fakeAllocator{nextOK: true}
	s := New(WithAllocator(alloc))
	p := s.Alloc(8, 8)
	if p == nil {
		t.Fatalf("Alloc returned nil on a successful allocator")
	}
	s.Free(p)
	if len(alloc.freed) != 1 {
		t.Errorf("Free did not reach the allocator")
	}
}

func TestAlloc_NoAllocatorTriggersOOM(t *testing.T) {
	s := New()
	defer func() {
		if recover() == nil {
			t.Errorf("Alloc with no Allocator did not panic")
		}
	}()
	s.Alloc(8, 8)
}

func TestOutOfMemory_RunsHookBeforePanicking(t *testing.T) {
	ran := false
	s := New(WithOnOOM(func() { ran = true }))
	defer func() {
		recover()
		if !ran {
			t.Errorf("OnOOM hook did not run before the panic")
		}
	}()
	s.OutOfMemory()
}
