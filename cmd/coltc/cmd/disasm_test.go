package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colt-lang/coltgo/internal/bytecode"
)

func TestRunDisasm_RejectsNonExecutableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.colti")
	if err := os.WriteFile(path, []byte("not an executable"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	if err := runDisasm(nil, []string{path}); err == nil {
		t.Errorf("runDisasm on garbage input did not error")
	}
}

func TestRunDisasm_AcceptsWellFormedExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.colti")

	exe := bytecode.NewExecutable(bytecode.Version{Major: 0, Minor: 1, Patch: 0}, nil)
	if err := exe.AddSection("TOKS", []byte("hello")); err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create: %v", err)
	}
	if _, err := exe.WriteTo(f); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	f.Close()

	if err := runDisasm(nil, []string{path}); err != nil {
		t.Errorf("runDisasm: %v", err)
	}
}
