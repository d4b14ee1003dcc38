package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colt-lang/coltgo/internal/bytecode"
	"github.com/colt-lang/coltgo/internal/diag"
	"github.com/colt-lang/coltgo/internal/session"
)

func TestEncodeTokens_RendersOneLinePerToken(t *testing.T) {
	sess := session.New()
	sess.Lex("let x = 1;")
	body := string(encodeTokens(sess))
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != sess.Tokens().Len() {
		t.Fatalf("encodeTokens produced %d lines, want %d", len(lines), sess.Tokens().Len())
	}
}

func TestJSONReporter_AccumulatesAnArray(t *testing.T) {
	jr := newJSONReporter()
	jr.Error("bad token", &diag.SourceInfo{Line: 1, Column: 2}, nil)
	jr.Warn("heads up", nil, nil)

	if !strings.Contains(string(jr.doc), `"severity":"error"`) {
		t.Errorf("doc missing error entry: %s", jr.doc)
	}
	if !strings.Contains(string(jr.doc), `"severity":"warning"`) {
		t.Errorf("doc missing warning entry: %s", jr.doc)
	}
}

func TestRunBuild_WritesExecutable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.colt")
	if err := os.WriteFile(src, []byte("let x = 1;"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	flagOutput = filepath.Join(dir, "main.colti")
	flagDiagFormat = "console"
	flagSidecar = ""
	flagMaxError, flagMaxWarn, flagMaxMsg = "32", "64", "128"

	if err := runBuild(nil, []string{src}); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	data, err := os.ReadFile(flagOutput)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	exe, ok := bytecode.Decode(data)
	if !ok {
		t.Fatalf("output is not a valid ColtiExecutable")
	}
	if _, found := exe.FindSection("TOKS"); !found {
		t.Errorf("executable missing TOKS section")
	}
}
