package cmd

import (
	"testing"

	"github.com/colt-lang/coltgo/internal/diag"
)

func TestParseLimit_NoneMeansUnlimited(t *testing.T) {
	if got := parseLimit("None", 32); got != diag.Unlimited {
		t.Errorf("parseLimit(None) = %d, want Unlimited", got)
	}
}

func TestParseLimit_ZeroFallsBackToDefault(t *testing.T) {
	if got := parseLimit("0", 32); got != 32 {
		t.Errorf("parseLimit(0) = %d, want default 32", got)
	}
}

func TestParseLimit_InvalidFallsBackToDefault(t *testing.T) {
	if got := parseLimit("banana", 64); got != 64 {
		t.Errorf("parseLimit(banana) = %d, want default 64", got)
	}
}

func TestParseLimit_ValidIntegerPassesThrough(t *testing.T) {
	if got := parseLimit("10", 32); got != 10 {
		t.Errorf("parseLimit(10) = %d, want 10", got)
	}
}

func TestBuildReporter_ReturnsNonNilReporter(t *testing.T) {
	flagMaxError, flagMaxWarn, flagMaxMsg = "32", "64", "128"
	if r := buildReporter(); r == nil {
		t.Errorf("buildReporter() returned nil")
	}
}
