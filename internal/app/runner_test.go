package app

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestTrimRootPath(t *testing.T) {
	if got := trimRootPath("swapsage providers list"); got != "providers list" {
		t.Fatalf("unexpected trim result: %s", got)
	}
}

func TestRunnerProvidersList(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"providers", "list", "--results-only"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	var out []map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse output json: %v output=%s", err, stdout.String())
	}
	if len(out) != 2 {
		t.Fatalf("expected aggregator and llm provider entries, got %#v", out)
	}
}

func TestRunnerErrorEnvelopeIgnoresResultsOnly(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"gas", "--chain", "ethereum", "--enable-commands", "quote", "--results-only"})
	if code != 16 {
		t.Fatalf("expected exit 16, got %d stderr=%s", code, stderr.String())
	}
	var env map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse error envelope: %v output=%s", err, stderr.String())
	}
	if env["success"] != false {
		t.Fatalf("expected success=false, got %v", env["success"])
	}
}

func TestRunnerUnknownCommandIsUsageError(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"no-such-command"})
	if code != 2 {
		t.Fatalf("expected usage exit code 2, got %d stderr=%s", code, stderr.String())
	}
}

func TestRunnerVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	r := NewRunnerWithWriters(&stdout, &stderr)
	code := r.Run([]string{"version"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d stderr=%s", code, stderr.String())
	}
	if stdout.Len() == 0 {
		t.Fatal("expected version output")
	}
}

func TestStatusFromErr(t *testing.T) {
	if got := statusFromErr(nil); got != "ok" {
		t.Fatalf("nil error should be ok, got %s", got)
	}
}

func TestSlippageHintFromBps(t *testing.T) {
	cases := []struct {
		bps  float64
		want string
	}{
		{10, "low"},
		{50, "medium"},
		{199, "medium"},
		{200, "high"},
	}
	for _, tc := range cases {
		if got := slippageHintFromBps(tc.bps); got != tc.want {
			t.Fatalf("slippageHintFromBps(%v) = %s, want %s", tc.bps, got, tc.want)
		}
	}
}
