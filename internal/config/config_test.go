package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	settings, err := Load(GlobalFlags{Retries: -1})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.OutputMode != "json" {
		t.Fatalf("unexpected output mode: %s", settings.OutputMode)
	}
	if len(settings.Slippages) != 4 || settings.Slippages[0] != 0.5 {
		t.Fatalf("unexpected default slippages: %v", settings.Slippages)
	}
	if settings.OpenAIModel == "" {
		t.Fatal("expected default model")
	}
}

func TestFileThenEnvThenFlagPrecedence(t *testing.T) {
	path := writeConfig(t, "timeout: 5s\nstrict: true\n")
	t.Setenv("SWAPSAGE_TIMEOUT", "7s")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	settings, err := Load(GlobalFlags{ConfigPath: path, Timeout: "9s", Retries: -1})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Timeout != 9*time.Second {
		t.Fatalf("flag should win, got %v", settings.Timeout)
	}
	if !settings.Strict {
		t.Fatal("file strict should apply")
	}
}

func TestFileSlippagesValidated(t *testing.T) {
	path := writeConfig(t, "routes:\n  slippages: [0.5, 99]\n")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if _, err := Load(GlobalFlags{ConfigPath: path, Retries: -1}); err == nil {
		t.Fatal("expected out-of-range slippage error")
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("SWAPSAGE_1INCH_API_KEY", "k1")
	t.Setenv("SWAPSAGE_OPENAI_API_KEY", "k2")
	settings, err := Load(GlobalFlags{Retries: -1})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.OneInchAPIKey != "k1" || settings.OpenAIAPIKey != "k2" {
		t.Fatalf("env keys not applied: %+v", settings)
	}
}

func TestParseSlippages(t *testing.T) {
	got, err := ParseSlippages("0.5, 1,2,3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 4 || got[3] != 3 {
		t.Fatalf("unexpected result: %v", got)
	}
	if _, err := ParseSlippages("0"); err == nil {
		t.Fatal("expected range error")
	}
	if _, err := ParseSlippages("abc"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRejectsConflictingOutputFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if _, err := Load(GlobalFlags{JSON: true, Plain: true, Retries: -1}); err == nil {
		t.Fatal("expected conflict error")
	}
}
