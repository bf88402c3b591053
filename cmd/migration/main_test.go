package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSteps(t *testing.T) {
	t.Run("defaults to one", func(t *testing.T) {
		got, err := parseSteps(nil)
		if err != nil || got != 1 {
			t.Fatalf("expected 1, got %d err=%v", got, err)
		}
	})

	t.Run("rejects zero", func(t *testing.T) {
		if _, err := parseSteps([]string{"0"}); err == nil {
			t.Fatalf("expected error for zero steps")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := parseSteps([]string{"two"}); err == nil {
			t.Fatalf("expected error for non-numeric steps")
		}
	})
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion(" 1781740800 "); err != nil || v != 1781740800 {
		t.Fatalf("unexpected version %d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestResolveMigrationsDir_PrefersEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestResolveMigrationsDir_SkipsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("MIGRATIONS_DIR", file)

	got, err := resolveMigrationsDir()
	if err == nil && got == file {
		t.Fatalf("expected a file to be skipped")
	}
}
