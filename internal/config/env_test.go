package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("GRAB_TEST_STR", "hello")
	if got := GetEnv("GRAB_TEST_STR", "x"); got != "hello" {
		t.Fatalf("GetEnv = %q", got)
	}
	if got := GetEnv("GRAB_TEST_UNSET", "x"); got != "x" {
		t.Fatalf("GetEnv fallback = %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", 5, false},
		{"12", 12, false},
		{"-3", -3, false},
		{"ten", 5, true},
	}
	for _, tt := range tests {
		t.Setenv("GRAB_TEST_INT", tt.value)
		got, err := GetEnvInt("GRAB_TEST_INT", 5)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("GetEnvInt(%q) = %d, %v", tt.value, got, err)
		}
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("GRAB_TEST_DUR", "1500ms")
	got, err := GetEnvDuration("GRAB_TEST_DUR", time.Second)
	if err != nil || got != 1500*time.Millisecond {
		t.Fatalf("GetEnvDuration = %v, %v", got, err)
	}
	t.Setenv("GRAB_TEST_DUR", "soon")
	if _, err := GetEnvDuration("GRAB_TEST_DUR", time.Second); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("GRAB_TEST_LOADED=yes\nGRAB_TEST_KEPT=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GRAB_TEST_KEPT", "env")
	t.Setenv("GRAB_TEST_LOADED", "")
	os.Unsetenv("GRAB_TEST_LOADED")

	if err := Load(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("GRAB_TEST_LOADED"); got != "yes" {
		t.Fatalf("GRAB_TEST_LOADED = %q", got)
	}
	if got := os.Getenv("GRAB_TEST_KEPT"); got != "env" {
		t.Fatalf("existing variable overwritten: %q", got)
	}
}
