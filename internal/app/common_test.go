package app

import (
	"path/filepath"
	"testing"
)

func TestGetDBPathSharesConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	path, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() error = %v", err)
	}
	want := filepath.Join(base, "kernelctl", "history.db")
	if path != want {
		t.Errorf("getDBPath() = %q, want %q", path, want)
	}
}

func TestGetDBPathFlagOverride(t *testing.T) {
	dbPath = "/tmp/custom-history.db"
	defer func() { dbPath = "" }()

	path, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() error = %v", err)
	}
	if path != "/tmp/custom-history.db" {
		t.Errorf("getDBPath() = %q, want the flag value", path)
	}
}
