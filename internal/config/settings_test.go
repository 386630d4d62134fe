package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "settings.json"))
	if !s.Bool("show_operation_warning", true) {
		t.Error("missing file should yield defaults")
	}
	if s.Bool("anything", false) {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadSettingsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s := LoadSettings(path)
	if !s.Bool("show_operation_warning", true) {
		t.Error("corrupt file should yield defaults")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := LoadSettings(path)
	s.Set("show_operation_warning", false)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := LoadSettings(path)
	if reloaded.Bool("show_operation_warning", true) {
		t.Error("saved false did not survive the round trip")
	}
}

func TestBoolIgnoresWrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"show_operation_warning": "yes"}`), 0644); err != nil {
		t.Fatal(err)
	}
	s := LoadSettings(path)
	if !s.Bool("show_operation_warning", true) {
		t.Error("non-bool value should fall back to the default")
	}
}

func TestDirRespectsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if dir != "/tmp/xdg-test/kernelctl" {
		t.Errorf("Dir() = %q, want /tmp/xdg-test/kernelctl", dir)
	}

	path, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath() error = %v", err)
	}
	if path != "/tmp/xdg-test/kernelctl/settings.json" {
		t.Errorf("SettingsPath() = %q", path)
	}
}
