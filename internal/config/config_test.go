package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadMissingFileDefaults tests that a missing file yields defaults
func TestLoadMissingFileDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Folder != "./data" {
		t.Errorf("expected default data folder, got %q", cfg.Data.Folder)
	}
	if cfg.Output.DefaultFormat != "table" {
		t.Errorf("expected default format table, got %q", cfg.Output.DefaultFormat)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("expected default address :8080, got %q", cfg.Server.Address)
	}
}

// TestLoadPartialFileOverlaysDefaults tests that file values overlay
// defaults rather than replacing the whole configuration
func TestLoadPartialFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"data": {"folder": "/srv/extracts"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Folder != "/srv/extracts" {
		t.Errorf("expected overridden folder, got %q", cfg.Data.Folder)
	}
	if cfg.Output.DefaultFormat != "table" {
		t.Errorf("expected default format retained, got %q", cfg.Output.DefaultFormat)
	}
}

// TestLoadMalformedFile tests the error path
func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed configuration")
	}
}

// TestSaveLoadRoundTrip tests persistence
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Data.Folder = "/var/census"
	cfg.Server.Address = ":9090"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Data.Folder != "/var/census" || loaded.Server.Address != ":9090" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

// TestGlobalGetSet tests the global configuration instance
func TestGlobalGetSet(t *testing.T) {
	original := Get()
	defer Set(original)

	cfg := Default()
	cfg.Data.Folder = "/tmp/somewhere"
	Set(cfg)
	if Get().Data.Folder != "/tmp/somewhere" {
		t.Errorf("expected global config updated, got %q", Get().Data.Folder)
	}
}
