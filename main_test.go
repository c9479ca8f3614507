package main

import (
	"os"
	"path/filepath"
	"testing"

	"gargantua/pkg/config"
)

func TestLoadConfig_DefaultsWhenNoFileGiven(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "gargantua.ini")
	contents := "[simulation]\nrays = 7\n"
	if err := os.WriteFile(fname, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(fname)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Simulation.Rays != 7 {
		t.Errorf("Expected 7 rays, got %d", cfg.Simulation.Rays)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
