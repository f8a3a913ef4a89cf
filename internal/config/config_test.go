package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.DefaultTolerance != 0 {
		t.Errorf("DefaultTolerance: got %g, want 0", cfg.DefaultTolerance)
	}
	if cfg.CaptureScale != 1.0 {
		t.Errorf("CaptureScale: got %g, want 1.0", cfg.CaptureScale)
	}
	if !cfg.CacheBitmaps {
		t.Error("CacheBitmaps: got false, want true")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "log_level: debug\ndefault_tolerance: 0.25\ncapture_scale: 2.0\ncache_bitmaps: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.DefaultTolerance != 0.25 {
		t.Errorf("DefaultTolerance: got %g, want 0.25", cfg.DefaultTolerance)
	}
	if cfg.CaptureScale != 2.0 {
		t.Errorf("CaptureScale: got %g, want 2.0", cfg.CaptureScale)
	}
	if cfg.CacheBitmaps {
		t.Error("CacheBitmaps: got true, want false")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail for an explicitly named missing file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"tolerance above one", "default_tolerance: 1.5\n"},
		{"tolerance negative", "default_tolerance: -0.1\n"},
		{"zero capture scale", "capture_scale: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load should reject invalid config")
			}
		})
	}
}
