package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Editor.MaxUndoEntries != 1000 {
		t.Errorf("MaxUndoEntries = %d, want 1000", c.Editor.MaxUndoEntries)
	}
	if c.View.BasesPerLine != 60 {
		t.Errorf("BasesPerLine = %d, want 60", c.View.BasesPerLine)
	}
	if !c.View.ShowComplement {
		t.Error("ShowComplement = false, want true")
	}
	if c.Backend.URL != "" {
		t.Errorf("Backend.URL = %q, want empty", c.Backend.URL)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := []byte(`
editor:
  max-undo-entries: 50
  circular: true
backend:
  url: ws://localhost:9000/mirror
view:
  bases-per-line: 80
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Editor.MaxUndoEntries != 50 {
		t.Errorf("MaxUndoEntries = %d, want 50", c.Editor.MaxUndoEntries)
	}
	if !c.Editor.Circular {
		t.Error("Circular = false, want true")
	}
	if c.Backend.URL != "ws://localhost:9000/mirror" {
		t.Errorf("Backend.URL = %q", c.Backend.URL)
	}
	if c.View.BasesPerLine != 80 {
		t.Errorf("BasesPerLine = %d, want 80", c.View.BasesPerLine)
	}
	// File settings merge over defaults.
	if c.Backend.QueueSize != 64 {
		t.Errorf("QueueSize = %d, want default 64", c.Backend.QueueSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing file succeeded")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero undo entries", func(c *Config) { c.Editor.MaxUndoEntries = 0 }},
		{"zero bases per line", func(c *Config) { c.View.BasesPerLine = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"zero queue size", func(c *Config) { c.Backend.QueueSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SEQSTORM_VIEW_BASES_PER_LINE", "100")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.View.BasesPerLine != 100 {
		t.Errorf("BasesPerLine = %d, want env override 100", c.View.BasesPerLine)
	}
}
