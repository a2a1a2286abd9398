package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archsketch.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
out_dir = "build/diagrams"
formats = ["png", "svg"]
timeout = "45s"
asset_dirs = ["assets", "icons"]
open = true
`)
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig = %v", err)
		}
		if cfg.OutDir != "build/diagrams" {
			t.Errorf("OutDir = %q, want %q", cfg.OutDir, "build/diagrams")
		}
		if len(cfg.Formats) != 2 || cfg.Formats[0] != "png" || cfg.Formats[1] != "svg" {
			t.Errorf("Formats = %v, want [png svg]", cfg.Formats)
		}
		if cfg.Timeout.Duration != 45*time.Second {
			t.Errorf("Timeout = %v, want 45s", cfg.Timeout.Duration)
		}
		if len(cfg.AssetDirs) != 2 {
			t.Errorf("AssetDirs = %v, want two entries", cfg.AssetDirs)
		}
		if !cfg.Open {
			t.Error("Open = false, want true")
		}
	})

	t.Run("missing explicit file errors", func(t *testing.T) {
		if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("loadConfig(missing explicit) = nil, want error")
		}
	})

	t.Run("missing default file is empty config", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig(\"\") = %v", err)
		}
		if cfg.OutDir != "" || len(cfg.Formats) != 0 {
			t.Errorf("cfg = %+v, want zero value", cfg)
		}
	})

	t.Run("malformed timeout errors", func(t *testing.T) {
		path := writeConfig(t, `timeout = "not-a-duration"`)
		if _, err := loadConfig(path); err == nil {
			t.Error("loadConfig(bad timeout) = nil, want error")
		}
	})
}
