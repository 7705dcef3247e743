package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("out = \"demo.mp4\"\nfps = 30\nx264_preset = \"medium\"\nmanifest = true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Out != "demo.mp4" {
		t.Errorf("expected out demo.mp4, got %q", fc.Out)
	}
	if fc.FPS != 30 {
		t.Errorf("expected fps 30, got %d", fc.FPS)
	}
	if fc.X264Preset != "medium" {
		t.Errorf("expected preset medium, got %q", fc.X264Preset)
	}
	if fc.Manifest == nil || !*fc.Manifest {
		t.Error("expected manifest true")
	}
}

func TestLoadFileConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("fps = [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	manifest := true
	fc := FileConfig{
		Out:      "file.mp4",
		FPS:      30,
		Manifest: &manifest,
	}
	changed := map[string]bool{"fps": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatal(err)
	}
	if cfg.Out != "file.mp4" {
		t.Errorf("expected out from file, got %q", cfg.Out)
	}
	if cfg.FPS != 20 {
		t.Errorf("flag-set fps should win over file, got %d", cfg.FPS)
	}
	if !cfg.Manifest {
		t.Error("manifest should apply from file")
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present.toml")
	if FileExists(path) {
		t.Error("expected false for missing file")
	}
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("expected true for existing file")
	}
}
