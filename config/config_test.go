package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stagecraft.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.RefWidth != Default().Window.RefWidth {
		t.Errorf("RefWidth = %d, want default", cfg.Window.RefWidth)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
ref_width = 800
ref_height = 600

[loop]
target_fps = 30

[input]
key_hold_window = "200ms"

[audio]
master_volume = 1.7
music_volume = -0.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.RefWidth != 800 || cfg.Window.RefHeight != 600 {
		t.Errorf("ref size = %dx%d, want 800x600", cfg.Window.RefWidth, cfg.Window.RefHeight)
	}
	if cfg.Window.Title != Default().Window.Title {
		t.Errorf("unset title should keep default, got %q", cfg.Window.Title)
	}
	if cfg.Input.KeyHoldWindow != 200*time.Millisecond {
		t.Errorf("KeyHoldWindow = %v, want 200ms", cfg.Input.KeyHoldWindow)
	}
	if cfg.Audio.MasterVolume != 1 || cfg.Audio.MusicVolume != 0 {
		t.Errorf("volumes not clamped: master %v music %v", cfg.Audio.MasterVolume, cfg.Audio.MusicVolume)
	}
	if got := cfg.FrameInterval(); got != time.Second/30 {
		t.Errorf("FrameInterval = %v", got)
	}
}

func TestLoadRejectsZeroReference(t *testing.T) {
	path := writeConfig(t, "[window]\nref_width = 0\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for zero reference width")
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[window\nref_width = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	log, err := NewLogger(LoggingConfig{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestFrameIntervalUncapped(t *testing.T) {
	cfg := Default()
	cfg.Loop.TargetFPS = 0
	if got := cfg.FrameInterval(); got != 0 {
		t.Errorf("FrameInterval = %v, want 0", got)
	}
}
