package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/stagecraft/parameter"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Loop    LoopConfig    `toml:"loop"`
	Input   InputConfig   `toml:"input"`
	Audio   AudioConfig   `toml:"audio"`
	Assets  AssetsConfig  `toml:"assets"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	RefWidth  uint32 `toml:"ref_width"`  // logical game width in cells
	RefHeight uint32 `toml:"ref_height"` // logical game height in cells
	Title     string `toml:"title"`
	Mouse     bool   `toml:"mouse"`
}

type LoopConfig struct {
	TargetFPS int `toml:"target_fps"` // 0 = uncapped
}

type InputConfig struct {
	KeyHoldWindow    time.Duration `toml:"key_hold_window"`
	JoystickDeadZone float64       `toml:"joystick_dead_zone"`
}

type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"` // 0.0-1.0
	MusicVolume  float64 `toml:"music_volume"`  // 0.0-1.0
	SoundVolume  float64 `toml:"sound_volume"`  // 0.0-1.0
}

type AssetsConfig struct {
	Manifest string `toml:"manifest"`
}

type ScriptsConfig struct {
	Dir   string `toml:"dir"`
	Entry string `toml:"entry"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // path, or "stderr"
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate clamps volumes and rejects unusable window sizes
func (c *Config) Validate() error {
	if c.Window.RefWidth == 0 || c.Window.RefHeight == 0 {
		return fmt.Errorf("window reference size must be non-zero, got %dx%d", c.Window.RefWidth, c.Window.RefHeight)
	}
	if c.Loop.TargetFPS < 0 {
		c.Loop.TargetFPS = 0
	}
	c.Audio.MasterVolume = clamp01(c.Audio.MasterVolume)
	c.Audio.MusicVolume = clamp01(c.Audio.MusicVolume)
	c.Audio.SoundVolume = clamp01(c.Audio.SoundVolume)
	if c.Input.KeyHoldWindow <= 0 {
		c.Input.KeyHoldWindow = parameter.KeyHoldWindow
	}
	return nil
}

// FrameInterval converts the target FPS into a per-frame budget, 0 when uncapped
func (c *Config) FrameInterval() time.Duration {
	if c.Loop.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Loop.TargetFPS)
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			RefWidth:  parameter.DefaultRefWidth,
			RefHeight: parameter.DefaultRefHeight,
			Title:     parameter.DefaultWindowTitle,
			Mouse:     true,
		},
		Loop: LoopConfig{
			TargetFPS: parameter.DefaultTargetFPS,
		},
		Input: InputConfig{
			KeyHoldWindow:    parameter.KeyHoldWindow,
			JoystickDeadZone: parameter.JoystickDeadZone,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: parameter.DefaultMasterVolume,
			MusicVolume:  parameter.DefaultMusicVolume,
			SoundVolume:  parameter.DefaultSoundVolume,
		},
		Assets: AssetsConfig{
			Manifest: "assets/manifest.yaml",
		},
		Scripts: ScriptsConfig{
			Dir:   "scripts",
			Entry: "main.lua",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "stagecraft.log",
		},
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
