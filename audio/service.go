package audio

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/config"
)

// Service wraps Player as a hub service
// Falls back to a NullDevice when the speaker cannot be opened
type Service struct {
	lib      Library
	cfg      config.AudioConfig
	device   Device
	player   *Player
	disabled atomic.Bool
	log      *zap.Logger
}

// NewService creates the audio service; a nil device selects the system speaker
func NewService(lib Library, cfg config.AudioConfig, device Device, log *zap.Logger) *Service {
	if device == nil {
		device = SpeakerDevice{}
	}
	return &Service{lib: lib, cfg: cfg, device: device, log: log}
}

func (s *Service) Name() string           { return "audio" }
func (s *Service) Dependencies() []string { return []string{"assets"} }

// Init opens the device; args[0] bool overrides the configured enabled flag
func (s *Service) Init(args ...any) error {
	enabled := s.cfg.Enabled
	if len(args) > 0 {
		if on, ok := args[0].(bool); ok {
			enabled = on
		}
	}

	device := s.device
	if !enabled {
		device = &NullDevice{}
		s.disabled.Store(true)
	}

	player, err := NewPlayer(device, s.lib, s.cfg, s.log)
	if err != nil {
		s.log.Warn("audio unavailable, running silent", zap.Error(err))
		s.disabled.Store(true)
		if player, err = NewPlayer(&NullDevice{}, s.lib, s.cfg, s.log); err != nil {
			return err
		}
	}
	s.player = player
	return nil
}

func (s *Service) Start() error { return nil }

func (s *Service) Stop() error {
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
	return nil
}

// Player is nil before Init
func (s *Service) Player() *Player {
	return s.player
}

// IsDisabled reports whether output is discarded
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Contribute publishes the player once initialized
func (s *Service) Contribute(publish func(any)) {
	if s.player != nil {
		publish(s.player)
	}
}
