package script

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/engine"
)

// Service owns the script Engine as a hub service
// The entry script runs on Start, after the game context is attached
type Service struct {
	cfg    config.ScriptsConfig
	engine *Engine
	ctx    *engine.GameContext
	log    *zap.Logger
}

func NewService(cfg config.ScriptsConfig, log *zap.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

func (s *Service) Name() string           { return "script" }
func (s *Service) Dependencies() []string { return nil }

func (s *Service) Init(...any) error {
	s.engine = NewEngine(s.log)
	if s.ctx != nil {
		s.engine.Attach(s.ctx)
	}
	return nil
}

// Attach binds the game context; may be called before or after Init
func (s *Service) Attach(ctx *engine.GameContext) {
	s.ctx = ctx
	if s.engine != nil {
		s.engine.Attach(ctx)
	}
}

// Start runs the entry script; a missing entry file is not an error
func (s *Service) Start() error {
	if s.cfg.Entry == "" {
		return nil
	}
	path := filepath.Join(s.cfg.Dir, s.cfg.Entry)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("entry script not found", zap.String("path", path))
		return nil
	}
	return s.engine.RunFile(path)
}

func (s *Service) Stop() error {
	if s.engine != nil {
		s.engine.Close()
		s.engine = nil
	}
	return nil
}

// Engine is nil before Init
func (s *Service) Engine() *Engine {
	return s.engine
}

// Contribute publishes the engine as the scripts capability
func (s *Service) Contribute(publish func(any)) {
	if s.engine != nil {
		publish(s.engine)
	}
}
