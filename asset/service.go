package asset

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// Service owns the Manager as a hub service and loads the configured manifest on Init
type Service struct {
	manager  *Manager
	manifest string
	log      *zap.Logger
}

// NewService creates the asset service; an empty manifest path starts with no assets
func NewService(manifest string, log *zap.Logger) *Service {
	return &Service{manager: NewManager(log), manifest: manifest, log: log}
}

func (s *Service) Name() string           { return "assets" }
func (s *Service) Dependencies() []string { return nil }

// Init loads the manifest; a missing file is logged and tolerated, a broken one fails
func (s *Service) Init(...any) error {
	if s.manifest == "" {
		return nil
	}
	if _, err := os.Stat(s.manifest); errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("asset manifest not found, starting empty", zap.String("path", s.manifest))
		return nil
	}
	return s.manager.LoadManifest(s.manifest)
}

func (s *Service) Start() error { return nil }

func (s *Service) Stop() error {
	s.manager.Clear()
	return nil
}

func (s *Service) Manager() *Manager {
	return s.manager
}

// Contribute publishes the manager
func (s *Service) Contribute(publish func(any)) {
	publish(s.manager)
}
