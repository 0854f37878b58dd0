package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/core"
)

// Headless is an Init arg selecting the in-memory window instead of a terminal
type Headless bool

// WindowService manages the window lifecycle as a hub service
type WindowService struct {
	opts TcellOptions
	size core.Vec2u // in-memory window size
	log  *zap.Logger

	mu      sync.Mutex
	window  Window
	tcell   *TcellWindow
	running bool
}

// NewWindowService creates the service; size is used when running headless
func NewWindowService(opts TcellOptions, size core.Vec2u, log *zap.Logger) *WindowService {
	return &WindowService{opts: opts, size: size, log: log.Named("window")}
}

func (s *WindowService) Name() string           { return "window" }
func (s *WindowService) Dependencies() []string { return nil }

// Init builds the window; a Headless(true) arg selects the in-memory window
func (s *WindowService) Init(args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range args {
		if h, ok := a.(Headless); ok && bool(h) {
			s.window = NewMemoryWindow(s.size)
			s.log.Debug("headless window", zap.Uint32("width", s.size.X), zap.Uint32("height", s.size.Y))
			return nil
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	s.tcell = NewTcellWindow(screen, s.opts, s.log)
	s.window = s.tcell
	return nil
}

// Start opens the terminal screen and launches input polling
func (s *WindowService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if s.tcell != nil {
		if err := s.tcell.Start(); err != nil {
			return err
		}
	}
	s.running = true
	return nil
}

// Stop closes the window and restores the terminal
func (s *WindowService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	if s.window != nil {
		s.window.Close()
	}
	return nil
}

// Window is nil before Init
func (s *WindowService) Window() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Screen returns the tcell screen, nil when headless
func (s *WindowService) Screen() tcell.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tcell == nil {
		return nil
	}
	return s.tcell.Screen()
}

// Contribute publishes the window
func (s *WindowService) Contribute(publish func(any)) {
	if w := s.Window(); w != nil {
		publish(w)
	}
}
