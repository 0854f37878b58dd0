package asset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

type Font struct {
	Name string
	Path string
}

type Texture struct {
	Name  string
	Path  string
	Image image.Image
}

// Music is streamed from Path when played
type Music struct {
	Name string
	Path string
}

// Sound is decoded fully into memory at load time
type Sound struct {
	Name   string
	Path   string
	Buffer *beep.Buffer
}

type Shader struct {
	Name   string
	Path   string
	Source string
}

type key struct {
	typ  Type
	name string
}

type loader func(name, path string) (any, error)

// Manager owns every loaded asset, keyed by type and name
// Handles are shared; callers must not mutate them
type Manager struct {
	mu      sync.RWMutex
	assets  map[key]any
	bundles map[string][]key
	loaders map[Type]loader
	log     *zap.Logger
}

func NewManager(log *zap.Logger) *Manager {
	m := &Manager{
		assets:  make(map[key]any),
		bundles: make(map[string][]key),
		log:     log.Named("asset"),
	}
	m.loaders = map[Type]loader{
		TypeFont:    loadFont,
		TypeTexture: loadTexture,
		TypeMusic:   loadMusic,
		TypeSound:   loadSound,
		TypeShader:  loadShader,
	}
	return m
}

// LoadManifest loads every valid entry of the manifest at path
// Bad entries are logged and skipped; an unreadable or unparsable manifest loads nothing
func (m *Manager) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		m.log.Error("manifest read failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("read manifest %s: %w", path, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		m.log.Error("manifest parse failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	loaded := 0
	for i, b := range manifest.Bundles {
		if b.Name == "" || len(b.Assets) == 0 {
			m.log.Warn("bundle skipped: missing name or assets", zap.Int("index", i), zap.String("bundle", b.Name))
			continue
		}
		loaded += m.loadBundle(b, base)
	}
	m.log.Info("manifest loaded", zap.String("path", path), zap.Int("bundles", len(manifest.Bundles)), zap.Int("assets", loaded))
	return nil
}

func (m *Manager) loadBundle(b BundleDef, base string) int {
	n := 0
	for _, def := range b.Assets {
		if err := def.Validate(); err != nil {
			m.log.Warn("asset skipped", zap.String("bundle", b.Name), zap.String("name", def.Name), zap.Error(err))
			continue
		}
		path := def.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		value, err := m.loaders[def.Type](def.Name, path)
		if err != nil {
			m.log.Warn("asset load failed", zap.String("bundle", b.Name), zap.String("name", def.Name), zap.String("type", string(def.Type)), zap.Error(err))
			continue
		}
		m.put(b.Name, key{def.Type, def.Name}, value)
		n++
	}
	return n
}

func (m *Manager) put(bundle string, k key, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.assets[k]; exists {
		m.log.Debug("asset replaced", zap.String("type", string(k.typ)), zap.String("name", k.name))
	}
	m.assets[k] = value
	m.bundles[bundle] = append(m.bundles[bundle], k)
}

// Add registers an already constructed handle outside any manifest
func (m *Manager) Add(bundle string, t Type, name string, value any) {
	m.put(bundle, key{t, name}, value)
}

func lookup[T any](m *Manager, t Type, name string) (T, bool) {
	m.mu.RLock()
	v, ok := m.assets[key{t, name}]
	m.mu.RUnlock()
	if !ok {
		var zero T
		m.log.Warn("asset not found", zap.String("type", string(t)), zap.String("name", name))
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

func (m *Manager) Font(name string) (*Font, bool) {
	return lookup[*Font](m, TypeFont, name)
}

func (m *Manager) Texture(name string) (*Texture, bool) {
	return lookup[*Texture](m, TypeTexture, name)
}

func (m *Manager) Music(name string) (*Music, bool) {
	return lookup[*Music](m, TypeMusic, name)
}

func (m *Manager) Sound(name string) (*Sound, bool) {
	return lookup[*Sound](m, TypeSound, name)
}

func (m *Manager) Shader(name string) (*Shader, bool) {
	return lookup[*Shader](m, TypeShader, name)
}

// Unload drops one asset
func (m *Manager) Unload(t Type, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{t, name}
	if _, ok := m.assets[k]; !ok {
		return false
	}
	delete(m.assets, k)
	return true
}

// UnloadBundle drops every asset the bundle registered
func (m *Manager) UnloadBundle(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys, ok := m.bundles[name]
	if !ok {
		return false
	}
	for _, k := range keys {
		delete(m.assets, k)
	}
	delete(m.bundles, name)
	return true
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.assets)
	clear(m.bundles)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets)
}

func loadFont(name, path string) (any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &Font{Name: name, Path: path}, nil
}

func loadTexture(name, path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Texture{Name: name, Path: path, Image: img}, nil
}

func loadMusic(name, path string) (any, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &Music{Name: name, Path: path}, nil
}

func loadSound(name, path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()
	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return &Sound{Name: name, Path: path, Buffer: buf}, nil
}

func loadShader(name, path string) (any, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Shader{Name: name, Path: path, Source: string(src)}, nil
}
