package audio

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/asset"
	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/parameter"
)

// resampleQuality trades CPU for fidelity when an asset rate differs from the device
const resampleQuality = 4

// Library resolves named audio assets
type Library interface {
	Music(name string) (*asset.Music, bool)
	Sound(name string) (*asset.Sound, bool)
}

// MusicState of the current track
type MusicState uint8

const (
	MusicStopped MusicState = iota
	MusicPlaying
	MusicPaused
)

type track struct {
	name   string
	file   *os.File
	source beep.StreamSeekCloser
	loop   *loopStreamer
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// Player mixes one music track and any number of sounds into a Device
// Effective music gain is music volume times master volume
type Player struct {
	mu     sync.Mutex
	device Device
	lib    Library
	rate   beep.SampleRate
	mixer  *beep.Mixer
	log    *zap.Logger

	current *track
	paused  bool
	looping atomic.Bool

	master float64
	music  float64
	sound  float64
}

// NewPlayer initializes the device and attaches the mixer to it
func NewPlayer(device Device, lib Library, cfg config.AudioConfig, log *zap.Logger) (*Player, error) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := device.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("audio device init: %w", err)
	}

	p := &Player{
		device: device,
		lib:    lib,
		rate:   rate,
		mixer:  &beep.Mixer{},
		log:    log.Named("audio"),
		master: cfg.MasterVolume,
		music:  cfg.MusicVolume,
		sound:  cfg.SoundVolume,
	}
	p.looping.Store(true)
	device.Play(p.mixer)
	return p, nil
}

// PlayMusic replaces the current track with the named music asset
func (p *Player) PlayMusic(name string) bool {
	m, ok := p.lib.Music(name)
	if !ok {
		return false
	}
	f, err := os.Open(m.Path)
	if err != nil {
		p.log.Warn("music open failed", zap.String("name", name), zap.Error(err))
		return false
	}
	source, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		p.log.Warn("music decode failed", zap.String("name", name), zap.Error(err))
		return false
	}

	t := &track{name: name, file: f, source: source}
	t.loop = &loopStreamer{src: source, loop: &p.looping}
	var s beep.Streamer = t.loop
	if format.SampleRate != p.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, p.rate, s)
	}
	t.ctrl = &beep.Ctrl{Streamer: s}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	t.volume = newVolume(t.ctrl, p.music*p.master)
	p.current = t
	p.paused = false

	p.device.Lock()
	p.mixer.Add(t.volume)
	p.device.Unlock()

	p.log.Debug("music started", zap.String("name", name))
	return true
}

func (p *Player) PauseMusic()  { p.setPaused(true) }
func (p *Player) ResumeMusic() { p.setPaused(false) }

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	p.device.Lock()
	p.current.ctrl.Paused = paused
	p.device.Unlock()
	p.paused = paused
}

func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	t := p.current
	if t == nil {
		return
	}
	p.device.Lock()
	// Ctrl with no streamer ends, and the mixer drops it
	t.ctrl.Streamer = nil
	p.device.Unlock()

	if err := t.source.Close(); err != nil {
		p.log.Debug("music close", zap.String("name", t.name), zap.Error(err))
	}
	t.file.Close()
	p.current = nil
	p.paused = false
}

// SetLoop applies to the current and future tracks
func (p *Player) SetLoop(loop bool) {
	p.looping.Store(loop)
}

func (p *Player) Looping() bool {
	return p.looping.Load()
}

func (p *Player) SetMusicVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.music = clamp01(v)
	p.applyMusicGainLocked()
}

func (p *Player) SetMasterVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.master = clamp01(v)
	p.applyMusicGainLocked()
}

func (p *Player) SetSoundVolume(v float64) {
	p.mu.Lock()
	p.sound = clamp01(v)
	p.mu.Unlock()
}

func (p *Player) applyMusicGainLocked() {
	if p.current == nil {
		return
	}
	p.device.Lock()
	setGain(p.current.volume, p.music*p.master)
	p.device.Unlock()
}

// EffectiveMusicVolume is the linear gain applied to the music track
func (p *Player) EffectiveMusicVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music * p.master
}

func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.master
}

func (p *Player) State() MusicState {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.current == nil || p.current.loop.done.Load():
		return MusicStopped
	case p.paused:
		return MusicPaused
	default:
		return MusicPlaying
	}
}

func (p *Player) IsPlaying() bool { return p.State() == MusicPlaying }
func (p *Player) IsPaused() bool  { return p.State() == MusicPaused }
func (p *Player) IsStopped() bool { return p.State() == MusicStopped }

// CurrentMusic is the name of the loaded track, empty when stopped
func (p *Player) CurrentMusic() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ""
	}
	return p.current.name
}

// PlaySound starts the named sound once, mixed over any music
func (p *Player) PlaySound(name string) bool {
	snd, ok := p.lib.Sound(name)
	if !ok {
		return false
	}
	buf := snd.Buffer
	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if rate := buf.Format().SampleRate; rate != p.rate {
		s = beep.Resample(resampleQuality, rate, p.rate, s)
	}
	p.play(s)
	return true
}

// PlayTone plays a generated sine beep
func (p *Player) PlayTone(freq float64, duration time.Duration) {
	p.play(Tone(freq, duration, WaveSine, p.rate))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	gain := p.sound * p.master
	p.mu.Unlock()
	if gain == 0 {
		return
	}

	p.device.Lock()
	p.mixer.Add(newVolume(s, gain))
	p.device.Unlock()
}

// Close stops music and releases the device
func (p *Player) Close() {
	p.StopMusic()
	p.device.Lock()
	p.mixer.Clear()
	p.device.Unlock()
	p.device.Close()
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
