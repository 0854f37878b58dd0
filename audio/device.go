package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Device is the output the player's mixer is attached to
// Lock/Unlock guard streamer mutation against the output goroutine
type Device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// SpeakerDevice plays through the system speaker
type SpeakerDevice struct{}

func (SpeakerDevice) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (SpeakerDevice) Play(s beep.Streamer) { speaker.Play(s) }
func (SpeakerDevice) Lock()                { speaker.Lock() }
func (SpeakerDevice) Unlock()              { speaker.Unlock() }
func (SpeakerDevice) Close()               { speaker.Close() }

// NullDevice discards output; Pull advances it by hand
type NullDevice struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	streams []beep.Streamer
	closed  bool
}

func (d *NullDevice) Init(rate beep.SampleRate, _ int) error {
	d.rate = rate
	return nil
}

func (d *NullDevice) Play(s beep.Streamer) {
	d.mu.Lock()
	d.streams = append(d.streams, s)
	d.mu.Unlock()
}

func (d *NullDevice) Lock()   { d.mu.Lock() }
func (d *NullDevice) Unlock() { d.mu.Unlock() }

func (d *NullDevice) Close() {
	d.mu.Lock()
	d.streams = nil
	d.closed = true
	d.mu.Unlock()
}

// Pull streams n samples from every attached streamer and returns the last buffer
func (d *NullDevice) Pull(n int) [][2]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([][2]float64, n)
	for _, s := range d.streams {
		s.Stream(buf)
	}
	return buf
}

func (d *NullDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
