package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Volume defaults, 0..1
const (
	DefaultMasterVolume = 1.0
	DefaultMusicVolume  = 0.6
	DefaultSoundVolume  = 0.8
)
