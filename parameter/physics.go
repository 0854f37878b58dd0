package parameter

// PixelsPerCentimeter converts gravity and acceleration units into world units
const PixelsPerCentimeter = 1.0

// Particle defaults
const (
	ParticleRatePerSecond = 20.0
	ParticleMaxCount      = 200
	ParticleMinLifetime   = 0.5
	ParticleMaxLifetime   = 1.2
	ParticleMinVelocity   = 4.0
	ParticleMaxVelocity   = 16.0
	ParticleZOrder        = 1000
)
