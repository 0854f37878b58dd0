package service

// Service defines the lifecycle interface for long-lived subsystems
// Services own process resources: the terminal, the audio device, the script VM, loaded assets
//
// Lifecycle:
//  1. Construction (via NewX)
//  2. Init(args...) - configuration not known at construction (headless flag, mute state)
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	// Return nil or empty slice if no dependencies
	Dependencies() []string

	// Init configures the service from optional args
	// Args are service-specific; every service receives the same list
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// CapabilityPublisher receives a capability a service exposes to the game context
// Receivers route on the dynamic type; an alias so services need not import this package
type CapabilityPublisher = func(capability any)

// Contributor is implemented by services that expose capabilities to the engine
// Optional interface - services not implementing it are skipped during Contribute
type Contributor interface {
	Contribute(publish CapabilityPublisher)
}
