package types

import "errors"

// ProbeResult is the outcome of a single probe. Handle is nil when
// Available is false.
type ProbeResult struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Handle    any    `json:"-"`
}

// Capability describes a registry entry.
type Capability struct {
	Name        string `json:"name"`
	Mandatory   bool   `json:"mandatory"`
	Description string `json:"description"`
}

// Capability errors.
var (
	// ErrCapabilityUnavailable marks an optional capability that could not be
	// resolved. It is recovered locally and never escapes Probe.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrMandatoryMissing marks a required capability that could not be
	// resolved. Startup cannot continue.
	ErrMandatoryMissing = errors.New("mandatory capability missing")

	ErrInvalidName         = errors.New("invalid capability name")
	ErrDuplicateCapability = errors.New("capability already registered")
)
