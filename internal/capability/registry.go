// Package capability implements the capability registry and the
// conditional-execution decorator built on it.
//
// A capability is a named unit of optional functionality linked into the
// binary. Probing looks the name up in an explicit registry instead of
// loading code dynamically; each entry can be switched off at startup
// through types.Config.Disabled.
package capability

import (
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/mesh-intelligence/geocap/pkg/types"
)

// Loader initializes a capability and returns its handle. It runs at most
// once per registry.
type Loader func() (any, error)

// namePattern accepts dotted or slash separated identifiers only
// (numpy.linalg, gonum/stat). Expressions never resolve.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*([./][A-Za-z_][A-Za-z0-9_]*)*$`)

type entry struct {
	capability types.Capability
	load       func() (any, error)
}

// Registry maps capability names to pre-linked loaders.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	cfg     types.Config
}

// NewRegistry creates an empty registry honouring the disabled list in cfg.
func NewRegistry(cfg types.Config) *Registry {
	cfg.Disabled = slices.Clone(cfg.Disabled)
	return &Registry{
		entries: make(map[string]*entry),
		cfg:     cfg,
	}
}

// Register adds a capability. The loader is not run until the first probe.
// Returns ErrInvalidName for a malformed name and ErrDuplicateCapability if
// the name is already taken.
func (r *Registry) Register(c types.Capability, load Loader) error {
	if !ValidName(c.Name) {
		return fmt.Errorf("%w: %q", types.ErrInvalidName, c.Name)
	}
	if load == nil {
		return fmt.Errorf("register %s: nil loader", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[c.Name]; ok {
		return fmt.Errorf("%w: %s", types.ErrDuplicateCapability, c.Name)
	}
	r.entries[c.Name] = &entry{
		capability: c,
		load:       sync.OnceValues(guarded(c.Name, load)),
	}
	return nil
}

// MustRegister is Register for built-in tables where a failure is a
// programming error.
func (r *Registry) MustRegister(c types.Capability, load Loader) {
	if err := r.Register(c, load); err != nil {
		panic(err)
	}
}

// Probe attempts to resolve name. It returns (true, handle) on success and
// (false, nil) on any failure; the reason is discarded. Probe never panics.
func (r *Registry) Probe(name string) (bool, any) {
	handle, err := r.Resolve(name)
	if err != nil {
		return false, nil
	}
	return true, handle
}

// Resolve is Probe with the failure reason kept. Every error wraps
// types.ErrCapabilityUnavailable.
func (r *Registry) Resolve(name string) (any, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %w: %q", types.ErrCapabilityUnavailable, types.ErrInvalidName, name)
	}

	r.mu.RLock()
	e, ok := r.entries[name]
	off := r.cfg.IsDisabled(name)
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s not registered", types.ErrCapabilityUnavailable, name)
	}
	if off {
		return nil, fmt.Errorf("%w: %s disabled by configuration", types.ErrCapabilityUnavailable, name)
	}

	handle, err := e.load()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", types.ErrCapabilityUnavailable, name, err)
	}
	return handle, nil
}

// Lookup returns the metadata for a registered capability.
func (r *Registry) Lookup(name string) (types.Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return types.Capability{}, false
	}
	return e.capability, true
}

// Names returns the registered capability names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// ProbeAll probes every registered capability in name order.
func (r *Registry) ProbeAll() []types.ProbeResult {
	names := r.Names()
	results := make([]types.ProbeResult, 0, len(names))
	for _, name := range names {
		ok, handle := r.Probe(name)
		results = append(results, types.ProbeResult{Name: name, Available: ok, Handle: handle})
	}
	return results
}

// ValidName reports whether name is a plain capability name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// guarded converts a loader panic into an error so that sync.OnceValues
// records a failure instead of re-panicking on every probe.
func guarded(name string, load Loader) func() (any, error) {
	return func() (handle any, err error) {
		defer func() {
			if p := recover(); p != nil {
				handle = nil
				err = fmt.Errorf("loader %s panicked: %v", name, p)
			}
		}()
		return load()
	}
}
