package types

import (
	"errors"
	"fmt"
	"slices"
)

// Config holds the startup-time settings resolved once by the CLI or an
// embedding program and passed explicitly to the registry and stores.
type Config struct {
	ConfigDir string   `json:"config_dir" yaml:"config_dir"`
	DataDir   string   `json:"data_dir" yaml:"data_dir"`
	Disabled  []string `json:"disabled" yaml:"disabled"`
	Verbose   bool     `json:"verbose" yaml:"verbose"`
}

// Config validation errors.
var (
	ErrDisabledNameEmpty = errors.New("disabled capability name must not be empty")
	ErrDisabledDuplicate = errors.New("disabled capability listed twice")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Disabled))
	for _, name := range c.Disabled {
		if name == "" {
			return ErrDisabledNameEmpty
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDisabledDuplicate, name)
		}
		seen[name] = true
	}
	return nil
}

// IsDisabled reports whether the named capability is switched off.
func (c Config) IsDisabled(name string) bool {
	return slices.Contains(c.Disabled, name)
}
