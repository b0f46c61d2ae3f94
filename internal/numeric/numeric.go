// Package numeric establishes the process-wide numeric environment at
// startup: it binds the mandatory numeric capabilities, records which
// optional ones are present, and fixes the comparison tolerances.
//
// The result is an immutable Environment passed to consumers explicitly.
package numeric

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/geocap/internal/capability"
	"github.com/mesh-intelligence/geocap/pkg/types"
)

// Capability names bound by Init. They keep the names consumers of the
// wider library already probe for.
const (
	CapNumpy    = "numpy"
	CapLinalg   = "numpy.linalg"
	CapScipy    = "scipy"
	CapStats    = "scipy.stats"
	CapDistance = "scipy.spatial.distance"
	CapKDTree   = "kdtree"
	CapJIT      = "numba"
	CapTabular  = "pandas"
	CapFormula  = "patsy"
)

// mandatory lists the capabilities Init cannot proceed without, grouped the
// way their absence is reported.
var mandatory = []struct {
	group string
	names []string
}{
	{CapNumpy, []string{CapNumpy, CapLinalg}},
	{CapScipy, []string{CapScipy, CapStats, CapKDTree, CapDistance}},
}

var (
	// ErrFormula is the specialized formula error bound when the formula
	// capability is present and does not supply its own.
	ErrFormula = errors.New("formula error")

	// ErrGeneric stands in for the formula error when the formula
	// capability is absent.
	ErrGeneric = errors.New("numeric error")
)

// Environment is the numeric environment resolved once at startup.
type Environment struct {
	Tolerances types.Tolerances

	Linalg   Linalg
	Stats    Stats
	Distance Distance
	KDTree   KDTreeBuilder

	// HasJIT records whether an acceleration capability is registered.
	// JIT is transparent either way.
	HasJIT bool

	// Tabular is the tabular capability handle, nil when absent.
	Tabular TabularOpener

	// FormulaError is ErrFormula (or the capability's own error) when the
	// formula capability resolves, ErrGeneric otherwise.
	FormulaError error

	// MissingValue marks absent observations.
	MissingValue any
}

// Init resolves the numeric environment from reg. A missing mandatory
// capability is reported on logger and returned as an error wrapping
// types.ErrMandatoryMissing; startup must not continue.
func Init(reg *capability.Registry, logger *log.Logger) (*Environment, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stdout, log.Options{Prefix: "numeric"})
	}

	handles := make(map[string]any)
	for _, m := range mandatory {
		for _, name := range m.names {
			h, err := reg.Resolve(name)
			if err != nil {
				logger.Errorf("%s is required", m.group)
				return nil, fmt.Errorf("%w: %s: %w", types.ErrMandatoryMissing, name, err)
			}
			handles[name] = h
		}
	}

	env := &Environment{
		Tolerances:   types.DefaultTolerances(),
		FormulaError: ErrGeneric,
	}

	var ok bool
	if env.Linalg, ok = handles[CapLinalg].(Linalg); !ok {
		return nil, handleTypeError(CapLinalg, handles[CapLinalg])
	}
	if env.Stats, ok = handles[CapStats].(Stats); !ok {
		return nil, handleTypeError(CapStats, handles[CapStats])
	}
	if env.Distance, ok = handles[CapDistance].(Distance); !ok {
		return nil, handleTypeError(CapDistance, handles[CapDistance])
	}
	if env.KDTree, ok = handles[CapKDTree].(KDTreeBuilder); !ok {
		return nil, handleTypeError(CapKDTree, handles[CapKDTree])
	}

	env.HasJIT, _ = reg.Probe(CapJIT)

	if ok, h := reg.Probe(CapTabular); ok {
		if opener, isOpener := h.(TabularOpener); isOpener {
			env.Tabular = opener
		}
	}

	if ok, h := reg.Probe(CapFormula); ok {
		env.FormulaError = ErrFormula
		if e, isErr := h.(error); isErr {
			env.FormulaError = e
		}
	}

	logger.Debug("numeric environment ready",
		"jit", env.HasJIT, "tabular", env.Tabular != nil, "rtol", env.Tolerances.RTOL, "atol", env.Tolerances.ATOL)
	return env, nil
}

func handleTypeError(name string, h any) error {
	return fmt.Errorf("%w: %s resolved to unexpected handle %T", types.ErrMandatoryMissing, name, h)
}

// JITOption names an accelerator compilation flag. No accelerator is linked,
// so options carry no settings and JIT ignores them.
type JITOption string

// Accelerator flags accepted by JIT.
const (
	NoPython JITOption = "nopython"
	Cache    JITOption = "cache"
)

// JIT marks fn for acceleration and returns it unchanged, whether called
// bare or with options.
func JIT[F any](fn F, _ ...JITOption) F {
	return fn
}
