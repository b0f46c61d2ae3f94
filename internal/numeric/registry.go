package numeric

import (
	"github.com/mesh-intelligence/geocap/internal/capability"
	"github.com/mesh-intelligence/geocap/internal/sqlite"
	"github.com/mesh-intelligence/geocap/pkg/types"
)

// TabularOpener is the tabular capability handle: it opens the series store
// in a data directory.
type TabularOpener func(dataDir string) (*sqlite.Store, error)

// Builtins returns the capabilities linked into this binary. The
// accelerator and the formula library have no Go counterpart and are not
// listed; probing them reports absent.
func Builtins() map[types.Capability]capability.Loader {
	return map[types.Capability]capability.Loader{
		{Name: CapNumpy, Mandatory: true, Description: "gonum floats"}: func() (any, error) {
			return Linalg{}, nil
		},
		{Name: CapLinalg, Mandatory: true, Description: "gonum mat linear algebra"}: func() (any, error) {
			return Linalg{}, nil
		},
		{Name: CapScipy, Mandatory: true, Description: "gonum stat and spatial"}: func() (any, error) {
			return Stats{}, nil
		},
		{Name: CapStats, Mandatory: true, Description: "gonum stat summaries"}: func() (any, error) {
			return Stats{}, nil
		},
		{Name: CapDistance, Mandatory: true, Description: "pairwise Euclidean distances"}: func() (any, error) {
			return Distance{}, nil
		},
		{Name: CapKDTree, Mandatory: true, Description: "gonum k-d tree nearest neighbour"}: func() (any, error) {
			return KDTreeBuilder(NewKDTree), nil
		},
		{Name: CapTabular, Description: "SQLite series store"}: func() (any, error) {
			return TabularOpener(sqlite.Open), nil
		},
	}
}

// DefaultRegistry returns a registry holding the built-in capabilities and
// honouring cfg's disabled list.
func DefaultRegistry(cfg types.Config) *capability.Registry {
	reg := capability.NewRegistry(cfg)
	for c, load := range Builtins() {
		reg.MustRegister(c, load)
	}
	return reg
}
