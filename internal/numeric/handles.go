package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/stat"
)

// Handle errors.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Linalg is the linear algebra handle bound to "numpy.linalg".
type Linalg struct{}

// Norm returns the Euclidean norm of v.
func (Linalg) Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return mat.Norm(mat.NewVecDense(len(v), v), 2)
}

// Det returns the determinant of a square matrix given by rows.
func (Linalg) Det(rows [][]float64) (float64, error) {
	n := len(rows)
	if n == 0 {
		return 0, ErrEmptyInput
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.Det(mat.NewDense(n, n, data)), nil
}

// Summary describes a sample.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Stats is the statistics handle bound to "scipy.stats".
type Stats struct{}

// Describe summarizes x. StdDev is the sample standard deviation and is zero
// for a single observation.
func (Stats) Describe(x []float64) (Summary, error) {
	if len(x) == 0 {
		return Summary{}, ErrEmptyInput
	}
	s := Summary{
		N:    len(x),
		Mean: stat.Mean(x, nil),
		Min:  floats.Min(x),
		Max:  floats.Max(x),
	}
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	return s, nil
}

// Distance is the handle bound to "scipy.spatial.distance".
type Distance struct{}

// Pdist returns the condensed pairwise Euclidean distances between points:
// d(0,1), d(0,2), ..., d(1,2), ...
func (Distance) Pdist(points [][]float64) ([]float64, error) {
	if err := sameDims(points); err != nil {
		return nil, err
	}
	n := len(points)
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, floats.Distance(points[i], points[j], 2))
		}
	}
	return out, nil
}

// Cdist returns the Euclidean distance from every point in a to every point
// in b, indexed [i][j].
func (Distance) Cdist(a, b [][]float64) ([][]float64, error) {
	if err := sameDims(append(append([][]float64(nil), a...), b...)); err != nil {
		return nil, err
	}
	out := make([][]float64, len(a))
	for i, p := range a {
		out[i] = make([]float64, len(b))
		for j, q := range b {
			out[i][j] = floats.Distance(p, q, 2)
		}
	}
	return out, nil
}

// KDTree answers nearest neighbour queries over a fixed point set.
type KDTree struct {
	tree *kdtree.Tree
	dims int
}

// NewKDTree builds a tree over points. The input slice is not modified.
func NewKDTree(points [][]float64) (*KDTree, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	if err := sameDims(points); err != nil {
		return nil, err
	}
	pts := make(kdtree.Points, len(points))
	for i, p := range points {
		pts[i] = append(kdtree.Point(nil), p...)
	}
	return &KDTree{tree: kdtree.New(pts, false), dims: len(points[0])}, nil
}

// Nearest returns the point closest to q and its Euclidean distance.
func (t *KDTree) Nearest(q []float64) ([]float64, float64, error) {
	if len(q) != t.dims {
		return nil, 0, fmt.Errorf("%w: query has %d dims, tree has %d", ErrDimensionMismatch, len(q), t.dims)
	}
	got, _ := t.tree.Nearest(kdtree.Point(q))
	p, ok := got.(kdtree.Point)
	if !ok {
		return nil, math.Inf(1), ErrEmptyInput
	}
	return []float64(p), floats.Distance(q, p, 2), nil
}

// KDTreeBuilder is the handle bound to "kdtree".
type KDTreeBuilder func(points [][]float64) (*KDTree, error)

func sameDims(points [][]float64) error {
	for i, p := range points {
		if len(p) != len(points[0]) {
			return fmt.Errorf("%w: point %d has %d dims, want %d", ErrDimensionMismatch, i, len(p), len(points[0]))
		}
	}
	return nil
}
