// Package shapefile converts between shapefiles and in-memory geometry
// series. The file format itself belongs to the Opener collaborator; the
// default one wraps github.com/jonas-p/go-shp.
package shapefile

import (
	"github.com/jonas-p/go-shp"

	"github.com/mesh-intelligence/geocap/pkg/types"
)

// Series is an ordered sequence of geometry records.
type Series = types.Series[shp.Shape]

// Reader yields geometry records in file order.
type Reader interface {
	Next() bool
	Shape() (int, shp.Shape)
	Err() error
	Close() error
}

// Writer appends geometry records to a file.
type Writer interface {
	Write(shape shp.Shape) error
	Close() error
}

// Opener is the geometry-file collaborator: it opens files for reading and
// creates them for writing.
type Opener interface {
	Open(path string) (Reader, error)
	Create(path string, shapeType shp.ShapeType) (Writer, error)
}

// Adapter moves series in and out of files through an Opener.
type Adapter struct {
	opener Opener
}

// NewAdapter returns an Adapter bound to opener.
func NewAdapter(opener Opener) *Adapter {
	return &Adapter{opener: opener}
}

// FileToSeries reads every record of the file at path into a series,
// preserving file order. Collaborator errors are returned unchanged.
func (a *Adapter) FileToSeries(path string) (series Series, err error) {
	r, err := a.opener.Open(path)
	if err != nil {
		return Series{}, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			series, err = Series{}, cerr
		}
	}()

	var shapes []shp.Shape
	for r.Next() {
		_, shape := r.Shape()
		shapes = append(shapes, shape)
	}
	if err := r.Err(); err != nil {
		return Series{}, err
	}
	return types.NewSeries(shapes...), nil
}

// SeriesToFile writes every record of series to a new file at path, in
// order. The file's shape type is taken from the first record; an empty
// series produces an empty file of the null type. On failure the file may
// be incomplete.
func (a *Adapter) SeriesToFile(series Series, path string) (err error) {
	shapeType := shp.NULL
	if first, ferr := series.At(0); ferr == nil {
		shapeType = TypeOf(first)
	}

	w, err := a.opener.Create(path, shapeType)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, shape := range series.All() {
		if err := w.Write(shape); err != nil {
			return err
		}
	}
	return nil
}

var defaultAdapter = NewAdapter(GoShpOpener{})

// FileToSeries reads a shapefile into a series using the go-shp opener.
func FileToSeries(path string) (Series, error) {
	return defaultAdapter.FileToSeries(path)
}

// SeriesToFile writes a series to a shapefile using the go-shp opener.
func SeriesToFile(series Series, path string) error {
	return defaultAdapter.SeriesToFile(series, path)
}
