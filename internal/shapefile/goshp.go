package shapefile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
)

// ErrFormat is returned when a record cannot be written in the file's
// format.
var ErrFormat = errors.New("shapefile format error")

// GoShpOpener is the Opener backed by github.com/jonas-p/go-shp.
//
// go-shp drops I/O errors from Writer.Write and Writer.Close, so a failed
// disk write after Create succeeds is not reported by the returned Writer.
// Open and Create errors, and the type checks done here, do propagate.
type GoShpOpener struct{}

// Open opens the .shp file at path for reading.
func (GoShpOpener) Open(path string) (Reader, error) {
	if err := checkExt(path); err != nil {
		return nil, err
	}
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create creates the .shp and .shx files for path. Every record written
// must have shapeType.
func (GoShpOpener) Create(path string, shapeType shp.ShapeType) (Writer, error) {
	if err := checkExt(path); err != nil {
		return nil, err
	}
	w, err := shp.Create(path, shapeType)
	if err != nil {
		return nil, err
	}
	return &goShpWriter{w: w, shapeType: shapeType}, nil
}

type goShpWriter struct {
	w         *shp.Writer
	shapeType shp.ShapeType
}

func (g *goShpWriter) Write(shape shp.Shape) error {
	if shape == nil {
		return fmt.Errorf("%w: nil record", ErrFormat)
	}
	if got := TypeOf(shape); got != g.shapeType {
		return fmt.Errorf("%w: record of type %s in %s file", ErrFormat, TypeName(got), TypeName(g.shapeType))
	}
	g.w.Write(shape)
	return nil
}

func (g *goShpWriter) Close() error {
	g.w.Close()
	return nil
}

// checkExt rejects paths go-shp cannot derive sibling file names from.
func checkExt(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".shp") {
		return fmt.Errorf("%w: %s: expected .shp extension", ErrFormat, path)
	}
	return nil
}
