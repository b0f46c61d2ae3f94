package shapefile

import (
	"errors"
	"fmt"

	"github.com/jonas-p/go-shp"
)

// ErrUnsupportedShape is returned for shape types the package cannot build.
var ErrUnsupportedShape = errors.New("unsupported shape type")

var typeNames = map[shp.ShapeType]string{
	shp.NULL:        "null",
	shp.POINT:       "point",
	shp.POLYLINE:    "polyline",
	shp.POLYGON:     "polygon",
	shp.MULTIPOINT:  "multipoint",
	shp.POINTZ:      "pointz",
	shp.POLYLINEZ:   "polylinez",
	shp.POLYGONZ:    "polygonz",
	shp.MULTIPOINTZ: "multipointz",
	shp.POINTM:      "pointm",
	shp.POLYLINEM:   "polylinem",
	shp.POLYGONM:    "polygonm",
	shp.MULTIPOINTM: "multipointm",
	shp.MULTIPATCH:  "multipatch",
}

// TypeOf returns the shapefile type code of a record.
func TypeOf(shape shp.Shape) shp.ShapeType {
	switch shape.(type) {
	case *shp.Point:
		return shp.POINT
	case *shp.PolyLine:
		return shp.POLYLINE
	case *shp.Polygon:
		return shp.POLYGON
	case *shp.MultiPoint:
		return shp.MULTIPOINT
	case *shp.PointZ:
		return shp.POINTZ
	case *shp.PolyLineZ:
		return shp.POLYLINEZ
	case *shp.PolygonZ:
		return shp.POLYGONZ
	case *shp.MultiPointZ:
		return shp.MULTIPOINTZ
	case *shp.PointM:
		return shp.POINTM
	case *shp.PolyLineM:
		return shp.POLYLINEM
	case *shp.PolygonM:
		return shp.POLYGONM
	case *shp.MultiPointM:
		return shp.MULTIPOINTM
	case *shp.MultiPatch:
		return shp.MULTIPATCH
	default:
		return shp.NULL
	}
}

// TypeName returns a lower-case name for a type code.
func TypeName(t shp.ShapeType) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", t)
}

// NewShape returns an empty record of the given 2D type, ready to be
// decoded into.
func NewShape(t shp.ShapeType) (shp.Shape, error) {
	switch t {
	case shp.NULL:
		return &shp.Null{}, nil
	case shp.POINT:
		return &shp.Point{}, nil
	case shp.POLYLINE:
		return &shp.PolyLine{}, nil
	case shp.POLYGON:
		return &shp.Polygon{}, nil
	case shp.MULTIPOINT:
		return &shp.MultiPoint{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedShape, TypeName(t))
	}
}

// Coordinates returns the vertices of a 2D record as [x, y] pairs.
func Coordinates(shape shp.Shape) [][]float64 {
	var pts []shp.Point
	switch s := shape.(type) {
	case *shp.Point:
		pts = []shp.Point{*s}
	case *shp.PolyLine:
		pts = s.Points
	case *shp.Polygon:
		pts = s.Points
	case *shp.MultiPoint:
		pts = s.Points
	}
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
