package shapefile

import (
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		shape shp.Shape
		want  shp.ShapeType
	}{
		{&shp.Null{}, shp.NULL},
		{&shp.Point{}, shp.POINT},
		{&shp.PolyLine{}, shp.POLYLINE},
		{&shp.Polygon{}, shp.POLYGON},
		{&shp.MultiPoint{}, shp.MULTIPOINT},
		{&shp.PointZ{}, shp.POINTZ},
	}
	for _, tt := range tests {
		t.Run(TypeName(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.shape))
		})
	}
}

func TestNewShape(t *testing.T) {
	for _, st := range []shp.ShapeType{shp.NULL, shp.POINT, shp.POLYLINE, shp.POLYGON, shp.MULTIPOINT} {
		s, err := NewShape(st)
		require.NoError(t, err)
		assert.Equal(t, st, TypeOf(s))
	}

	_, err := NewShape(shp.MULTIPATCH)
	assert.ErrorIs(t, err, ErrUnsupportedShape)
	assert.Equal(t, "type(99)", TypeName(shp.ShapeType(99)))
}

func TestCoordinates(t *testing.T) {
	assert.Equal(t, [][]float64{{1, 2}}, Coordinates(&shp.Point{X: 1, Y: 2}))

	line := shp.NewPolyLine([][]shp.Point{{{X: 0, Y: 0}, {X: 3, Y: 4}}})
	assert.Equal(t, [][]float64{{0, 0}, {3, 4}}, Coordinates(line))

	assert.Empty(t, Coordinates(&shp.Null{}))
}
