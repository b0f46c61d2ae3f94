package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/jonas-p/go-shp"

	"github.com/mesh-intelligence/geocap/internal/shapefile"
)

// recordJSON is one line of an exported series.
type recordJSON struct {
	RecordID  string          `json:"record_id"`
	Series    string          `json:"series"`
	Position  int             `json:"position"`
	ShapeType string          `json:"shape_type"`
	TypeCode  shp.ShapeType   `json:"type_code"`
	Geometry  json.RawMessage `json:"geometry"`
}

// encodeShape serializes a record for the geometry column.
func encodeShape(shape shp.Shape) (shp.ShapeType, []byte, error) {
	t := shapefile.TypeOf(shape)
	if _, err := shapefile.NewShape(t); err != nil {
		return 0, nil, err
	}
	data, err := json.Marshal(shape)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal %s: %w", shapefile.TypeName(t), err)
	}
	return t, data, nil
}

// decodeShape rebuilds a record from its type code and geometry column.
func decodeShape(t shp.ShapeType, data []byte) (shp.Shape, error) {
	shape, err := shapefile.NewShape(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, shape); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", shapefile.TypeName(t), err)
	}
	return shape, nil
}
