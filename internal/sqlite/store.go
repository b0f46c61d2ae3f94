package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonas-p/go-shp"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/geocap/internal/shapefile"
	"github.com/mesh-intelligence/geocap/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "series.db"

// Store errors.
var (
	ErrStoreClosed     = errors.New("series store is closed")
	ErrSeriesNotFound  = errors.New("series not found")
	ErrNameEmpty       = errors.New("series name must not be empty")
	ErrMalformedRecord = errors.New("malformed record")
)

// Store keeps geometry series in a SQLite database.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB
	dataDir string
}

// Open creates dataDir if needed, opens the database in it, and applies the
// schema. Existing series are kept.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, err
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Store{db: db, dataDir: dataDir}, nil
}

// DataDir returns the directory holding the database.
func (s *Store) DataDir() string { return s.dataDir }

// Close releases the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Save stores series under name, replacing any series with that name.
func (s *Store) Save(name string, series shapefile.Series) error {
	if name == "" {
		return ErrNameEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteSeries(tx, name); err != nil {
		return err
	}

	shapeType := shp.NULL
	if first, err := series.At(0); err == nil {
		shapeType = shapefile.TypeOf(first)
	}
	if _, err := tx.Exec(
		`INSERT INTO series (name, shape_type, record_count, created_at) VALUES (?, ?, ?, ?)`,
		name, int64(shapeType), series.Len(), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert series %s: %w", name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records (record_id, series_name, position, shape_type, geometry) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, shape := range series.All() {
		t, data, err := encodeShape(shape)
		if err != nil {
			return fmt.Errorf("record %d: %w", pos, err)
		}
		if _, err := stmt.Exec(generateUUID(), name, pos, int64(t), string(data)); err != nil {
			return fmt.Errorf("insert record %d: %w", pos, err)
		}
	}

	return tx.Commit()
}

// Load returns the series stored under name in position order.
func (s *Store) Load(name string) (shapefile.Series, error) {
	rows, err := s.rows(name)
	if err != nil {
		return shapefile.Series{}, err
	}
	shapes := make([]shp.Shape, len(rows))
	for i, r := range rows {
		shapes[i] = r.shape
	}
	return types.NewSeries(shapes...), nil
}

// Names lists stored series in name order.
func (s *Store) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT name FROM series ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a series. Returns ErrSeriesNotFound if it does not exist.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM series WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}
	if err := deleteSeries(tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

// ExportJSONL writes the series to path, one record per line, atomically.
func (s *Store) ExportJSONL(name, path string) error {
	rows, err := s.rows(name)
	if err != nil {
		return err
	}
	lines := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		line, err := json.Marshal(recordJSON{
			RecordID:  r.id,
			Series:    name,
			Position:  r.position,
			ShapeType: shapefile.TypeName(r.shapeType),
			TypeCode:  r.shapeType,
			Geometry:  r.geometry,
		})
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", r.position, err)
		}
		lines = append(lines, line)
	}
	return writeJSONL(path, lines)
}

// ImportJSONL reads a file written by ExportJSONL and saves it under name.
// Records are ordered by their position field.
func (s *Store) ImportJSONL(name, path string) error {
	lines, err := readJSONL(path)
	if err != nil {
		return err
	}
	recs := make([]recordJSON, len(lines))
	for i, line := range lines {
		if err := json.Unmarshal(line, &recs[i]); err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, i+1, err)
		}
	}
	slices.SortStableFunc(recs, func(a, b recordJSON) int { return a.Position - b.Position })

	shapes := make([]shp.Shape, len(recs))
	for i, rec := range recs {
		shape, err := decodeShape(rec.TypeCode, rec.Geometry)
		if err != nil {
			return fmt.Errorf("%w: position %d: %w", ErrMalformedRecord, rec.Position, err)
		}
		shapes[i] = shape
	}
	return s.Save(name, types.NewSeries(shapes...))
}

type storedRecord struct {
	id        string
	position  int
	shapeType shp.ShapeType
	geometry  json.RawMessage
	shape     shp.Shape
}

func (s *Store) rows(name string) ([]storedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrStoreClosed
	}

	var count int
	err := s.db.QueryRow(`SELECT record_count FROM series WHERE name = ?`, name).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT record_id, position, shape_type, geometry FROM records WHERE series_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]storedRecord, 0, count)
	for rows.Next() {
		var (
			r        storedRecord
			typeCode int64
			geometry string
		)
		if err := rows.Scan(&r.id, &r.position, &typeCode, &geometry); err != nil {
			return nil, err
		}
		r.shapeType = shp.ShapeType(typeCode)
		r.geometry = json.RawMessage(geometry)
		if r.shape, err = decodeShape(r.shapeType, r.geometry); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.id, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func deleteSeries(tx *sql.Tx, name string) error {
	if _, err := tx.Exec(`DELETE FROM records WHERE series_name = ?`, name); err != nil {
		return fmt.Errorf("delete records of %s: %w", name, err)
	}
	if _, err := tx.Exec(`DELETE FROM series WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete series %s: %w", name, err)
	}
	return nil
}

// generateUUID generates a new UUID v7 for record IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
