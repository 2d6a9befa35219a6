package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/EVAnunit1307/citysync/pkg/building"
	"github.com/EVAnunit1307/citysync/pkg/geo"
	"github.com/EVAnunit1307/citysync/pkg/placement"
)

// SQLite is a Registry persisted to a local sqlite database, so a
// project's committed buildings survive server restarts.
type SQLite struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS buildings (
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	x           REAL NOT NULL,
	y           REAL NOT NULL,
	z           REAL NOT NULL,
	rotation_y  REAL NOT NULL DEFAULT 0,
	width       REAL NOT NULL,
	depth       REAL NOT NULL,
	radius      REAL NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// OpenSQLite opens (or creates) a registry database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Add commits a building.
func (s *SQLite) Add(b building.Instance) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO buildings (id, type, x, y, z, rotation_y, width, depth, radius)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Type.String(),
		b.Position.X, b.Position.Y, b.Position.Z, b.RotationY,
		b.Footprint.Width, b.Footprint.Depth, b.Footprint.Radius,
	)
	if err != nil {
		return fmt.Errorf("inserting building %s: %w", b.ID, err)
	}
	return nil
}

// Remove deletes a building by id.
func (s *SQLite) Remove(id string) error {
	if _, err := s.db.Exec(`DELETE FROM buildings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting building %s: %w", id, err)
	}
	return nil
}

// All returns every committed building ordered by id.
func (s *SQLite) All() ([]building.Instance, error) {
	rows, err := s.db.Query(`
		SELECT id, type, x, y, z, rotation_y, width, depth, radius
		FROM buildings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying buildings: %w", err)
	}
	defer rows.Close()

	var out []building.Instance
	for rows.Next() {
		var (
			b        building.Instance
			typeName string
			x, y, z  float64
		)
		if err := rows.Scan(&b.ID, &typeName, &x, &y, &z, &b.RotationY,
			&b.Footprint.Width, &b.Footprint.Depth, &b.Footprint.Radius); err != nil {
			return nil, fmt.Errorf("scanning building row: %w", err)
		}
		t, err := building.ParseType(typeName)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", b.ID, err)
		}
		b.Type = t
		b.Position = geo.Pt3(x, y, z)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Obstacles returns the collision snapshot of every committed building.
func (s *SQLite) Obstacles() ([]placement.Obstacle, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	out := make([]placement.Obstacle, len(all))
	for i, b := range all {
		out[i] = placement.ObstacleOf(b)
	}
	return out, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
