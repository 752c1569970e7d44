// Package store persists layouts and the history of queries run against
// them in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gitrdm/minotaur/pkg/labyrinth"

	_ "modernc.org/sqlite"
)

// ErrLayoutNotFound is returned when no layout has the requested name.
var ErrLayoutNotFound = errors.New("layout not found")

// Store is a handle on the database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// Foreign keys are enabled per connection, and a single connection also
	// serialises the writes of concurrent sweeps.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveLayout stores l under its name, replacing any layout of that name.
func (s *Store) SaveLayout(ctx context.Context, l *labyrinth.Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, l.Name); err != nil {
		return fmt.Errorf("replace layout %q: %w", l.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO layouts (name, width, height, updated_at) VALUES (?, ?, ?, ?)`,
		l.Name, l.Width, l.Height, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert layout %q: %w", l.Name, err)
	}
	for i, d := range l.Doors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO doors (layout, ordinal, from_x, from_y, to_x, to_y) VALUES (?, ?, ?, ?, ?, ?)`,
			l.Name, i, d.From.X, d.From.Y, d.To.X, d.To.Y); err != nil {
			return fmt.Errorf("insert door %s: %w", d, err)
		}
	}
	for _, role := range labyrinth.Roles {
		for i, r := range l.RoomsFor(role) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO roles (layout, role, ordinal, x, y) VALUES (?, ?, ?, ?, ?)`,
				l.Name, string(role), i, r.X, r.Y); err != nil {
				return fmt.Errorf("insert %s %s: %w", role, r, err)
			}
		}
	}
	return tx.Commit()
}

// LoadLayout reads the layout called name.
func (s *Store) LoadLayout(ctx context.Context, name string) (*labyrinth.Layout, error) {
	l := &labyrinth.Layout{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT width, height FROM layouts WHERE name = ?`, name).Scan(&l.Width, &l.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}

	if l.Doors, err = s.loadDoors(ctx, name); err != nil {
		return nil, err
	}
	if err := s.loadRoles(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) loadDoors(ctx context.Context, name string) ([]labyrinth.Door, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_x, from_y, to_x, to_y FROM doors WHERE layout = ? ORDER BY ordinal`, name)
	if err != nil {
		return nil, fmt.Errorf("load doors of %q: %w", name, err)
	}
	defer rows.Close()
	var doors []labyrinth.Door
	for rows.Next() {
		var d labyrinth.Door
		if err := rows.Scan(&d.From.X, &d.From.Y, &d.To.X, &d.To.Y); err != nil {
			return nil, fmt.Errorf("scan door: %w", err)
		}
		doors = append(doors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load doors of %q: %w", name, err)
	}
	return doors, nil
}

func (s *Store) loadRoles(ctx context.Context, l *labyrinth.Layout) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, x, y FROM roles WHERE layout = ? ORDER BY role, ordinal`, l.Name)
	if err != nil {
		return fmt.Errorf("load roles of %q: %w", l.Name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var r labyrinth.Room
		if err := rows.Scan(&role, &r.X, &r.Y); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		switch labyrinth.Role(role) {
		case labyrinth.RoleEntrance:
			l.Entrances = append(l.Entrances, r)
		case labyrinth.RoleExit:
			l.Exits = append(l.Exits, r)
		case labyrinth.RoleHazard:
			l.Hazards = append(l.Hazards, r)
		default:
			return fmt.Errorf("layout %q: unknown role %q", l.Name, role)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load roles of %q: %w", l.Name, err)
	}
	return nil
}

// ListLayouts returns the stored layout names in order.
func (s *Store) ListLayouts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM layouts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan layout name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
