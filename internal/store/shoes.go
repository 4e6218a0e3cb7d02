package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const shoeColumns = `id, name, color, created_at, purchased_at, target_distance, archived_at`

// CreateShoe inserts a new shoe. The caller assigns ID and Created.
func (db *DB) CreateShoe(s *Shoe) error {
	return insertShoe(db, s)
}

// execer is satisfied by *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertShoe(ex execer, s *Shoe) error {
	_, err := ex.Exec(`
		INSERT INTO shoes (`+shoeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID, s.Name, nullString(s.Color), formatTime(s.Created), formatTime(s.Purchased),
		s.TargetDistance, nullTime(s.Archived),
	)
	if err != nil {
		return fmt.Errorf("inserting shoe: %w", err)
	}
	return nil
}

// UpdateShoe saves the editable fields of an existing shoe
func (db *DB) UpdateShoe(s *Shoe) error {
	result, err := db.Exec(`
		UPDATE shoes
		SET name = ?, color = ?, purchased_at = ?, target_distance = ?, archived_at = ?
		WHERE id = ?
	`,
		s.Name, nullString(s.Color), formatTime(s.Purchased), s.TargetDistance, nullTime(s.Archived),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shoe: %w", err)
	}
	return requireRow(result, ErrShoeNotFound)
}

// GetShoe retrieves a shoe by ID
func (db *DB) GetShoe(id string) (*Shoe, error) {
	row := db.QueryRow(`SELECT `+shoeColumns+` FROM shoes WHERE id = ?`, id)
	return scanShoe(row)
}

// ListShoes returns either the active or the archived shoes, newest first
func (db *DB) ListShoes(archived bool) ([]Shoe, error) {
	where := "archived_at IS NULL"
	if archived {
		where = "archived_at IS NOT NULL"
	}

	rows, err := db.Query(`
		SELECT ` + shoeColumns + `
		FROM shoes
		WHERE ` + where + `
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shoes []Shoe
	for rows.Next() {
		s, err := scanShoe(rows)
		if err != nil {
			return nil, err
		}
		shoes = append(shoes, *s)
	}
	return shoes, rows.Err()
}

// ListAllShoes returns every shoe regardless of archive state, newest first
func (db *DB) ListAllShoes() ([]Shoe, error) {
	active, err := db.ListShoes(false)
	if err != nil {
		return nil, err
	}
	archived, err := db.ListShoes(true)
	if err != nil {
		return nil, err
	}
	return append(active, archived...), nil
}

// DeleteShoe removes a shoe and every workout it owns in one transaction.
// Workouts are deleted explicitly before the owner.
func (db *DB) DeleteShoe(id string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM workouts WHERE shoe_id = ?", id); err != nil {
		return fmt.Errorf("deleting workouts: %w", err)
	}

	result, err := tx.Exec("DELETE FROM shoes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting shoe: %w", err)
	}
	if err := requireRow(result, ErrShoeNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ToggleArchive flips the archive timestamp between unset and now.
// It returns the new value (nil when the shoe was restored).
func (db *DB) ToggleArchive(id string, now time.Time) (*time.Time, error) {
	result, err := db.Exec(`
		UPDATE shoes
		SET archived_at = CASE WHEN archived_at IS NULL THEN ? ELSE NULL END
		WHERE id = ?
	`, formatTime(now), id)
	if err != nil {
		return nil, fmt.Errorf("toggling archive: %w", err)
	}
	if err := requireRow(result, ErrShoeNotFound); err != nil {
		return nil, err
	}

	s, err := db.GetShoe(id)
	if err != nil {
		return nil, err
	}
	return s.Archived, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanShoe(row scanner) (*Shoe, error) {
	var s Shoe
	var color, archived sql.NullString
	var created, purchased string

	err := row.Scan(&s.ID, &s.Name, &color, &created, &purchased, &s.TargetDistance, &archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShoeNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Color = color.String
	if s.Created, err = parseTime("created_at", created); err != nil {
		return nil, err
	}
	if s.Purchased, err = parseTime("purchased_at", purchased); err != nil {
		return nil, err
	}
	if archived.Valid {
		t, err := parseTime("archived_at", archived.String)
		if err != nil {
			return nil, err
		}
		s.Archived = &t
	}

	return &s, nil
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
