package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const workoutColumns = `id, external_id, shoe_id, date, distance_km, duration_seconds, elevation_gain`

// AssignWorkout attributes an external workout to a shoe. If a workout with
// the same external ID is already stored it is re-pointed at the shoe;
// otherwise a new record is created. Either way exactly one row exists for
// the external ID afterwards.
func (db *DB) AssignWorkout(p AssignWorkoutParams, shoeID string) (*Workout, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT 1 FROM shoes WHERE id = ?", shoeID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShoeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking shoe: %w", err)
	}

	w, err := upsertWorkout(tx, p, shoeID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return w, nil
}

// RestoreShoe inserts a shoe together with its workouts. Either all rows are
// written or none are.
func (db *DB) RestoreShoe(s *Shoe, workouts []AssignWorkoutParams) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertShoe(tx, s); err != nil {
		return err
	}
	for _, p := range workouts {
		if _, err := upsertWorkout(tx, p, s.ID); err != nil {
			return fmt.Errorf("workout %s: %w", p.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func upsertWorkout(tx *sql.Tx, p AssignWorkoutParams, shoeID string) (*Workout, error) {
	var elevation sql.NullFloat64
	if p.ElevationGain != nil {
		elevation = sql.NullFloat64{Float64: *p.ElevationGain, Valid: true}
	}

	_, err := tx.Exec(`
		INSERT INTO workouts (`+workoutColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(external_id) DO UPDATE SET
			shoe_id = excluded.shoe_id,
			updated_at = CURRENT_TIMESTAMP
	`,
		uuid.NewString(), p.ExternalID, shoeID, formatTime(p.Date),
		p.DistanceKm, p.DurationSeconds, elevation,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting workout: %w", err)
	}

	row := tx.QueryRow(`SELECT `+workoutColumns+` FROM workouts WHERE external_id = ?`, p.ExternalID)
	return scanWorkout(row)
}

// GetWorkout retrieves a workout by ID
func (db *DB) GetWorkout(id string) (*Workout, error) {
	row := db.QueryRow(`SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	return scanWorkout(row)
}

// RemoveWorkout deletes a workout, freeing its external ID for re-import
func (db *DB) RemoveWorkout(id string) error {
	result, err := db.Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return requireRow(result, ErrWorkoutNotFound)
}

// ListWorkouts returns a shoe's workouts ordered by date ascending
func (db *DB) ListWorkouts(shoeID string) ([]Workout, error) {
	rows, err := db.Query(`
		SELECT `+workoutColumns+`
		FROM workouts
		WHERE shoe_id = ?
		ORDER BY date ASC
	`, shoeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// WorkoutsByShoe returns every assigned workout grouped by shoe ID
func (db *DB) WorkoutsByShoe() (map[string][]Workout, error) {
	rows, err := db.Query(`
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE shoe_id IS NOT NULL
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]Workout)
	for _, w := range workouts {
		result[w.ShoeID] = append(result[w.ShoeID], w)
	}
	return result, nil
}

// AllAssignedExternalIDs returns the set of external IDs attached to any shoe
func (db *DB) AllAssignedExternalIDs() (map[string]struct{}, error) {
	rows, err := db.Query("SELECT external_id FROM workouts WHERE shoe_id IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// CountWorkouts returns the total number of stored workouts
func (db *DB) CountWorkouts() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM workouts").Scan(&count)
	return count, err
}

func scanWorkout(row scanner) (*Workout, error) {
	var w Workout
	var shoeID sql.NullString
	var date string
	var elevation sql.NullFloat64

	err := row.Scan(&w.ID, &w.ExternalID, &shoeID, &date, &w.DistanceKm, &w.DurationSeconds, &elevation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	w.ShoeID = shoeID.String
	if w.Date, err = parseTime("date", date); err != nil {
		return nil, err
	}
	if elevation.Valid {
		e := elevation.Float64
		w.ElevationGain = &e
	}
	return &w, nil
}

func scanWorkouts(rows *sql.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}
