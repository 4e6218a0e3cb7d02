package service

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"shoetracker/internal/store"
)

// BackupVersion is the current backup document format
const BackupVersion = 1

// Backup is a portable copy of every shoe and its workouts
type Backup struct {
	Version    int          `yaml:"version"`
	ExportedAt time.Time    `yaml:"exported_at"`
	Shoes      []ShoeBackup `yaml:"shoes"`
}

// ShoeBackup is one shoe with the workouts it owns
type ShoeBackup struct {
	store.Shoe `yaml:",inline"`
	Workouts   []store.Workout `yaml:"workouts,omitempty"`
}

// RestoreResult summarizes a restore
type RestoreResult struct {
	ShoesCreated int
	ShoesSkipped int // already present
	Workouts     int
}

// Export writes every shoe, active and retired, with its workouts as YAML
func (s *ShoeService) Export(w io.Writer) error {
	shoes, err := s.repo.ListAllShoes()
	if err != nil {
		return err
	}
	byShoe, err := s.repo.WorkoutsByShoe()
	if err != nil {
		return err
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: s.now().UTC(),
		Shoes:      make([]ShoeBackup, len(shoes)),
	}
	for i, shoe := range shoes {
		backup.Shoes[i] = ShoeBackup{Shoe: shoe, Workouts: byShoe[shoe.ID]}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&backup); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	s.logger.Info("exported backup", zap.Int("shoes", len(shoes)))
	return nil
}

// ReadBackup decodes a YAML backup document
func ReadBackup(r io.Reader) (*Backup, error) {
	var backup Backup
	if err := yaml.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version %d", backup.Version)
	}
	return &backup, nil
}

// Restore recreates shoes from a backup. Each shoe is written together with
// its workouts, so a failed restore can be retried. Shoes that already exist
// are left untouched; workouts are assigned idempotently by external ID.
func (s *ShoeService) Restore(backup *Backup) (*RestoreResult, error) {
	result := &RestoreResult{}

	for _, sb := range backup.Shoes {
		shoe := sb.Shoe

		_, err := s.repo.GetShoe(shoe.ID)
		switch {
		case err == nil:
			result.ShoesSkipped++
			continue
		case !errors.Is(err, store.ErrShoeNotFound):
			return result, err
		}

		if err := ValidateShoeInput(&ShoeInput{
			Name:           shoe.Name,
			Color:          shoe.Color,
			Purchased:      shoe.Purchased,
			TargetDistance: shoe.TargetDistance,
		}); err != nil {
			return result, fmt.Errorf("shoe %s: %w", shoe.ID, err)
		}

		workouts := make([]store.AssignWorkoutParams, len(sb.Workouts))
		for i, w := range sb.Workouts {
			workouts[i] = store.AssignWorkoutParams{
				ExternalID:      w.ExternalID,
				Date:            w.Date,
				DistanceKm:      w.DistanceKm,
				DurationSeconds: w.DurationSeconds,
				ElevationGain:   w.ElevationGain,
			}
		}
		if err := s.repo.RestoreShoe(&shoe, workouts); err != nil {
			return result, fmt.Errorf("restoring shoe %s: %w", shoe.ID, err)
		}
		result.ShoesCreated++
		result.Workouts += len(workouts)
	}

	s.logger.Info("restored backup",
		zap.Int("shoes_created", result.ShoesCreated),
		zap.Int("shoes_skipped", result.ShoesSkipped),
		zap.Int("workouts", result.Workouts),
	)
	return result, nil
}
