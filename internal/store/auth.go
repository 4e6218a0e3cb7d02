package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNoAuth is returned when no Strava account is connected
var ErrNoAuth = errors.New("no strava account connected")

// GetAuth returns the connected Strava account
func (db *DB) GetAuth() (*Auth, error) {
	var (
		a                    Auth
		expiresAt, connected string
		refreshed            sql.NullString
	)
	err := db.QueryRow(`
		SELECT athlete_id, access_token, refresh_token, token_expires_at, connected_at, refreshed_at
		FROM strava_account WHERE id = 1
	`).Scan(&a.AthleteID, &a.AccessToken, &a.RefreshToken, &expiresAt, &connected, &refreshed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAuth
	}
	if err != nil {
		return nil, err
	}

	if a.ExpiresAt, err = parseTime("token_expires_at", expiresAt); err != nil {
		return nil, err
	}
	if a.ConnectedAt, err = parseTime("connected_at", connected); err != nil {
		return nil, err
	}
	if refreshed.Valid {
		t, err := parseTime("refreshed_at", refreshed.String)
		if err != nil {
			return nil, err
		}
		a.RefreshedAt = &t
	}
	return &a, nil
}

// SaveAuth connects an account, replacing any previous one. Reconnecting the
// same athlete keeps the original connection time.
func (db *DB) SaveAuth(a *Auth) error {
	connected := a.ConnectedAt
	if connected.IsZero() {
		connected = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO strava_account (id, athlete_id, access_token, refresh_token, token_expires_at, connected_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			connected_at = CASE WHEN strava_account.athlete_id = excluded.athlete_id
				THEN strava_account.connected_at ELSE excluded.connected_at END,
			athlete_id = excluded.athlete_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expires_at = excluded.token_expires_at,
			refreshed_at = NULL
	`, a.AthleteID, a.AccessToken, a.RefreshToken, formatTime(a.ExpiresAt), formatTime(connected))
	return err
}

// UpdateTokens stores a refreshed token pair
func (db *DB) UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error {
	result, err := db.Exec(`
		UPDATE strava_account
		SET access_token = ?, refresh_token = ?, token_expires_at = ?, refreshed_at = ?
		WHERE id = 1
	`, accessToken, refreshToken, formatTime(expiresAt), formatTime(time.Now()))
	if err != nil {
		return err
	}
	return requireRow(result, ErrNoAuth)
}

// DeleteAuth disconnects the account. Disconnecting twice is not an error.
func (db *DB) DeleteAuth() error {
	_, err := db.Exec(`DELETE FROM strava_account WHERE id = 1`)
	return err
}
