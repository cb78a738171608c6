package playback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLStore is a SQLite-backed Store using the resume_positions table.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a store on db. The schema comes from migrations.InitialSQL.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get retrieves the position for seriesID.
func (s *SQLStore) Get(ctx context.Context, seriesID string) (Position, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM resume_positions WHERE series_id = ?", seriesID,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("resume get: %w", err)
	}

	pos, ok := decodePosition(seriesID, []byte(value))
	return pos, ok, nil
}

// Set stores pos, replacing any earlier position of the series.
func (s *SQLStore) Set(ctx context.Context, pos Position) error {
	value, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("resume encode: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resume_positions (series_id, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(series_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		pos.SeriesID, string(value),
	)
	if err != nil {
		return fmt.Errorf("resume set: %w", err)
	}
	return nil
}

// Delete removes the position of seriesID.
func (s *SQLStore) Delete(ctx context.Context, seriesID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM resume_positions WHERE series_id = ?", seriesID)
	if err != nil {
		return fmt.Errorf("resume delete: %w", err)
	}
	return nil
}
