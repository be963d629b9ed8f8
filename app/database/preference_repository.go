package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var _ PreferenceRepository = (*PreferenceRepo)(nil)

type PreferenceRepo struct {
	db *DB
}

func NewPreferenceRepository(db *DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

func (r *PreferenceRepo) GetPreference(ctx context.Context, visitorID, key string) (*Preference, error) {
	var pref Preference
	var updatedAt int64

	err := r.db.QueryRowContext(ctx, `
		SELECT visitor_id, key, value, updated_at
		FROM preferences
		WHERE visitor_id = ? AND key = ?
	`, visitorID, key).Scan(&pref.VisitorID, &pref.Key, &pref.Value, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}

	pref.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &pref, nil
}

func (r *PreferenceRepo) SetPreference(ctx context.Context, visitorID, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, visitorID, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}

	return nil
}

func (r *PreferenceRepo) DeletePreference(ctx context.Context, visitorID, key string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM preferences WHERE visitor_id = ? AND key = ?
	`, visitorID, key)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	return nil
}

func (r *PreferenceRepo) CountPreferences(ctx context.Context, key string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM preferences WHERE key = ?
	`, key).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count preferences: %w", err)
	}

	return count, nil
}
