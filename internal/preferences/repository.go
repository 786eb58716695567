package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository stores preferences per user.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save validates and stores p under p.ID, replacing earlier preferences.
func (r *Repository) Save(ctx context.Context, p UserPreferences) error {
	if p.ID == "" {
		return fmt.Errorf("preferences need a user id")
	}
	if err := Validate(p); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.ID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences for %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the preferences of a user, or nil when none are stored.
func (r *Repository) Get(ctx context.Context, userID string) (*UserPreferences, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM user_preferences WHERE user_id = ?`, userID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var p UserPreferences
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return &p, nil
}
