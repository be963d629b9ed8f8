package database

import (
	"context"
)

type PreferenceRepository interface {
	// GetPreference returns nil without error when nothing is stored.
	GetPreference(ctx context.Context, visitorID, key string) (*Preference, error)
	SetPreference(ctx context.Context, visitorID, key, value string) error
	DeletePreference(ctx context.Context, visitorID, key string) error
	CountPreferences(ctx context.Context, key string) (int, error)
}
