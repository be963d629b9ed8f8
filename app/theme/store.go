package theme

import (
	"context"

	"github.com/vvilaysack/portfolio/app/database"
)

var _ Store = (*PreferenceStore)(nil)

// PreferenceStore adapts the preference repository to Store.
type PreferenceStore struct {
	repo database.PreferenceRepository
}

func NewPreferenceStore(repo database.PreferenceRepository) *PreferenceStore {
	return &PreferenceStore{repo: repo}
}

func (s *PreferenceStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	pref, err := s.repo.GetPreference(ctx, visitorID, key)
	if err != nil {
		return "", false, err
	}
	if pref == nil {
		return "", false, nil
	}
	return pref.Value, true, nil
}

func (s *PreferenceStore) Set(ctx context.Context, visitorID, key, value string) error {
	return s.repo.SetPreference(ctx, visitorID, key, value)
}
