package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"rentomobile/internal/db"
)

const ProfileKey = "userProfile"

type ProfileRepository struct {
	store Store
}

func NewProfileRepository(store Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// Get returns ErrNotFound until a profile has been saved.
func (r *ProfileRepository) Get(ctx context.Context) (*db.UserProfile, error) {
	raw, err := r.store.Get(ctx, ProfileKey)
	if err != nil {
		return nil, err
	}
	var p db.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, ProfileKey, err)
	}
	return &p, nil
}

// Save overwrites the stored profile.
func (r *ProfileRepository) Save(ctx context.Context, p db.UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, ProfileKey, raw); err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}
	return nil
}
