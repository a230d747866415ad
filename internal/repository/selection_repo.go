package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentomobile/internal/calendar"
)

const selectionPrefix = "selection:"

type ttlSetter interface {
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SelectionRepository keeps the in-progress date range of each client session.
type SelectionRepository struct {
	store Store
	ttl   time.Duration
}

// NewSelectionRepository stores selections with the given time to live when
// the store supports expiry.
func NewSelectionRepository(store Store, ttl time.Duration) *SelectionRepository {
	return &SelectionRepository{store: store, ttl: ttl}
}

func SelectionKey(session string) string {
	return selectionPrefix + session
}

// Get returns the empty range for unknown sessions.
func (r *SelectionRepository) Get(ctx context.Context, session string) (calendar.Range, error) {
	raw, err := r.store.Get(ctx, SelectionKey(session))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return calendar.Range{}, nil
		}
		return calendar.Range{}, err
	}
	var rng calendar.Range
	if err := json.Unmarshal(raw, &rng); err != nil {
		return calendar.Range{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, SelectionKey(session), err)
	}
	if err := rng.Validate(); err != nil {
		return calendar.Range{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, SelectionKey(session), err)
	}
	return rng, nil
}

func (r *SelectionRepository) Save(ctx context.Context, session string, rng calendar.Range) error {
	if rng.IsEmpty() {
		return r.Clear(ctx, session)
	}
	raw, err := json.Marshal(rng)
	if err != nil {
		return err
	}
	if s, ok := r.store.(ttlSetter); ok && r.ttl > 0 {
		return s.SetTTL(ctx, SelectionKey(session), raw, r.ttl)
	}
	return r.store.Set(ctx, SelectionKey(session), raw)
}

func (r *SelectionRepository) Clear(ctx context.Context, session string) error {
	return r.store.Delete(ctx, SelectionKey(session))
}
