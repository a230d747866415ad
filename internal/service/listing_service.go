package service

import (
	"context"
	"errors"
	"fmt"

	"rentomobile/internal/catalog"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidItem     = errors.New("invalid item")
)

type ListingService struct {
	catalog  *catalog.Catalog
	profiles *ProfileService
}

func NewListingService(c *catalog.Catalog, profiles *ProfileService) *ListingService {
	return &ListingService{catalog: c, profiles: profiles}
}

func (s *ListingService) Categories() []catalog.Category {
	return catalog.Categories
}

// List filters the catalog. An empty category selects the default one.
func (s *ListingService) List(category, query string) ([]catalog.Item, catalog.Category, error) {
	cat := catalog.Category(category)
	if cat == "" {
		cat = catalog.DefaultCategory()
	}
	if !cat.Valid() {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return s.catalog.Search(cat, query), cat, nil
}

// Details opens one item. The profile must be complete first.
func (s *ListingService) Details(ctx context.Context, id string) (catalog.Item, error) {
	if _, err := s.profiles.RequireComplete(ctx); err != nil {
		return catalog.Item{}, err
	}
	return s.catalog.Get(id)
}

// Resolve returns the item a booking request refers to: the serialized item
// when present, otherwise the catalog entry for id.
func (s *ListingService) Resolve(id string, serialized []byte) (catalog.Item, error) {
	if len(serialized) > 0 && string(serialized) != "null" {
		it, err := catalog.DecodeItem(serialized)
		if err != nil {
			return catalog.Item{}, fmt.Errorf("%w: %v", ErrInvalidItem, err)
		}
		return it, nil
	}
	if id == "" {
		return catalog.Item{}, fmt.Errorf("%w: no item given", catalog.ErrItemNotFound)
	}
	return s.catalog.Get(id)
}
