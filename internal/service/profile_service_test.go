package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentomobile/internal/catalog"
	"rentomobile/internal/db"
	"rentomobile/internal/repository"
)

func TestProfileDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(2024, time.May, 1))

	p, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, db.DefaultProfile(), p)
	assert.Equal(t, "Cash Payment", p.PaymentMethod)

	require.NoError(t, env.store.Set(ctx, repository.ProfileKey, []byte("nope")))
	p, err = env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, db.DefaultProfile(), p)
}

func TestProfileSave(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(2024, time.May, 1))

	saved, err := env.profiles.Save(ctx, db.UserProfile{
		Name:          "  Nimal Perera ",
		Email:         "nimal@example.com",
		Phone:         "+94 77 123 4567",
		PaymentMethod: "Credit Card",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", saved.Name)
	assert.Equal(t, "Cash Payment", saved.PaymentMethod, "payment method is display-only")
	assert.Equal(t, "May 2024", saved.MemberSince)
	assert.Equal(t, db.DefaultAvatar, saved.Avatar)

	env.now = at(2025, time.January, 1)
	again, err := env.profiles.Save(ctx, db.UserProfile{Name: "Nimal", Email: "n@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "May 2024", again.MemberSince)

	got, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, again, got)
}

func TestProfileSaveRequiresNameAndEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(2024, time.May, 1))

	for _, p := range []db.UserProfile{
		{Name: "", Email: "a@example.com"},
		{Name: "A", Email: "   "},
		{},
	} {
		_, err := env.profiles.Save(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	}

	p, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.False(t, p.Complete())
}

func TestListingDetailsRequiresProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, at(2024, time.May, 1))

	_, err := env.listings.Details(ctx, "1")
	assert.ErrorIs(t, err, ErrProfileRequired)

	_, err = env.profiles.Save(ctx, db.UserProfile{Name: "Nimal", Email: "nimal@example.com"})
	require.NoError(t, err)

	item, err := env.listings.Details(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Toyota Camry", item.Name)

	_, err = env.listings.Details(ctx, "999")
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestListingList(t *testing.T) {
	env := newTestEnv(t, at(2024, time.May, 1))

	items, cat, err := env.listings.List("", "")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultCategory(), cat)
	assert.NotEmpty(t, items)
	for _, it := range items {
		assert.Equal(t, catalog.DefaultCategory(), it.Category)
	}

	items, _, err = env.listings.List("Bike Rental", "BIKE")
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	for _, it := range items {
		assert.Contains(t, it.Name, "Bike")
	}

	_, _, err = env.listings.List("Boats", "")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestListingResolve(t *testing.T) {
	env := newTestEnv(t, at(2024, time.May, 1))

	item, err := env.listings.Resolve("7", nil)
	require.NoError(t, err)
	assert.Equal(t, "Mountain Bike", item.Name)

	item, err = env.listings.Resolve("", []byte(`{"id":"x1","name":"Beach Buggy","category":"Tour Equipment","price":"$30/day","image":"https://img.example/b.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "Beach Buggy", item.Name)
	assert.Equal(t, 30.0, item.PriceValue)

	_, err = env.listings.Resolve("", []byte(`{"id":"x1","name":"Boat","category":"Boats"}`))
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = env.listings.Resolve("", []byte(`{not json`))
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = env.listings.Resolve("", nil)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)

	_, err = env.listings.Resolve("999", []byte("null"))
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}
