package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rentomobile/internal/db"
	"rentomobile/internal/repository"
)

var (
	ErrInvalidProfile  = errors.New("name and email are required")
	ErrProfileRequired = errors.New("please complete your profile (name and email) before viewing details")
)

type ProfileService struct {
	repo   *repository.ProfileRepository
	clock  Clock
	logger *zap.Logger
}

func NewProfileService(repo *repository.ProfileRepository, clock Clock, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, clock: clock, logger: logger}
}

// Get returns the saved profile, or the default one when nothing usable
// is stored.
func (s *ProfileService) Get(ctx context.Context) (db.UserProfile, error) {
	p, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		return *p, nil
	case errors.Is(err, repository.ErrNotFound):
		return db.DefaultProfile(), nil
	case errors.Is(err, repository.ErrCorrupt):
		s.logger.Warn("stored profile is unreadable, using default", zap.Error(err))
		return db.DefaultProfile(), nil
	default:
		return db.UserProfile{}, fmt.Errorf("error loading profile: %w", err)
	}
}

// Save validates and overwrites the profile. The payment method is
// display-only and always kept from the stored profile.
func (s *ProfileService) Save(ctx context.Context, in db.UserProfile) (db.UserProfile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Email == "" {
		return db.UserProfile{}, ErrInvalidProfile
	}

	current, err := s.Get(ctx)
	if err != nil {
		return db.UserProfile{}, err
	}
	in.PaymentMethod = current.PaymentMethod
	if in.PaymentMethod == "" {
		in.PaymentMethod = db.DefaultPaymentMethod
	}
	if in.MemberSince == "" {
		in.MemberSince = current.MemberSince
	}
	if in.MemberSince == "" {
		in.MemberSince = s.clock.Today().Time().Format("January 2006")
	}
	if in.Avatar == "" {
		in.Avatar = current.Avatar
	}

	if err := s.repo.Save(ctx, in); err != nil {
		return db.UserProfile{}, err
	}
	s.logger.Info("profile saved", zap.String("email", in.Email))
	return in, nil
}

// RequireComplete fails with ErrProfileRequired unless name and email are set.
func (s *ProfileService) RequireComplete(ctx context.Context) (db.UserProfile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return db.UserProfile{}, err
	}
	if !p.Complete() {
		return p, ErrProfileRequired
	}
	return p, nil
}
