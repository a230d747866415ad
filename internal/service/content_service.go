package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"rentomobile/internal/entities"
	"rentomobile/internal/templates"
)

type ContentService struct {
	bookings *BookingService
	clock    Clock
	policy   entities.PrivacyPolicy
}

func NewContentService(bookings *BookingService, clock Clock) (*ContentService, error) {
	var policy entities.PrivacyPolicy
	if err := yaml.Unmarshal(templates.PrivacyPolicy(), &policy); err != nil {
		return nil, fmt.Errorf("parse privacy policy: %w", err)
	}
	return &ContentService{bookings: bookings, clock: clock, policy: policy}, nil
}

// Notifications lists a reminder for every upcoming booking, newest first.
func (s *ContentService) Notifications(ctx context.Context) (*entities.NotificationsResponse, error) {
	all, err := s.bookings.All(ctx)
	if err != nil {
		return nil, err
	}
	resp := &entities.NotificationsResponse{
		Title:         "Notifications",
		Subtitle:      "Stay updated with your bookings",
		Notifications: []entities.Notification{},
	}
	for i := len(all) - 1; i >= 0; i-- {
		b := all[i]
		if !b.IsUpcoming {
			continue
		}
		resp.Notifications = append(resp.Notifications, entities.Notification{
			ID:      b.ID,
			Title:   "Upcoming booking",
			Body:    fmt.Sprintf("%s is booked for %s.", b.VehicleName, b.DateRange),
			Created: b.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// PrivacyPolicy returns the policy stamped with today's date.
func (s *ContentService) PrivacyPolicy() entities.PrivacyPolicy {
	p := s.policy
	p.LastUpdated = s.clock.Today().Label()
	return p
}
