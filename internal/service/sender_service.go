package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rentomobile/internal/db"
	"rentomobile/internal/entities"
	"rentomobile/internal/metrics"
	"rentomobile/internal/templates"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

type WhatsAppMessenger interface {
	Configured() bool
	SendWhatsApp(ctx context.Context, to, body string) error
}

type Mailer interface {
	Configured() bool
	SendEmail(ctx context.Context, toEmail, toName, subject, plainTextContent, htmlContent string) error
}

// SenderService relays booking confirmations to the rental business:
// WhatsApp first, e-mail when WhatsApp is unavailable or fails.
type SenderService struct {
	whatsApp      WhatsAppMessenger
	mailer        Mailer
	businessPhone string
	businessEmail string
	clock         Clock
	logger        *zap.Logger
}

func NewSenderService(whatsApp WhatsAppMessenger, mailer Mailer, businessPhone, businessEmail string, clock Clock, logger *zap.Logger) *SenderService {
	if businessPhone == "" {
		businessPhone = DefaultWhatsAppPhone
	}
	return &SenderService{
		whatsApp:      whatsApp,
		mailer:        mailer,
		businessPhone: businessPhone,
		businessEmail: businessEmail,
		clock:         clock,
		logger:        logger,
	}
}

// SendBookingConfirmation returns the channel that delivered the message,
// or "" with a nil error when no relay is configured.
func (s *SenderService) SendBookingConfirmation(ctx context.Context, b db.Booking, profile db.UserProfile) (string, error) {
	message := ConfirmationMessage(b)
	var errs []error

	if s.whatsApp != nil && s.whatsApp.Configured() {
		err := s.whatsApp.SendWhatsApp(ctx, s.businessPhone, message)
		if err == nil {
			metrics.IncHandoff(ChannelWhatsApp, "sent")
			return ChannelWhatsApp, nil
		}
		metrics.IncHandoff(ChannelWhatsApp, "failed")
		s.logger.Warn("whatsapp relay failed, falling back to email",
			zap.String("booking_id", b.ID), zap.Error(err))
		errs = append(errs, err)
	}

	if s.mailer != nil && s.mailer.Configured() && s.businessEmail != "" {
		err := s.sendEmail(ctx, b, profile, message)
		if err == nil {
			metrics.IncHandoff(ChannelEmail, "sent")
			return ChannelEmail, nil
		}
		metrics.IncHandoff(ChannelEmail, "failed")
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return "", nil
	}
	return "", fmt.Errorf("confirmation relay for booking %s: %w", b.ID, errors.Join(errs...))
}

func (s *SenderService) sendEmail(ctx context.Context, b db.Booking, profile db.UserProfile, plainText string) error {
	data := entities.BookingEmailData{
		BookingID:     b.ID,
		VehicleName:   b.VehicleName,
		VehicleType:   b.VehicleType,
		DateRange:     b.DateRange,
		Price:         formatPrice(b.Price),
		CustomerName:  profile.Name,
		CustomerEmail: profile.Email,
		CustomerPhone: profile.Phone,
		CurrentYear:   s.clock.Today().Year,
	}

	var html bytes.Buffer
	if err := templates.BookingEmail.Execute(&html, data); err != nil {
		s.logger.Error("render booking email", zap.String("booking_id", b.ID), zap.Error(err))
		html.Reset()
	}

	subject := fmt.Sprintf("New RentoMobile booking %s - %s", b.ID, b.VehicleName)
	return s.mailer.SendEmail(ctx, s.businessEmail, "RentoMobile", subject, plainText, html.String())
}
