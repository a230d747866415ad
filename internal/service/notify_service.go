package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

var ErrChannelNotConfigured = errors.New("notification channel not configured")

// SendGridMailer sends e-mail through the SendGrid v3 API.
type SendGridMailer struct {
	APIKey    string
	FromEmail string
	FromName  string
	logger    *zap.Logger
}

func NewSendGridMailer(apiKey, fromEmail, fromName string, logger *zap.Logger) *SendGridMailer {
	if fromName == "" {
		fromName = "RentoMobile"
	}
	return &SendGridMailer{APIKey: apiKey, FromEmail: fromEmail, FromName: fromName, logger: logger}
}

func (m *SendGridMailer) Configured() bool {
	return m != nil && m.APIKey != "" && m.FromEmail != ""
}

func (m *SendGridMailer) SendEmail(ctx context.Context, toEmail, toName, subject, plainTextContent, htmlContent string) error {
	if !m.Configured() {
		return fmt.Errorf("sendgrid: %w", ErrChannelNotConfigured)
	}

	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(m.APIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		m.logger.Info("email sent",
			zap.String("to", toEmail),
			zap.String("subject", subject),
			zap.Int("status", response.StatusCode))
		return nil
	}
	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}

// TwilioWhatsApp relays messages through the Twilio WhatsApp sender.
type TwilioWhatsApp struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

// NewTwilioWhatsApp returns nil when credentials are missing.
func NewTwilioWhatsApp(accountSid, authToken, from string, logger *zap.Logger) *TwilioWhatsApp {
	if accountSid == "" || authToken == "" || from == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})
	return &TwilioWhatsApp{client: client, from: whatsAppAddress(from), logger: logger}
}

func (t *TwilioWhatsApp) Configured() bool {
	return t != nil && t.client != nil
}

func (t *TwilioWhatsApp) SendWhatsApp(_ context.Context, to, body string) error {
	if !t.Configured() {
		return fmt.Errorf("twilio: %w", ErrChannelNotConfigured)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsAppAddress(to))
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	if resp != nil && resp.Sid != nil {
		t.logger.Info("whatsapp message sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	}
	return nil
}

// whatsAppAddress turns a bare or E.164 number into Twilio's
// "whatsapp:+<number>" form.
func whatsAppAddress(number string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "whatsapp:")
	if !strings.HasPrefix(number, "+") {
		number = "+" + number
	}
	return "whatsapp:" + number
}
