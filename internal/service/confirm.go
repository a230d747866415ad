package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"rentomobile/internal/db"
	"rentomobile/internal/entities"
)

const DefaultWhatsAppPhone = "94767806639"

// ConfirmationMessage is the text sent to the business for a booking.
func ConfirmationMessage(b db.Booking) string {
	var sb strings.Builder
	sb.WriteString("Hello! I would like to confirm my booking:\n\n")
	fmt.Fprintf(&sb, "🚗 *Vehicle:* %s\n", b.VehicleName)
	fmt.Fprintf(&sb, "📅 *Date Range:* %s\n", b.DateRange)
	fmt.Fprintf(&sb, "💰 *Price:* $%s/day\n", formatPrice(b.Price))
	fmt.Fprintf(&sb, "📱 *Booking ID:* %s\n\n", b.ID)
	sb.WriteString("Please confirm this booking and provide any additional information needed.\n\n")
	sb.WriteString("Thank you!")
	return sb.String()
}

// NewConfirmation builds the WhatsApp deep link and its web fallback.
func NewConfirmation(phone string, b db.Booking) entities.Confirmation {
	if phone == "" {
		phone = DefaultWhatsAppPhone
	}
	phone = strings.TrimPrefix(phone, "+")
	msg := ConfirmationMessage(b)
	text := escapeComponent(msg)
	return entities.Confirmation{
		Message: msg,
		AppURL:  "whatsapp://send?phone=" + phone + "&text=" + text,
		WebURL:  "https://wa.me/" + phone + "?text=" + text,
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// escapeComponent percent-encodes s for a query value, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
