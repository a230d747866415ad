package templates

import (
	"embed"
	"html/template"
)

//go:embed booking_email.html privacy_policy.yaml
var files embed.FS

// BookingEmail renders the e-mail sent to the business for a new booking.
var BookingEmail = template.Must(template.ParseFS(files, "booking_email.html"))

// PrivacyPolicy returns the raw policy document.
func PrivacyPolicy() []byte {
	b, err := files.ReadFile("privacy_policy.yaml")
	if err != nil {
		panic(err)
	}
	return b
}
