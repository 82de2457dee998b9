package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ekolek/ekolek/internal/pkg/models"
)

var (
	// Philippine mobile numbers: 09XXXXXXXXX or +639XXXXXXXXX
	phMobilePattern = regexp.MustCompile(`^9\d{9}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateMobile validates a Philippine mobile number and returns it in
// canonical +639XXXXXXXXX form.
func ValidateMobile(number string) (string, error) {
	stripped := strings.ReplaceAll(number, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.TrimPrefix(stripped, "+")

	// Remove country code or leading zero
	if strings.HasPrefix(stripped, "63") {
		stripped = stripped[2:]
	} else if strings.HasPrefix(stripped, "0") {
		stripped = stripped[1:]
	}

	if !phMobilePattern.MatchString(stripped) {
		return "", fmt.Errorf("invalid Philippine mobile number")
	}

	return "+63" + stripped, nil
}

// ValidateEmail validates an email address and returns it lowercased.
func ValidateEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if !emailPattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid email address")
	}
	return strings.ToLower(trimmed), nil
}

// CanonicalContact validates a contact address, inferring the channel
// from its shape: anything with an @ is treated as email, everything
// else as a Philippine mobile number.
func CanonicalContact(contact string) (string, models.Channel, error) {
	if strings.Contains(contact, "@") {
		email, err := ValidateEmail(contact)
		return email, models.ChannelEmail, err
	}
	mobile, err := ValidateMobile(contact)
	return mobile, models.ChannelSMS, err
}

// NormalizeContact validates a contact address for the given channel and
// returns its canonical form.
func NormalizeContact(contact string, channel models.Channel) (string, error) {
	switch channel {
	case models.ChannelSMS:
		return ValidateMobile(contact)
	case models.ChannelEmail:
		return ValidateEmail(contact)
	default:
		return "", fmt.Errorf("unknown delivery channel: %s", channel)
	}
}
