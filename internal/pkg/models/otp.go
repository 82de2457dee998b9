package models

import (
	"time"
)

// Channel identifies the delivery channel for an OTP code.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Purpose scopes an OTP challenge. A code issued for one purpose can
// never satisfy a verification for another.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposeLogin         Purpose = "login"
	PurposePasswordReset Purpose = "password_reset"
)

// Valid reports whether p is a known purpose.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeRegistration, PurposeLogin, PurposePasswordReset:
		return true
	}
	return false
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelSMS || c == ChannelEmail
}

// OTPChallenge represents one outstanding verification attempt for a
// contact address. At most one active challenge exists per
// (contact, purpose) pair; issuing a new one replaces the prior one.
type OTPChallenge struct {
	ID           string    `json:"id"`
	Contact      string    `json:"contact"`
	Channel      Channel   `json:"channel"`
	Purpose      Purpose   `json:"purpose"`
	Code         string    `json:"code"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastSentAt   time.Time `json:"last_sent_at"`
	AttemptsUsed int       `json:"attempts_used"`
	MaxAttempts  int       `json:"max_attempts"`
	Consumed     bool      `json:"consumed"`
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Exhausted reports whether the attempt budget has been used up.
func (c *OTPChallenge) Exhausted() bool {
	return c.AttemptsUsed >= c.MaxAttempts
}

// OTPRequest represents a request to issue an OTP challenge
type OTPRequest struct {
	Contact string  `json:"contact" validate:"required"`
	Channel Channel `json:"channel" validate:"required"`
	Purpose Purpose `json:"purpose" validate:"required"`
}

// OTPIssued is returned after a challenge has been created and handed to
// the delivery gateway. It never carries the code itself.
type OTPIssued struct {
	Contact     string    `json:"contact"`
	Purpose     Purpose   `json:"purpose"`
	ExpiresAt   time.Time `json:"expires_at"`
	ResendAfter int64     `json:"resend_after"` // seconds until a resend is allowed
}

// VerifyRequest represents a request to verify an OTP code
type VerifyRequest struct {
	Contact   string  `json:"contact" validate:"required"`
	Purpose   Purpose `json:"purpose" validate:"required"`
	Code      string  `json:"code" validate:"required"`
	SessionID string  `json:"-"` // web session to bind on success, optional
}

// OTPDeliveryEvent is handed to the delivery gateway for transmission.
type OTPDeliveryEvent struct {
	Contact string  `json:"contact"`
	Channel Channel `json:"channel"`
	Purpose Purpose `json:"purpose"`
	Message string  `json:"message"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}
