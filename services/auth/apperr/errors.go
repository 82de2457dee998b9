// Package apperr defines the error taxonomy of the auth core. Every
// failure a handler needs to branch on is either a sentinel or a
// structured error type; nothing crosses the usecase boundary as an
// untyped error.
package apperr

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDeliveryFailed means the OTP could not be handed to the
	// delivery gateway. The attempt budget is untouched; the caller may
	// request a new code.
	ErrDeliveryFailed = errors.New("otp delivery failed")

	// ErrChallengeNotFound means no challenge exists for the
	// (contact, purpose) pair.
	ErrChallengeNotFound = errors.New("otp challenge not found")

	// ErrChallengeExpired means the challenge is past its expiry. The
	// challenge is dead; a new one must be requested.
	ErrChallengeExpired = errors.New("otp challenge expired")

	// ErrAttemptsExceeded means the verify attempt budget is exhausted.
	ErrAttemptsExceeded = errors.New("otp attempts exceeded")

	// ErrChallengeConsumed means the challenge was already verified
	// successfully and can never be verified again.
	ErrChallengeConsumed = errors.New("otp challenge already used")

	// ErrRateLimited is the category sentinel for RateLimitedError.
	ErrRateLimited = errors.New("otp resend cooldown active")

	// ErrInvalidCode is the category sentinel for InvalidCodeError.
	ErrInvalidCode = errors.New("incorrect otp code")

	// ErrInvalidCredentials means a password login failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountNotFound means no account exists for the identifier.
	ErrAccountNotFound = errors.New("account not found")

	// ErrContactTaken means registration hit an existing contact.
	ErrContactTaken = errors.New("contact already registered")
)

// RateLimitedError reports how long the caller must wait before the next
// issuance for the same contact and purpose.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new code", int(e.RetryAfter.Seconds()))
}

// Is makes errors.Is(err, ErrRateLimited) match.
func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// InvalidCodeError reports a code mismatch together with the number of
// attempts left on the challenge.
type InvalidCodeError struct {
	AttemptsRemaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("incorrect code, %d attempts remaining", e.AttemptsRemaining)
}

// Is makes errors.Is(err, ErrInvalidCode) match.
func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}
