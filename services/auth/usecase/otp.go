package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/internal/utils"
	"github.com/ekolek/ekolek/services/auth/apperr"
	"github.com/google/uuid"
)

const otpCodeDigits = 6

// RequestOTP issues a new OTP challenge for the contact and hands the
// code to the delivery gateway. The response never carries the code.
func (u *AuthUC) RequestOTP(ctx context.Context, req *models.OTPRequest) (*models.OTPIssued, error) {
	if !req.Channel.Valid() {
		return nil, fmt.Errorf("unknown delivery channel: %s", req.Channel)
	}
	if !req.Purpose.Valid() {
		return nil, fmt.Errorf("unknown otp purpose: %s", req.Purpose)
	}

	contact, err := utils.NormalizeContact(req.Contact, req.Channel)
	if err != nil {
		return nil, err
	}

	return u.issueChallenge(ctx, contact, req.Channel, req.Purpose)
}

// issueChallenge creates a challenge for the (contact, purpose) pair,
// replacing any prior one, subject to the resend cooldown.
func (u *AuthUC) issueChallenge(ctx context.Context, contact string, channel models.Channel, purpose models.Purpose) (*models.OTPIssued, error) {
	now := u.now()

	prior, err := u.challengeRepo.GetChallenge(ctx, purpose, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to load otp challenge: %w", err)
	}
	if prior != nil && !prior.Consumed && !prior.Expired(now) {
		if wait := u.resendCooldown() - now.Sub(prior.LastSentAt); wait > 0 {
			return nil, &apperr.RateLimitedError{RetryAfter: wait}
		}
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	challenge := &models.OTPChallenge{
		ID:          uuid.New().String(),
		Contact:     contact,
		Channel:     channel,
		Purpose:     purpose,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(u.otpExpiry()),
		LastSentAt:  now,
		MaxAttempts: u.cfg.OTP.MaxAttempts,
	}

	// Saving under the pair key invalidates whatever challenge was there
	if err := u.challengeRepo.SaveChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store otp challenge: %w", err)
	}

	event := &models.OTPDeliveryEvent{
		Contact: contact,
		Channel: channel,
		Purpose: purpose,
		Message: fmt.Sprintf("Your E-KOLEK verification code is %s. It expires in %d minutes.", code, u.cfg.OTP.ExpiryMinutes),
	}
	if err := u.authGW.PublishOTPDelivery(ctx, event); err != nil {
		// The code never went out, so put back whatever the pair held
		// before. Restoring the prior challenge keeps its last_sent_at,
		// so the resend cooldown still counts from the last code that
		// actually reached the contact.
		if rollbackErr := u.rollbackChallenge(ctx, purpose, contact, prior); rollbackErr != nil {
			logger.Warn("Failed to roll back undelivered otp challenge",
				logger.String("purpose", string(purpose)),
				logger.Err(rollbackErr))
		}
		logger.Error("OTP dispatch failed",
			logger.String("purpose", string(purpose)),
			logger.String("channel", string(channel)),
			logger.Err(err))
		return nil, apperr.ErrDeliveryFailed
	}

	logger.Info("OTP challenge issued",
		logger.String("purpose", string(purpose)),
		logger.String("channel", string(channel)))

	return &models.OTPIssued{
		Contact:     contact,
		Purpose:     purpose,
		ExpiresAt:   challenge.ExpiresAt,
		ResendAfter: int64(u.cfg.OTP.ResendCooldown),
	}, nil
}

// rollbackChallenge undoes a store of a challenge whose code was never
// delivered, restoring the prior challenge when one existed.
func (u *AuthUC) rollbackChallenge(ctx context.Context, purpose models.Purpose, contact string, prior *models.OTPChallenge) error {
	if prior != nil {
		return u.challengeRepo.SaveChallenge(ctx, prior)
	}
	return u.challengeRepo.DeleteChallenge(ctx, purpose, contact)
}

// verifyChallenge runs the challenge state machine for a submitted code.
// Check order matters: missing, consumed, expired and exhausted
// challenges are rejected before any code comparison happens, and the
// attempt is counted before comparing so a crash cannot refund it.
func (u *AuthUC) verifyChallenge(ctx context.Context, purpose models.Purpose, contact, submitted string) (*models.OTPChallenge, error) {
	challenge, err := u.challengeRepo.GetChallenge(ctx, purpose, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to load otp challenge: %w", err)
	}
	if challenge == nil {
		return nil, apperr.ErrChallengeNotFound
	}
	if challenge.Consumed {
		return nil, apperr.ErrChallengeConsumed
	}
	if challenge.Expired(u.now()) {
		return nil, apperr.ErrChallengeExpired
	}
	if challenge.Exhausted() {
		return nil, apperr.ErrAttemptsExceeded
	}

	challenge.AttemptsUsed++
	if err := u.challengeRepo.UpdateChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to record otp attempt: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(submitted)) != 1 {
		remaining := challenge.MaxAttempts - challenge.AttemptsUsed
		if remaining <= 0 {
			return nil, apperr.ErrAttemptsExceeded
		}
		return nil, &apperr.InvalidCodeError{AttemptsRemaining: remaining}
	}

	challenge.Consumed = true
	if err := u.challengeRepo.UpdateChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to consume otp challenge: %w", err)
	}

	return challenge, nil
}

// generateCode draws a uniformly random fixed-length numeric code from
// the system CSPRNG. Leading zeros are kept.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpCodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpCodeDigits, n), nil
}
