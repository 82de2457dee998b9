package usecase

import (
	"context"
	"fmt"

	jwtpkg "github.com/ekolek/ekolek/internal/pkg/jwt"
	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/internal/utils"
	"github.com/ekolek/ekolek/services/auth/apperr"
	"golang.org/x/crypto/bcrypt"
)

// RegisterResident creates an unverified resident account and issues a
// registration OTP to its contact. Re-registering an unverified contact
// just reissues the code.
func (u *AuthUC) RegisterResident(ctx context.Context, resident *models.Resident) (*models.OTPIssued, error) {
	if resident.Channel == "" {
		resident.Channel = models.ChannelSMS
	}
	contact, err := utils.NormalizeContact(resident.Contact, resident.Channel)
	if err != nil {
		return nil, err
	}
	resident.Contact = contact

	existing, err := u.accountRepo.GetResidentByContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to look up resident: %w", err)
	}
	if existing != nil {
		if existing.Verified {
			return nil, apperr.ErrContactTaken
		}
		// Pending registration: reissue the code, keep the account row
		return u.issueChallenge(ctx, contact, resident.Channel, models.PurposeRegistration)
	}

	if resident.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(resident.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		resident.PasswordHash = string(hash)
		resident.Password = ""
	}

	if err := u.accountRepo.CreateResident(ctx, resident); err != nil {
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}

	logger.Info("Resident registered, verification pending",
		logger.String("barangay", resident.Barangay))

	return u.issueChallenge(ctx, contact, resident.Channel, models.PurposeRegistration)
}

// VerifyOTP verifies a submitted code for a registration or login
// challenge. On success it returns a mobile API token and, when the
// request carries a web session ID, establishes the resident principal
// in that session. Password-reset codes go through the reset flow, not
// through here.
func (u *AuthUC) VerifyOTP(ctx context.Context, req *models.VerifyRequest) (*models.AuthResponse, error) {
	if req.Purpose == models.PurposePasswordReset {
		return nil, fmt.Errorf("password reset codes must be submitted to the reset flow")
	}
	if !req.Purpose.Valid() {
		return nil, fmt.Errorf("unknown otp purpose: %s", req.Purpose)
	}

	contact, _, err := utils.CanonicalContact(req.Contact)
	if err != nil {
		return nil, err
	}

	if _, err := u.verifyChallenge(ctx, req.Purpose, contact, req.Code); err != nil {
		return nil, err
	}

	resident, err := u.accountRepo.GetResidentByContact(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to look up resident: %w", err)
	}
	if resident == nil {
		return nil, apperr.ErrAccountNotFound
	}

	if req.Purpose == models.PurposeRegistration && !resident.Verified {
		if err := u.accountRepo.MarkResidentVerified(ctx, resident.ID); err != nil {
			return nil, fmt.Errorf("failed to activate resident: %w", err)
		}
		resident.Verified = true
	}
	if !resident.Verified {
		return nil, apperr.ErrAccountNotFound
	}

	token, expiresAt, err := jwtpkg.GenerateToken(resident.ID, resident.Contact, "resident", u.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if req.SessionID != "" {
		principal := models.Principal{
			AccountID: resident.ID.String(),
			Contact:   resident.Contact,
			Role:      "resident",
		}
		if err := u.EstablishPrincipal(ctx, req.SessionID, models.PrincipalUser, principal); err != nil {
			return nil, err
		}
	}

	return &models.AuthResponse{
		Token:     token,
		AccountID: resident.ID.String(),
		Role:      "resident",
		ExpiresAt: expiresAt,
	}, nil
}

// LoginAdmin authenticates a municipal staff account with username and
// password and establishes the admin principal in the web session. A
// resident already logged in on the same session is left untouched.
func (u *AuthUC) LoginAdmin(ctx context.Context, req *models.AdminLoginRequest) (*models.Admin, error) {
	admin, err := u.accountRepo.GetAdminByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil || !admin.Active {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if req.SessionID != "" {
		principal := models.Principal{
			AccountID: admin.ID.String(),
			Contact:   admin.Username,
			Role:      admin.Role,
		}
		if err := u.EstablishPrincipal(ctx, req.SessionID, models.PrincipalAdmin, principal); err != nil {
			return nil, err
		}
	}

	logger.Info("Admin logged in", logger.String("role", admin.Role))
	return admin, nil
}

// BeginPasswordReset issues a password-reset OTP for a resident contact
// and records the in-flight state under the session's transient
// namespace.
func (u *AuthUC) BeginPasswordReset(ctx context.Context, sessionID, contact string, channel models.Channel) (*models.OTPIssued, error) {
	normalized, err := utils.NormalizeContact(contact, channel)
	if err != nil {
		return nil, err
	}

	resident, err := u.accountRepo.GetResidentByContact(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up resident: %w", err)
	}
	if resident == nil || !resident.Verified {
		return nil, apperr.ErrAccountNotFound
	}

	issued, err := u.issueChallenge(ctx, normalized, channel, models.PurposePasswordReset)
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		state := map[string]string{
			models.TransientKey(models.TransientPasswordReset, "contact"):      normalized,
			models.TransientKey(models.TransientPasswordReset, "requested_at"): u.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := u.sessionStore.SetKeys(ctx, sessionID, state); err != nil {
			return nil, fmt.Errorf("failed to record reset state: %w", err)
		}
	}

	return issued, nil
}

// CompletePasswordReset verifies the reset code, stores the new password
// hash and clears only the transient reset state. Logged-in principals
// on the same session survive the reset.
func (u *AuthUC) CompletePasswordReset(ctx context.Context, req *models.PasswordResetRequest) error {
	contact, _, err := utils.CanonicalContact(req.Contact)
	if err != nil {
		return err
	}

	if _, err := u.verifyChallenge(ctx, models.PurposePasswordReset, contact, req.Code); err != nil {
		return err
	}

	resident, err := u.accountRepo.GetResidentByContact(ctx, contact)
	if err != nil {
		return fmt.Errorf("failed to look up resident: %w", err)
	}
	if resident == nil {
		return apperr.ErrAccountNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.accountRepo.UpdateResidentPassword(ctx, resident.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := u.ClearTransient(ctx, req.SessionID, models.TransientPasswordReset); err != nil {
		return err
	}

	logger.Info("Password reset completed")
	return nil
}
