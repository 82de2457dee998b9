package usecase

import (
	"time"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/services/auth"
)

// AuthUC implements the auth usecase: the OTP verification engine and
// the session isolation manager, plus the account flows built on them.
type AuthUC struct {
	challengeRepo auth.ChallengeRepo
	sessionStore  auth.SessionStore
	accountRepo   auth.AccountRepo
	authGW        auth.AuthGW
	cfg           *models.Config

	// now is swapped out in tests to drive cooldown and expiry
	now func() time.Time
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	challengeRepo auth.ChallengeRepo,
	sessionStore auth.SessionStore,
	accountRepo auth.AccountRepo,
	authGW auth.AuthGW,
	cfg *models.Config,
) *AuthUC {
	return &AuthUC{
		challengeRepo: challengeRepo,
		sessionStore:  sessionStore,
		accountRepo:   accountRepo,
		authGW:        authGW,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (u *AuthUC) otpExpiry() time.Duration {
	return time.Duration(u.cfg.OTP.ExpiryMinutes) * time.Minute
}

func (u *AuthUC) resendCooldown() time.Duration {
	return time.Duration(u.cfg.OTP.ResendCooldown) * time.Second
}
