package auth

import (
	"context"

	"github.com/ekolek/ekolek/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/ekolek/ekolek/services/auth AuthUC

// AuthUC represents the auth usecase interface
type AuthUC interface {
	// resident registration
	RegisterResident(ctx context.Context, resident *models.Resident) (*models.OTPIssued, error)

	// OTP engine
	RequestOTP(ctx context.Context, req *models.OTPRequest) (*models.OTPIssued, error)
	VerifyOTP(ctx context.Context, req *models.VerifyRequest) (*models.AuthResponse, error)

	// web sessions
	LoginAdmin(ctx context.Context, req *models.AdminLoginRequest) (*models.Admin, error)
	LogoutUser(ctx context.Context, sessionID string) error
	LogoutAdmin(ctx context.Context, sessionID string) error

	// password reset
	BeginPasswordReset(ctx context.Context, sessionID, contact string, channel models.Channel) (*models.OTPIssued, error)
	CompletePasswordReset(ctx context.Context, req *models.PasswordResetRequest) error
}
