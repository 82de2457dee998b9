package auth

import (
	"context"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/ekolek/ekolek/services/auth ChallengeRepo,SessionStore,AccountRepo

// ChallengeRepo stores OTP challenges keyed by (purpose, contact). At
// most one challenge exists per pair; saving overwrites the prior one.
type ChallengeRepo interface {
	SaveChallenge(ctx context.Context, challenge *models.OTPChallenge) error
	// GetChallenge returns (nil, nil) when no challenge exists for the pair.
	GetChallenge(ctx context.Context, purpose models.Purpose, contact string) (*models.OTPChallenge, error)
	UpdateChallenge(ctx context.Context, challenge *models.OTPChallenge) error
	DeleteChallenge(ctx context.Context, purpose models.Purpose, contact string) error
}

// SessionStore is the shared key-value session record. Keys are
// namespaced strings; the store itself knows nothing about principals.
type SessionStore interface {
	// Get returns "" when the key is absent.
	Get(ctx context.Context, sessionID, key string) (string, error)
	GetAll(ctx context.Context, sessionID string) (map[string]string, error)
	SetKeys(ctx context.Context, sessionID string, values map[string]string) error
	DeleteKeys(ctx context.Context, sessionID string, keys ...string) error
	// DeleteAll is the indiscriminate clear primitive. Multi-principal
	// logic must never call it directly; use Rewrite.
	DeleteAll(ctx context.Context, sessionID string) error
	// Rewrite replaces the session contents with the transform's result
	// in one atomic read-modify-write. The read happens inside the
	// store's optimistic transaction, so transform may run more than
	// once when a concurrent writer touches the session mid-swap.
	// Returning false skips the write.
	Rewrite(ctx context.Context, sessionID string, transform func(current map[string]string) (map[string]string, bool)) error
}

// AccountRepo stores resident and admin accounts.
type AccountRepo interface {
	CreateResident(ctx context.Context, resident *models.Resident) error
	GetResidentByContact(ctx context.Context, contact string) (*models.Resident, error)
	MarkResidentVerified(ctx context.Context, id uuid.UUID) error
	UpdateResidentPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
}
