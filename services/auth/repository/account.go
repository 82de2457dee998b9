package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// AccountRepo stores resident and admin accounts in PostgreSQL.
type AccountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sqlx.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// CreateResident creates a new resident account
func (r *AccountRepo) CreateResident(ctx context.Context, resident *models.Resident) error {
	resident.ID = uuid.New()
	now := time.Now()
	resident.CreatedAt = now
	resident.UpdatedAt = now

	query := `
		INSERT INTO residents (id, contact, channel, full_name, barangay,
			password_hash, verified, created_at, updated_at
		) VALUES (:id, :contact, :channel, :full_name, :barangay,
			:password_hash, :verified, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, resident)
	if err != nil {
		return fmt.Errorf("failed to insert resident: %w", err)
	}

	return nil
}

// GetResidentByContact retrieves a resident by canonical contact, or
// (nil, nil) when none exists.
func (r *AccountRepo) GetResidentByContact(ctx context.Context, contact string) (*models.Resident, error) {
	query := `
		SELECT id, contact, channel, full_name, barangay, password_hash,
			verified, created_at, updated_at
		FROM residents
		WHERE contact = $1
	`

	var resident models.Resident
	err := r.db.GetContext(ctx, &resident, query, contact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	return &resident, nil
}

// MarkResidentVerified activates a resident after a successful
// registration OTP.
func (r *AccountRepo) MarkResidentVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE residents
		SET verified = true, updated_at = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark resident verified: %w", err)
	}

	return nil
}

// UpdateResidentPassword replaces a resident's password hash.
func (r *AccountRepo) UpdateResidentPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE residents
		SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update resident password: %w", err)
	}

	return nil
}

// GetAdminByUsername retrieves an admin account by username, or
// (nil, nil) when none exists.
func (r *AccountRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password_hash, role, active, created_at
		FROM admins
		WHERE username = $1
	`

	var admin models.Admin
	err := r.db.GetContext(ctx, &admin, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &admin, nil
}
