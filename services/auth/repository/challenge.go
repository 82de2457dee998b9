package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ekolek/ekolek/internal/pkg/constants"
	"github.com/ekolek/ekolek/internal/pkg/database"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/go-redis/redis/v8"
)

// ChallengeRepo stores OTP challenges in Redis, one key per
// (purpose, contact) pair. Writing the key replaces whatever challenge
// was there, which is exactly the invalidate-on-reissue semantics the
// engine wants.
type ChallengeRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewChallengeRepo creates a new challenge repository
func NewChallengeRepo(cfg *models.Config, redisClient *database.RedisClient) *ChallengeRepo {
	return &ChallengeRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

func challengeKey(purpose models.Purpose, contact string) string {
	return fmt.Sprintf(constants.KeyOTPChallenge, purpose, contact)
}

// SaveChallenge stores a challenge with a TTL reaching past its expiry,
// so a verify after expires_at can still report "expired" instead of
// "not found" until the retention window closes.
func (r *ChallengeRepo) SaveChallenge(ctx context.Context, challenge *models.OTPChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}

	retention := time.Duration(r.cfg.OTP.RetentionMinutes) * time.Minute
	ttl := time.Until(challenge.ExpiresAt) + retention
	if ttl <= 0 {
		ttl = retention
	}

	key := challengeKey(challenge.Purpose, challenge.Contact)
	if err := r.redisClient.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("failed to store otp challenge in redis: %w", err)
	}
	return nil
}

// GetChallenge returns the challenge for the pair, or (nil, nil) when
// none exists.
func (r *ChallengeRepo) GetChallenge(ctx context.Context, purpose models.Purpose, contact string) (*models.OTPChallenge, error) {
	val, err := r.redisClient.Get(ctx, challengeKey(purpose, contact))
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get otp challenge from redis: %w", err)
	}

	var challenge models.OTPChallenge
	if err := json.Unmarshal([]byte(val), &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp challenge: %w", err)
	}
	return &challenge, nil
}

// UpdateChallenge persists attempt and consumption state without
// touching the key's remaining TTL.
func (r *ChallengeRepo) UpdateChallenge(ctx context.Context, challenge *models.OTPChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}

	key := challengeKey(challenge.Purpose, challenge.Contact)
	if err := r.redisClient.Set(ctx, key, data, redis.KeepTTL); err != nil {
		return fmt.Errorf("failed to update otp challenge in redis: %w", err)
	}
	return nil
}

// DeleteChallenge removes the challenge for the pair, if any.
func (r *ChallengeRepo) DeleteChallenge(ctx context.Context, purpose models.Purpose, contact string) error {
	if err := r.redisClient.Delete(ctx, challengeKey(purpose, contact)); err != nil {
		return fmt.Errorf("failed to delete otp challenge from redis: %w", err)
	}
	return nil
}
