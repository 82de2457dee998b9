package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ekolek/ekolek/internal/pkg/constants"
	"github.com/ekolek/ekolek/internal/pkg/database"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/go-redis/redis/v8"
)

// rewriteRetries bounds the optimistic-lock retry loop on Rewrite.
const rewriteRetries = 3

// SessionRepo stores web sessions as Redis hashes, one hash per session
// ID. All access goes through the store on every request; nothing is
// cached in-process, so two tabs racing on the same session always see
// the store's view.
type SessionRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(cfg *models.Config, redisClient *database.RedisClient) *SessionRepo {
	return &SessionRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constants.KeySession, sessionID)
}

func (r *SessionRepo) ttl() time.Duration {
	return time.Duration(r.cfg.Session.TTLMinutes) * time.Minute
}

// Get returns a single session value, or "" when the key is absent.
func (r *SessionRepo) Get(ctx context.Context, sessionID, key string) (string, error) {
	val, err := r.redisClient.HGet(ctx, sessionKey(sessionID), key)
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session key: %w", err)
	}
	return val, nil
}

// GetAll returns the full contents of a session. A missing session
// yields an empty map, not an error.
func (r *SessionRepo) GetAll(ctx context.Context, sessionID string) (map[string]string, error) {
	values, err := r.redisClient.HGetAll(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return values, nil
}

// SetKeys writes the given values into the session and refreshes its
// idle TTL. Keys not named are left untouched.
func (r *SessionRepo) SetKeys(ctx context.Context, sessionID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	if err := r.redisClient.HSetMap(ctx, sessionKey(sessionID), values, r.ttl()); err != nil {
		return fmt.Errorf("failed to write session keys: %w", err)
	}
	return nil
}

// DeleteKeys removes the named keys from the session.
func (r *SessionRepo) DeleteKeys(ctx context.Context, sessionID string, keys ...string) error {
	if err := r.redisClient.HDel(ctx, sessionKey(sessionID), keys...); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}

// DeleteAll destroys the whole session record. This is the
// indiscriminate primitive; principal termination must go through
// Rewrite instead.
func (r *SessionRepo) DeleteAll(ctx context.Context, sessionID string) error {
	if err := r.redisClient.Delete(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Rewrite reads the session inside a WATCH-guarded transaction, applies
// transform and swaps the result in, retrying a bounded number of times
// when a concurrent writer touches the same session mid-swap. Every
// retry re-reads, so transform always sees the latest contents.
func (r *SessionRepo) Rewrite(ctx context.Context, sessionID string, transform func(current map[string]string) (map[string]string, bool)) error {
	key := sessionKey(sessionID)
	var err error
	for i := 0; i < rewriteRetries; i++ {
		err = r.redisClient.ReplaceHashFunc(ctx, key, transform, r.ttl())
		if err != database.ErrTxConflict {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to rewrite session contents: %w", err)
	}
	return nil
}
