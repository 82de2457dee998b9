package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_SetAndGetKeys(t *testing.T) {
	// Arrange
	_, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	// Act
	err := repo.SetKeys(ctx, "sid-1", map[string]string{
		"user.account_id": "res-1",
		"user.role":       "resident",
	})
	require.NoError(t, err)

	val, err := repo.Get(ctx, "sid-1", "user.account_id")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "res-1", val)
}

func TestSessionRepo_GetMissingKeyReturnsEmpty(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)

	val, err := repo.Get(context.Background(), "sid-unknown", "user.account_id")

	assert.NoError(t, err)
	assert.Empty(t, val)
}

func TestSessionRepo_GetAllMissingSessionReturnsEmptyMap(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)

	all, err := repo.GetAll(context.Background(), "sid-unknown")

	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestSessionRepo_SetKeysLeavesOtherKeysAlone(t *testing.T) {
	// Arrange
	_, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"admin.account_id": "adm-1"}))

	// Act
	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"user.account_id": "res-1"}))
	all, err := repo.GetAll(ctx, "sid-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"admin.account_id": "adm-1",
		"user.account_id":  "res-1",
	}, all)
}

func TestSessionRepo_SetKeysRefreshesTTL(t *testing.T) {
	// Arrange
	mr, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"user.role": "resident"}))
	mr.FastForward(60 * time.Minute)

	// Act
	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"user.contact": "+639171234567"}))

	// Assert
	assert.Equal(t, 120*time.Minute, mr.TTL("session:sid-1"))
}

func TestSessionRepo_DeleteKeys(t *testing.T) {
	// Arrange
	_, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{
		"user.account_id": "res-1",
		"pwreset.contact": "+639171234567",
	}))

	// Act
	require.NoError(t, repo.DeleteKeys(ctx, "sid-1", "pwreset.contact"))
	all, err := repo.GetAll(ctx, "sid-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"user.account_id": "res-1"}, all)
}

func TestSessionRepo_DeleteAll(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"user.account_id": "res-1"}))
	require.NoError(t, repo.DeleteAll(ctx, "sid-1"))

	assert.False(t, mr.Exists("session:sid-1"))
}

// dropUserKeys rewrites a session down to its non-user fields.
func dropUserKeys(current map[string]string) (map[string]string, bool) {
	kept := make(map[string]string, len(current))
	for k, v := range current {
		if !strings.HasPrefix(k, "user.") {
			kept[k] = v
		}
	}
	return kept, true
}

func TestSessionRepo_RewriteSwapsContents(t *testing.T) {
	// Arrange
	_, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{
		"user.account_id":  "res-1",
		"user.role":        "resident",
		"admin.account_id": "adm-1",
	}))

	// Act: rewrite to a view without the user principal
	err := repo.Rewrite(ctx, "sid-1", dropUserKeys)
	require.NoError(t, err)

	all, err := repo.GetAll(ctx, "sid-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"admin.account_id": "adm-1"}, all)
}

func TestSessionRepo_RewriteToEmptyDeletesSession(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"user.account_id": "res-1"}))
	require.NoError(t, repo.Rewrite(ctx, "sid-1", dropUserKeys))

	assert.False(t, mr.Exists("session:sid-1"))
}

func TestSessionRepo_RewriteSetsTTL(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{
		"user.account_id":  "res-1",
		"admin.account_id": "adm-1",
	}))
	mr.FastForward(30 * time.Minute)

	require.NoError(t, repo.Rewrite(ctx, "sid-1", dropUserKeys))

	assert.Equal(t, 120*time.Minute, mr.TTL("session:sid-1"))
}

func TestSessionRepo_RewriteDeclinedLeavesSessionUntouched(t *testing.T) {
	// Arrange
	mr, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"admin.account_id": "adm-1"}))
	mr.FastForward(30 * time.Minute)

	// Act: the transform finds nothing to change
	err := repo.Rewrite(ctx, "sid-1", func(current map[string]string) (map[string]string, bool) {
		return nil, false
	})

	// Assert: contents and remaining TTL are untouched
	assert.NoError(t, err)
	assert.Equal(t, "adm-1", mr.HGet("session:sid-1", "admin.account_id"))
	assert.Equal(t, 90*time.Minute, mr.TTL("session:sid-1"))
}

func TestSessionRepo_RewriteRetriesAgainstFreshRead(t *testing.T) {
	// Arrange: a second connection writes to the session right after the
	// first read, forcing the optimistic transaction to abort and retry
	mr, client := setupRedis(t)
	repo := NewSessionRepo(repoConfig(), client)
	ctx := context.Background()

	require.NoError(t, repo.SetKeys(ctx, "sid-1", map[string]string{"user.account_id": "res-1"}))

	writer := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { writer.Close() })

	reads := 0
	interfere := true

	// Act
	err := repo.Rewrite(ctx, "sid-1", func(current map[string]string) (map[string]string, bool) {
		reads++
		if interfere {
			interfere = false
			require.NoError(t, writer.HSet(ctx, "session:sid-1", "admin.account_id", "adm-9").Err())
		}
		return dropUserKeys(current)
	})

	// Assert: the retry read the concurrent write, so it survives the swap
	require.NoError(t, err)
	assert.Equal(t, 2, reads)
	all, err := repo.GetAll(ctx, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"admin.account_id": "adm-9"}, all)
}
