package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ekolek/ekolek/internal/pkg/database"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/services/auth/repository"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSessionUC wires the usecase to a real session repository backed by
// miniredis, so the atomic rewrite path runs against actual hash
// semantics instead of mocks.
func setupSessionUC(t *testing.T) (*AuthUC, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	redisClient := &database.RedisClient{Client: client}

	cfg := testConfig()
	sessionRepo := repository.NewSessionRepo(cfg, redisClient)

	uc := NewAuthUC(nil, sessionRepo, nil, nil, cfg)
	return uc, mr
}

func seedDualSession(t *testing.T, mr *miniredis.Miniredis, sessionID string) {
	key := "session:" + sessionID
	mr.HSet(key, "user.account_id", "res-1")
	mr.HSet(key, "user.contact", "+639171234567")
	mr.HSet(key, "user.role", "resident")
	mr.HSet(key, "admin.account_id", "adm-1")
	mr.HSet(key, "admin.contact", "collector01")
	mr.HSet(key, "admin.role", "collector")
	mr.HSet(key, "pwreset.contact", "+639171234567")
}

func TestTerminatePrincipal_AdminLogoutPreservesResident(t *testing.T) {
	// Arrange
	uc, mr := setupSessionUC(t)
	seedDualSession(t, mr, "sid-1")

	// Act
	err := uc.LogoutAdmin(context.Background(), "sid-1")

	// Assert: admin.* gone, everything else intact
	assert.NoError(t, err)
	key := "session:sid-1"
	assert.Equal(t, "res-1", mr.HGet(key, "user.account_id"))
	assert.Equal(t, "resident", mr.HGet(key, "user.role"))
	assert.Equal(t, "+639171234567", mr.HGet(key, "pwreset.contact"))
	assert.Empty(t, mr.HGet(key, "admin.account_id"))
	assert.Empty(t, mr.HGet(key, "admin.role"))
}

func TestTerminatePrincipal_UserLogoutPreservesAdmin(t *testing.T) {
	// Arrange
	uc, mr := setupSessionUC(t)
	seedDualSession(t, mr, "sid-1")

	// Act
	err := uc.LogoutUser(context.Background(), "sid-1")

	// Assert
	assert.NoError(t, err)
	key := "session:sid-1"
	assert.Equal(t, "adm-1", mr.HGet(key, "admin.account_id"))
	assert.Equal(t, "collector", mr.HGet(key, "admin.role"))
	assert.Empty(t, mr.HGet(key, "user.account_id"))
}

func TestTerminatePrincipal_BothLogoutsEmptyTheSession(t *testing.T) {
	// Arrange
	uc, mr := setupSessionUC(t)
	seedDualSession(t, mr, "sid-1")

	ctx := context.Background()

	// Act
	require.NoError(t, uc.LogoutUser(ctx, "sid-1"))
	require.NoError(t, uc.LogoutAdmin(ctx, "sid-1"))
	require.NoError(t, uc.ClearTransient(ctx, "sid-1", models.TransientPasswordReset))

	// Assert
	assert.False(t, mr.Exists("session:sid-1"))
}

func TestTerminatePrincipal_EmptySessionIsNoOp(t *testing.T) {
	uc, _ := setupSessionUC(t)

	err := uc.LogoutUser(context.Background(), "sid-unknown")

	assert.NoError(t, err)
}

func TestTerminatePrincipal_BlankSessionIDIsNoOp(t *testing.T) {
	uc, _ := setupSessionUC(t)

	err := uc.LogoutAdmin(context.Background(), "")

	assert.NoError(t, err)
}

func TestTerminatePrincipal_AbsentPrincipalLeavesSessionUntouched(t *testing.T) {
	// Arrange: only a resident is logged in
	uc, mr := setupSessionUC(t)
	key := "session:sid-2"
	mr.HSet(key, "user.account_id", "res-1")
	mr.HSet(key, "user.role", "resident")

	// Act: terminating the admin principal finds nothing to clear
	err := uc.LogoutAdmin(context.Background(), "sid-2")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "res-1", mr.HGet(key, "user.account_id"))
	assert.Equal(t, "resident", mr.HGet(key, "user.role"))
}

func TestTerminatePrincipal_RepeatedLogoutIsIdempotent(t *testing.T) {
	// Arrange
	uc, mr := setupSessionUC(t)
	seedDualSession(t, mr, "sid-1")

	ctx := context.Background()

	// Act
	require.NoError(t, uc.LogoutAdmin(ctx, "sid-1"))
	err := uc.LogoutAdmin(ctx, "sid-1")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "res-1", mr.HGet("session:sid-1", "user.account_id"))
}

// interposedStore delegates to a real repository but runs a hook after
// the rewrite's first read, mimicking another tab writing to the same
// session in the middle of a logout.
type interposedStore struct {
	*repository.SessionRepo
	afterFirstRead func()
}

func (s *interposedStore) Rewrite(ctx context.Context, sessionID string, transform func(map[string]string) (map[string]string, bool)) error {
	wrapped := func(current map[string]string) (map[string]string, bool) {
		next, ok := transform(current)
		if s.afterFirstRead != nil {
			hook := s.afterFirstRead
			s.afterFirstRead = nil
			hook()
		}
		return next, ok
	}
	return s.SessionRepo.Rewrite(ctx, sessionID, wrapped)
}

func TestTerminatePrincipal_ConcurrentAdminLoginSurvivesUserLogout(t *testing.T) {
	// Arrange: resident logged in; an admin logs in on a second tab
	// right after the logout's read of the session
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionRepo := repository.NewSessionRepo(testConfig(), &database.RedisClient{Client: client})

	secondTab := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { secondTab.Close() })

	store := &interposedStore{
		SessionRepo: sessionRepo,
		afterFirstRead: func() {
			require.NoError(t, secondTab.HSet(context.Background(), "session:sid-race",
				"admin.account_id", "adm-9",
				"admin.role", "collector").Err())
		},
	}
	uc := NewAuthUC(nil, store, nil, nil, testConfig())

	mr.HSet("session:sid-race", "user.account_id", "res-1")
	mr.HSet("session:sid-race", "user.role", "resident")

	// Act
	err = uc.LogoutUser(context.Background(), "sid-race")

	// Assert: the admin principal written mid-logout is preserved
	assert.NoError(t, err)
	key := "session:sid-race"
	assert.Equal(t, "adm-9", mr.HGet(key, "admin.account_id"))
	assert.Equal(t, "collector", mr.HGet(key, "admin.role"))
	assert.Empty(t, mr.HGet(key, "user.account_id"))
	assert.Empty(t, mr.HGet(key, "user.role"))
}

func TestEstablishPrincipal_WritesOnlyOwnNamespace(t *testing.T) {
	// Arrange: admin already logged in on the session
	uc, mr := setupSessionUC(t)
	key := "session:sid-3"
	mr.HSet(key, "admin.account_id", "adm-1")
	mr.HSet(key, "admin.role", "collector")

	principal := models.Principal{
		AccountID: "res-9",
		Contact:   "+639181112222",
		Role:      "resident",
	}

	// Act
	err := uc.EstablishPrincipal(context.Background(), "sid-3", models.PrincipalUser, principal)

	// Assert: both principals coexist
	assert.NoError(t, err)
	assert.Equal(t, "res-9", mr.HGet(key, "user.account_id"))
	assert.Equal(t, "+639181112222", mr.HGet(key, "user.contact"))
	assert.Equal(t, "adm-1", mr.HGet(key, "admin.account_id"))
}

func TestEstablishPrincipal_RequiresSessionID(t *testing.T) {
	uc, _ := setupSessionUC(t)

	err := uc.EstablishPrincipal(context.Background(), "", models.PrincipalUser, models.Principal{})

	assert.Error(t, err)
}

func TestEstablishPrincipal_ReloginOverwritesOwnKeys(t *testing.T) {
	// Arrange: resident logged in, then a different resident logs in on
	// the same browser session
	uc, mr := setupSessionUC(t)
	ctx := context.Background()

	first := models.Principal{AccountID: "res-1", Contact: "+639171234567", Role: "resident"}
	second := models.Principal{AccountID: "res-2", Contact: "+639182223333", Role: "resident"}

	require.NoError(t, uc.EstablishPrincipal(ctx, "sid-4", models.PrincipalUser, first))

	// Act
	err := uc.EstablishPrincipal(ctx, "sid-4", models.PrincipalUser, second)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "res-2", mr.HGet("session:sid-4", "user.account_id"))
	assert.Equal(t, "+639182223333", mr.HGet("session:sid-4", "user.contact"))
}

func TestClearTransient_RemovesOnlyTransientKeys(t *testing.T) {
	// Arrange
	uc, mr := setupSessionUC(t)
	seedDualSession(t, mr, "sid-5")

	// Act
	err := uc.ClearTransient(context.Background(), "sid-5", models.TransientPasswordReset)

	// Assert
	assert.NoError(t, err)
	key := "session:sid-5"
	assert.Empty(t, mr.HGet(key, "pwreset.contact"))
	assert.Equal(t, "res-1", mr.HGet(key, "user.account_id"))
	assert.Equal(t, "adm-1", mr.HGet(key, "admin.account_id"))
}

func TestClearTransient_NoTransientKeysIsNoOp(t *testing.T) {
	uc, mr := setupSessionUC(t)
	key := "session:sid-6"
	mr.HSet(key, "user.account_id", "res-1")

	err := uc.ClearTransient(context.Background(), "sid-6", models.TransientPasswordReset)

	assert.NoError(t, err)
	assert.Equal(t, "res-1", mr.HGet(key, "user.account_id"))
}

func TestTerminatePrincipal_SessionTTLSurvivesSwap(t *testing.T) {
	// Arrange
	uc, mr := setupSessionUC(t)
	seedDualSession(t, mr, "sid-7")

	// Act
	err := uc.LogoutAdmin(context.Background(), "sid-7")

	// Assert: the swap reapplied the idle TTL to the surviving record
	assert.NoError(t, err)
	ttl := mr.TTL("session:sid-7")
	assert.Equal(t, 120*time.Minute, ttl)
}
