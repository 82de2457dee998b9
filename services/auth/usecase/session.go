package usecase

import (
	"context"
	"fmt"

	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/models"
)

// The session isolation manager. A single browser session record can
// hold a resident principal (user.*) and an admin principal (admin.*)
// at the same time; every operation here touches only its own
// namespace, so logging one principal out never disturbs the other.

// EstablishPrincipal writes the principal's identity markers into the
// session under its own namespace. Keys outside the namespace are never
// written or removed.
func (u *AuthUC) EstablishPrincipal(ctx context.Context, sessionID string, ptype models.PrincipalType, principal models.Principal) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if err := u.sessionStore.SetKeys(ctx, sessionID, principal.SessionKeys(ptype)); err != nil {
		return fmt.Errorf("failed to establish %s principal: %w", ptype, err)
	}
	return nil
}

// TerminatePrincipal removes the principal's keys from the session while
// preserving every other principal's keys and all transient keys. The
// filter runs inside the store's atomic rewrite, so a principal written
// concurrently in another tab is seen by the retry and survives the
// swap. Terminating a principal on an empty or expired session is a
// no-op.
func (u *AuthUC) TerminatePrincipal(ctx context.Context, sessionID string, ptype models.PrincipalType) error {
	if sessionID == "" {
		return nil
	}

	ns := ptype.Namespace()
	cleared := false
	preserved := 0
	err := u.sessionStore.Rewrite(ctx, sessionID, func(current map[string]string) (map[string]string, bool) {
		cleared = false
		if len(current) == 0 {
			// Session already gone; logout is idempotent
			return nil, false
		}

		kept := make(map[string]string, len(current))
		for key, value := range current {
			if models.InNamespace(key, ns) {
				cleared = true
				continue
			}
			kept[key] = value
		}
		if !cleared {
			return nil, false
		}
		preserved = len(kept)
		return kept, true
	})
	if err != nil {
		return fmt.Errorf("failed to clear %s principal: %w", ptype, err)
	}

	if cleared {
		logger.Info("Principal terminated",
			logger.String("principal", string(ptype)),
			logger.Int("keys_preserved", preserved))
	}
	return nil
}

// ClearTransient removes only the keys under a transient namespace,
// such as in-flight password-reset state. It deletes keys individually
// and never reaches for the full-store clear.
func (u *AuthUC) ClearTransient(ctx context.Context, sessionID, namespace string) error {
	if sessionID == "" {
		return nil
	}

	all, err := u.sessionStore.GetAll(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	keys := make([]string, 0, len(all))
	for key := range all {
		if models.InNamespace(key, namespace) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if err := u.sessionStore.DeleteKeys(ctx, sessionID, keys...); err != nil {
		return fmt.Errorf("failed to clear transient keys: %w", err)
	}
	return nil
}

// LogoutUser terminates the resident principal of a web session.
func (u *AuthUC) LogoutUser(ctx context.Context, sessionID string) error {
	return u.TerminatePrincipal(ctx, sessionID, models.PrincipalUser)
}

// LogoutAdmin terminates the admin principal of a web session.
func (u *AuthUC) LogoutAdmin(ctx context.Context, sessionID string) error {
	return u.TerminatePrincipal(ctx, sessionID, models.PrincipalAdmin)
}
