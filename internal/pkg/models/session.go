package models

import "strings"

// PrincipalType identifies which authenticated identity a set of session
// keys belongs to. A single browser session record can hold both a
// resident and an admin principal at the same time.
type PrincipalType string

const (
	PrincipalUser  PrincipalType = "user"
	PrincipalAdmin PrincipalType = "admin"
)

// TransientPasswordReset is the namespace for in-flight password-reset
// state. It belongs to neither principal and is cleared on its own.
const TransientPasswordReset = "pwreset"

// Namespace returns the session key prefix owned by the principal,
// including the trailing separator.
func (p PrincipalType) Namespace() string {
	return string(p) + "."
}

// Key returns the full session key for a field inside the principal's
// namespace.
func (p PrincipalType) Key(field string) string {
	return p.Namespace() + field
}

// TransientKey returns the full session key for a field inside a
// transient namespace.
func TransientKey(namespace, field string) string {
	return namespace + "." + field
}

// InNamespace reports whether the session key belongs to the given
// namespace (a principal namespace or a transient one).
func InNamespace(key, namespace string) bool {
	if !strings.HasSuffix(namespace, ".") {
		namespace += "."
	}
	return strings.HasPrefix(key, namespace)
}

// Principal holds the identity markers written into a session when a
// principal authenticates.
type Principal struct {
	AccountID string `json:"account_id"`
	Contact   string `json:"contact"`
	Role      string `json:"role"`
}

// SessionKeys converts the principal into the session fields stored
// under its namespace.
func (p Principal) SessionKeys(ptype PrincipalType) map[string]string {
	return map[string]string{
		ptype.Key("account_id"): p.AccountID,
		ptype.Key("contact"):    p.Contact,
		ptype.Key("role"):       p.Role,
	}
}

// AdminLoginRequest represents an admin password login request
type AdminLoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	SessionID string `json:"-"`
}

// PasswordResetRequest completes a password-reset flow for a contact.
type PasswordResetRequest struct {
	Contact     string `json:"contact" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
	SessionID   string `json:"-"`
}
