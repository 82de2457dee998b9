package http

import (
	"net/http"

	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/internal/utils"
	"github.com/ekolek/ekolek/services/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// cookieManager reads and writes the session ID cookie.
type cookieManager struct {
	cookieName string
	ttlMinutes int
}

func newCookieManager(cfg *models.Config) *cookieManager {
	return &cookieManager{
		cookieName: cfg.Session.CookieName,
		ttlMinutes: cfg.Session.TTLMinutes,
	}
}

// current returns the session ID presented by the client, or "".
func (m *cookieManager) current(c echo.Context) string {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ensure returns the client's session ID, minting one and setting the
// cookie when the client has none yet.
func (m *cookieManager) ensure(c echo.Context) string {
	if sid := m.current(c); sid != "" {
		return sid
	}

	sid := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   m.ttlMinutes * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// SessionHandler handles registration, logins, logouts and password
// resets for the web session.
type SessionHandler struct {
	authUC  auth.AuthUC
	session *cookieManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authUC auth.AuthUC, cfg *models.Config) *SessionHandler {
	return &SessionHandler{
		authUC:  authUC,
		session: newCookieManager(cfg),
	}
}

// Register handles resident registration requests
func (h *SessionHandler) Register(c echo.Context) error {
	var resident models.Resident
	if err := c.Bind(&resident); err != nil {
		logger.Warn("Invalid request payload for registration",
			logger.ErrorField(err),
			logger.String("endpoint", "Register"),
		)
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if resident.Contact == "" {
		return utils.BadRequestResponse(c, "Contact is required")
	}

	issued, err := h.authUC.RegisterResident(c.Request().Context(), &resident)
	if err != nil {
		return respondAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Registration received, verification code sent", issued)
}

// LoginAdmin handles admin password login requests
func (h *SessionHandler) LoginAdmin(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Username == "" || req.Password == "" {
		return utils.BadRequestResponse(c, "Username and password are required")
	}

	req.SessionID = h.session.ensure(c)

	admin, err := h.authUC.LoginAdmin(c.Request().Context(), &req)
	if err != nil {
		return respondAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Login successful", map[string]string{
		"account_id": admin.ID.String(),
		"role":       admin.Role,
	})
}

// LogoutUser handles resident logout. The admin principal sharing the
// same browser session stays logged in.
func (h *SessionHandler) LogoutUser(c echo.Context) error {
	sid := h.session.current(c)

	if err := h.authUC.LogoutUser(c.Request().Context(), sid); err != nil {
		logger.Error("Failed to log out resident", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to log out")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// LogoutAdmin handles admin logout. The resident principal sharing the
// same browser session stays logged in.
func (h *SessionHandler) LogoutAdmin(c echo.Context) error {
	sid := h.session.current(c)

	if err := h.authUC.LogoutAdmin(c.Request().Context(), sid); err != nil {
		logger.Error("Failed to log out admin", logger.ErrorField(err))
		return utils.InternalServerErrorResponse(c, "Failed to log out")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// ForgotPassword starts a password-reset flow for a resident contact
func (h *SessionHandler) ForgotPassword(c echo.Context) error {
	var req models.OTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Contact == "" {
		return utils.BadRequestResponse(c, "Contact is required")
	}
	if !req.Channel.Valid() {
		return utils.BadRequestResponse(c, "Channel must be sms or email")
	}

	sid := h.session.ensure(c)

	issued, err := h.authUC.BeginPasswordReset(c.Request().Context(), sid, req.Contact, req.Channel)
	if err != nil {
		return respondAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Reset code sent", issued)
}

// ResetPassword completes a password-reset flow
func (h *SessionHandler) ResetPassword(c echo.Context) error {
	var req models.PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Contact == "" || req.Code == "" || req.NewPassword == "" {
		return utils.BadRequestResponse(c, "Contact, code and new password are required")
	}

	req.SessionID = h.session.current(c)

	if err := h.authUC.CompletePasswordReset(c.Request().Context(), &req); err != nil {
		return respondAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password updated", nil)
}
