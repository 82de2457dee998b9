package handler

import (
	"net/http"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/internal/utils"
	authhttp "github.com/ekolek/ekolek/services/auth/handler/http"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Handler coordinates the HTTP handlers for the auth service
type Handler struct {
	otpHandler     *authhttp.OTPHandler
	sessionHandler *authhttp.SessionHandler
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	otpHandler *authhttp.OTPHandler,
	sessionHandler *authhttp.SessionHandler,
	cfg *models.Config,
) *Handler {
	return &Handler{
		otpHandler:     otpHandler,
		sessionHandler: sessionHandler,
		cfg:            cfg,
	}
}

// GetJWTMiddleware returns the configured JWT middleware for the mobile API
func (h *Handler) GetJWTMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(h.cfg.JWT.Secret),
	})
}

// RegisterRoutes registers all routes. The OTP request endpoints go
// through the supplied per-IP rate limiter in addition to the engine's
// own per-contact cooldown.
func (h *Handler) RegisterRoutes(e *echo.Echo, otpLimiter echo.MiddlewareFunc) {
	// Public routes (no authentication required)
	authGroup := e.Group("/auth")
	authGroup.POST("/register", h.sessionHandler.Register, otpLimiter)
	authGroup.POST("/otp/request", h.otpHandler.RequestOTP, otpLimiter)
	authGroup.POST("/otp/verify", h.otpHandler.VerifyOTP)
	authGroup.POST("/logout", h.sessionHandler.LogoutUser)
	authGroup.POST("/password/forgot", h.sessionHandler.ForgotPassword, otpLimiter)
	authGroup.POST("/password/reset", h.sessionHandler.ResetPassword)

	adminGroup := e.Group("/admin")
	adminGroup.POST("/login", h.sessionHandler.LoginAdmin)
	adminGroup.POST("/logout", h.sessionHandler.LogoutAdmin)

	// Mobile API routes behind JWT
	apiGroup := e.Group("/api", h.GetJWTMiddleware())
	apiGroup.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return utils.UnauthorizedResponse(c, "Invalid token")
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.UnauthorizedResponse(c, "Invalid token claims")
		}
		return utils.SuccessResponse(c, http.StatusOK, "", map[string]interface{}{
			"account_id": claims["account_id"],
			"contact":    claims["contact"],
			"role":       claims["role"],
		})
	})
}
