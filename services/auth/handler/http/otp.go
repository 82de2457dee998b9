package http

import (
	"net/http"

	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/internal/utils"
	"github.com/ekolek/ekolek/services/auth"
	"github.com/labstack/echo/v4"
)

// OTPHandler handles HTTP requests for OTP issuance and verification
type OTPHandler struct {
	authUC  auth.AuthUC
	session *cookieManager
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(authUC auth.AuthUC, cfg *models.Config) *OTPHandler {
	return &OTPHandler{
		authUC:  authUC,
		session: newCookieManager(cfg),
	}
}

// RequestOTP handles OTP issuance requests
func (h *OTPHandler) RequestOTP(c echo.Context) error {
	var req models.OTPRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid request payload for OTP request",
			logger.ErrorField(err),
			logger.String("endpoint", "RequestOTP"),
		)
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Contact == "" {
		return utils.BadRequestResponse(c, "Contact is required")
	}
	if !req.Channel.Valid() {
		return utils.BadRequestResponse(c, "Channel must be sms or email")
	}
	if !req.Purpose.Valid() {
		return utils.BadRequestResponse(c, "Unknown purpose")
	}

	issued, err := h.authUC.RequestOTP(c.Request().Context(), &req)
	if err != nil {
		return respondAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent successfully", issued)
}

// VerifyOTP handles OTP verification requests
func (h *OTPHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if req.Contact == "" || req.Code == "" {
		return utils.BadRequestResponse(c, "Contact and code are required")
	}
	if !req.Purpose.Valid() {
		return utils.BadRequestResponse(c, "Unknown purpose")
	}

	// Reuse the browser session or start one; mobile clients ignore
	// the cookie and only use the token.
	req.SessionID = h.session.ensure(c)

	resp, err := h.authUC.VerifyOTP(c.Request().Context(), &req)
	if err != nil {
		return respondAuthError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Verification successful", resp)
}
