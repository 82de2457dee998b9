package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ekolek/ekolek/internal/utils"
	"github.com/ekolek/ekolek/services/auth/apperr"
	"github.com/labstack/echo/v4"
)

// respondAuthError translates the usecase error taxonomy into HTTP
// responses. Every kind keeps its own status and message so the UI can
// show "code expired" and "wrong code, 2 attempts left" differently.
func respondAuthError(c echo.Context, err error) error {
	var rateLimited *apperr.RateLimitedError
	if errors.As(err, &rateLimited) {
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(rateLimited.RetryAfter.Seconds())))
		return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, rateLimited.Error())
	}

	var invalidCode *apperr.InvalidCodeError
	if errors.As(err, &invalidCode) {
		return utils.ErrorResponseHandler(c, http.StatusUnauthorized, invalidCode.Error())
	}

	switch {
	case errors.Is(err, apperr.ErrDeliveryFailed):
		return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Could not send the code, please try again")
	case errors.Is(err, apperr.ErrChallengeNotFound):
		return utils.NotFoundResponse(c, "No pending code for this contact, request a new one")
	case errors.Is(err, apperr.ErrChallengeExpired):
		return utils.ErrorResponseHandler(c, http.StatusGone, "Code expired, request a new one")
	case errors.Is(err, apperr.ErrAttemptsExceeded):
		return utils.ErrorResponseHandler(c, http.StatusGone, "Too many wrong attempts, request a new code")
	case errors.Is(err, apperr.ErrChallengeConsumed):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "Code already used, request a new one")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return utils.UnauthorizedResponse(c, "Invalid username or password")
	case errors.Is(err, apperr.ErrAccountNotFound):
		return utils.NotFoundResponse(c, "Account not found")
	case errors.Is(err, apperr.ErrContactTaken):
		return utils.ErrorResponseHandler(c, http.StatusConflict, "Contact is already registered")
	}

	return utils.InternalServerErrorResponse(c, "Something went wrong")
}
