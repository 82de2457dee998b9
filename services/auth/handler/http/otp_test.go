package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/ekolek/ekolek/services/auth/apperr"
	"github.com/ekolek/ekolek/services/auth/mocks"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func handlerConfig() *models.Config {
	return &models.Config{
		Session: models.SessionConfig{
			TTLMinutes: 120,
			CookieName: "ekolek_sid",
		},
	}
}

func TestRequestOTP_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "channel": "sms", "purpose": "login"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/request", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		RequestOTP(gomock.Any(), gomock.Any()).
		Return(&models.OTPIssued{
			Contact:     "+639171234567",
			Purpose:     models.PurposeLogin,
			ExpiresAt:   time.Now().Add(5 * time.Minute),
			ResendAfter: 60,
		}, nil)

	// Act
	err := handler.RequestOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "OTP sent successfully", response["message"])

	// The issued payload never carries the code
	assert.NotContains(t, rec.Body.String(), "code")
}

func TestRequestOTP_MissingContact(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"channel": "sms", "purpose": "login"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/request", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Act
	err := handler.RequestOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]interface{}
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "Contact is required", response["error"])
}

func TestRequestOTP_InvalidChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "channel": "fax", "purpose": "login"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/request", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.RequestOTP(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestOTP_RateLimitedSetsRetryAfter(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "channel": "sms", "purpose": "login"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/request", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		RequestOTP(gomock.Any(), gomock.Any()).
		Return(nil, &apperr.RateLimitedError{RetryAfter: 40 * time.Second})

	// Act
	err := handler.RequestOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "40", rec.Header().Get("Retry-After"))
}

func TestRequestOTP_DeliveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "channel": "sms", "purpose": "login"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/request", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		RequestOTP(gomock.Any(), gomock.Any()).
		Return(nil, apperr.ErrDeliveryFailed)

	err := handler.RequestOTP(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVerifyOTP_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "purpose": "login", "code": "042517"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/verify", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *models.VerifyRequest) (*models.AuthResponse, error) {
			// The handler binds the minted web session onto the request
			assert.NotEmpty(t, req.SessionID)
			return &models.AuthResponse{
				Token:     "jwt-token",
				AccountID: "res-1",
				Role:      "resident",
				ExpiresAt: time.Now().Add(time.Hour).Unix(),
			}, nil
		})

	// Act
	err := handler.VerifyOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// A new session cookie was minted for the browser
	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == "ekolek_sid" {
			found = true
			assert.NotEmpty(t, cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie should be set")
}

func TestVerifyOTP_ReusesExistingSessionCookie(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "purpose": "login", "code": "042517"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/verify", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: "ekolek_sid", Value: "sid-existing"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *models.VerifyRequest) (*models.AuthResponse, error) {
			assert.Equal(t, "sid-existing", req.SessionID)
			return &models.AuthResponse{Token: "jwt-token", AccountID: "res-1", Role: "resident"}, nil
		})

	// Act
	err := handler.VerifyOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "no new cookie when one is presented")
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "purpose": "login", "code": "000000"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/verify", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mockUC.EXPECT().
		VerifyOTP(gomock.Any(), gomock.Any()).
		Return(nil, &apperr.InvalidCodeError{AttemptsRemaining: 2})

	// Act
	err := handler.VerifyOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var response map[string]interface{}
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "2 attempts remaining")
}

func TestVerifyOTP_StatusPerChallengeState(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"expired", apperr.ErrChallengeExpired, http.StatusGone},
		{"exhausted", apperr.ErrAttemptsExceeded, http.StatusGone},
		{"consumed", apperr.ErrChallengeConsumed, http.StatusConflict},
		{"missing", apperr.ErrChallengeNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockAuthUC(ctrl)
			handler := NewOTPHandler(mockUC, handlerConfig())

			e := echo.New()
			requestBody := `{"contact": "09171234567", "purpose": "login", "code": "042517"}`
			req := httptest.NewRequest(http.MethodPost, "/auth/otp/verify", strings.NewReader(requestBody))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mockUC.EXPECT().
				VerifyOTP(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			err := handler.VerifyOTP(c)

			assert.NoError(t, err)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestVerifyOTP_MissingCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockAuthUC(ctrl)
	handler := NewOTPHandler(mockUC, handlerConfig())

	e := echo.New()
	requestBody := `{"contact": "09171234567", "purpose": "login"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/verify", strings.NewReader(requestBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.VerifyOTP(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
