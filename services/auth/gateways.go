package auth

import (
	"context"

	"github.com/ekolek/ekolek/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/ekolek/ekolek/services/auth AuthGW

// AuthGW defines the auth gateway interface
type AuthGW interface {
	// PublishOTPDelivery hands a code to the delivery pipeline. The
	// engine treats this as fire-and-forget: a nil return means the
	// message was accepted for transmission, not that it arrived.
	PublishOTPDelivery(ctx context.Context, event *models.OTPDeliveryEvent) error
}
