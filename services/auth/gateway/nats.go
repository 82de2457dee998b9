package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ekolek/ekolek/internal/pkg/constants"
	"github.com/ekolek/ekolek/internal/pkg/models"
	natspkg "github.com/ekolek/ekolek/internal/pkg/nats"
	"github.com/ekolek/ekolek/services/auth"
)

// AuthGW publishes OTP delivery events to the notification workers over
// NATS. The engine never learns whether the carrier accepted the
// message; a nil return only means the event reached the bus.
type AuthGW struct {
	client *natspkg.Client
}

// NewAuthGW creates a new gateway instance
func NewAuthGW(client *natspkg.Client) auth.AuthGW {
	return &AuthGW{client: client}
}

// PublishOTPDelivery publishes an OTP delivery event on the subject for
// its channel.
func (g *AuthGW) PublishOTPDelivery(ctx context.Context, event *models.OTPDeliveryEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery event: %w", err)
	}

	subject := constants.SubjectNotifySMS
	if event.Channel == models.ChannelEmail {
		subject = constants.SubjectNotifyEmail
	}

	return g.client.Publish(subject, data)
}
