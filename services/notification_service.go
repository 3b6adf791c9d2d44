package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rachaAPI/internal/gateway"
	"rachaAPI/internal/notification"
)

type NotificationService struct {
	gw       gateway.Gateway
	provider notification.PushProvider
}

func NewNotificationService(gw gateway.Gateway) *NotificationService {
	return &NotificationService{gw: gw}
}

// SetPushProvider injects the push backend. Until one is set, sends are
// silently skipped.
func (s *NotificationService) SetPushProvider(p notification.PushProvider) {
	s.provider = p
}

func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) error {
	if token == "" {
		return fmt.Errorf("device token is required")
	}
	return s.gw.RegisterDeviceToken(ctx, userID, token, platform)
}

// SendStreakMilestone pushes a celebration to every registered device. Callers
// treat this as best-effort.
func (s *NotificationService) SendStreakMilestone(ctx context.Context, userID uuid.UUID, days int, body string) error {
	if s.provider == nil {
		return nil
	}

	tokens, err := s.gw.ListDeviceTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	title := fmt.Sprintf("%d-day streak!", days)
	data := map[string]string{"type": "streak_milestone", "days": fmt.Sprintf("%d", days)}
	return s.provider.SendPush(ctx, tokens, title, body, data)
}
