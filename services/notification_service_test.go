package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachaAPI/internal/gateway"
)

// recordingProvider captures pushes so tests can assert on fan-out.
type recordingProvider struct {
	tokens []string
	titles []string
	bodies []string
}

func (p *recordingProvider) SendPush(_ context.Context, tokens []string, title, body string, _ map[string]string) error {
	p.tokens = append(p.tokens, tokens...)
	p.titles = append(p.titles, title)
	p.bodies = append(p.bodies, body)
	return nil
}

func TestRegisterDeviceRequiresToken(t *testing.T) {
	svc := NewNotificationService(gateway.NewMemory())
	err := svc.RegisterDevice(context.Background(), uuid.New(), "", "ios")
	assert.Error(t, err)
}

func TestRegisterDeviceDeduplicates(t *testing.T) {
	mem := gateway.NewMemory()
	svc := NewNotificationService(mem)
	userID, err := mem.CreateUser(context.Background(), "user_push", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.RegisterDevice(context.Background(), userID, "token-a", "ios"))
	require.NoError(t, svc.RegisterDevice(context.Background(), userID, "token-a", "ios"))

	tokens, err := mem.ListDeviceTokens(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestSendStreakMilestoneSkipsWithoutProvider(t *testing.T) {
	mem := gateway.NewMemory()
	svc := NewNotificationService(mem)
	userID, err := mem.CreateUser(context.Background(), "user_push", "", "")
	require.NoError(t, err)

	assert.NoError(t, svc.SendStreakMilestone(context.Background(), userID, 7, "One full week!"))
}

func TestSendStreakMilestoneFansOutToDevices(t *testing.T) {
	mem := gateway.NewMemory()
	svc := NewNotificationService(mem)
	provider := &recordingProvider{}
	svc.SetPushProvider(provider)

	userID, err := mem.CreateUser(context.Background(), "user_push", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.RegisterDevice(context.Background(), userID, "token-a", "ios"))
	require.NoError(t, svc.RegisterDevice(context.Background(), userID, "token-b", "android"))

	require.NoError(t, svc.SendStreakMilestone(context.Background(), userID, 7, "One full week!"))

	assert.ElementsMatch(t, []string{"token-a", "token-b"}, provider.tokens)
	require.Len(t, provider.titles, 1)
	assert.Equal(t, "7-day streak!", provider.titles[0])
}

func TestSendStreakMilestoneNoDevices(t *testing.T) {
	mem := gateway.NewMemory()
	svc := NewNotificationService(mem)
	provider := &recordingProvider{}
	svc.SetPushProvider(provider)

	userID, err := mem.CreateUser(context.Background(), "user_push", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SendStreakMilestone(context.Background(), userID, 30, "Unstoppable"))
	assert.Empty(t, provider.tokens)
}
