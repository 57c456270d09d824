package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/npc-world-api/internal/messaging"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
)

func TestPlayerChannel(t *testing.T) {
	assert.Equal(t, "world.player.player_123", messaging.PlayerChannel("player_123"))
}

func TestNatsNotifierConfigValidation(t *testing.T) {
	_, err := messaging.NewNatsNotifier(nil)
	assert.Error(t, err)

	_, err = messaging.NewNatsNotifier(&messaging.NatsNotifierConfig{})
	assert.Error(t, err)
}

func TestNotifySwallowsPublishFailures(t *testing.T) {
	// A server that was never started rejects publishes; Notify must not
	// panic or surface the failure.
	srv, err := messaging.NewNatsServer(messaging.WithPort(0))
	require.NoError(t, err)

	notifier, err := messaging.NewNatsNotifier(&messaging.NatsNotifierConfig{
		Server: srv,
		Clock:  clock.NewFixed(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	notifier.Notify(context.Background(), messaging.ChannelBroadcast, map[string]any{"message": "hi"})
}

func TestNoopNotifier(t *testing.T) {
	messaging.Noop{}.Notify(context.Background(), messaging.ChannelNpcSpeech, "ignored")
}
