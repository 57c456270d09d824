// Package messaging delivers adapter notifications over an embedded NATS
// broker.
//
// Delivery is fire-and-forget: the adapter never fails an operation because a
// notification could not be published.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock_notifier.go -package=messagingmock github.com/KirkDiggler/npc-world-api/internal/messaging Notifier

// Notification channels, mapped 1:1 onto NATS subjects
const (
	ChannelPlayerPrefix = "world.player."
	ChannelNpcSpeech    = "world.npc.speech"
	ChannelNpcEvents    = "world.npc.events"
	ChannelBroadcast    = "world.broadcast"
	ChannelError        = "world.error"
)

// PlayerChannel returns the per-player channel for direct messages
func PlayerChannel(playerID string) string {
	return ChannelPlayerPrefix + playerID
}

// Notifier publishes fire-and-forget notifications. Implementations must
// never surface delivery failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, channel string, payload any)
}

// Envelope is the wire shape of a published notification
type Envelope struct {
	Channel string    `json:"channel"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// NatsNotifierConfig holds the dependencies for the NATS notifier
type NatsNotifierConfig struct {
	Server *NatsServer
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *NatsNotifierConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Server == nil {
		vb.RequiredField("Server")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

// NatsNotifier publishes notifications as JSON envelopes on NATS subjects
type NatsNotifier struct {
	server *NatsServer
	clock  clock.Clock
}

// NewNatsNotifier creates a notifier backed by an embedded NATS server
func NewNatsNotifier(cfg *NatsNotifierConfig) (*NatsNotifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &NatsNotifier{
		server: cfg.Server,
		clock:  cfg.Clock,
	}, nil
}

// Ensure NatsNotifier implements Notifier
var _ Notifier = (*NatsNotifier)(nil)

// Notify publishes the payload on the channel's subject. Failures are
// logged, never returned.
func (n *NatsNotifier) Notify(ctx context.Context, channel string, payload any) {
	data, err := json.Marshal(Envelope{
		Channel: channel,
		Payload: payload,
		At:      n.clock.Now(),
	})
	if err != nil {
		slog.WarnContext(ctx, "dropping unmarshalable notification", "channel", channel, "error", err)
		return
	}

	if err := n.server.Publish(channel, data); err != nil {
		slog.WarnContext(ctx, "notification publish failed", "channel", channel, "error", err)
	}
}

// Noop discards all notifications; used by tests and the demo command
type Noop struct{}

// Notify discards the notification
func (Noop) Notify(context.Context, string, any) {}

// Ensure Noop implements Notifier
var _ Notifier = Noop{}
