package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"voyage-booking/models"

	pubnub "github.com/pubnub/go/v7"
)

// Publisher delivers a message to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

// PubNubPublisher publishes messages through PubNub.
type PubNubPublisher struct {
	pn *pubnub.PubNub
}

func NewPubNubPublisher(publishKey, subscribeKey, userID string) *PubNubPublisher {
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(userID))
	pnCfg.PublishKey = publishKey
	pnCfg.SubscribeKey = subscribeKey

	return &PubNubPublisher{pn: pubnub.NewPubNub(pnCfg)}
}

func (p *PubNubPublisher) Publish(ctx context.Context, channel string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, _, err := p.pn.Publish().
		Channel(channel).
		Message(message).
		Execute(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// EventNotifier publishes a VoyageEvent after every successful state change.
// Publishing is best effort: failures are logged and never reach the transcript.
// A nil notifier or one without a publisher does nothing.
type EventNotifier struct {
	publisher Publisher
	channel   string
	sessionID string
	now       func() time.Time
}

func NewEventNotifier(publisher Publisher, channel, sessionID string) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		channel:   channel,
		sessionID: sessionID,
		now:       time.Now,
	}
}

func (n *EventNotifier) VoyageInitialized(ctx context.Context, v *models.Voyage) {
	n.publish(ctx, n.event(models.EventVoyageInitialized, v, nil, v.BaseFare))
}

func (n *EventNotifier) TicketsSold(ctx context.Context, t *models.Ticket) {
	n.publish(ctx, n.event(models.EventTicketsSold, t.Voyage, t.Seats, t.Amount))
}

func (n *EventNotifier) TicketsRefunded(ctx context.Context, t *models.Ticket) {
	n.publish(ctx, n.event(models.EventTicketsRefunded, t.Voyage, t.Seats, t.Amount))
}

func (n *EventNotifier) VoyageCancelled(ctx context.Context, c *models.Cancellation) {
	n.publish(ctx, n.event(models.EventVoyageCancelled, c.Voyage, nil, c.Clawback))
}

func (n *EventNotifier) event(typ models.EventType, v *models.Voyage, seats []int, amount float64) models.VoyageEvent {
	ev := models.VoyageEvent{
		Type:     typ,
		VoyageID: v.ID,
		Kind:     v.Kind,
		Route:    v.Route(),
		Seats:    seats,
		Amount:   models.Cents(amount),
		Revenue:  models.Cents(v.Revenue),
	}
	if n != nil {
		ev.SessionID = n.sessionID
		ev.At = n.now().UTC()
	}
	return ev
}

func (n *EventNotifier) publish(ctx context.Context, ev models.VoyageEvent) {
	if n == nil || n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, n.channel, ev); err != nil {
		slog.Warn("Failed to publish voyage event",
			"type", ev.Type,
			"voyage_id", ev.VoyageID,
			"channel", n.channel,
			"error", err,
		)
	}
}
