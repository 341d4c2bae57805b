package notify

import (
	"context"

	"training-booking-api/internal/model"
)

// RoutingKeyPrefix prefixes every published event, e.g. notification.waitlist_promoted.
const RoutingKeyPrefix = "notification."

// JSONPublisher is satisfied by mq.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Event is the payload published for downstream delivery (push, email).
type Event struct {
	UserID      string `json:"user_id"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Date        string `json:"date"`
	TimeDisplay string `json:"time_display,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// Publisher forwards events to a message broker.
type Publisher struct {
	pub JSONPublisher
}

func NewPublisher(pub JSONPublisher) *Publisher {
	return &Publisher{pub: pub}
}

func (p *Publisher) Emit(ctx context.Context, userID string, kind Kind, c Context) error {
	title, body := Render(kind, c)
	return p.pub.PublishJSON(ctx, RoutingKeyPrefix+string(kind), Event{
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Body:        body,
		Date:        model.DateString(c.Date),
		TimeDisplay: c.TimeDisplay,
		Count:       c.Count,
	})
}
