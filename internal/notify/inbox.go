package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"training-booking-api/internal/model"
)

type NotificationStore interface {
	InsertNotification(ctx context.Context, n *model.Notification) error
	FindNotifications(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// Inbox persists every event as a Notification the user can list later.
type Inbox struct {
	store NotificationStore
}

func NewInbox(st NotificationStore) *Inbox {
	return &Inbox{store: st}
}

func (i *Inbox) Emit(ctx context.Context, userID string, kind Kind, c Context) error {
	title, body := Render(kind, c)
	n := &model.Notification{
		ID:        "notif_" + uuid.NewString(),
		UserID:    userID,
		Kind:      string(kind),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := i.store.InsertNotification(ctx, n); err != nil {
		return fmt.Errorf("inbox: %w", err)
	}
	return nil
}

func (i *Inbox) List(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	return i.store.FindNotifications(ctx, userID, unreadOnly)
}

func (i *Inbox) MarkRead(ctx context.Context, id, userID string) error {
	return i.store.MarkNotificationRead(ctx, id, userID)
}

func (i *Inbox) MarkAllRead(ctx context.Context, userID string) error {
	return i.store.MarkAllNotificationsRead(ctx, userID)
}

// Log writes the rendered message to the process log.
type Log struct{}

func (Log) Emit(_ context.Context, userID string, kind Kind, c Context) error {
	title, body := Render(kind, c)
	log.Printf("[notify] user=%s kind=%s %s :: %s", userID, kind, title, body)
	return nil
}
