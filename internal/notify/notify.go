// Package notify turns booking events into user-visible messages and hands
// them to whichever delivery channels are configured.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Kind string

const (
	Confirmation          Kind = "confirmation"
	RecurringConfirmation Kind = "recurring_confirmation"
	WaitlistPromoted      Kind = "waitlist_promoted"
	WaitlistNoCredits     Kind = "waitlist_no_credits"
)

// Context carries the values a message is rendered from.
type Context struct {
	Date        time.Time
	TimeDisplay string
	Count       int
}

type Emitter interface {
	Emit(ctx context.Context, userID string, kind Kind, c Context) error
}

// FormatDate renders a session date the way messages show it.
func FormatDate(t time.Time) string {
	return t.UTC().Format("Monday, January 2")
}

// Render produces the title and body for kind.
func Render(kind Kind, c Context) (title, body string) {
	when := FormatDate(c.Date)
	switch kind {
	case Confirmation:
		return "Booking Confirmed",
			fmt.Sprintf("Your session on %s at %s is confirmed.", when, c.TimeDisplay)
	case RecurringConfirmation:
		noun := "sessions"
		if c.Count == 1 {
			noun = "session"
		}
		return "Recurring Booking Confirmed",
			fmt.Sprintf("%d %s booked, starting %s at %s.", c.Count, noun, when, c.TimeDisplay)
	case WaitlistPromoted:
		return "You're In!",
			fmt.Sprintf("A spot opened up on %s at %s and you've been booked from the waitlist.", when, c.TimeDisplay)
	case WaitlistNoCredits:
		return "Waitlist Spot Available",
			fmt.Sprintf("A spot opened up on %s at %s, but you have no credits left. Purchase a package to book.", when, c.TimeDisplay)
	}
	return string(kind), when
}

// Multi fans an event out to every emitter and joins their errors.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, userID string, kind Kind, c Context) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, userID, kind, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
