package booking

import (
	"context"
	"time"

	"training-booking-api/internal/model"
	"training-booking-api/internal/store"
)

// UserStore is the slice of the user collection the core reads and mutates.
type UserStore interface {
	UserByID(ctx context.Context, id string) (*model.User, error)
	IncrementCredits(ctx context.Context, id string, delta int) error
	DecrementCredits(ctx context.Context, id string, n int) (bool, error)
	SetUnlimited(ctx context.Context, id string) error
}

type BookingStore interface {
	InsertBooking(ctx context.Context, b *model.Booking) error
	BookingByID(ctx context.Context, id string) (*model.Booking, error)
	FindBookings(ctx context.Context, f store.BookingFilter) ([]model.Booking, error)
	CountBookings(ctx context.Context, f store.BookingFilter) (int, error)
	DeleteBooking(ctx context.Context, id string) error
}

type WaitlistStore interface {
	InsertWaitlistEntry(ctx context.Context, e *model.WaitlistEntry) error
	WaitlistEntryByID(ctx context.Context, id string) (*model.WaitlistEntry, error)
	FindWaitlist(ctx context.Context, f store.WaitlistFilter) ([]model.WaitlistEntry, error)
	CountWaitlist(ctx context.Context, f store.WaitlistFilter) (int, error)
	DeleteWaitlistEntry(ctx context.Context, id string) error
	UpdateWaitlistPosition(ctx context.Context, id string, position int) error
}

// Store is everything the booking service needs from persistence.
type Store interface {
	UserStore
	BookingStore
	WaitlistStore
}

// TimeDisplayer renders the human-readable window of a slot.
type TimeDisplayer interface {
	TimeDisplay(ctx context.Context, slot model.TimeSlot) string
}

func slotBookings(date time.Time, slot model.TimeSlot) store.BookingFilter {
	return store.BookingFilter{Date: date, TimeSlot: slot}
}

func slotWaitlist(date time.Time, slot model.TimeSlot) store.WaitlistFilter {
	return store.WaitlistFilter{Date: date, TimeSlot: slot}
}
