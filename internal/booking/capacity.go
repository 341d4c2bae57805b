package booking

import (
	"context"
	"fmt"
	"time"

	"training-booking-api/internal/model"
)

// SlotView is the occupancy of one slot as seen by one user.
type SlotView struct {
	Date           time.Time
	TimeSlot       model.TimeSlot
	TimeDisplay    string
	Bookings       []model.Booking
	AvailableSpots int
	IsFull         bool
	UserBooked     bool
	WaitlistCount  int
	UserOnWaitlist bool
	// UserWaitlistPosition is 0 when the user is not waiting.
	UserWaitlistPosition int
}

// Slot reads the capacity view for (date, slot). It has no side effects.
func (s *Service) Slot(ctx context.Context, userID string, date time.Time, slot model.TimeSlot) (*SlotView, error) {
	date = model.Day(date)
	bookings, err := s.bookings.FindBookings(ctx, slotBookings(date, slot))
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	entries, err := s.waitlist.FindWaitlist(ctx, slotWaitlist(date, slot))
	if err != nil {
		return nil, fmt.Errorf("find waitlist: %w", err)
	}

	v := &SlotView{
		Date:           date,
		TimeSlot:       slot,
		TimeDisplay:    s.times.TimeDisplay(ctx, slot),
		Bookings:       bookings,
		AvailableSpots: max(model.MaxBookingsPerSlot-len(bookings), 0),
		IsFull:         len(bookings) >= model.MaxBookingsPerSlot,
		WaitlistCount:  len(entries),
	}
	for _, b := range bookings {
		if b.UserID == userID {
			v.UserBooked = true
			break
		}
	}
	for _, e := range entries {
		if e.UserID == userID {
			v.UserOnWaitlist = true
			v.UserWaitlistPosition = e.Position
			break
		}
	}
	return v, nil
}

// Day returns the view of every time slot on date.
func (s *Service) Day(ctx context.Context, userID string, date time.Time) ([]SlotView, error) {
	out := make([]SlotView, 0, len(model.TimeSlots))
	for _, slot := range model.TimeSlots {
		v, err := s.Slot(ctx, userID, date, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
