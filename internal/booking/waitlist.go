package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"training-booking-api/internal/model"
	"training-booking-api/internal/notify"
	"training-booking-api/internal/store"
)

// JoinWaitlist queues user for a full slot.
func (s *Service) JoinWaitlist(ctx context.Context, user *model.User, date time.Time, slot model.TimeSlot) (*model.WaitlistEntry, error) {
	date = model.Day(date)
	ctx, span := tracer.Start(ctx, "waitlist.Join", slotAttrs(date, slot))
	defer span.End()

	unlock := s.locks.lock(date, slot)
	defer unlock()

	booked, waitlisted, err := s.holds(ctx, user.ID, date, slot)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, ErrAlreadyBooked
	}
	if waitlisted {
		return nil, ErrAlreadyWaitlisted
	}
	n, err := s.bookings.CountBookings(ctx, slotBookings(date, slot))
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	if n < model.MaxBookingsPerSlot {
		return nil, ErrSlotNotFull
	}
	return s.join(ctx, user, date, slot)
}

// join appends user to the end of the queue. The caller holds the slot lock.
func (s *Service) join(ctx context.Context, user *model.User, date time.Time, slot model.TimeSlot) (*model.WaitlistEntry, error) {
	n, err := s.waitlist.CountWaitlist(ctx, slotWaitlist(date, slot))
	if err != nil {
		return nil, fmt.Errorf("count waitlist: %w", err)
	}
	e := &model.WaitlistEntry{
		ID:        newID("wait_"),
		UserID:    user.ID,
		UserName:  user.Name,
		Date:      date,
		TimeSlot:  slot,
		Position:  n + 1,
		CreatedAt: s.now().UTC(),
	}
	if err := s.waitlist.InsertWaitlistEntry(ctx, e); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyWaitlisted
		}
		return nil, fmt.Errorf("insert waitlist entry: %w", err)
	}
	return e, nil
}

// LeaveWaitlist removes an entry owned by requester (or any entry for an
// admin) and closes the gap it leaves.
func (s *Service) LeaveWaitlist(ctx context.Context, waitlistID string, requester *model.User) error {
	ctx, span := tracer.Start(ctx, "waitlist.Leave")
	defer span.End()

	e, err := s.waitlist.WaitlistEntryByID(ctx, waitlistID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load waitlist entry: %w", err)
	}
	if e.UserID != requester.ID && !requester.IsAdmin {
		return ErrForbidden
	}

	unlock := s.locks.lock(e.Date, e.TimeSlot)
	defer unlock()

	if err := s.waitlist.DeleteWaitlistEntry(ctx, e.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete waitlist entry: %w", err)
	}
	return s.reorder(context.WithoutCancel(ctx), e.Date, e.TimeSlot)
}

// promote hands a freed spot to the first eligible entry in the queue.
// Entries of deleted users are dropped; users without credit are told and
// dropped; the first user who can pay gets the booking and the scan stops.
// The caller holds the slot lock.
func (s *Service) promote(ctx context.Context, date time.Time, slot model.TimeSlot) (*model.Booking, error) {
	ctx, span := tracer.Start(ctx, "waitlist.Promote", slotAttrs(date, slot))
	defer span.End()

	entries, err := s.waitlist.FindWaitlist(ctx, slotWaitlist(date, slot))
	if err != nil {
		return nil, fmt.Errorf("find waitlist: %w", err)
	}
	span.SetAttributes(attribute.Int("waitlist.length", len(entries)))

	for _, e := range entries {
		n, err := s.bookings.CountBookings(ctx, slotBookings(date, slot))
		if err != nil {
			return nil, fmt.Errorf("count bookings: %w", err)
		}
		if n >= model.MaxBookingsPerSlot {
			return nil, nil
		}

		u, err := s.users.UserByID(ctx, e.UserID)
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("waitlist: dropping entry %s of deleted user %s", e.ID, e.UserID)
			if err := s.drop(ctx, e); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}

		if !s.ledger.HasSufficient(u, 1) {
			if err := s.skipNoCredits(ctx, u, e); err != nil {
				return nil, err
			}
			continue
		}

		b, err := s.allocate(ctx, u, date, slot, "", true)
		switch {
		case errors.Is(err, ErrInsufficientCredits):
			// balance changed after it was read
			if err := s.skipNoCredits(ctx, u, e); err != nil {
				return nil, err
			}
			continue
		case errors.Is(err, ErrAlreadyBooked):
			if err := s.drop(ctx, e); err != nil {
				return nil, err
			}
			continue
		case err != nil:
			return nil, err
		}

		// a promoted user must not stay queued for the slot they now hold
		if err := s.waitlist.DeleteWaitlistEntry(ctx, e.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			s.revoke(ctx, b)
			return nil, fmt.Errorf("delete waitlist entry: %w", err)
		}
		s.notify(ctx, u.ID, notify.WaitlistPromoted, notify.Context{Date: date, TimeDisplay: b.TimeDisplay})
		return b, s.reorder(ctx, date, slot)
	}
	return nil, nil
}

func (s *Service) skipNoCredits(ctx context.Context, u *model.User, e model.WaitlistEntry) error {
	s.notify(ctx, u.ID, notify.WaitlistNoCredits, notify.Context{
		Date: e.Date, TimeDisplay: s.times.TimeDisplay(ctx, e.TimeSlot),
	})
	return s.drop(ctx, e)
}

// drop deletes one entry and renumbers the rest of its queue.
// revoke takes back a promotion whose waitlist entry could not be removed.
func (s *Service) revoke(ctx context.Context, b *model.Booking) {
	if err := s.bookings.DeleteBooking(ctx, b.ID); err != nil {
		log.Printf("waitlist: revoke booking %s: %v", b.ID, err)
		return
	}
	if err := s.ledger.Refund(ctx, b.UserID, 1); err != nil {
		log.Printf("waitlist: refund revoked booking %s: %v", b.ID, err)
	}
}

func (s *Service) drop(ctx context.Context, e model.WaitlistEntry) error {
	if err := s.waitlist.DeleteWaitlistEntry(ctx, e.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("delete waitlist entry: %w", err)
	}
	return s.reorder(ctx, e.Date, e.TimeSlot)
}

// reorder renumbers a queue to 1..N keeping its order. Only entries whose
// position changes are written.
func (s *Service) reorder(ctx context.Context, date time.Time, slot model.TimeSlot) error {
	entries, err := s.waitlist.FindWaitlist(ctx, slotWaitlist(date, slot))
	if err != nil {
		return fmt.Errorf("find waitlist: %w", err)
	}
	for i, e := range entries {
		if e.Position == i+1 {
			continue
		}
		if err := s.waitlist.UpdateWaitlistPosition(ctx, e.ID, i+1); err != nil {
			return fmt.Errorf("renumber %s: %w", e.ID, err)
		}
	}
	return nil
}

// WaitlistView is one slot's queue as seen by one user.
type WaitlistView struct {
	Entries []model.WaitlistEntry
	Total   int
	// UserPosition is 0 when the user is not waiting.
	UserPosition int
}

func (s *Service) SlotWaitlist(ctx context.Context, userID string, date time.Time, slot model.TimeSlot) (*WaitlistView, error) {
	entries, err := s.waitlist.FindWaitlist(ctx, slotWaitlist(model.Day(date), slot))
	if err != nil {
		return nil, fmt.Errorf("find waitlist: %w", err)
	}
	v := &WaitlistView{Entries: entries, Total: len(entries)}
	for _, e := range entries {
		if e.UserID == userID {
			v.UserPosition = e.Position
			break
		}
	}
	return v, nil
}

func (s *Service) MyWaitlist(ctx context.Context, userID string) ([]model.WaitlistEntry, error) {
	return s.waitlist.FindWaitlist(ctx, store.WaitlistFilter{UserID: userID})
}
