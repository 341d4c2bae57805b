// Package booking allocates session slots: capacity per slot, credits per
// booking, weekly recurring batches and promotion from the waitlist.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"training-booking-api/internal/model"
	"training-booking-api/internal/notify"
	"training-booking-api/internal/store"
)

var tracer = otel.Tracer("training-booking-api/booking")

// MaxRecurringWeeks caps how far ahead one recurring request reaches.
const MaxRecurringWeeks = 12

type Service struct {
	users    UserStore
	bookings BookingStore
	waitlist WaitlistStore
	ledger   *Ledger
	emit     notify.Emitter
	times    TimeDisplayer
	locks    *slotLocks
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, e.g. to pin "today" in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st Store, emit notify.Emitter, times TimeDisplayer, opts ...Option) *Service {
	s := &Service{
		users:    st,
		bookings: st,
		waitlist: st,
		ledger:   NewLedger(st),
		emit:     emit,
		times:    times,
		locks:    newSlotLocks(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Ledger() *Ledger { return s.ledger }

func (s *Service) today() time.Time { return model.Day(s.now()) }

func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func slotAttrs(date time.Time, slot model.TimeSlot) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("slot.date", model.DateString(date)),
		attribute.String("slot.time_slot", string(slot)),
	)
}

type CreateRequest struct {
	Date           time.Time
	TimeSlot       model.TimeSlot
	IsRecurring    bool
	RecurringWeeks int
}

// CreateResult holds either a single Booking or the outcome of a recurring
// batch (Bookings, WaitlistedDates, GroupID).
type CreateResult struct {
	Booking         *model.Booking
	Bookings        []model.Booking
	WaitlistedDates []time.Time
	GroupID         string
	Message         string
}

// CreateBooking books user into the slot, or into one slot per week for a
// recurring request. Preconditions are checked in order against the
// requested date: credits, existing booking, existing waitlist entry,
// capacity.
func (s *Service) CreateBooking(ctx context.Context, user *model.User, req CreateRequest) (*CreateResult, error) {
	date := model.Day(req.Date)
	ctx, span := tracer.Start(ctx, "booking.Create", slotAttrs(date, req.TimeSlot))
	defer span.End()

	if !s.ledger.HasSufficient(user, 1) {
		return nil, ErrInsufficientCredits
	}

	unlock := s.locks.lock(date, req.TimeSlot)
	if err := s.checkSlot(ctx, user.ID, date, req.TimeSlot); err != nil {
		unlock()
		return nil, err
	}

	if !req.IsRecurring || req.RecurringWeeks <= 0 {
		defer unlock()
		b, err := s.allocate(ctx, user, date, req.TimeSlot, "", false)
		if err != nil {
			return nil, err
		}
		s.notify(ctx, user.ID, notify.Confirmation, notify.Context{Date: b.Date, TimeDisplay: b.TimeDisplay})
		return &CreateResult{Booking: b, Message: "Booking confirmed!"}, nil
	}

	// occurrences take their own locks one at a time
	unlock()
	span.SetAttributes(attribute.Int("booking.recurring_weeks", req.RecurringWeeks))
	return s.createRecurring(ctx, user, date, req.TimeSlot, req.RecurringWeeks)
}

// checkSlot applies the AlreadyBooked, AlreadyWaitlisted and SlotFull
// preconditions, in that order.
func (s *Service) checkSlot(ctx context.Context, userID string, date time.Time, slot model.TimeSlot) error {
	booked, waitlisted, err := s.holds(ctx, userID, date, slot)
	if err != nil {
		return err
	}
	if booked {
		return ErrAlreadyBooked
	}
	if waitlisted {
		return ErrAlreadyWaitlisted
	}
	n, err := s.bookings.CountBookings(ctx, slotBookings(date, slot))
	if err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if n >= model.MaxBookingsPerSlot {
		return ErrSlotFull
	}
	return nil
}

// holds reports whether userID already has a booking or a waitlist entry
// for the slot.
func (s *Service) holds(ctx context.Context, userID string, date time.Time, slot model.TimeSlot) (booked, waitlisted bool, err error) {
	nb, err := s.bookings.CountBookings(ctx, store.BookingFilter{UserID: userID, Date: date, TimeSlot: slot})
	if err != nil {
		return false, false, fmt.Errorf("count user bookings: %w", err)
	}
	nw, err := s.waitlist.CountWaitlist(ctx, store.WaitlistFilter{UserID: userID, Date: date, TimeSlot: slot})
	if err != nil {
		return false, false, fmt.Errorf("count user waitlist: %w", err)
	}
	return nb > 0, nw > 0, nil
}

// allocate writes the booking and draws one credit. The caller holds the
// slot lock and has checked capacity.
func (s *Service) allocate(ctx context.Context, user *model.User, date time.Time, slot model.TimeSlot, group string, fromWaitlist bool) (*model.Booking, error) {
	b := &model.Booking{
		ID:               newID("book_"),
		UserID:           user.ID,
		UserName:         user.Name,
		UserInitials:     user.Initials,
		Date:             date,
		TimeSlot:         slot,
		TimeDisplay:      s.times.TimeDisplay(ctx, slot),
		IsRecurring:      group != "",
		RecurringGroupID: group,
		FromWaitlist:     fromWaitlist,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.bookings.InsertBooking(ctx, b); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	// the booking exists now; finish the write even if the caller goes away
	ctx = context.WithoutCancel(ctx)
	if err := s.ledger.Deduct(ctx, user.ID, 1); err != nil {
		if delErr := s.bookings.DeleteBooking(ctx, b.ID); delErr != nil {
			log.Printf("booking: rollback %s after failed deduction: %v", b.ID, delErr)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) createRecurring(ctx context.Context, user *model.User, date time.Time, slot model.TimeSlot, weeks int) (*CreateResult, error) {
	if weeks > MaxRecurringWeeks {
		weeks = MaxRecurringWeeks
	}
	dates := make([]time.Time, weeks)
	for i := range dates {
		dates[i] = date.AddDate(0, 0, 7*i)
	}

	// Advisory: capacity can change between this count and the writes
	// below. The conditional deduction still keeps the balance >= 0.
	required := 0
	for _, d := range dates {
		booked, waitlisted, err := s.holds(ctx, user.ID, d, slot)
		if err != nil {
			return nil, err
		}
		if booked || waitlisted {
			continue
		}
		n, err := s.bookings.CountBookings(ctx, slotBookings(d, slot))
		if err != nil {
			return nil, fmt.Errorf("count bookings: %w", err)
		}
		if n < model.MaxBookingsPerSlot {
			required++
		}
	}
	if !s.ledger.HasSufficient(user, required) {
		return nil, ErrInsufficientCredits
	}

	ctx = context.WithoutCancel(ctx)
	res := &CreateResult{GroupID: newID("rec_")}
	for _, d := range dates {
		if err := s.occurrence(ctx, user, d, slot, res); err != nil {
			if len(res.Bookings) == 0 && len(res.WaitlistedDates) == 0 {
				return nil, err
			}
			log.Printf("booking: recurring group %s stopped at %s: %v", res.GroupID, model.DateString(d), err)
			break
		}
	}

	res.Message = fmt.Sprintf("Booked %d sessions", len(res.Bookings))
	if len(res.WaitlistedDates) > 0 {
		res.Message += fmt.Sprintf(", added to waitlist for %d full dates", len(res.WaitlistedDates))
	}
	if len(res.Bookings) > 0 {
		first := res.Bookings[0]
		s.notify(ctx, user.ID, notify.RecurringConfirmation, notify.Context{
			Date: first.Date, TimeDisplay: first.TimeDisplay, Count: len(res.Bookings),
		})
	}
	return res, nil
}

// occurrence books or waitlists one date of a recurring batch.
func (s *Service) occurrence(ctx context.Context, user *model.User, date time.Time, slot model.TimeSlot, res *CreateResult) error {
	unlock := s.locks.lock(date, slot)
	defer unlock()

	booked, waitlisted, err := s.holds(ctx, user.ID, date, slot)
	if err != nil {
		return err
	}
	if booked || waitlisted {
		return nil
	}
	n, err := s.bookings.CountBookings(ctx, slotBookings(date, slot))
	if err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if n >= model.MaxBookingsPerSlot {
		if _, err := s.join(ctx, user, date, slot); err != nil {
			return err
		}
		res.WaitlistedDates = append(res.WaitlistedDates, date)
		return nil
	}
	b, err := s.allocate(ctx, user, date, slot, res.GroupID, false)
	if err != nil {
		return err
	}
	res.Bookings = append(res.Bookings, *b)
	return nil
}

// CancelResult reports the removed booking and, if the freed spot was
// taken from the waitlist, the booking created for it.
type CancelResult struct {
	Cancelled model.Booking
	Promoted  *model.Booking
}

// CancelBooking deletes a booking owned by requester (or any booking when
// requester is an admin), refunds its owner and offers the spot to the
// waitlist.
func (s *Service) CancelBooking(ctx context.Context, bookingID string, requester *model.User) (*CancelResult, error) {
	ctx, span := tracer.Start(ctx, "booking.Cancel", trace.WithAttributes(attribute.String("booking.id", bookingID)))
	defer span.End()

	b, err := s.bookings.BookingByID(ctx, bookingID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if b.UserID != requester.ID && !requester.IsAdmin {
		return nil, ErrForbidden
	}
	if b.Date.Before(s.today()) {
		return nil, ErrPastBooking
	}

	unlock := s.locks.lock(b.Date, b.TimeSlot)
	defer unlock()

	if err := s.bookings.DeleteBooking(ctx, b.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	ctx = context.WithoutCancel(ctx)
	refundErr := s.ledger.Refund(ctx, b.UserID, 1)

	res := &CancelResult{Cancelled: *b}
	promoted, err := s.promote(ctx, b.Date, b.TimeSlot)
	if err != nil {
		log.Printf("booking: promote %s/%s: %v", model.DateString(b.Date), b.TimeSlot, err)
	}
	res.Promoted = promoted
	if refundErr != nil {
		return res, refundErr
	}
	return res, nil
}

// MyBookings lists a user's bookings in date order.
func (s *Service) MyBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.bookings.FindBookings(ctx, store.BookingFilter{UserID: userID})
}

// AdminBookings lists every booking between from and to, inclusive. Zero
// bounds are open.
func (s *Service) AdminBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	return s.bookings.FindBookings(ctx, store.BookingFilter{DateFrom: from, DateTo: to})
}

func (s *Service) notify(ctx context.Context, userID string, kind notify.Kind, c notify.Context) {
	if s.emit == nil {
		return
	}
	if err := s.emit.Emit(ctx, userID, kind, c); err != nil {
		log.Printf("booking: notify %s user=%s: %v", kind, userID, err)
	}
}
