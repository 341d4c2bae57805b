// Package handler implements bookingv1.BookingServiceServer on top of the
// booking, credits, notify and settings packages.
package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/auth"
	"training-booking-api/internal/booking"
	"training-booking-api/internal/credits"
	"training-booking-api/internal/middleware"
	"training-booking-api/internal/model"
	"training-booking-api/internal/notify"
	"training-booking-api/internal/settings"
	"training-booking-api/internal/store"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	ListClients(ctx context.Context) ([]model.User, error)
	SetAdmin(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, p model.Profile) error
}

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, userID, newHash string, newExpiry time.Time) (string, error)
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// Deps wires the handler. Users and Tokens are usually the same store.
type Deps struct {
	Users    UserStore
	Tokens   TokenStore
	Bookings *booking.Service
	Credits  *credits.Service
	Inbox    *notify.Inbox
	Settings *settings.Provider
	Issuer   *auth.Issuer
	// Now defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	users    UserStore
	tokens   TokenStore
	bookings *booking.Service
	credits  *credits.Service
	inbox    *notify.Inbox
	settings *settings.Provider
	issuer   *auth.Issuer
	now      func() time.Time
	validate *validator.Validate
}

var _ bookingv1.BookingServiceServer = (*Handler)(nil)

func New(d Deps) *Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{
		users:    d.Users,
		tokens:   d.Tokens,
		bookings: d.Bookings,
		credits:  d.Credits,
		inbox:    d.Inbox,
		settings: d.Settings,
		issuer:   d.Issuer,
		now:      d.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) check(req any) error {
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return status.Errorf(codes.InvalidArgument, "invalid %s", verrs[0].Field())
		}
		return status.Error(codes.InvalidArgument, "invalid request")
	}
	return nil
}

// currentUser loads the caller fresh so credit and admin state are current.
func (h *Handler) currentUser(ctx context.Context) (*model.User, error) {
	uid, ok := middleware.UserID(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "not logged in")
	}
	u, err := h.users.UserByID(ctx, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, status.Error(codes.Unauthenticated, "user not found")
	}
	if err != nil {
		return nil, internal("load user", err)
	}
	return u, nil
}

func (h *Handler) admin(ctx context.Context) (*model.User, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		return nil, status.Error(codes.PermissionDenied, "admin access required")
	}
	return u, nil
}

func internal(op string, err error) error {
	log.Printf("handler: %s: %v", op, err)
	return status.Error(codes.Internal, "internal error")
}

// toStatus maps domain errors onto grpc codes; anything unknown is Internal.
func toStatus(op string, err error) error {
	switch {
	case errors.Is(err, booking.ErrInsufficientCredits),
		errors.Is(err, booking.ErrSlotNotFull),
		errors.Is(err, booking.ErrPastBooking),
		errors.Is(err, credits.ErrAlreadyConfirmed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, booking.ErrAlreadyBooked),
		errors.Is(err, booking.ErrAlreadyWaitlisted):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, booking.ErrSlotFull):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, credits.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, booking.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, credits.ErrUnknownPackage),
		errors.Is(err, credits.ErrUnknownMethod),
		errors.Is(err, settings.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return internal(op, err)
}

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func toUser(u *model.User) *bookingv1.User {
	out := &bookingv1.User{
		Id:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Initials:         u.Initials,
		IsAdmin:          u.IsAdmin,
		Credits:          int32(u.Credits),
		HasUnlimited:     u.HasUnlimited,
		CreatedAt:        ts(u.CreatedAt),
		ProfileCompleted: u.ProfileCompleted,
	}
	if p := u.Profile; p != nil {
		out.Profile = &bookingv1.Profile{
			Phone:                 p.Phone,
			Age:                   int32(p.Age),
			FitnessGoals:          p.FitnessGoals,
			HealthConditions:      p.HealthConditions,
			PreviousInjuries:      p.PreviousInjuries,
			EmergencyContactName:  p.EmergencyContactName,
			EmergencyContactPhone: p.EmergencyContactPhone,
		}
	}
	return out
}

func toBooking(b *model.Booking) *bookingv1.Booking {
	return &bookingv1.Booking{
		BookingId:        b.ID,
		UserId:           b.UserID,
		UserName:         b.UserName,
		UserInitials:     b.UserInitials,
		Date:             model.DateString(b.Date),
		TimeSlot:         string(b.TimeSlot),
		TimeDisplay:      b.TimeDisplay,
		IsRecurring:      b.IsRecurring,
		RecurringGroupId: b.RecurringGroupID,
		FromWaitlist:     b.FromWaitlist,
		Reminder24HSent:  b.Reminder24hSent,
		Reminder1HSent:   b.Reminder1hSent,
		CreatedAt:        ts(b.CreatedAt),
	}
}

func toBookings(bs []model.Booking) []*bookingv1.Booking {
	out := make([]*bookingv1.Booking, 0, len(bs))
	for i := range bs {
		out = append(out, toBooking(&bs[i]))
	}
	return out
}

func toWaitlistEntry(e *model.WaitlistEntry) *bookingv1.WaitlistEntry {
	return &bookingv1.WaitlistEntry{
		WaitlistId: e.ID,
		UserId:     e.UserID,
		UserName:   e.UserName,
		Date:       model.DateString(e.Date),
		TimeSlot:   string(e.TimeSlot),
		Position:   int32(e.Position),
		CreatedAt:  ts(e.CreatedAt),
	}
}

func toWaitlist(es []model.WaitlistEntry) []*bookingv1.WaitlistEntry {
	out := make([]*bookingv1.WaitlistEntry, 0, len(es))
	for i := range es {
		out = append(out, toWaitlistEntry(&es[i]))
	}
	return out
}

func toTransaction(t *model.CreditTransaction) *bookingv1.CreditTransaction {
	return &bookingv1.CreditTransaction{
		Id:            t.ID,
		UserId:        t.UserID,
		UserName:      t.UserName,
		PackageType:   t.PackageType,
		CreditsAdded:  int32(t.CreditsAdded),
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		Status:        t.Status,
		CreatedAt:     ts(t.CreatedAt),
	}
}

func toTransactions(ts []model.CreditTransaction) []*bookingv1.CreditTransaction {
	out := make([]*bookingv1.CreditTransaction, 0, len(ts))
	for i := range ts {
		out = append(out, toTransaction(&ts[i]))
	}
	return out
}

func toSettings(times model.SessionTimes) *bookingv1.Settings {
	out := &bookingv1.Settings{}
	for _, slot := range model.TimeSlots {
		st, ok := times[slot]
		if !ok {
			continue
		}
		out.SessionTimes = append(out.SessionTimes, &bookingv1.SessionTime{
			TimeSlot: string(slot),
			Start:    st.Start,
			End:      st.End,
			Enabled:  st.Enabled,
		})
	}
	return out
}

// GetSettings is public; the booking page needs the windows before login.
func (h *Handler) GetSettings(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.Settings, error) {
	times, err := h.settings.SessionTimes(ctx)
	if err != nil {
		log.Printf("handler: settings: %v", err)
	}
	return toSettings(times), nil
}
