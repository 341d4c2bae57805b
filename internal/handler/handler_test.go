package handler_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/auth"
	"training-booking-api/internal/booking"
	"training-booking-api/internal/credits"
	"training-booking-api/internal/handler"
	"training-booking-api/internal/middleware"
	"training-booking-api/internal/notify"
	"training-booking-api/internal/settings"
	"training-booking-api/internal/store/memstore"
)

const secret = "test-secret"

// Monday; "today" for every test here.
var now = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

var issuer = auth.NewIssuer(secret, auth.Options{Now: func() time.Time { return now }})

func setup(t *testing.T) (*handler.Handler, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	clock := func() time.Time { return now }
	inbox := notify.NewInbox(st)
	times := settings.New(st)
	bookings := booking.New(st, inbox, times, booking.WithClock(clock))
	h := handler.New(handler.Deps{
		Users:    st,
		Tokens:   st,
		Bookings: bookings,
		Credits:  credits.New(st, bookings.Ledger()),
		Inbox:    inbox,
		Settings: times,
		Issuer:   issuer,
		Now:      clock,
	})
	return h, st
}

func authedCtx(uid string) context.Context {
	return middleware.WithUserID(context.Background(), uid)
}

func registerUser(t *testing.T, h *handler.Handler, st *memstore.Store, credits int) (string, context.Context) {
	t.Helper()
	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	rr, err := h.Register(context.Background(), &bookingv1.RegisterRequest{
		Email: email, Password: "testpass123", Name: "Test User",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if credits > 0 {
		if err := st.IncrementCredits(context.Background(), rr.User.Id, credits); err != nil {
			t.Fatalf("credits: %v", err)
		}
	}
	return rr.User.Id, authedCtx(rr.User.Id)
}

func registerAdmin(t *testing.T, h *handler.Handler, st *memstore.Store) context.Context {
	t.Helper()
	uid, ctx := registerUser(t, h, st, 0)
	if err := st.SetAdmin(context.Background(), uid); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	return ctx
}

func wantCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", code)
	}
	if s, _ := status.FromError(err); s.Code() != code {
		t.Fatalf("expected %v, got %v (%v)", code, s.Code(), err)
	}
}

// ----- auth tests -----

func TestRegister(t *testing.T) {
	h, _ := setup(t)

	rr, err := h.Register(context.Background(), &bookingv1.RegisterRequest{
		Email: "  Ada@Example.com ", Password: "testpass123", Name: "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if rr.Token == "" || rr.RefreshToken == "" {
		t.Fatal("empty token")
	}
	if rr.User.Email != "ada@example.com" || rr.User.Initials != "AL" || rr.User.Credits != 0 || rr.User.IsAdmin {
		t.Errorf("user = %+v", rr.User)
	}
	c, err := issuer.Verify(rr.Token)
	if err != nil || c.UserID != rr.User.Id {
		t.Errorf("token claims = %+v, %v", c, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := setup(t)

	tests := []struct {
		name string
		req  *bookingv1.RegisterRequest
	}{
		{"empty email", &bookingv1.RegisterRequest{Email: "", Password: "testpass123", Name: "X"}},
		{"bad email", &bookingv1.RegisterRequest{Email: "not-an-email", Password: "testpass123", Name: "X"}},
		{"empty password", &bookingv1.RegisterRequest{Email: "a@b.com", Password: "", Name: "X"}},
		{"short password", &bookingv1.RegisterRequest{Email: "a@b.com", Password: "short", Name: "X"}},
		{"empty name", &bookingv1.RegisterRequest{Email: "a@b.com", Password: "testpass123", Name: ""}},
		{"blank name", &bookingv1.RegisterRequest{Email: "a@b.com", Password: "testpass123", Name: "   "}},
		{"blank email", &bookingv1.RegisterRequest{Email: "   ", Password: "testpass123", Name: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Register(context.Background(), tt.req)
			wantCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h, _ := setup(t)

	req := &bookingv1.RegisterRequest{Email: "dup@test.com", Password: "testpass123", Name: "First"}
	if _, err := h.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	req.Email = "DUP@test.com"
	_, err := h.Register(context.Background(), req)
	wantCode(t, err, codes.AlreadyExists)
}

func TestLogin(t *testing.T) {
	h, _ := setup(t)
	if _, err := h.Register(context.Background(), &bookingv1.RegisterRequest{
		Email: "login@test.com", Password: "testpass123", Name: "Login",
	}); err != nil {
		t.Fatal(err)
	}

	lr, err := h.Login(context.Background(), &bookingv1.LoginRequest{Email: " Login@Test.com  ", Password: "testpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if lr.Token == "" || lr.User.Email != "login@test.com" {
		t.Errorf("login response = %+v", lr)
	}

	tests := []struct {
		name string
		req  *bookingv1.LoginRequest
	}{
		{"wrong password", &bookingv1.LoginRequest{Email: "login@test.com", Password: "wrongpass1"}},
		{"unknown email", &bookingv1.LoginRequest{Email: "nobody@test.com", Password: "testpass123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Login(context.Background(), tt.req)
			wantCode(t, err, codes.Unauthenticated)
		})
	}
}

func TestRefreshRotatesAndDetectsReuse(t *testing.T) {
	h, _ := setup(t)
	rr, err := h.Register(context.Background(), &bookingv1.RegisterRequest{
		Email: "refresh@test.com", Password: "testpass123", Name: "Refresh",
	})
	if err != nil {
		t.Fatal(err)
	}

	next, err := h.Refresh(context.Background(), &bookingv1.RefreshRequest{RefreshToken: rr.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == rr.RefreshToken || next.Token == "" {
		t.Fatal("refresh did not rotate")
	}

	// presenting the rotated token again burns the whole family
	_, err = h.Refresh(context.Background(), &bookingv1.RefreshRequest{RefreshToken: rr.RefreshToken})
	wantCode(t, err, codes.Unauthenticated)
	_, err = h.Refresh(context.Background(), &bookingv1.RefreshRequest{RefreshToken: next.RefreshToken})
	wantCode(t, err, codes.Unauthenticated)

	_, err = h.Refresh(context.Background(), &bookingv1.RefreshRequest{RefreshToken: "nope"})
	wantCode(t, err, codes.Unauthenticated)
}

func TestLogout(t *testing.T) {
	h, _ := setup(t)
	rr, err := h.Register(context.Background(), &bookingv1.RegisterRequest{
		Email: "logout@test.com", Password: "testpass123", Name: "Logout",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.Logout(authedCtx(rr.User.Id), &bookingv1.Empty{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = h.Refresh(context.Background(), &bookingv1.RefreshRequest{RefreshToken: rr.RefreshToken})
	wantCode(t, err, codes.Unauthenticated)
}

func TestMeRequiresUser(t *testing.T) {
	h, st := setup(t)

	_, err := h.Me(context.Background(), &bookingv1.Empty{})
	wantCode(t, err, codes.Unauthenticated)
	_, err = h.Me(authedCtx("user_gone"), &bookingv1.Empty{})
	wantCode(t, err, codes.Unauthenticated)

	uid, ctx := registerUser(t, h, st, 3)
	me, err := h.Me(ctx, &bookingv1.Empty{})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Id != uid || me.Credits != 3 {
		t.Errorf("me = %+v", me)
	}
}

// ----- booking tests -----

func TestBookingLifecycle(t *testing.T) {
	h, st := setup(t)
	uid, ctx := registerUser(t, h, st, 1)

	cr, err := h.CreateBooking(ctx, &bookingv1.CreateBookingRequest{Date: "2026-01-06", TimeSlot: "morning"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cr.Booking == nil || cr.Booking.UserId != uid || cr.Booking.TimeDisplay != "5:30 AM - 6:15 AM" {
		t.Fatalf("booking = %+v", cr.Booking)
	}
	if cr.Message != "Booking confirmed!" {
		t.Errorf("message = %q", cr.Message)
	}

	bal, _ := h.CreditBalance(ctx, &bookingv1.Empty{})
	if bal.Credits != 0 {
		t.Errorf("credits after booking = %d", bal.Credits)
	}

	slots, err := h.GetSlots(ctx, &bookingv1.GetSlotsRequest{Date: "2026-01-06"})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots.Slots) != 2 || !slots.Slots[0].UserBooked || slots.Slots[0].AvailableSpots != 2 {
		t.Errorf("slots = %+v", slots.Slots)
	}

	mine, _ := h.MyBookings(ctx, &bookingv1.Empty{})
	if len(mine.Bookings) != 1 {
		t.Fatalf("my bookings = %d", len(mine.Bookings))
	}

	cancel, err := h.CancelBooking(ctx, &bookingv1.IDRequest{Id: cr.Booking.BookingId})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancel.Message != "Booking cancelled and credit refunded" || cancel.Promoted != nil {
		t.Errorf("cancel = %+v", cancel)
	}
	bal, _ = h.CreditBalance(ctx, &bookingv1.Empty{})
	if bal.Credits != 1 {
		t.Errorf("credits after cancel = %d", bal.Credits)
	}

	ns, _ := h.ListNotifications(ctx, &bookingv1.ListNotificationsRequest{})
	if len(ns.Notifications) != 1 || ns.Notifications[0].Kind != string(notify.Confirmation) {
		t.Errorf("notifications = %+v", ns.Notifications)
	}
}

func TestCreateBookingStatusCodes(t *testing.T) {
	h, st := setup(t)
	_, broke := registerUser(t, h, st, 0)
	_, rich := registerUser(t, h, st, 5)

	for i := 0; i < 3; i++ {
		_, c := registerUser(t, h, st, 1)
		if _, err := h.CreateBooking(c, &bookingv1.CreateBookingRequest{Date: "2026-01-07", TimeSlot: "afternoon"}); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}
	if _, err := h.CreateBooking(rich, &bookingv1.CreateBookingRequest{Date: "2026-01-08", TimeSlot: "morning"}); err != nil {
		t.Fatalf("book: %v", err)
	}

	tests := []struct {
		name string
		ctx  context.Context
		req  *bookingv1.CreateBookingRequest
		code codes.Code
	}{
		{"past date", rich, &bookingv1.CreateBookingRequest{Date: "2026-01-04", TimeSlot: "morning"}, codes.InvalidArgument},
		{"past date without credits", broke, &bookingv1.CreateBookingRequest{Date: "2026-01-04", TimeSlot: "morning"}, codes.InvalidArgument},
		{"past afternoon", rich, &bookingv1.CreateBookingRequest{Date: "2026-01-04", TimeSlot: "afternoon"}, codes.InvalidArgument},
		{"bad date", rich, &bookingv1.CreateBookingRequest{Date: "01/08/2026", TimeSlot: "morning"}, codes.InvalidArgument},
		{"bad slot", rich, &bookingv1.CreateBookingRequest{Date: "2026-01-08", TimeSlot: "evening"}, codes.InvalidArgument},
		{"too many weeks", rich, &bookingv1.CreateBookingRequest{Date: "2026-01-08", TimeSlot: "afternoon", IsRecurring: true, RecurringWeeks: 13}, codes.InvalidArgument},
		{"no credits", broke, &bookingv1.CreateBookingRequest{Date: "2026-01-08", TimeSlot: "afternoon"}, codes.FailedPrecondition},
		{"already booked", rich, &bookingv1.CreateBookingRequest{Date: "2026-01-08", TimeSlot: "morning"}, codes.AlreadyExists},
		{"slot full", rich, &bookingv1.CreateBookingRequest{Date: "2026-01-07", TimeSlot: "afternoon"}, codes.ResourceExhausted},
		{"anonymous", context.Background(), &bookingv1.CreateBookingRequest{Date: "2026-01-08", TimeSlot: "afternoon"}, codes.Unauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.CreateBooking(tt.ctx, tt.req)
			wantCode(t, err, tt.code)
		})
	}
}

func TestRecurringBooking(t *testing.T) {
	h, st := setup(t)
	_, ctx := registerUser(t, h, st, 10)

	// the second week is already full
	for i := 0; i < 3; i++ {
		_, c := registerUser(t, h, st, 1)
		if _, err := h.CreateBooking(c, &bookingv1.CreateBookingRequest{Date: "2026-01-16", TimeSlot: "morning"}); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}

	cr, err := h.CreateBooking(ctx, &bookingv1.CreateBookingRequest{
		Date: "2026-01-09", TimeSlot: "morning", IsRecurring: true, RecurringWeeks: 3,
	})
	if err != nil {
		t.Fatalf("recurring: %v", err)
	}
	if len(cr.Bookings) != 2 || cr.RecurringGroupId == "" {
		t.Fatalf("bookings = %d group = %q", len(cr.Bookings), cr.RecurringGroupId)
	}
	if len(cr.WaitlistedDates) != 1 || cr.WaitlistedDates[0] != "2026-01-16" {
		t.Errorf("waitlisted = %v", cr.WaitlistedDates)
	}
	if cr.Message != "Booked 2 sessions, added to waitlist for 1 full dates" {
		t.Errorf("message = %q", cr.Message)
	}
	for _, b := range cr.Bookings {
		if !b.IsRecurring || b.RecurringGroupId != cr.RecurringGroupId {
			t.Errorf("booking %+v not in group", b)
		}
	}

	bal, _ := h.CreditBalance(ctx, &bookingv1.Empty{})
	if bal.Credits != 8 {
		t.Errorf("credits = %d, want 8", bal.Credits)
	}
	wl, _ := h.MyWaitlist(ctx, &bookingv1.Empty{})
	if wl.Total != 1 {
		t.Errorf("waitlist total = %d", wl.Total)
	}
}

func TestWaitlistPromotion(t *testing.T) {
	h, st := setup(t)
	slot := &bookingv1.SlotRequest{Date: "2026-01-10", TimeSlot: "morning"}

	_, waiter := registerUser(t, h, st, 1)
	_, err := h.JoinWaitlist(waiter, slot)
	wantCode(t, err, codes.FailedPrecondition)

	var holders []context.Context
	var first string
	for i := 0; i < 3; i++ {
		_, c := registerUser(t, h, st, 1)
		cr, err := h.CreateBooking(c, &bookingv1.CreateBookingRequest{Date: slot.Date, TimeSlot: slot.TimeSlot})
		if err != nil {
			t.Fatalf("fill: %v", err)
		}
		if i == 0 {
			first = cr.Booking.BookingId
		}
		holders = append(holders, c)
	}

	jr, err := h.JoinWaitlist(waiter, slot)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if jr.Entry.Position != 1 || jr.Message != "Added to waitlist at position 1" {
		t.Errorf("join = %+v", jr)
	}
	_, err = h.JoinWaitlist(waiter, slot)
	wantCode(t, err, codes.AlreadyExists)

	view, err := h.SlotWaitlist(waiter, slot)
	if err != nil {
		t.Fatal(err)
	}
	if view.Total != 1 || view.UserPosition != 1 {
		t.Errorf("slot waitlist = %+v", view)
	}

	cancel, err := h.CancelBooking(holders[0], &bookingv1.IDRequest{Id: first})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancel.Promoted == nil || !cancel.Promoted.FromWaitlist {
		t.Fatalf("promoted = %+v", cancel.Promoted)
	}

	bal, _ := h.CreditBalance(waiter, &bookingv1.Empty{})
	if bal.Credits != 0 {
		t.Errorf("promoted user credits = %d", bal.Credits)
	}
	wl, _ := h.MyWaitlist(waiter, &bookingv1.Empty{})
	if wl.Total != 0 {
		t.Errorf("waitlist after promotion = %d", wl.Total)
	}

	ns, err := h.ListNotifications(waiter, &bookingv1.ListNotificationsRequest{UnreadOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if ns.UnreadCount != 1 || ns.Notifications[0].Kind != string(notify.WaitlistPromoted) {
		t.Fatalf("notifications = %+v", ns.Notifications)
	}
	if _, err := h.MarkNotificationRead(holders[1], &bookingv1.IDRequest{Id: ns.Notifications[0].Id}); status.Code(err) != codes.NotFound {
		t.Errorf("marking someone else's notification: %v", err)
	}
	if _, err := h.MarkNotificationRead(waiter, &bookingv1.IDRequest{Id: ns.Notifications[0].Id}); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	ns, _ = h.ListNotifications(waiter, &bookingv1.ListNotificationsRequest{UnreadOnly: true})
	if len(ns.Notifications) != 0 {
		t.Errorf("unread after mark = %d", len(ns.Notifications))
	}
}

func TestLeaveWaitlist(t *testing.T) {
	h, st := setup(t)
	slot := &bookingv1.SlotRequest{Date: "2026-01-12", TimeSlot: "afternoon"}
	for i := 0; i < 3; i++ {
		_, c := registerUser(t, h, st, 1)
		if _, err := h.CreateBooking(c, &bookingv1.CreateBookingRequest{Date: slot.Date, TimeSlot: slot.TimeSlot}); err != nil {
			t.Fatal(err)
		}
	}
	_, a := registerUser(t, h, st, 0)
	_, b := registerUser(t, h, st, 0)
	ja, err := h.JoinWaitlist(a, slot)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.JoinWaitlist(b, slot); err != nil {
		t.Fatal(err)
	}

	_, err = h.LeaveWaitlist(b, &bookingv1.IDRequest{Id: ja.Entry.WaitlistId})
	wantCode(t, err, codes.PermissionDenied)

	if _, err := h.LeaveWaitlist(a, &bookingv1.IDRequest{Id: ja.Entry.WaitlistId}); err != nil {
		t.Fatalf("leave: %v", err)
	}
	_, err = h.LeaveWaitlist(a, &bookingv1.IDRequest{Id: ja.Entry.WaitlistId})
	wantCode(t, err, codes.NotFound)

	wl, _ := h.MyWaitlist(b, &bookingv1.Empty{})
	if wl.Total != 1 || wl.Entries[0].Position != 1 {
		t.Errorf("b's waitlist = %+v", wl.Entries)
	}
}

func TestCancelBookingPermissions(t *testing.T) {
	h, st := setup(t)
	_, owner := registerUser(t, h, st, 1)
	_, other := registerUser(t, h, st, 0)
	admin := registerAdmin(t, h, st)

	cr, err := h.CreateBooking(owner, &bookingv1.CreateBookingRequest{Date: "2026-01-13", TimeSlot: "morning"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = h.CancelBooking(other, &bookingv1.IDRequest{Id: cr.Booking.BookingId})
	wantCode(t, err, codes.PermissionDenied)

	if _, err := h.CancelBooking(admin, &bookingv1.IDRequest{Id: cr.Booking.BookingId}); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	_, err = h.CancelBooking(owner, &bookingv1.IDRequest{Id: cr.Booking.BookingId})
	wantCode(t, err, codes.NotFound)

	bal, _ := h.CreditBalance(owner, &bookingv1.Empty{})
	if bal.Credits != 1 {
		t.Errorf("owner not refunded: %d", bal.Credits)
	}
}

// ----- credits tests -----

func TestListPackages(t *testing.T) {
	h, _ := setup(t)
	resp, err := h.ListPackages(context.Background(), &bookingv1.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Packages) != 3 || resp.Packages[0].Type != "single" || resp.Packages[2].Amount != 50 {
		t.Errorf("packages = %+v", resp.Packages)
	}
}

func TestPurchaseAndConfirm(t *testing.T) {
	h, st := setup(t)
	_, buyer := registerUser(t, h, st, 0)
	admin := registerAdmin(t, h, st)

	pr, err := h.PurchaseCredits(buyer, &bookingv1.PurchaseCreditsRequest{PackageType: "double", PaymentMethod: "transfer"})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if pr.Transaction.Status != "pending" || pr.Message != "Please pay $40.00 via transfer. Your purchase will be confirmed by admin." {
		t.Errorf("purchase = %+v", pr)
	}

	_, err = h.AdminConfirmTransaction(buyer, &bookingv1.IDRequest{Id: pr.Transaction.Id})
	wantCode(t, err, codes.PermissionDenied)

	pending, err := h.AdminListTransactions(admin, &bookingv1.AdminListTransactionsRequest{Status: "pending"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pending.Transactions) != 1 {
		t.Fatalf("pending = %d", len(pending.Transactions))
	}

	cr, err := h.AdminConfirmTransaction(admin, &bookingv1.IDRequest{Id: pr.Transaction.Id})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if cr.Message != "Transaction confirmed and credits added" {
		t.Errorf("message = %q", cr.Message)
	}
	_, err = h.AdminConfirmTransaction(admin, &bookingv1.IDRequest{Id: pr.Transaction.Id})
	wantCode(t, err, codes.FailedPrecondition)
	_, err = h.AdminConfirmTransaction(admin, &bookingv1.IDRequest{Id: "txn_missing"})
	wantCode(t, err, codes.NotFound)

	bal, _ := h.CreditBalance(buyer, &bookingv1.Empty{})
	if bal.Credits != 2 {
		t.Errorf("credits = %d, want 2", bal.Credits)
	}
	mine, _ := h.MyTransactions(buyer, &bookingv1.Empty{})
	if len(mine.Transactions) != 1 || mine.Transactions[0].Status != "confirmed" {
		t.Errorf("my transactions = %+v", mine.Transactions)
	}
}

func TestPurchaseValidation(t *testing.T) {
	h, st := setup(t)
	_, buyer := registerUser(t, h, st, 0)

	tests := []struct {
		name string
		req  *bookingv1.PurchaseCreditsRequest
	}{
		{"unknown package", &bookingv1.PurchaseCreditsRequest{PackageType: "triple", PaymentMethod: "cash"}},
		{"unknown method", &bookingv1.PurchaseCreditsRequest{PackageType: "single", PaymentMethod: "card"}},
		{"missing package", &bookingv1.PurchaseCreditsRequest{PaymentMethod: "cash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.PurchaseCredits(buyer, tt.req)
			wantCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestUnlimitedPackage(t *testing.T) {
	h, st := setup(t)
	_, buyer := registerUser(t, h, st, 0)
	admin := registerAdmin(t, h, st)

	pr, err := h.PurchaseCredits(buyer, &bookingv1.PurchaseCreditsRequest{PackageType: "unlimited", PaymentMethod: "cash"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.AdminConfirmTransaction(admin, &bookingv1.IDRequest{Id: pr.Transaction.Id}); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{"2026-01-06", "2026-01-07", "2026-01-08"} {
		if _, err := h.CreateBooking(buyer, &bookingv1.CreateBookingRequest{Date: d, TimeSlot: "morning"}); err != nil {
			t.Fatalf("book %s: %v", d, err)
		}
	}
	bal, _ := h.CreditBalance(buyer, &bookingv1.Empty{})
	if !bal.HasUnlimited {
		t.Error("unlimited flag not set")
	}
}

// ----- admin tests -----

func TestAdminOnly(t *testing.T) {
	h, st := setup(t)
	uid, client := registerUser(t, h, st, 0)

	_, err := h.AdminListClients(client, &bookingv1.Empty{})
	wantCode(t, err, codes.PermissionDenied)
	_, err = h.AdminListBookings(client, &bookingv1.AdminListBookingsRequest{})
	wantCode(t, err, codes.PermissionDenied)
	_, err = h.AdminMakeAdmin(client, &bookingv1.IDRequest{Id: uid})
	wantCode(t, err, codes.PermissionDenied)

	admin := registerAdmin(t, h, st)
	clients, err := h.AdminListClients(admin, &bookingv1.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if len(clients.Users) != 1 || clients.Users[0].Id != uid {
		t.Errorf("clients = %+v", clients.Users)
	}

	if _, err := h.AdminMakeAdmin(admin, &bookingv1.IDRequest{Id: uid}); err != nil {
		t.Fatalf("make admin: %v", err)
	}
	if _, err := h.AdminListClients(client, &bookingv1.Empty{}); err != nil {
		t.Errorf("promoted admin rejected: %v", err)
	}
	_, err = h.AdminMakeAdmin(admin, &bookingv1.IDRequest{Id: "user_missing"})
	wantCode(t, err, codes.NotFound)
}

func TestAdminListBookingsRange(t *testing.T) {
	h, st := setup(t)
	_, c := registerUser(t, h, st, 3)
	admin := registerAdmin(t, h, st)
	for _, d := range []string{"2026-01-06", "2026-01-08", "2026-01-10"} {
		if _, err := h.CreateBooking(c, &bookingv1.CreateBookingRequest{Date: d, TimeSlot: "afternoon"}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := h.AdminListBookings(admin, &bookingv1.AdminListBookingsRequest{})
	if err != nil || len(all.Bookings) != 3 {
		t.Fatalf("all = %d, %v", len(all.Bookings), err)
	}
	some, err := h.AdminListBookings(admin, &bookingv1.AdminListBookingsRequest{DateFrom: "2026-01-07", DateTo: "2026-01-09"})
	if err != nil || len(some.Bookings) != 1 || some.Bookings[0].Date != "2026-01-08" {
		t.Fatalf("range = %+v, %v", some, err)
	}
	_, err = h.AdminListBookings(admin, &bookingv1.AdminListBookingsRequest{DateFrom: "soon"})
	wantCode(t, err, codes.InvalidArgument)
}

func TestSessionTimes(t *testing.T) {
	h, st := setup(t)
	admin := registerAdmin(t, h, st)
	_, client := registerUser(t, h, st, 1)

	s, err := h.GetSettings(context.Background(), &bookingv1.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.SessionTimes) != 2 || s.SessionTimes[0].Start != "5:30 AM" {
		t.Fatalf("defaults = %+v", s.SessionTimes)
	}

	update := &bookingv1.Settings{SessionTimes: []*bookingv1.SessionTime{
		{TimeSlot: "morning", Start: "6:00 AM", End: "6:45 AM", Enabled: true},
	}}
	_, err = h.AdminUpdateSessionTimes(client, update)
	wantCode(t, err, codes.PermissionDenied)

	s, err = h.AdminUpdateSessionTimes(admin, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.SessionTimes[0].Start != "6:00 AM" || s.SessionTimes[1].Start != "9:30 AM" {
		t.Errorf("settings = %+v", s.SessionTimes)
	}

	cr, err := h.CreateBooking(client, &bookingv1.CreateBookingRequest{Date: "2026-01-06", TimeSlot: "morning"})
	if err != nil {
		t.Fatal(err)
	}
	if cr.Booking.TimeDisplay != "6:00 AM - 6:45 AM" {
		t.Errorf("time display = %q", cr.Booking.TimeDisplay)
	}

	_, err = h.AdminUpdateSessionTimes(admin, &bookingv1.Settings{SessionTimes: []*bookingv1.SessionTime{
		{TimeSlot: "evening", Start: "7:00 PM", End: "8:00 PM"},
	}})
	wantCode(t, err, codes.InvalidArgument)
	_, err = h.AdminUpdateSessionTimes(admin, &bookingv1.Settings{})
	wantCode(t, err, codes.InvalidArgument)
}

// ----- profile tests -----

func TestProfile(t *testing.T) {
	h, st := setup(t)
	_, ctx := registerUser(t, h, st, 0)

	u, err := h.GetProfile(ctx, &bookingv1.Empty{})
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if u.ProfileCompleted || u.Profile != nil {
		t.Fatalf("new user profile = %+v", u)
	}

	resp, err := h.UpdateProfile(ctx, &bookingv1.Profile{
		Phone: " 555-0123 ", Age: 29, FitnessGoals: "Weight loss and strength building",
		EmergencyContactName: "Jane Doe", EmergencyContactPhone: "555-0124",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if resp.Message != "Profile updated successfully" {
		t.Errorf("message = %q", resp.Message)
	}

	u, err = h.GetProfile(ctx, &bookingv1.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if !u.ProfileCompleted || u.Profile == nil {
		t.Fatalf("profile not stored: %+v", u)
	}
	if u.Profile.Phone != "555-0123" || u.Profile.Age != 29 || u.Profile.EmergencyContactName != "Jane Doe" {
		t.Errorf("profile = %+v", u.Profile)
	}

	admin := registerAdmin(t, h, st)
	list, err := h.AdminListClients(admin, &bookingv1.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range list.Users {
		if c.Id == u.Id {
			found = true
			if !c.ProfileCompleted || c.Profile == nil || c.Profile.FitnessGoals != "Weight loss and strength building" {
				t.Errorf("client view = %+v", c)
			}
		}
	}
	if !found {
		t.Error("client missing from admin list")
	}
}

func TestProfileValidation(t *testing.T) {
	h, st := setup(t)
	_, ctx := registerUser(t, h, st, 0)

	tests := []struct {
		name string
		req  *bookingv1.Profile
	}{
		{"negative age", &bookingv1.Profile{Age: -1}},
		{"age too high", &bookingv1.Profile{Age: 200}},
		{"long phone", &bookingv1.Profile{Phone: strings.Repeat("5", 40)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.UpdateProfile(ctx, tt.req)
			wantCode(t, err, codes.InvalidArgument)
		})
	}

	_, err := h.UpdateProfile(context.Background(), &bookingv1.Profile{})
	wantCode(t, err, codes.Unauthenticated)
}
