package handler

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/booking"
	"training-booking-api/internal/model"
)

// parseSlot reads a validated date/slot pair.
func parseSlot(date, slot string) (time.Time, model.TimeSlot, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return time.Time{}, "", status.Error(codes.InvalidArgument, "invalid date")
	}
	ts, err := model.ParseTimeSlot(slot)
	if err != nil {
		return time.Time{}, "", status.Error(codes.InvalidArgument, "invalid time slot")
	}
	return d, ts, nil
}

func (h *Handler) notPast(d time.Time) error {
	if d.Before(model.Day(h.now())) {
		return status.Error(codes.InvalidArgument, "cannot book a date in the past")
	}
	return nil
}

func (h *Handler) GetSlots(ctx context.Context, req *bookingv1.GetSlotsRequest) (*bookingv1.GetSlotsResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	d, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid date")
	}

	views, err := h.bookings.Day(ctx, u.ID, d)
	if err != nil {
		return nil, toStatus("get slots", err)
	}
	resp := &bookingv1.GetSlotsResponse{Date: model.DateString(d)}
	for _, v := range views {
		resp.Slots = append(resp.Slots, &bookingv1.Slot{
			TimeSlot:             string(v.TimeSlot),
			TimeDisplay:          v.TimeDisplay,
			Bookings:             toBookings(v.Bookings),
			AvailableSpots:       int32(v.AvailableSpots),
			IsFull:               v.IsFull,
			UserBooked:           v.UserBooked,
			WaitlistCount:        int32(v.WaitlistCount),
			UserOnWaitlist:       v.UserOnWaitlist,
			UserWaitlistPosition: int32(v.UserWaitlistPosition),
		})
	}
	return resp, nil
}

func (h *Handler) CreateBooking(ctx context.Context, req *bookingv1.CreateBookingRequest) (*bookingv1.CreateBookingResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	d, slot, err := parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if err := h.notPast(d); err != nil {
		return nil, err
	}

	res, err := h.bookings.CreateBooking(ctx, u, booking.CreateRequest{
		Date:           d,
		TimeSlot:       slot,
		IsRecurring:    req.IsRecurring,
		RecurringWeeks: int(req.RecurringWeeks),
	})
	if err != nil {
		return nil, toStatus("create booking", err)
	}

	resp := &bookingv1.CreateBookingResponse{
		Bookings:         toBookings(res.Bookings),
		RecurringGroupId: res.GroupID,
		Message:          res.Message,
	}
	if res.Booking != nil {
		resp.Booking = toBooking(res.Booking)
	}
	for _, wd := range res.WaitlistedDates {
		resp.WaitlistedDates = append(resp.WaitlistedDates, model.DateString(wd))
	}
	return resp, nil
}

func (h *Handler) CancelBooking(ctx context.Context, req *bookingv1.IDRequest) (*bookingv1.CancelBookingResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.bookings.CancelBooking(ctx, req.Id, u)
	if res == nil && err != nil {
		return nil, toStatus("cancel booking", err)
	}
	// the booking is already gone; a failed refund is logged for follow-up
	if err != nil {
		log.Printf("handler: cancel booking %s: refund: %v", req.Id, err)
	}
	resp := &bookingv1.CancelBookingResponse{Message: "Booking cancelled and credit refunded"}
	if res.Promoted != nil {
		resp.Promoted = toBooking(res.Promoted)
	}
	return resp, nil
}

func (h *Handler) MyBookings(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.BookingList, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	bs, err := h.bookings.MyBookings(ctx, u.ID)
	if err != nil {
		return nil, toStatus("my bookings", err)
	}
	return &bookingv1.BookingList{Bookings: toBookings(bs)}, nil
}

func (h *Handler) JoinWaitlist(ctx context.Context, req *bookingv1.SlotRequest) (*bookingv1.JoinWaitlistResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	d, slot, err := parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if err := h.notPast(d); err != nil {
		return nil, err
	}

	e, err := h.bookings.JoinWaitlist(ctx, u, d, slot)
	if err != nil {
		return nil, toStatus("join waitlist", err)
	}
	return &bookingv1.JoinWaitlistResponse{
		Entry:   toWaitlistEntry(e),
		Message: fmt.Sprintf("Added to waitlist at position %d", e.Position),
	}, nil
}

func (h *Handler) LeaveWaitlist(ctx context.Context, req *bookingv1.IDRequest) (*bookingv1.MessageResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.bookings.LeaveWaitlist(ctx, req.Id, u); err != nil {
		return nil, toStatus("leave waitlist", err)
	}
	return &bookingv1.MessageResponse{Message: "Removed from waitlist"}, nil
}

func (h *Handler) MyWaitlist(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.WaitlistList, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	es, err := h.bookings.MyWaitlist(ctx, u.ID)
	if err != nil {
		return nil, toStatus("my waitlist", err)
	}
	return &bookingv1.WaitlistList{Entries: toWaitlist(es), Total: int32(len(es))}, nil
}

func (h *Handler) SlotWaitlist(ctx context.Context, req *bookingv1.SlotRequest) (*bookingv1.WaitlistList, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	d, slot, err := parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	v, err := h.bookings.SlotWaitlist(ctx, u.ID, d, slot)
	if err != nil {
		return nil, toStatus("slot waitlist", err)
	}
	return &bookingv1.WaitlistList{
		Entries:      toWaitlist(v.Entries),
		Total:        int32(v.Total),
		UserPosition: int32(v.UserPosition),
	}, nil
}
