package handler

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/model"
)

func (h *Handler) AdminListBookings(ctx context.Context, req *bookingv1.AdminListBookingsRequest) (*bookingv1.BookingList, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	if _, err := h.admin(ctx); err != nil {
		return nil, err
	}
	var from, to time.Time
	if req.DateFrom != "" {
		from, _ = model.ParseDate(req.DateFrom)
	}
	if req.DateTo != "" {
		to, _ = model.ParseDate(req.DateTo)
	}
	bs, err := h.bookings.AdminBookings(ctx, from, to)
	if err != nil {
		return nil, toStatus("admin bookings", err)
	}
	return &bookingv1.BookingList{Bookings: toBookings(bs)}, nil
}

func (h *Handler) AdminListClients(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.UserList, error) {
	if _, err := h.admin(ctx); err != nil {
		return nil, err
	}
	us, err := h.users.ListClients(ctx)
	if err != nil {
		return nil, toStatus("list clients", err)
	}
	resp := &bookingv1.UserList{}
	for i := range us {
		resp.Users = append(resp.Users, toUser(&us[i]))
	}
	return resp, nil
}

func (h *Handler) AdminListTransactions(ctx context.Context, req *bookingv1.AdminListTransactionsRequest) (*bookingv1.TransactionList, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	if _, err := h.admin(ctx); err != nil {
		return nil, err
	}
	ts, err := h.credits.AllTransactions(ctx, req.Status)
	if err != nil {
		return nil, toStatus("admin transactions", err)
	}
	return &bookingv1.TransactionList{Transactions: toTransactions(ts)}, nil
}

func (h *Handler) AdminConfirmTransaction(ctx context.Context, req *bookingv1.IDRequest) (*bookingv1.MessageResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	if _, err := h.admin(ctx); err != nil {
		return nil, err
	}
	if _, err := h.credits.Confirm(ctx, req.Id); err != nil {
		return nil, toStatus("confirm transaction", err)
	}
	return &bookingv1.MessageResponse{Message: "Transaction confirmed and credits added"}, nil
}

func (h *Handler) AdminMakeAdmin(ctx context.Context, req *bookingv1.IDRequest) (*bookingv1.MessageResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	if _, err := h.admin(ctx); err != nil {
		return nil, err
	}
	if err := h.users.SetAdmin(ctx, req.Id); err != nil {
		return nil, toStatus("make admin", err)
	}
	return &bookingv1.MessageResponse{Message: "User is now an admin"}, nil
}

func (h *Handler) AdminUpdateSessionTimes(ctx context.Context, req *bookingv1.Settings) (*bookingv1.Settings, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.admin(ctx)
	if err != nil {
		return nil, err
	}
	if len(req.SessionTimes) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no session times given")
	}
	times := model.SessionTimes{}
	for _, st := range req.SessionTimes {
		times[model.TimeSlot(st.TimeSlot)] = model.SlotTime{Start: st.Start, End: st.End, Enabled: st.Enabled}
	}
	if err := h.settings.UpdateSessionTimes(ctx, times, u.ID); err != nil {
		return nil, toStatus("update session times", err)
	}
	return h.GetSettings(ctx, &bookingv1.Empty{})
}
