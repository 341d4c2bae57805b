package handler

import (
	"context"

	bookingv1 "training-booking-api/api/booking/v1"
)

func (h *Handler) ListNotifications(ctx context.Context, req *bookingv1.ListNotificationsRequest) (*bookingv1.NotificationList, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	ns, err := h.inbox.List(ctx, u.ID, req.UnreadOnly)
	if err != nil {
		return nil, toStatus("list notifications", err)
	}
	resp := &bookingv1.NotificationList{}
	for _, n := range ns {
		if !n.Read {
			resp.UnreadCount++
		}
		resp.Notifications = append(resp.Notifications, &bookingv1.Notification{
			Id:        n.ID,
			Kind:      n.Kind,
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: ts(n.CreatedAt),
		})
	}
	return resp, nil
}

func (h *Handler) MarkNotificationRead(ctx context.Context, req *bookingv1.IDRequest) (*bookingv1.MessageResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.inbox.MarkRead(ctx, req.Id, u.ID); err != nil {
		return nil, toStatus("mark notification read", err)
	}
	return &bookingv1.MessageResponse{Message: "Notification marked as read"}, nil
}

func (h *Handler) MarkAllNotificationsRead(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.MessageResponse, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.inbox.MarkAllRead(ctx, u.ID); err != nil {
		return nil, toStatus("mark all notifications read", err)
	}
	return &bookingv1.MessageResponse{Message: "All notifications marked as read"}, nil
}
