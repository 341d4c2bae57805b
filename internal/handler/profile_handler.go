package handler

import (
	"context"
	"strings"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/model"
)

func (h *Handler) GetProfile(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.User, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

// UpdateProfile replaces the caller's whole profile; omitted fields are
// cleared.
func (h *Handler) UpdateProfile(ctx context.Context, req *bookingv1.Profile) (*bookingv1.MessageResponse, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range []*string{
		&req.Phone, &req.FitnessGoals, &req.HealthConditions, &req.PreviousInjuries,
		&req.EmergencyContactName, &req.EmergencyContactPhone,
	} {
		*f = strings.TrimSpace(*f)
	}
	if err := h.check(req); err != nil {
		return nil, err
	}

	p := model.Profile{
		Phone:                 req.Phone,
		Age:                   int(req.Age),
		FitnessGoals:          req.FitnessGoals,
		HealthConditions:      req.HealthConditions,
		PreviousInjuries:      req.PreviousInjuries,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
	if err := h.users.UpdateProfile(ctx, u.ID, p); err != nil {
		return nil, toStatus("update profile", err)
	}
	return &bookingv1.MessageResponse{Message: "Profile updated successfully"}, nil
}
