package handler

import (
	"context"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/credits"
)

func (h *Handler) ListPackages(context.Context, *bookingv1.Empty) (*bookingv1.ListPackagesResponse, error) {
	resp := &bookingv1.ListPackagesResponse{}
	for _, p := range credits.Packages {
		resp.Packages = append(resp.Packages, &bookingv1.CreditPackage{
			Type:    p.Type,
			Name:    p.Name,
			Credits: int32(p.Credits),
			Amount:  p.Amount,
		})
	}
	return resp, nil
}

func (h *Handler) PurchaseCredits(ctx context.Context, req *bookingv1.PurchaseCreditsRequest) (*bookingv1.PurchaseCreditsResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	t, msg, err := h.credits.Purchase(ctx, u, req.PackageType, req.PaymentMethod)
	if err != nil {
		return nil, toStatus("purchase credits", err)
	}
	return &bookingv1.PurchaseCreditsResponse{Transaction: toTransaction(t), Message: msg}, nil
}

func (h *Handler) CreditBalance(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.CreditBalanceResponse, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return &bookingv1.CreditBalanceResponse{Credits: int32(u.Credits), HasUnlimited: u.HasUnlimited}, nil
}

func (h *Handler) MyTransactions(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.TransactionList, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	ts, err := h.credits.Transactions(ctx, u.ID)
	if err != nil {
		return nil, toStatus("my transactions", err)
	}
	return &bookingv1.TransactionList{Transactions: toTransactions(ts)}, nil
}
