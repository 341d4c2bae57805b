package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/auth"
	"training-booking-api/internal/model"
	"training-booking-api/internal/store"
)

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (h *Handler) Register(ctx context.Context, req *bookingv1.RegisterRequest) (*bookingv1.AuthResponse, error) {
	req.Email = normEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := h.check(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Initials:     model.Initials(req.Name),
	}
	if err := h.users.CreateUser(ctx, u); err != nil {
		// unique violation = dup email, but don't reveal that
		if errors.Is(err, store.ErrDuplicate) {
			return nil, status.Error(codes.AlreadyExists, "registration failed")
		}
		return nil, internal("create user", err)
	}
	return h.issue(ctx, u)
}

func (h *Handler) Login(ctx context.Context, req *bookingv1.LoginRequest) (*bookingv1.AuthResponse, error) {
	req.Email = normEmail(req.Email)
	if err := h.check(req); err != nil {
		return nil, err
	}

	u, err := h.users.UserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, internal("load user", err)
	}
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	return h.issue(ctx, u)
}

// Refresh swaps a refresh token for a new pair. Presenting a token that was
// already rotated revokes every token of its owner.
func (h *Handler) Refresh(ctx context.Context, req *bookingv1.RefreshRequest) (*bookingv1.AuthResponse, error) {
	if err := h.check(req); err != nil {
		return nil, err
	}

	rt, err := h.tokens.RefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if errors.Is(err, store.ErrNotFound) {
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if err != nil {
		return nil, internal("load refresh token", err)
	}
	if rt.Revoked {
		if err := h.tokens.RevokeAllRefreshTokens(ctx, rt.UserID); err != nil {
			return nil, internal("revoke tokens", err)
		}
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if !rt.Usable(h.now()) {
		return nil, status.Error(codes.Unauthenticated, "refresh token expired")
	}

	u, err := h.users.UserByID(ctx, rt.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if err != nil {
		return nil, internal("load user", err)
	}

	tok, err := h.issuer.AccessToken(u.ID)
	if err != nil {
		return nil, internal("access token", err)
	}
	raw, hash, expires, err := h.issuer.RefreshToken()
	if err != nil {
		return nil, internal("refresh token", err)
	}
	if _, err := h.tokens.RotateRefreshToken(ctx, rt.ID, u.ID, hash, expires); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
		}
		return nil, internal("rotate refresh token", err)
	}
	return &bookingv1.AuthResponse{Token: tok, RefreshToken: raw, User: toUser(u)}, nil
}

func (h *Handler) Logout(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.Empty, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.tokens.RevokeAllRefreshTokens(ctx, u.ID); err != nil {
		return nil, internal("revoke tokens", err)
	}
	return &bookingv1.Empty{}, nil
}

func (h *Handler) Me(ctx context.Context, _ *bookingv1.Empty) (*bookingv1.User, error) {
	u, err := h.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

func (h *Handler) issue(ctx context.Context, u *model.User) (*bookingv1.AuthResponse, error) {
	tok, err := h.issuer.AccessToken(u.ID)
	if err != nil {
		return nil, internal("access token", err)
	}
	raw, hash, expires, err := h.issuer.RefreshToken()
	if err != nil {
		return nil, internal("refresh token", err)
	}
	if _, err := h.tokens.CreateRefreshToken(ctx, u.ID, hash, expires); err != nil {
		return nil, internal("store refresh token", err)
	}
	return &bookingv1.AuthResponse{Token: tok, RefreshToken: raw, User: toUser(u)}, nil
}
