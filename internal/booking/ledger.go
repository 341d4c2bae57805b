package booking

import (
	"context"
	"errors"
	"fmt"

	"training-booking-api/internal/model"
	"training-booking-api/internal/store"
)

// Ledger is the only writer of user credit balances. Unlimited users are
// handled here so callers never branch on the flag.
type Ledger struct {
	users UserStore
}

func NewLedger(users UserStore) *Ledger {
	return &Ledger{users: users}
}

func (l *Ledger) HasSufficient(u *model.User, n int) bool {
	return u.HasUnlimited || u.Credits >= n
}

// Deduct draws n credits. The decrement is conditional, so a balance that
// moved since it was checked yields ErrInsufficientCredits instead of going
// negative.
func (l *Ledger) Deduct(ctx context.Context, userID string, n int) error {
	u, err := l.users.UserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("deduct: %w", err)
	}
	if u.HasUnlimited || n <= 0 {
		return nil
	}
	ok, err := l.users.DecrementCredits(ctx, userID, n)
	if err != nil {
		return fmt.Errorf("deduct: %w", err)
	}
	if !ok {
		return ErrInsufficientCredits
	}
	return nil
}

// Refund returns n credits. A user that no longer exists is skipped.
func (l *Ledger) Refund(ctx context.Context, userID string, n int) error {
	u, err := l.users.UserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("refund: %w", err)
	}
	if u.HasUnlimited || n <= 0 {
		return nil
	}
	if err := l.users.IncrementCredits(ctx, userID, n); err != nil {
		return fmt.Errorf("refund: %w", err)
	}
	return nil
}

// Grant adds purchased credits.
func (l *Ledger) Grant(ctx context.Context, userID string, n int) error {
	if err := l.users.IncrementCredits(ctx, userID, n); err != nil {
		return fmt.Errorf("grant: %w", err)
	}
	return nil
}

func (l *Ledger) GrantUnlimited(ctx context.Context, userID string) error {
	if err := l.users.SetUnlimited(ctx, userID); err != nil {
		return fmt.Errorf("grant unlimited: %w", err)
	}
	return nil
}
