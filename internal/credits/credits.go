// Package credits sells session packages. Payment happens offline; an admin
// confirms each purchase, which is when credits land on the account.
package credits

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"training-booking-api/internal/model"
	"training-booking-api/internal/store"
)

var (
	ErrUnknownPackage   = errors.New("invalid package type")
	ErrUnknownMethod    = errors.New("invalid payment method")
	ErrNotFound         = errors.New("transaction not found")
	ErrAlreadyConfirmed = errors.New("transaction already confirmed")
)

const Unlimited = "unlimited"

type Package struct {
	Type    string
	Name    string
	Credits int
	Amount  float64
}

// Packages in display order.
var Packages = []Package{
	{Type: "single", Name: "Single Session", Credits: 1, Amount: 30},
	{Type: "double", Name: "2 Sessions", Credits: 2, Amount: 40},
	{Type: Unlimited, Name: "Unlimited", Credits: 999, Amount: 50},
}

var paymentMethods = map[string]bool{"cash": true, "transfer": true}

func lookup(packageType string) (Package, bool) {
	for _, p := range Packages {
		if p.Type == packageType {
			return p, true
		}
	}
	return Package{}, false
}

type Store interface {
	InsertTransaction(ctx context.Context, t *model.CreditTransaction) error
	TransactionByID(ctx context.Context, id string) (*model.CreditTransaction, error)
	FindTransactions(ctx context.Context, userID, status string) ([]model.CreditTransaction, error)
	ConfirmTransaction(ctx context.Context, id string) (bool, error)
	ReopenTransaction(ctx context.Context, id string) error
}

// Granter credits an account; booking.Ledger implements it.
type Granter interface {
	Grant(ctx context.Context, userID string, n int) error
	GrantUnlimited(ctx context.Context, userID string) error
}

type Service struct {
	store  Store
	ledger Granter
}

func New(st Store, ledger Granter) *Service {
	return &Service{store: st, ledger: ledger}
}

// Purchase records a pending transaction and returns the payment instruction.
func (s *Service) Purchase(ctx context.Context, user *model.User, packageType, paymentMethod string) (*model.CreditTransaction, string, error) {
	pkg, ok := lookup(packageType)
	if !ok {
		return nil, "", ErrUnknownPackage
	}
	if !paymentMethods[paymentMethod] {
		return nil, "", ErrUnknownMethod
	}
	t := &model.CreditTransaction{
		ID:            "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		UserID:        user.ID,
		UserName:      user.Name,
		PackageType:   pkg.Type,
		CreditsAdded:  pkg.Credits,
		Amount:        pkg.Amount,
		PaymentMethod: paymentMethod,
		Status:        model.TxPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.InsertTransaction(ctx, t); err != nil {
		return nil, "", fmt.Errorf("insert transaction: %w", err)
	}
	msg := fmt.Sprintf("Please pay $%.2f via %s. Your purchase will be confirmed by admin.", pkg.Amount, paymentMethod)
	return t, msg, nil
}

// Confirm marks a transaction paid and credits the buyer. A transaction is
// credited at most once; if the grant fails it goes back to pending so it can
// be confirmed again.
func (s *Service) Confirm(ctx context.Context, transactionID string) (*model.CreditTransaction, error) {
	t, err := s.store.TransactionByID(ctx, transactionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	ok, err := s.store.ConfirmTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("confirm transaction: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyConfirmed
	}

	ctx = context.WithoutCancel(ctx)
	if t.PackageType == Unlimited {
		err = s.ledger.GrantUnlimited(ctx, t.UserID)
	} else {
		err = s.ledger.Grant(ctx, t.UserID, t.CreditsAdded)
	}
	if err != nil {
		if rerr := s.store.ReopenTransaction(ctx, transactionID); rerr != nil {
			log.Printf("credits: reopen %s after failed grant: %v", transactionID, rerr)
		}
		return nil, fmt.Errorf("grant credits: %w", err)
	}
	t.Status = model.TxConfirmed
	return t, nil
}

func (s *Service) Transactions(ctx context.Context, userID string) ([]model.CreditTransaction, error) {
	return s.store.FindTransactions(ctx, userID, "")
}

// AllTransactions lists every user's transactions, optionally by status.
func (s *Service) AllTransactions(ctx context.Context, status string) ([]model.CreditTransaction, error) {
	return s.store.FindTransactions(ctx, "", status)
}
