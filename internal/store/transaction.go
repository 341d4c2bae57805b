package store

import (
	"context"

	"training-booking-api/internal/model"
)

const txCols = `id, user_id, user_name, package_type, credits_added, amount, payment_method, status, created_at`

func scanTransaction(row scanner) (*model.CreditTransaction, error) {
	t := &model.CreditTransaction{}
	err := row.Scan(&t.ID, &t.UserID, &t.UserName, &t.PackageType, &t.CreditsAdded,
		&t.Amount, &t.PaymentMethod, &t.Status, &t.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return t, nil
}

func (s *Store) InsertTransaction(ctx context.Context, t *model.CreditTransaction) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO credit_transactions
		   (id, user_id, user_name, package_type, credits_added, amount, payment_method, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		t.ID, t.UserID, t.UserName, t.PackageType, t.CreditsAdded, t.Amount, t.PaymentMethod, t.Status, t.CreatedAt,
	)
	return mapErr(err)
}

func (s *Store) TransactionByID(ctx context.Context, id string) (*model.CreditTransaction, error) {
	return scanTransaction(s.pool.QueryRow(ctx,
		`SELECT `+txCols+` FROM credit_transactions WHERE id = $1`, id))
}

// FindTransactions lists newest first. Empty userID or status do not filter.
func (s *Store) FindTransactions(ctx context.Context, userID, status string) ([]model.CreditTransaction, error) {
	w := &where{}
	if userID != "" {
		w.add("user_id = $%d", userID)
	}
	if status != "" {
		w.add("status = $%d", status)
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+txCols+` FROM credit_transactions`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CreditTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ConfirmTransaction flips a pending transaction to confirmed. It reports
// false if the transaction was already confirmed.
func (s *Store) ConfirmTransaction(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE credit_transactions SET status = $2 WHERE id = $1 AND status = $3`,
		id, model.TxConfirmed, model.TxPending)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if _, err := s.TransactionByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// ReopenTransaction puts a confirmed transaction back to pending.
func (s *Store) ReopenTransaction(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE credit_transactions SET status = $2 WHERE id = $1 AND status = $3`,
		id, model.TxPending, model.TxConfirmed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
