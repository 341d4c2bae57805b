package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"training-booking-api/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// BookingFilter narrows booking queries; zero fields match everything.
type BookingFilter struct {
	UserID   string
	Date     time.Time
	TimeSlot model.TimeSlot
	DateFrom time.Time
	DateTo   time.Time
}

// WaitlistFilter narrows waitlist queries; zero fields match everything.
type WaitlistFilter struct {
	UserID   string
	Date     time.Time
	TimeSlot model.TimeSlot
}

// Store is the postgres-backed document store.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate applies the schema file at path. A missing file is not an error.
func (s *Store) Migrate(ctx context.Context, path string) (bool, error) {
	migration, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := s.pool.Exec(ctx, string(migration)); err != nil {
		return false, fmt.Errorf("apply %s: %w", path, err)
	}
	return true, nil
}

func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// where accumulates positional predicates for filter queries.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, v any) {
	w.args = append(w.args, v)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	out := " WHERE " + w.clauses[0]
	for _, c := range w.clauses[1:] {
		out += " AND " + c
	}
	return out
}

func bookingWhere(f BookingFilter) *where {
	w := &where{}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	if !f.Date.IsZero() {
		w.add("date = $%d", model.Day(f.Date))
	}
	if f.TimeSlot != "" {
		w.add("time_slot = $%d", string(f.TimeSlot))
	}
	if !f.DateFrom.IsZero() {
		w.add("date >= $%d", model.Day(f.DateFrom))
	}
	if !f.DateTo.IsZero() {
		w.add("date <= $%d", model.Day(f.DateTo))
	}
	return w
}

func waitlistWhere(f WaitlistFilter) *where {
	w := &where{}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	if !f.Date.IsZero() {
		w.add("date = $%d", model.Day(f.Date))
	}
	if f.TimeSlot != "" {
		w.add("time_slot = $%d", string(f.TimeSlot))
	}
	return w
}
