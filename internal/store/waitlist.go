package store

import (
	"context"

	"training-booking-api/internal/model"
)

const waitlistCols = `id, user_id, user_name, date, time_slot, position, created_at`

func scanWaitlistEntry(row scanner) (*model.WaitlistEntry, error) {
	e := &model.WaitlistEntry{}
	err := row.Scan(&e.ID, &e.UserID, &e.UserName, &e.Date, &e.TimeSlot, &e.Position, &e.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	e.Date = model.Day(e.Date)
	return e, nil
}

func (s *Store) InsertWaitlistEntry(ctx context.Context, e *model.WaitlistEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO waitlist (id, user_id, user_name, date, time_slot, position, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.UserID, e.UserName, model.Day(e.Date), string(e.TimeSlot), e.Position, e.CreatedAt,
	)
	return mapErr(err)
}

func (s *Store) WaitlistEntryByID(ctx context.Context, id string) (*model.WaitlistEntry, error) {
	return scanWaitlistEntry(s.pool.QueryRow(ctx,
		`SELECT `+waitlistCols+` FROM waitlist WHERE id = $1`, id))
}

// FindWaitlist returns matching entries in queue order.
func (s *Store) FindWaitlist(ctx context.Context, f WaitlistFilter) ([]model.WaitlistEntry, error) {
	w := waitlistWhere(f)
	rows, err := s.pool.Query(ctx,
		`SELECT `+waitlistCols+` FROM waitlist`+w.String()+
			` ORDER BY date, time_slot DESC, position, created_at`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WaitlistEntry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) CountWaitlist(ctx context.Context, f WaitlistFilter) (int, error) {
	w := waitlistWhere(f)
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM waitlist`+w.String(), w.args...).Scan(&n)
	return n, err
}

func (s *Store) DeleteWaitlistEntry(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM waitlist WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateWaitlistPosition(ctx context.Context, id string, position int) error {
	tag, err := s.pool.Exec(ctx, `UPDATE waitlist SET position = $2 WHERE id = $1`, id, position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
