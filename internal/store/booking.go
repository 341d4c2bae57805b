package store

import (
	"context"

	"training-booking-api/internal/model"
)

const bookingCols = `id, user_id, user_name, user_initials, date, time_slot, time_display,
	is_recurring, recurring_group_id, from_waitlist, reminder_24h_sent, reminder_1h_sent, created_at`

func scanBooking(row scanner) (*model.Booking, error) {
	b := &model.Booking{}
	err := row.Scan(&b.ID, &b.UserID, &b.UserName, &b.UserInitials, &b.Date, &b.TimeSlot, &b.TimeDisplay,
		&b.IsRecurring, &b.RecurringGroupID, &b.FromWaitlist, &b.Reminder24hSent, &b.Reminder1hSent, &b.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	b.Date = model.Day(b.Date)
	return b, nil
}

func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bookings (id, user_id, user_name, user_initials, date, time_slot, time_display,
		                       is_recurring, recurring_group_id, from_waitlist,
		                       reminder_24h_sent, reminder_1h_sent, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		b.ID, b.UserID, b.UserName, b.UserInitials, model.Day(b.Date), string(b.TimeSlot), b.TimeDisplay,
		b.IsRecurring, b.RecurringGroupID, b.FromWaitlist,
		b.Reminder24hSent, b.Reminder1hSent, b.CreatedAt,
	)
	return mapErr(err)
}

func (s *Store) BookingByID(ctx context.Context, id string) (*model.Booking, error) {
	return scanBooking(s.pool.QueryRow(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
}

func (s *Store) FindBookings(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	w := bookingWhere(f)
	rows, err := s.pool.Query(ctx,
		`SELECT `+bookingCols+` FROM bookings`+w.String()+
			` ORDER BY date, time_slot DESC, created_at`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *Store) CountBookings(ctx context.Context, f BookingFilter) (int, error) {
	w := bookingWhere(f)
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+w.String(), w.args...).Scan(&n)
	return n, err
}

// DeleteBooking hard-deletes; cancelled bookings are not kept.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
