package store

import (
	"context"

	"training-booking-api/internal/model"
)

// SessionTimes returns the stored slot windows. Slots never saved are absent.
func (s *Store) SessionTimes(ctx context.Context) (model.SessionTimes, error) {
	rows, err := s.pool.Query(ctx, `SELECT time_slot, start_time, end_time, enabled FROM session_times`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := model.SessionTimes{}
	for rows.Next() {
		var slot model.TimeSlot
		var st model.SlotTime
		if err := rows.Scan(&slot, &st.Start, &st.End, &st.Enabled); err != nil {
			return nil, err
		}
		out[slot] = st
	}
	return out, rows.Err()
}

func (s *Store) SaveSessionTimes(ctx context.Context, times model.SessionTimes, updatedBy string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for slot, st := range times {
		_, err = tx.Exec(ctx,
			`INSERT INTO session_times (time_slot, start_time, end_time, enabled, updated_by, updated_at)
			 VALUES ($1,$2,$3,$4,$5,NOW())
			 ON CONFLICT (time_slot) DO UPDATE
			 SET start_time = $2, end_time = $3, enabled = $4, updated_by = $5, updated_at = NOW()`,
			string(slot), st.Start, st.End, st.Enabled, updatedBy,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
