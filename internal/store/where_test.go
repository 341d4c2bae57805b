package store

import (
	"testing"
	"time"

	"training-booking-api/internal/model"
)

func TestBookingWhere(t *testing.T) {
	d := time.Date(2026, 1, 6, 15, 4, 0, 0, time.UTC)
	tests := []struct {
		name  string
		f     BookingFilter
		want  string
		nargs int
	}{
		{"empty", BookingFilter{}, "", 0},
		{"user", BookingFilter{UserID: "u1"}, " WHERE user_id = $1", 1},
		{"slot", BookingFilter{Date: d, TimeSlot: model.Morning}, " WHERE date = $1 AND time_slot = $2", 2},
		{"range", BookingFilter{DateFrom: d, DateTo: d}, " WHERE date >= $1 AND date <= $2", 2},
		{"all", BookingFilter{UserID: "u1", Date: d, TimeSlot: model.Afternoon, DateFrom: d, DateTo: d},
			" WHERE user_id = $1 AND date = $2 AND time_slot = $3 AND date >= $4 AND date <= $5", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := bookingWhere(tt.f)
			if w.String() != tt.want || len(w.args) != tt.nargs {
				t.Errorf("got %q with %d args", w.String(), len(w.args))
			}
		})
	}

	w := bookingWhere(BookingFilter{Date: d})
	if got := w.args[0].(time.Time); !got.Equal(model.Day(d)) {
		t.Errorf("date arg = %v, want midnight", got)
	}
}

func TestWaitlistWhere(t *testing.T) {
	w := waitlistWhere(WaitlistFilter{UserID: "u1", TimeSlot: model.Morning})
	if w.String() != " WHERE user_id = $1 AND time_slot = $2" {
		t.Errorf("got %q", w.String())
	}
	if w.args[1] != "morning" {
		t.Errorf("slot arg = %v", w.args[1])
	}
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		rt   RefreshToken
		want bool
	}{
		{"fresh", RefreshToken{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", RefreshToken{ExpiresAt: now.Add(-time.Second)}, false},
		{"revoked", RefreshToken{ExpiresAt: now.Add(time.Hour), Revoked: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rt.Usable(now); got != tt.want {
				t.Errorf("Usable = %v, want %v", got, tt.want)
			}
		})
	}
}
