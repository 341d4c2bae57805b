package model

import (
	"testing"
	"time"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"ada  byron lovelace", "AL"},
		{"Cher", "CH"},
		{"Q", "XX"},
		{"", "XX"},
		{"  ", "XX"},
		{"élodie durand", "ÉD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initials(tt.name); got != tt.want {
				t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-10")
	if err != nil {
		t.Fatal(err)
	}
	if d.Location() != time.UTC || d.Hour() != 0 || DateString(d) != "2026-01-10" {
		t.Errorf("ParseDate = %v", d)
	}
	for _, bad := range []string{"", "2026-1-10", "10/01/2026", "2026-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestDayTruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2026, 1, 10, 3, 0, 0, 0, loc) // 2026-01-09 18:00 UTC
	if got := DateString(Day(in)); got != "2026-01-09" {
		t.Errorf("Day = %s, want 2026-01-09", got)
	}
}

func TestParseTimeSlot(t *testing.T) {
	for _, s := range TimeSlots {
		if got, err := ParseTimeSlot(string(s)); err != nil || got != s {
			t.Errorf("ParseTimeSlot(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseTimeSlot("evening"); err == nil {
		t.Error("evening should not parse")
	}
}
