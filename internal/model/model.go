package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxBookingsPerSlot is the capacity of one (date, time slot) session.
const MaxBookingsPerSlot = 3

type TimeSlot string

const (
	Morning   TimeSlot = "morning"
	Afternoon TimeSlot = "afternoon"
)

// TimeSlots lists every bookable slot in display order.
var TimeSlots = []TimeSlot{Morning, Afternoon}

func ParseTimeSlot(s string) (TimeSlot, error) {
	switch TimeSlot(s) {
	case Morning, Afternoon:
		return TimeSlot(s), nil
	}
	return "", fmt.Errorf("unknown time slot %q", s)
}

const dateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func DateString(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Initials is the two-letter badge shown on slot rosters.
func Initials(name string) string {
	parts := strings.Fields(name)
	switch {
	case len(parts) >= 2:
		return strings.ToUpper(string([]rune(parts[0])[:1]) + string([]rune(parts[len(parts)-1])[:1]))
	case len(parts) == 1 && len([]rune(parts[0])) >= 2:
		return strings.ToUpper(string([]rune(parts[0])[:2]))
	}
	return "XX"
}

type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Name             string
	Initials         string
	IsAdmin          bool
	Credits          int
	HasUnlimited     bool
	Profile          *Profile
	ProfileCompleted bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Profile is the client's onboarding questionnaire, stored as one document.
type Profile struct {
	Phone                 string `json:"phone,omitempty"`
	Age                   int    `json:"age,omitempty"`
	FitnessGoals          string `json:"fitness_goals,omitempty"`
	HealthConditions      string `json:"health_conditions,omitempty"`
	PreviousInjuries      string `json:"previous_injuries,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
}

type Booking struct {
	ID               string
	UserID           string
	UserName         string
	UserInitials     string
	Date             time.Time
	TimeSlot         TimeSlot
	TimeDisplay      string
	IsRecurring      bool
	RecurringGroupID string
	FromWaitlist     bool
	Reminder24hSent  bool
	Reminder1hSent   bool
	CreatedAt        time.Time
}

type WaitlistEntry struct {
	ID        string
	UserID    string
	UserName  string
	Date      time.Time
	TimeSlot  TimeSlot
	Position  int
	CreatedAt time.Time
}

const (
	TxPending   = "pending"
	TxConfirmed = "confirmed"
)

type CreditTransaction struct {
	ID            string
	UserID        string
	UserName      string
	PackageType   string
	CreditsAdded  int
	Amount        float64
	PaymentMethod string
	Status        string
	CreatedAt     time.Time
}

type Notification struct {
	ID        string
	UserID    string
	Kind      string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

type SlotTime struct {
	Start   string
	End     string
	Enabled bool
}

// SessionTimes holds the configured window for each time slot.
type SessionTimes map[TimeSlot]SlotTime
