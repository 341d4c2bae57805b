package bookingv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type User struct {
	Id               string
	Email            string
	Name             string
	Initials         string
	IsAdmin          bool
	Credits          int32
	HasUnlimited     bool
	CreatedAt        *timestamppb.Timestamp
	Profile          *Profile
	ProfileCompleted bool
}

func (m *User) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.Name)
	b = appendString(b, 4, m.Initials)
	b = appendBool(b, 5, m.IsAdmin)
	b = appendInt(b, 6, int64(m.Credits))
	b = appendBool(b, 7, m.HasUnlimited)
	b = appendTimestamp(b, 8, m.CreatedAt)
	if m.Profile != nil {
		b = appendMessage(b, 9, m.Profile)
	}
	return appendBool(b, 10, m.ProfileCompleted)
}

func (m *User) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = f.str()
		case 2:
			m.Email = f.str()
		case 3:
			m.Name = f.str()
		case 4:
			m.Initials = f.str()
		case 5:
			m.IsAdmin = f.boolean()
		case 6:
			m.Credits = int32(f.integer())
		case 7:
			m.HasUnlimited = f.boolean()
		case 8:
			m.CreatedAt, err = f.timestamp()
		case 9:
			m.Profile = &Profile{}
			err = f.into(m.Profile)
		case 10:
			m.ProfileCompleted = f.boolean()
		}
		return err
	})
}

// Profile is the onboarding questionnaire a client fills in. It doubles as
// the UpdateProfile request.
type Profile struct {
	Phone                 string `validate:"max=32"`
	Age                   int32  `validate:"omitempty,gte=1,lte=120"`
	FitnessGoals          string `validate:"max=1000"`
	HealthConditions      string `validate:"max=1000"`
	PreviousInjuries      string `validate:"max=1000"`
	EmergencyContactName  string `validate:"max=200"`
	EmergencyContactPhone string `validate:"max=32"`
}

func (m *Profile) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Phone)
	b = appendInt(b, 2, int64(m.Age))
	b = appendString(b, 3, m.FitnessGoals)
	b = appendString(b, 4, m.HealthConditions)
	b = appendString(b, 5, m.PreviousInjuries)
	b = appendString(b, 6, m.EmergencyContactName)
	return appendString(b, 7, m.EmergencyContactPhone)
}

func (m *Profile) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Phone = f.str()
		case 2:
			m.Age = int32(f.integer())
		case 3:
			m.FitnessGoals = f.str()
		case 4:
			m.HealthConditions = f.str()
		case 5:
			m.PreviousInjuries = f.str()
		case 6:
			m.EmergencyContactName = f.str()
		case 7:
			m.EmergencyContactPhone = f.str()
		}
		return nil
	})
}

type Booking struct {
	BookingId        string
	UserId           string
	UserName         string
	UserInitials     string
	Date             string
	TimeSlot         string
	TimeDisplay      string
	IsRecurring      bool
	RecurringGroupId string
	FromWaitlist     bool
	Reminder24HSent  bool
	Reminder1HSent   bool
	CreatedAt        *timestamppb.Timestamp
}

func (m *Booking) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.BookingId)
	b = appendString(b, 2, m.UserId)
	b = appendString(b, 3, m.UserName)
	b = appendString(b, 4, m.UserInitials)
	b = appendString(b, 5, m.Date)
	b = appendString(b, 6, m.TimeSlot)
	b = appendString(b, 7, m.TimeDisplay)
	b = appendBool(b, 8, m.IsRecurring)
	b = appendString(b, 9, m.RecurringGroupId)
	b = appendBool(b, 10, m.FromWaitlist)
	b = appendBool(b, 11, m.Reminder24HSent)
	b = appendBool(b, 12, m.Reminder1HSent)
	return appendTimestamp(b, 13, m.CreatedAt)
}

func (m *Booking) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.BookingId = f.str()
		case 2:
			m.UserId = f.str()
		case 3:
			m.UserName = f.str()
		case 4:
			m.UserInitials = f.str()
		case 5:
			m.Date = f.str()
		case 6:
			m.TimeSlot = f.str()
		case 7:
			m.TimeDisplay = f.str()
		case 8:
			m.IsRecurring = f.boolean()
		case 9:
			m.RecurringGroupId = f.str()
		case 10:
			m.FromWaitlist = f.boolean()
		case 11:
			m.Reminder24HSent = f.boolean()
		case 12:
			m.Reminder1HSent = f.boolean()
		case 13:
			m.CreatedAt, err = f.timestamp()
		}
		return err
	})
}

type WaitlistEntry struct {
	WaitlistId string
	UserId     string
	UserName   string
	Date       string
	TimeSlot   string
	Position   int32
	CreatedAt  *timestamppb.Timestamp
}

func (m *WaitlistEntry) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.WaitlistId)
	b = appendString(b, 2, m.UserId)
	b = appendString(b, 3, m.UserName)
	b = appendString(b, 4, m.Date)
	b = appendString(b, 5, m.TimeSlot)
	b = appendInt(b, 6, int64(m.Position))
	return appendTimestamp(b, 7, m.CreatedAt)
}

func (m *WaitlistEntry) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.WaitlistId = f.str()
		case 2:
			m.UserId = f.str()
		case 3:
			m.UserName = f.str()
		case 4:
			m.Date = f.str()
		case 5:
			m.TimeSlot = f.str()
		case 6:
			m.Position = int32(f.integer())
		case 7:
			m.CreatedAt, err = f.timestamp()
		}
		return err
	})
}

type Slot struct {
	TimeSlot             string
	TimeDisplay          string
	Bookings             []*Booking
	AvailableSpots       int32
	IsFull               bool
	UserBooked           bool
	WaitlistCount        int32
	UserOnWaitlist       bool
	UserWaitlistPosition int32
}

func (m *Slot) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.TimeSlot)
	b = appendString(b, 2, m.TimeDisplay)
	for _, bk := range m.Bookings {
		b = appendMessage(b, 3, bk)
	}
	b = appendInt(b, 4, int64(m.AvailableSpots))
	b = appendBool(b, 5, m.IsFull)
	b = appendBool(b, 6, m.UserBooked)
	b = appendInt(b, 7, int64(m.WaitlistCount))
	b = appendBool(b, 8, m.UserOnWaitlist)
	return appendInt(b, 9, int64(m.UserWaitlistPosition))
}

func (m *Slot) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.TimeSlot = f.str()
		case 2:
			m.TimeDisplay = f.str()
		case 3:
			bk := &Booking{}
			if err := f.into(bk); err != nil {
				return err
			}
			m.Bookings = append(m.Bookings, bk)
		case 4:
			m.AvailableSpots = int32(f.integer())
		case 5:
			m.IsFull = f.boolean()
		case 6:
			m.UserBooked = f.boolean()
		case 7:
			m.WaitlistCount = int32(f.integer())
		case 8:
			m.UserOnWaitlist = f.boolean()
		case 9:
			m.UserWaitlistPosition = int32(f.integer())
		}
		return nil
	})
}

type CreditTransaction struct {
	Id            string
	UserId        string
	UserName      string
	PackageType   string
	CreditsAdded  int32
	Amount        float64
	PaymentMethod string
	Status        string
	CreatedAt     *timestamppb.Timestamp
}

func (m *CreditTransaction) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.UserId)
	b = appendString(b, 3, m.UserName)
	b = appendString(b, 4, m.PackageType)
	b = appendInt(b, 5, int64(m.CreditsAdded))
	b = appendDouble(b, 6, m.Amount)
	b = appendString(b, 7, m.PaymentMethod)
	b = appendString(b, 8, m.Status)
	return appendTimestamp(b, 9, m.CreatedAt)
}

func (m *CreditTransaction) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = f.str()
		case 2:
			m.UserId = f.str()
		case 3:
			m.UserName = f.str()
		case 4:
			m.PackageType = f.str()
		case 5:
			m.CreditsAdded = int32(f.integer())
		case 6:
			m.Amount = f.double()
		case 7:
			m.PaymentMethod = f.str()
		case 8:
			m.Status = f.str()
		case 9:
			m.CreatedAt, err = f.timestamp()
		}
		return err
	})
}

type CreditPackage struct {
	Type    string
	Name    string
	Credits int32
	Amount  float64
}

func (m *CreditPackage) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Type)
	b = appendString(b, 2, m.Name)
	b = appendInt(b, 3, int64(m.Credits))
	return appendDouble(b, 4, m.Amount)
}

func (m *CreditPackage) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Type = f.str()
		case 2:
			m.Name = f.str()
		case 3:
			m.Credits = int32(f.integer())
		case 4:
			m.Amount = f.double()
		}
		return nil
	})
}

type Notification struct {
	Id        string
	Kind      string
	Title     string
	Body      string
	Read      bool
	CreatedAt *timestamppb.Timestamp
}

func (m *Notification) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Kind)
	b = appendString(b, 3, m.Title)
	b = appendString(b, 4, m.Body)
	b = appendBool(b, 5, m.Read)
	return appendTimestamp(b, 6, m.CreatedAt)
}

func (m *Notification) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = f.str()
		case 2:
			m.Kind = f.str()
		case 3:
			m.Title = f.str()
		case 4:
			m.Body = f.str()
		case 5:
			m.Read = f.boolean()
		case 6:
			m.CreatedAt, err = f.timestamp()
		}
		return err
	})
}

type SessionTime struct {
	TimeSlot string `validate:"required,oneof=morning afternoon"`
	Start    string `validate:"required"`
	End      string `validate:"required"`
	Enabled  bool
}

func (m *SessionTime) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.TimeSlot)
	b = appendString(b, 2, m.Start)
	b = appendString(b, 3, m.End)
	return appendBool(b, 4, m.Enabled)
}

func (m *SessionTime) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.TimeSlot = f.str()
		case 2:
			m.Start = f.str()
		case 3:
			m.End = f.str()
		case 4:
			m.Enabled = f.boolean()
		}
		return nil
	})
}
