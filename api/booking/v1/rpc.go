package bookingv1

// Empty is the request of every call that takes no arguments and the
// response of Logout.
type Empty struct{}

func (m *Empty) AppendWire(b []byte) []byte { return b }

func (m *Empty) UnmarshalWire(b []byte) error {
	return eachField(b, func(field) error { return nil })
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string
}

func (m *MessageResponse) AppendWire(b []byte) []byte { return appendString(b, 1, m.Message) }

func (m *MessageResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num == 1 {
			m.Message = f.str()
		}
		return nil
	})
}

type RegisterRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required"`
}

func (m *RegisterRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return appendString(b, 3, m.Name)
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		case 3:
			m.Name = f.str()
		}
		return nil
	})
}

type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (m *LoginRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		}
		return nil
	})
}

// AuthResponse is returned by Register, Login and Refresh.
type AuthResponse struct {
	Token        string
	RefreshToken string
	User         *User
}

func (m *AuthResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.RefreshToken)
	if m.User != nil {
		b = appendMessage(b, 3, m.User)
	}
	return b
}

func (m *AuthResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Token = f.str()
		case 2:
			m.RefreshToken = f.str()
		case 3:
			m.User = &User{}
			return f.into(m.User)
		}
		return nil
	})
}

type RefreshRequest struct {
	RefreshToken string `validate:"required"`
}

func (m *RefreshRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.RefreshToken) }

func (m *RefreshRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num == 1 {
			m.RefreshToken = f.str()
		}
		return nil
	})
}

// SlotRequest names one (date, time slot) pair.
type SlotRequest struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	TimeSlot string `validate:"required,oneof=morning afternoon"`
}

func (m *SlotRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Date)
	return appendString(b, 2, m.TimeSlot)
}

func (m *SlotRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Date = f.str()
		case 2:
			m.TimeSlot = f.str()
		}
		return nil
	})
}

type GetSlotsRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

func (m *GetSlotsRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.Date) }

func (m *GetSlotsRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num == 1 {
			m.Date = f.str()
		}
		return nil
	})
}

type GetSlotsResponse struct {
	Date  string
	Slots []*Slot
}

func (m *GetSlotsResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Date)
	for _, s := range m.Slots {
		b = appendMessage(b, 2, s)
	}
	return b
}

func (m *GetSlotsResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Date = f.str()
		case 2:
			s := &Slot{}
			if err := f.into(s); err != nil {
				return err
			}
			m.Slots = append(m.Slots, s)
		}
		return nil
	})
}

type CreateBookingRequest struct {
	Date           string `validate:"required,datetime=2006-01-02"`
	TimeSlot       string `validate:"required,oneof=morning afternoon"`
	IsRecurring    bool
	RecurringWeeks int32 `validate:"gte=0,lte=12"`
}

func (m *CreateBookingRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.TimeSlot)
	b = appendBool(b, 3, m.IsRecurring)
	return appendInt(b, 4, int64(m.RecurringWeeks))
}

func (m *CreateBookingRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Date = f.str()
		case 2:
			m.TimeSlot = f.str()
		case 3:
			m.IsRecurring = f.boolean()
		case 4:
			m.RecurringWeeks = int32(f.integer())
		}
		return nil
	})
}

type CreateBookingResponse struct {
	Booking          *Booking
	Bookings         []*Booking
	WaitlistedDates  []string
	RecurringGroupId string
	Message          string
}

func (m *CreateBookingResponse) AppendWire(b []byte) []byte {
	if m.Booking != nil {
		b = appendMessage(b, 1, m.Booking)
	}
	for _, bk := range m.Bookings {
		b = appendMessage(b, 2, bk)
	}
	for _, d := range m.WaitlistedDates {
		b = appendString(b, 3, d)
	}
	b = appendString(b, 4, m.RecurringGroupId)
	return appendString(b, 5, m.Message)
}

func (m *CreateBookingResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Booking = &Booking{}
			return f.into(m.Booking)
		case 2:
			bk := &Booking{}
			if err := f.into(bk); err != nil {
				return err
			}
			m.Bookings = append(m.Bookings, bk)
		case 3:
			m.WaitlistedDates = append(m.WaitlistedDates, f.str())
		case 4:
			m.RecurringGroupId = f.str()
		case 5:
			m.Message = f.str()
		}
		return nil
	})
}

// IDRequest addresses a booking, waitlist entry, notification,
// transaction or user by id.
type IDRequest struct {
	Id string `validate:"required"`
}

func (m *IDRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.Id) }

func (m *IDRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num == 1 {
			m.Id = f.str()
		}
		return nil
	})
}

type CancelBookingResponse struct {
	Message  string
	Promoted *Booking
}

func (m *CancelBookingResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Message)
	if m.Promoted != nil {
		b = appendMessage(b, 2, m.Promoted)
	}
	return b
}

func (m *CancelBookingResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Message = f.str()
		case 2:
			m.Promoted = &Booking{}
			return f.into(m.Promoted)
		}
		return nil
	})
}

type BookingList struct {
	Bookings []*Booking
}

func (m *BookingList) AppendWire(b []byte) []byte {
	for _, bk := range m.Bookings {
		b = appendMessage(b, 1, bk)
	}
	return b
}

func (m *BookingList) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		bk := &Booking{}
		if err := f.into(bk); err != nil {
			return err
		}
		m.Bookings = append(m.Bookings, bk)
		return nil
	})
}

type AdminListBookingsRequest struct {
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`
}

func (m *AdminListBookingsRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.DateFrom)
	return appendString(b, 2, m.DateTo)
}

func (m *AdminListBookingsRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.DateFrom = f.str()
		case 2:
			m.DateTo = f.str()
		}
		return nil
	})
}

type JoinWaitlistResponse struct {
	Entry   *WaitlistEntry
	Message string
}

func (m *JoinWaitlistResponse) AppendWire(b []byte) []byte {
	if m.Entry != nil {
		b = appendMessage(b, 1, m.Entry)
	}
	return appendString(b, 2, m.Message)
}

func (m *JoinWaitlistResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Entry = &WaitlistEntry{}
			return f.into(m.Entry)
		case 2:
			m.Message = f.str()
		}
		return nil
	})
}

type WaitlistList struct {
	Entries      []*WaitlistEntry
	Total        int32
	UserPosition int32
}

func (m *WaitlistList) AppendWire(b []byte) []byte {
	for _, e := range m.Entries {
		b = appendMessage(b, 1, e)
	}
	b = appendInt(b, 2, int64(m.Total))
	return appendInt(b, 3, int64(m.UserPosition))
}

func (m *WaitlistList) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			e := &WaitlistEntry{}
			if err := f.into(e); err != nil {
				return err
			}
			m.Entries = append(m.Entries, e)
		case 2:
			m.Total = int32(f.integer())
		case 3:
			m.UserPosition = int32(f.integer())
		}
		return nil
	})
}

type ListPackagesResponse struct {
	Packages []*CreditPackage
}

func (m *ListPackagesResponse) AppendWire(b []byte) []byte {
	for _, p := range m.Packages {
		b = appendMessage(b, 1, p)
	}
	return b
}

func (m *ListPackagesResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		p := &CreditPackage{}
		if err := f.into(p); err != nil {
			return err
		}
		m.Packages = append(m.Packages, p)
		return nil
	})
}

type PurchaseCreditsRequest struct {
	PackageType   string `validate:"required"`
	PaymentMethod string `validate:"required"`
}

func (m *PurchaseCreditsRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.PackageType)
	return appendString(b, 2, m.PaymentMethod)
}

func (m *PurchaseCreditsRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.PackageType = f.str()
		case 2:
			m.PaymentMethod = f.str()
		}
		return nil
	})
}

type PurchaseCreditsResponse struct {
	Transaction *CreditTransaction
	Message     string
}

func (m *PurchaseCreditsResponse) AppendWire(b []byte) []byte {
	if m.Transaction != nil {
		b = appendMessage(b, 1, m.Transaction)
	}
	return appendString(b, 2, m.Message)
}

func (m *PurchaseCreditsResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Transaction = &CreditTransaction{}
			return f.into(m.Transaction)
		case 2:
			m.Message = f.str()
		}
		return nil
	})
}

type CreditBalanceResponse struct {
	Credits      int32
	HasUnlimited bool
}

func (m *CreditBalanceResponse) AppendWire(b []byte) []byte {
	b = appendInt(b, 1, int64(m.Credits))
	return appendBool(b, 2, m.HasUnlimited)
}

func (m *CreditBalanceResponse) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Credits = int32(f.integer())
		case 2:
			m.HasUnlimited = f.boolean()
		}
		return nil
	})
}

type TransactionList struct {
	Transactions []*CreditTransaction
}

func (m *TransactionList) AppendWire(b []byte) []byte {
	for _, t := range m.Transactions {
		b = appendMessage(b, 1, t)
	}
	return b
}

func (m *TransactionList) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		t := &CreditTransaction{}
		if err := f.into(t); err != nil {
			return err
		}
		m.Transactions = append(m.Transactions, t)
		return nil
	})
}

type AdminListTransactionsRequest struct {
	Status string `validate:"omitempty,oneof=pending confirmed"`
}

func (m *AdminListTransactionsRequest) AppendWire(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *AdminListTransactionsRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num == 1 {
			m.Status = f.str()
		}
		return nil
	})
}

type ListNotificationsRequest struct {
	UnreadOnly bool
}

func (m *ListNotificationsRequest) AppendWire(b []byte) []byte {
	return appendBool(b, 1, m.UnreadOnly)
}

func (m *ListNotificationsRequest) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num == 1 {
			m.UnreadOnly = f.boolean()
		}
		return nil
	})
}

type NotificationList struct {
	Notifications []*Notification
	UnreadCount   int32
}

func (m *NotificationList) AppendWire(b []byte) []byte {
	for _, n := range m.Notifications {
		b = appendMessage(b, 1, n)
	}
	return appendInt(b, 2, int64(m.UnreadCount))
}

func (m *NotificationList) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		switch f.num {
		case 1:
			n := &Notification{}
			if err := f.into(n); err != nil {
				return err
			}
			m.Notifications = append(m.Notifications, n)
		case 2:
			m.UnreadCount = int32(f.integer())
		}
		return nil
	})
}

type UserList struct {
	Users []*User
}

func (m *UserList) AppendWire(b []byte) []byte {
	for _, u := range m.Users {
		b = appendMessage(b, 1, u)
	}
	return b
}

func (m *UserList) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		u := &User{}
		if err := f.into(u); err != nil {
			return err
		}
		m.Users = append(m.Users, u)
		return nil
	})
}

// Settings is both the GetSettings response and the
// AdminUpdateSessionTimes request.
type Settings struct {
	SessionTimes []*SessionTime `validate:"dive"`
}

func (m *Settings) AppendWire(b []byte) []byte {
	for _, st := range m.SessionTimes {
		b = appendMessage(b, 1, st)
	}
	return b
}

func (m *Settings) UnmarshalWire(b []byte) error {
	return eachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		st := &SessionTime{}
		if err := f.into(st); err != nil {
			return err
		}
		m.SessionTimes = append(m.SessionTimes, st)
		return nil
	})
}
