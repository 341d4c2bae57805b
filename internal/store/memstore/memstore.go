// Package memstore is an in-process implementation of the document store,
// used by tests and by the server when no database is configured.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"training-booking-api/internal/model"
	"training-booking-api/internal/store"
)

type Store struct {
	mu            sync.Mutex
	users         map[string]*model.User
	bookings      map[string]*model.Booking
	waitlist      map[string]*model.WaitlistEntry
	transactions  map[string]*model.CreditTransaction
	notifications map[string]*model.Notification
	sessionTimes  model.SessionTimes
	tokens        map[string]*store.RefreshToken
}

func New() *Store {
	return &Store{
		users:         map[string]*model.User{},
		bookings:      map[string]*model.Booking{},
		waitlist:      map[string]*model.WaitlistEntry{},
		transactions:  map[string]*model.CreditTransaction{},
		notifications: map[string]*model.Notification{},
		sessionTimes:  model.SessionTimes{},
		tokens:        map[string]*store.RefreshToken{},
	}
}

// ---- users ----

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return store.ErrDuplicate
	}
	for _, other := range s.users {
		if other.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) UserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListClients(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if !u.IsAdmin {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteUser exists for tests that exercise stale references.
func (s *Store) DeleteUser(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *Store) IncrementCredits(_ context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Credits += delta
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) DecrementCredits(_ context.Context, id string, n int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, store.ErrNotFound
	}
	if u.Credits < n {
		return false, nil
	}
	u.Credits -= n
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *Store) SetUnlimited(_ context.Context, id string) error {
	return s.updateUser(id, func(u *model.User) { u.HasUnlimited = true })
}

func (s *Store) UpdateProfile(_ context.Context, id string, p model.Profile) error {
	return s.updateUser(id, func(u *model.User) {
		u.Profile = &p
		u.ProfileCompleted = true
	})
}

func (s *Store) SetAdmin(_ context.Context, id string) error {
	return s.updateUser(id, func(u *model.User) { u.IsAdmin = true })
}

func (s *Store) updateUser(id string, fn func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ---- bookings ----

func matchBooking(b *model.Booking, f store.BookingFilter) bool {
	switch {
	case f.UserID != "" && b.UserID != f.UserID:
		return false
	case !f.Date.IsZero() && !b.Date.Equal(model.Day(f.Date)):
		return false
	case f.TimeSlot != "" && b.TimeSlot != f.TimeSlot:
		return false
	case !f.DateFrom.IsZero() && b.Date.Before(model.Day(f.DateFrom)):
		return false
	case !f.DateTo.IsZero() && b.Date.After(model.Day(f.DateTo)):
		return false
	}
	return true
}

func (s *Store) InsertBooking(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; ok {
		return store.ErrDuplicate
	}
	day := model.Day(b.Date)
	for _, other := range s.bookings {
		if other.UserID == b.UserID && other.Date.Equal(day) && other.TimeSlot == b.TimeSlot {
			return store.ErrDuplicate
		}
	}
	cp := *b
	cp.Date = day
	s.bookings[b.ID] = &cp
	return nil
}

func (s *Store) BookingByID(_ context.Context, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) FindBookings(_ context.Context, f store.BookingFilter) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.bookings {
		if matchBooking(b, f) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot > b.TimeSlot
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) CountBookings(_ context.Context, f store.BookingFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if matchBooking(b, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// ---- waitlist ----

func matchWaitlist(e *model.WaitlistEntry, f store.WaitlistFilter) bool {
	switch {
	case f.UserID != "" && e.UserID != f.UserID:
		return false
	case !f.Date.IsZero() && !e.Date.Equal(model.Day(f.Date)):
		return false
	case f.TimeSlot != "" && e.TimeSlot != f.TimeSlot:
		return false
	}
	return true
}

func (s *Store) InsertWaitlistEntry(_ context.Context, e *model.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.waitlist[e.ID]; ok {
		return store.ErrDuplicate
	}
	day := model.Day(e.Date)
	for _, other := range s.waitlist {
		if other.UserID == e.UserID && other.Date.Equal(day) && other.TimeSlot == e.TimeSlot {
			return store.ErrDuplicate
		}
	}
	cp := *e
	cp.Date = day
	s.waitlist[e.ID] = &cp
	return nil
}

func (s *Store) WaitlistEntryByID(_ context.Context, id string) (*model.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.waitlist[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *Store) FindWaitlist(_ context.Context, f store.WaitlistFilter) ([]model.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.WaitlistEntry
	for _, e := range s.waitlist {
		if matchWaitlist(e, f) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot > b.TimeSlot
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) CountWaitlist(_ context.Context, f store.WaitlistFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.waitlist {
		if matchWaitlist(e, f) {
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteWaitlistEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.waitlist[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.waitlist, id)
	return nil
}

func (s *Store) UpdateWaitlistPosition(_ context.Context, id string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.waitlist[id]
	if !ok {
		return store.ErrNotFound
	}
	e.Position = position
	return nil
}

// ---- credit transactions ----

func (s *Store) InsertTransaction(_ context.Context, t *model.CreditTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[t.ID]; ok {
		return store.ErrDuplicate
	}
	cp := *t
	s.transactions[t.ID] = &cp
	return nil
}

func (s *Store) TransactionByID(_ context.Context, id string) (*model.CreditTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Store) FindTransactions(_ context.Context, userID, status string) ([]model.CreditTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CreditTransaction
	for _, t := range s.transactions {
		if (userID == "" || t.UserID == userID) && (status == "" || t.Status == status) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ConfirmTransaction(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return false, store.ErrNotFound
	}
	if t.Status != model.TxPending {
		return false, nil
	}
	t.Status = model.TxConfirmed
	return true, nil
}

func (s *Store) ReopenTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.Status != model.TxConfirmed {
		return store.ErrNotFound
	}
	t.Status = model.TxPending
	return nil
}

// ---- notifications ----

func (s *Store) InsertNotification(_ context.Context, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *Store) FindNotifications(_ context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > 50 {
		out = out[:50]
	}
	return out, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return store.ErrNotFound
	}
	n.Read = true
	return nil
}

func (s *Store) MarkAllNotificationsRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

// ---- settings ----

func (s *Store) SessionTimes(_ context.Context) (model.SessionTimes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := model.SessionTimes{}
	for k, v := range s.sessionTimes {
		out[k] = v
	}
	return out, nil
}

func (s *Store) SaveSessionTimes(_ context.Context, times model.SessionTimes, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range times {
		s.sessionTimes[k] = v
	}
	return nil
}

// ---- refresh tokens ----

func (s *Store) CreateRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.tokens[id] = &store.RefreshToken{
		ID: id, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt, CreatedAt: time.Now().UTC(),
	}
	return id, nil
}

func (s *Store) RefreshTokenByHash(_ context.Context, tokenHash string) (*store.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range s.tokens {
		if rt.TokenHash == tokenHash {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) RotateRefreshToken(_ context.Context, oldID, userID, newHash string, newExpiry time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tokens[oldID]
	if !ok || old.Revoked {
		return "", store.ErrNotFound
	}
	newID := uuid.NewString()
	old.Revoked = true
	old.ReplacedBy = newID
	s.tokens[newID] = &store.RefreshToken{
		ID: newID, UserID: userID, TokenHash: newHash, ExpiresAt: newExpiry, CreatedAt: time.Now().UTC(),
	}
	return newID, nil
}

func (s *Store) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range s.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (s *Store) PurgeRefreshTokens(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, rt := range s.tokens {
		if rt.ExpiresAt.Before(cutoff) {
			delete(s.tokens, id)
			n++
		}
	}
	return n, nil
}
