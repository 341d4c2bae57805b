package booking

import (
	"sync"
	"time"

	"training-booking-api/internal/model"
)

type slotKey struct {
	date string
	slot model.TimeSlot
}

func keyOf(date time.Time, slot model.TimeSlot) slotKey {
	return slotKey{date: model.DateString(date), slot: slot}
}

// slotLocks serializes writers per (date, slot). Entries are dropped once
// no goroutine holds or waits on them.
type slotLocks struct {
	mu    sync.Mutex
	slots map[slotKey]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{slots: map[slotKey]*slotLock{}}
}

// lock blocks until the partition is free and returns its unlock func.
func (l *slotLocks) lock(date time.Time, slot model.TimeSlot) func() {
	k := keyOf(date, slot)

	l.mu.Lock()
	sl, ok := l.slots[k]
	if !ok {
		sl = &slotLock{}
		l.slots[k] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.slots, k)
		}
		l.mu.Unlock()
	}
}

func (l *slotLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
