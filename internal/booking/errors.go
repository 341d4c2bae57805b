package booking

import "errors"

var (
	ErrInsufficientCredits = errors.New("no credits available, please purchase a session package")
	ErrAlreadyBooked       = errors.New("you have already booked this slot")
	ErrAlreadyWaitlisted   = errors.New("you are already on the waitlist for this slot")
	ErrSlotFull            = errors.New("this time slot is full")
	ErrSlotNotFull         = errors.New("slot is not full, book it directly")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("not authorized")
	ErrPastBooking         = errors.New("cannot cancel past bookings")
)
