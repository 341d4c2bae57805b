// Package settings serves the site-wide session configuration.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log"

	"training-booking-api/internal/model"
)

var ErrInvalid = errors.New("invalid session time")

// Defaults are used for any slot that has never been configured.
var Defaults = model.SessionTimes{
	model.Morning:   {Start: "5:30 AM", End: "6:15 AM", Enabled: true},
	model.Afternoon: {Start: "9:30 AM", End: "10:15 AM", Enabled: true},
}

type Store interface {
	SessionTimes(ctx context.Context) (model.SessionTimes, error)
	SaveSessionTimes(ctx context.Context, times model.SessionTimes, updatedBy string) error
}

type Provider struct {
	store Store
}

// New returns a provider backed by st. A nil store serves Defaults only.
func New(st Store) *Provider {
	return &Provider{store: st}
}

// SessionTimes merges stored values over Defaults.
func (p *Provider) SessionTimes(ctx context.Context) (model.SessionTimes, error) {
	out := model.SessionTimes{}
	for k, v := range Defaults {
		out[k] = v
	}
	if p.store == nil {
		return out, nil
	}
	stored, err := p.store.SessionTimes(ctx)
	if err != nil {
		return out, err
	}
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// TimeDisplay renders a slot window as "start - end". Lookup failures fall
// back to the defaults.
func (p *Provider) TimeDisplay(ctx context.Context, slot model.TimeSlot) string {
	times, err := p.SessionTimes(ctx)
	if err != nil {
		log.Printf("settings: session times: %v", err)
	}
	if st, ok := times[slot]; ok && st.Start != "" && st.End != "" {
		return st.Start + " - " + st.End
	}
	d := Defaults[slot]
	if d.Start == "" {
		d = Defaults[model.Afternoon]
	}
	return d.Start + " - " + d.End
}

// UpdateSessionTimes stores new windows for the given slots.
func (p *Provider) UpdateSessionTimes(ctx context.Context, times model.SessionTimes, updatedBy string) error {
	if p.store == nil {
		return fmt.Errorf("settings: no store configured")
	}
	for slot, st := range times {
		if _, err := model.ParseTimeSlot(string(slot)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if st.Start == "" || st.End == "" {
			return fmt.Errorf("%w: %s needs a start and an end", ErrInvalid, slot)
		}
	}
	return p.store.SaveSessionTimes(ctx, times, updatedBy)
}
