// Package horizon represents the set of future time points a forecast is
// requested for, either as relative step offsets from the end of the observed
// series or as absolute time points.
package horizon

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rickar/cal/v2"
)

var (
	ErrEmptyHorizon   = errors.New("horizon has no points")
	ErrInsampleStep   = errors.New("horizon step is not strictly positive")
	ErrFractionalStep = errors.New("horizon point does not land on a whole step")
	ErrZeroInterval   = errors.New("step interval must be positive")
)

// Freq selects the unit a relative step advances by when converting between
// relative and absolute form.
type Freq int

const (
	// FreqInterval advances by a fixed duration inferred from the series.
	FreqInterval Freq = iota
	// FreqMonthly advances by calendar months, so steps stay aligned to
	// month boundaries regardless of month length.
	FreqMonthly
)

// Horizon is an ordered set of future points. Points are held either as
// relative integer step offsets or as absolute time points; conversions
// between the two forms are anchored on a cutoff time and a step interval.
// An optional business calendar makes step arithmetic skip non-workdays.
type Horizon struct {
	steps    []int
	times    []time.Time
	relative bool
	freq     Freq
	calendar *cal.BusinessCalendar
}

// FromSteps creates a relative horizon from step offsets counted from the
// cutoff, 1 being the first future step. Offsets are sorted and deduplicated.
func FromSteps(steps ...int) (*Horizon, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyHorizon
	}
	s := make([]int, len(steps))
	copy(s, steps)
	sort.Ints(s)
	s = dedupeInts(s)
	return &Horizon{steps: s, relative: true}, nil
}

// FromRange creates a relative horizon covering the first n future steps.
func FromRange(n int) (*Horizon, error) {
	if n < 1 {
		return nil, ErrEmptyHorizon
	}
	steps := make([]int, n)
	for i := range steps {
		steps[i] = i + 1
	}
	return &Horizon{steps: steps, relative: true}, nil
}

// FromTimes creates an absolute horizon from future time points. Points are
// sorted and deduplicated.
func FromTimes(times ...time.Time) (*Horizon, error) {
	if len(times) == 0 {
		return nil, ErrEmptyHorizon
	}
	ts := make([]time.Time, len(times))
	copy(ts, times)
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	ts = dedupeTimes(ts)
	return &Horizon{times: ts, relative: false}, nil
}

// WithCalendar attaches a business calendar so that relative steps count
// workdays instead of fixed intervals.
func (h *Horizon) WithCalendar(c *cal.BusinessCalendar) *Horizon {
	h.calendar = c
	return h
}

// WithFreq sets the unit relative steps advance by.
func (h *Horizon) WithFreq(f Freq) *Horizon {
	h.freq = f
	return h
}

// IsRelative reports whether the horizon holds relative step offsets.
func (h *Horizon) IsRelative() bool {
	return h.relative
}

// Len returns the number of requested points.
func (h *Horizon) Len() int {
	if h.relative {
		return len(h.steps)
	}
	return len(h.times)
}

// ToRelative converts the horizon to step offsets counted from cutoff. Every
// offset must be a strictly positive whole step; in-sample or fractional
// points are rejected.
func (h *Horizon) ToRelative(cutoff time.Time, interval time.Duration) ([]int, error) {
	if h.relative {
		steps := make([]int, len(h.steps))
		copy(steps, h.steps)
		for _, s := range steps {
			if s < 1 {
				return nil, fmt.Errorf("step %d, %w", s, ErrInsampleStep)
			}
		}
		return steps, nil
	}

	steps := make([]int, 0, len(h.times))
	for _, t := range h.times {
		s, err := h.relativeStep(cutoff, interval, t)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func (h *Horizon) relativeStep(cutoff time.Time, interval time.Duration, t time.Time) (int, error) {
	if !t.After(cutoff) {
		return 0, fmt.Errorf("point %s is not after cutoff %s, %w", t, cutoff, ErrInsampleStep)
	}
	if h.calendar != nil {
		if !h.calendar.IsWorkday(t) {
			return 0, fmt.Errorf("point %s is not a workday, %w", t, ErrFractionalStep)
		}
		// walk forward one workday at a time so ToRelative stays the exact
		// inverse of ToAbsolute
		for s := 1; ; s++ {
			w := h.calendar.WorkdaysFrom(cutoff, s)
			if w.Equal(t) {
				return s, nil
			}
			if w.After(t) {
				return 0, fmt.Errorf("point %s does not land on a workday step from cutoff %s, %w", t, cutoff, ErrFractionalStep)
			}
		}
	}
	if h.freq == FreqMonthly {
		months := (t.Year()-cutoff.Year())*12 + int(t.Month()) - int(cutoff.Month())
		if months < 1 {
			return 0, fmt.Errorf("point %s is not after cutoff %s by a whole month, %w", t, cutoff, ErrInsampleStep)
		}
		if !cutoff.AddDate(0, months, 0).Equal(t) {
			return 0, fmt.Errorf("point %s does not land on a month step from cutoff %s, %w", t, cutoff, ErrFractionalStep)
		}
		return months, nil
	}
	if interval <= 0 {
		return 0, ErrZeroInterval
	}
	d := t.Sub(cutoff)
	if d%interval != 0 {
		return 0, fmt.Errorf("point %s is %s past cutoff with interval %s, %w", t, d, interval, ErrFractionalStep)
	}
	return int(d / interval), nil
}

// MaxStep returns the largest relative step offset, i.e. the prediction
// length needed to cover the horizon.
func (h *Horizon) MaxStep(cutoff time.Time, interval time.Duration) (int, error) {
	steps, err := h.ToRelative(cutoff, interval)
	if err != nil {
		return 0, err
	}
	return steps[len(steps)-1], nil
}

// ToAbsolute converts the horizon to concrete future time points anchored on
// cutoff.
func (h *Horizon) ToAbsolute(cutoff time.Time, interval time.Duration) ([]time.Time, error) {
	if !h.relative {
		times := make([]time.Time, len(h.times))
		copy(times, h.times)
		return times, nil
	}

	times := make([]time.Time, 0, len(h.steps))
	for _, s := range h.steps {
		if s < 1 {
			return nil, fmt.Errorf("step %d, %w", s, ErrInsampleStep)
		}
		t, err := h.absoluteTime(cutoff, interval, s)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

func (h *Horizon) absoluteTime(cutoff time.Time, interval time.Duration, step int) (time.Time, error) {
	if h.calendar != nil {
		return h.calendar.WorkdaysFrom(cutoff, step), nil
	}
	if h.freq == FreqMonthly {
		return cutoff.AddDate(0, step, 0), nil
	}
	if interval <= 0 {
		return time.Time{}, ErrZeroInterval
	}
	return cutoff.Add(time.Duration(step) * interval), nil
}

// Expand returns the first n future time points after cutoff, the positions
// the generated forecast steps land on.
func (h *Horizon) Expand(cutoff time.Time, interval time.Duration, n int) ([]time.Time, error) {
	times := make([]time.Time, 0, n)
	for s := 1; s <= n; s++ {
		t, err := h.absoluteTime(cutoff, interval, s)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

func dedupeInts(s []int) []int {
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func dedupeTimes(ts []time.Time) []time.Time {
	out := ts[:0]
	for i, t := range ts {
		if i == 0 || !t.Equal(ts[i-1]) {
			out = append(out, t)
		}
	}
	return out
}
