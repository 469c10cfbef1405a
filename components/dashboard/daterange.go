package dashboard

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Selector is a symbolic date-range tag. Every selector except
// SelectorCustom resolves deterministically against a reference instant.
type Selector string

const (
	SelectorToday      Selector = "today"
	SelectorThisWeek   Selector = "this-week"
	SelectorThisMonth  Selector = "this-month"
	SelectorLast7Days  Selector = "last-7-days"
	SelectorLast30Days Selector = "last-30-days"
	SelectorCustom     Selector = "custom"
)

// ErrInvalidSelector signals a selector outside the closed set, or an
// attempt to resolve SelectorCustom, which has no canonical range. It
// indicates a caller defect rather than a runtime condition.
var ErrInvalidSelector = errors.New("dashboard: selector has no canonical resolution")

// KnownSelector reports whether the tag belongs to the closed set,
// including custom.
func KnownSelector(s Selector) bool {
	switch s {
	case SelectorToday, SelectorThisWeek, SelectorThisMonth,
		SelectorLast7Days, SelectorLast30Days, SelectorCustom:
		return true
	}
	return false
}

// Resolve maps a selector to concrete start/end instants evaluated
// against now. Boundaries are calendar boundaries in now's location:
// start of day through the last nanosecond of the closing day. Resolving
// SelectorCustom or an unrecognized tag returns ErrInvalidSelector.
func Resolve(sel Selector, now time.Time, weekStart time.Weekday) (DateRange, error) {
	switch sel {
	case SelectorToday:
		return DateRange{Start: startOfDay(now), End: endOfDay(now)}, nil
	case SelectorThisWeek:
		start := startOfWeek(now, weekStart)
		return DateRange{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, nil
	case SelectorThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case SelectorLast7Days:
		return DateRange{Start: startOfDay(now.AddDate(0, 0, -7)), End: endOfDay(now)}, nil
	case SelectorLast30Days:
		return DateRange{Start: startOfDay(now.AddDate(0, 0, -30)), End: endOfDay(now)}, nil
	case SelectorCustom:
		return DateRange{}, fmt.Errorf("%w: custom ranges are caller-supplied", ErrInvalidSelector)
	default:
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidSelector, sel)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return startOfDay(t.AddDate(0, 0, -offset))
}

// DateFilter holds the session-wide date selection shared by every
// widget. The range stays in sync with the selector except for custom,
// where callers supply the window via SetRange. State is in-memory only
// and resets to the default selection each session.
type DateFilter struct {
	mu        sync.RWMutex
	weekStart time.Weekday
	clock     func() time.Time
	selector  Selector
	rng       DateRange
}

// DateFilterOption customizes filter construction.
type DateFilterOption func(*DateFilter)

// WithWeekStart overrides the Monday-start default for this-week ranges.
func WithWeekStart(day time.Weekday) DateFilterOption {
	return func(f *DateFilter) {
		f.weekStart = day
	}
}

// WithClock injects the time source, used by tests for deterministic
// resolution.
func WithClock(clock func() time.Time) DateFilterOption {
	return func(f *DateFilter) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// WithDefaultSelector changes the selection the filter starts with.
// Custom is not resolvable and is ignored here.
func WithDefaultSelector(sel Selector) DateFilterOption {
	return func(f *DateFilter) {
		if KnownSelector(sel) && sel != SelectorCustom {
			f.selector = sel
		}
	}
}

// NewDateFilter builds a filter defaulting to this-week with Monday as
// the first day, matching the operations console default.
func NewDateFilter(opts ...DateFilterOption) *DateFilter {
	f := &DateFilter{
		weekStart: time.Monday,
		clock:     time.Now,
		selector:  SelectorThisWeek,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.rng, _ = Resolve(f.selector, f.clock(), f.weekStart)
	return f
}

// SetSelector updates the current selector. Non-custom selectors have
// their range recomputed immediately; custom leaves the existing range
// untouched so the caller can follow up with SetRange.
func (f *DateFilter) SetSelector(sel Selector) error {
	if !KnownSelector(sel) {
		return fmt.Errorf("%w: %q", ErrInvalidSelector, sel)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selector = sel
	if sel == SelectorCustom {
		return nil
	}
	rng, err := Resolve(sel, f.clock(), f.weekStart)
	if err != nil {
		return err
	}
	f.rng = rng
	return nil
}

// SetRange overwrites the range without touching the selector. Intended
// to be called alongside SetSelector(SelectorCustom).
func (f *DateFilter) SetRange(rng DateRange) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rng = rng
}

// Current returns the active selector and its resolved range.
func (f *DateFilter) Current() (Selector, DateRange) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.selector, f.rng
}

// Range returns the active window only.
func (f *DateFilter) Range() DateRange {
	_, rng := f.Current()
	return rng
}

// WeekStart reports the configured first day of the week.
func (f *DateFilter) WeekStart() time.Weekday {
	return f.weekStart
}
