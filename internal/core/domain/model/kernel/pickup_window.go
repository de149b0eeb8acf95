package kernel

import (
	"fmt"
	"time"

	"gharkakhana/internal/pkg/errs"
)

// ErrPickupWindowIsNotConstructed indicates that a PickupWindow was not
// created through the NewPickupWindow constructor.
var ErrPickupWindowIsNotConstructed = errs.NewValueIsRequiredError("PickupWindow must be created via NewPickupWindow")

// TimeOfDay represents a wall-clock time within a day with minute precision.
// It is stored as minutes since midnight, which keeps comparisons trivial
// and avoids dragging time zones into the domain model.
type TimeOfDay struct {
	minutes int

	isConstructed bool
}

// NewTimeOfDay creates a TimeOfDay from an hour (0-23) and minute (0-59).
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}

	return TimeOfDay{minutes: hour*60 + minute, isConstructed: true}, nil
}

// TimeOfDayFromString parses a "HH:MM" string into a TimeOfDay.
func TimeOfDayFromString(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause("timeOfDay", err)
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute())
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int {
	return t.minutes / 60
}

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int {
	return t.minutes % 60
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

// IsEqual reports whether two times of day are the same.
func (t TimeOfDay) IsEqual(other TimeOfDay) bool {
	return t.minutes == other.minutes
}

// String returns the "HH:MM" representation.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Validate checks that the TimeOfDay was properly constructed.
func (t TimeOfDay) Validate() error {
	if !t.isConstructed {
		return errs.NewValueIsRequiredError("timeOfDay")
	}
	return nil
}

// PickupWindow is a value object describing when a meal may be collected:
// a calendar date plus a start and end time of day. An order's declared
// pickup must fall inside the window of every meal it contains.
//
// PickupWindow is immutable and must be created via NewPickupWindow.
type PickupWindow struct {
	date  time.Time
	start TimeOfDay
	end   TimeOfDay

	isConstructed bool
}

// NewPickupWindow creates a pickup window for the given date.
// The date's clock component is discarded; start must be strictly before end.
func NewPickupWindow(date time.Time, start, end TimeOfDay) (PickupWindow, error) {
	if date.IsZero() {
		return PickupWindow{}, errs.NewValueIsRequiredError("date")
	}
	if err := start.Validate(); err != nil {
		return PickupWindow{}, err
	}
	if err := end.Validate(); err != nil {
		return PickupWindow{}, err
	}
	if !start.Before(end) {
		return PickupWindow{}, errs.NewValueIsInvalidErrorWithCause("pickupWindow",
			fmt.Errorf("start %s is not before end %s", start, end))
	}

	return PickupWindow{
		date:          truncateToDay(date),
		start:         start,
		end:           end,
		isConstructed: true,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date returns the pickup date at UTC midnight.
func (w PickupWindow) Date() time.Time {
	return w.date
}

// Start returns the earliest pickup time of day.
func (w PickupWindow) Start() TimeOfDay {
	return w.start
}

// End returns the latest pickup time of day.
func (w PickupWindow) End() TimeOfDay {
	return w.end
}

// Contains reports whether the given date and time of day fall inside the
// window. The boundaries are inclusive.
func (w PickupWindow) Contains(date time.Time, t TimeOfDay) bool {
	if !truncateToDay(date).Equal(w.date) {
		return false
	}
	return !t.Before(w.start) && !w.end.Before(t)
}

// Validate checks that the PickupWindow was properly constructed.
func (w PickupWindow) Validate() error {
	if !w.isConstructed {
		return ErrPickupWindowIsNotConstructed
	}
	return nil
}
