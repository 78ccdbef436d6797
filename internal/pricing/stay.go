package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Default property clock times applied when a hotel defines none.
const (
	DefaultCheckInClock  = "13:00"
	DefaultCheckOutClock = "12:00"
)

// ValidationError reports a stay parameter that fails an invariant
// before any booking is created.  Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Stay carries the validated inputs of a price quote: the date range
// in date-only form plus the party size.
type Stay struct {
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     uint32
	RoomsCount uint32
}

// ValidateStay enforces the invariants that gate every quote and
// booking: the check-in date must not be in the past (date-only
// comparison against now), the check-out must fall strictly after
// check-in once both are normalized to the property's clock times,
// and guests and rooms must each be at least 1.  The first violated
// invariant is returned as a *ValidationError naming the field.
func ValidateStay(s Stay, checkInClock, checkOutClock string, now time.Time) error {
	if s.RoomsCount < 1 {
		return &ValidationError{Field: "roomsCount", Reason: "must be at least 1"}
	}
	if s.Guests < 1 {
		return &ValidationError{Field: "guests", Reason: "must be at least 1"}
	}
	today := truncateToDay(now)
	if truncateToDay(s.CheckIn).Before(today) {
		return &ValidationError{Field: "checkIn", Reason: "date is in the past"}
	}
	in, err := atClock(s.CheckIn, checkInClock, DefaultCheckInClock)
	if err != nil {
		return &ValidationError{Field: "checkIn", Reason: err.Error()}
	}
	out, err := atClock(s.CheckOut, checkOutClock, DefaultCheckOutClock)
	if err != nil {
		return &ValidationError{Field: "checkOut", Reason: err.Error()}
	}
	if !out.After(in) {
		return &ValidationError{Field: "checkOut", Reason: "must be after check-in"}
	}
	return nil
}

// Nights derives the billable night count for a stay.  Check-in and
// check-out dates are first normalized to the property's configured
// clock times (13:00 / 12:00 when the property defines none), then
// the span is divided into days rounding up.  A standard one-day
// stay (in 13:00, out 12:00 next day) is 23 hours and bills as one
// night.
func Nights(checkIn, checkOut time.Time, checkInClock, checkOutClock string) (int, error) {
	in, err := atClock(checkIn, checkInClock, DefaultCheckInClock)
	if err != nil {
		return 0, err
	}
	out, err := atClock(checkOut, checkOutClock, DefaultCheckOutClock)
	if err != nil {
		return 0, err
	}
	span := out.Sub(in)
	if span <= 0 {
		return 0, fmt.Errorf("check-out %s is not after check-in %s", out.Format(time.RFC3339), in.Format(time.RFC3339))
	}
	return int(math.Ceil(span.Hours() / 24)), nil
}

// Subtotal composes the pre-discount price of a stay: the nightly
// base rate times nights times rooms.
func Subtotal(pricePerNight int64, nights, rooms int) int64 {
	return pricePerNight * int64(nights) * int64(rooms)
}

// atClock returns the given date pinned to the "HH:MM" clock time,
// falling back to def when clock is empty.
func atClock(date time.Time, clock, def string) (time.Time, error) {
	if strings.TrimSpace(clock) == "" {
		clock = def
	}
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("bad clock time %q", clock)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return time.Time{}, fmt.Errorf("bad clock time %q", clock)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return time.Time{}, fmt.Errorf("bad clock time %q", clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hh, mm, 0, 0, date.Location()), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
