package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateStay(t *testing.T) {
	now := time.Date(2026, 1, 5, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		stay      Stay
		wantField string // empty means valid
	}{
		{
			"valid two night stay",
			Stay{CheckIn: day(2026, 1, 10), CheckOut: day(2026, 1, 12), Guests: 2, RoomsCount: 1},
			"",
		},
		{
			"check-in today is allowed",
			Stay{CheckIn: day(2026, 1, 5), CheckOut: day(2026, 1, 6), Guests: 1, RoomsCount: 1},
			"",
		},
		{
			"check-in in the past",
			Stay{CheckIn: day(2026, 1, 4), CheckOut: day(2026, 1, 6), Guests: 1, RoomsCount: 1},
			"checkIn",
		},
		{
			"check-out before check-in",
			Stay{CheckIn: day(2026, 1, 12), CheckOut: day(2026, 1, 10), Guests: 1, RoomsCount: 1},
			"checkOut",
		},
		{
			"same-day stay rejected",
			Stay{CheckIn: day(2026, 1, 10), CheckOut: day(2026, 1, 10), Guests: 1, RoomsCount: 1},
			"checkOut",
		},
		{
			"zero guests",
			Stay{CheckIn: day(2026, 1, 10), CheckOut: day(2026, 1, 12), Guests: 0, RoomsCount: 1},
			"guests",
		},
		{
			"zero rooms",
			Stay{CheckIn: day(2026, 1, 10), CheckOut: day(2026, 1, 12), Guests: 2, RoomsCount: 0},
			"roomsCount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStay(tt.stay, "", "", now)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateStayBadClock(t *testing.T) {
	s := Stay{CheckIn: day(2026, 1, 10), CheckOut: day(2026, 1, 12), Guests: 1, RoomsCount: 1}
	err := ValidateStay(s, "25:00", "", day(2026, 1, 1))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "checkIn", verr.Field)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name               string
		checkIn, checkOut  time.Time
		inClock, outClock  string
		want               int
	}{
		// In at 13:00, out next day at 12:00 is 23h and bills one night.
		{"standard one night", day(2026, 1, 10), day(2026, 1, 11), "", "", 1},
		// Jan 10 13:00 to Jan 12 12:00 is 47h, ceil to two nights.
		{"two nights", day(2026, 1, 10), day(2026, 1, 12), "", "", 2},
		{"week long stay", day(2026, 1, 10), day(2026, 1, 17), "", "", 7},
		// A late check-out past the check-in clock pushes the ceiling up.
		{"late check-out adds a night", day(2026, 1, 10), day(2026, 1, 12), "13:00", "14:00", 3},
		{"custom early clocks", day(2026, 1, 10), day(2026, 1, 11), "08:00", "07:00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nights(tt.checkIn, tt.checkOut, tt.inClock, tt.outClock)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNightsRejectsNonPositiveSpan(t *testing.T) {
	_, err := Nights(day(2026, 1, 12), day(2026, 1, 10), "", "")
	assert.Error(t, err)
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, int64(2000), Subtotal(1000, 2, 1))
	assert.Equal(t, int64(6000), Subtotal(1000, 2, 3))
	assert.Equal(t, int64(0), Subtotal(1000, 0, 1))
}
