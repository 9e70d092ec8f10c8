package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.Parse(time.RFC3339, "2025-11-26T"+hhmm+":00Z")
	if err != nil {
		panic(err)
	}
	return t
}

func slot(start, end string) Slot {
	return Slot{Start: at(start), End: at(end)}
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New(at("11:00"), at("10:00"))
	require.ErrorIs(t, err, ErrInvalidSlot)

	_, err = New(at("10:00"), at("10:00"))
	require.ErrorIs(t, err, ErrInvalidSlot)

	s, err := New(at("10:00"), at("11:00"))
	require.NoError(t, err)
	assert.True(t, s.End.After(s.Start))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Slot
		want bool
	}{
		{"identical", slot("10:00", "11:00"), slot("10:00", "11:00"), true},
		{"contained", slot("10:00", "12:00"), slot("10:30", "11:30"), true},
		{"partial left", slot("10:00", "11:00"), slot("10:30", "11:30"), true},
		{"partial right", slot("10:30", "11:30"), slot("10:00", "11:00"), true},
		{"back to back", slot("10:00", "11:00"), slot("11:00", "12:00"), false},
		{"back to back reversed", slot("11:00", "12:00"), slot("10:00", "11:00"), false},
		{"disjoint", slot("08:00", "09:00"), slot("10:00", "11:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// overlap is symmetric
			assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a))
		})
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Reservation{
		{ID: "b1", Slot: slot("10:00", "11:00")},
		{ID: "b2", Slot: slot("14:00", "15:00")},
	}

	assert.True(t, HasConflict(slot("10:30", "11:30"), existing, ""))
	assert.False(t, HasConflict(slot("11:00", "12:00"), existing, ""), "back-to-back slot must be bookable")
	assert.False(t, HasConflict(slot("12:00", "13:00"), existing, ""))
}

func TestHasConflictExcludesOwnRow(t *testing.T) {
	existing := []Reservation{{ID: "b1", Slot: slot("10:00", "11:00")}}

	// shifting b1 within its own window must not flag b1 against itself
	assert.False(t, HasConflict(slot("10:15", "11:15"), existing, "b1"))
	assert.True(t, HasConflict(slot("10:15", "11:15"), existing, ""))
	assert.True(t, HasConflict(slot("10:15", "11:15"), existing, "other"))
}

func TestHasConflictEmptySnapshot(t *testing.T) {
	// cancelled/deleted rows are filtered out before the snapshot is built,
	// so a fully overlapping cancelled booking is simply absent here
	assert.False(t, HasConflict(slot("09:00", "10:00"), nil, ""))
}
