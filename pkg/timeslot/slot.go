package timeslot

import (
	"errors"
	"time"
)

var ErrInvalidSlot = errors.New("end must be after start")

// Slot is a half-open time range [Start, End). A booking that ends at T and
// another that starts at T occupy adjacent slots and do not collide.
type Slot struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Slot, error) {
	s := Slot{Start: start.UTC(), End: end.UTC()}
	if err := s.Validate(); err != nil {
		return Slot{}, err
	}
	return s, nil
}

func (s Slot) Validate() error {
	if !s.End.After(s.Start) {
		return ErrInvalidSlot
	}
	return nil
}

// Overlaps reports whether two half-open slots share any instant.
// Strict inequalities on both sides keep back-to-back slots conflict-free.
func (s Slot) Overlaps(o Slot) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

// Reservation is the minimal view of an existing booking the checker needs.
// Callers pass only rows that are still active (CONFIRMED bookings, ACTIVE
// reviews); cancelled and deleted rows never reach the checker.
type Reservation struct {
	ID   string
	Slot Slot
}

// HasConflict reports whether proposed collides with any reservation in the
// snapshot. excludeID skips the reservation being updated so a booking never
// conflicts with itself; pass "" on create.
//
// The check is pure and point-in-time. The bookings repository pairs it with a
// row-locking transaction so two concurrent creators cannot both pass.
func HasConflict(proposed Slot, existing []Reservation, excludeID string) bool {
	for _, r := range existing {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if proposed.Overlaps(r.Slot) {
			return true
		}
	}
	return false
}
