package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys emitted by the bookings service on its topic exchange.
const (
	RKBookingCreated   = "booking.created"
	RKBookingUpdated   = "booking.updated"
	RKBookingCancelled = "booking.cancelled"
)

// BookingChanged is the payload of booking.created and booking.updated.
// Start and end travel as unix seconds.
type BookingChanged struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
	Start     int64  `json:"start"`
	End       int64  `json:"end"`
}

// BookingCancelled carries no slot; the row keeps its times, only the status
// flips.
type BookingCancelled struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
