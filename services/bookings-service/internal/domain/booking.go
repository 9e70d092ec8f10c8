package domain

import "time"

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking reserves one room for one user over a half-open interval
// [StartTime, EndTime). Only CONFIRMED rows participate in conflict checks;
// cancellation keeps the row so history survives.
type Booking struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"index"`
	RoomID    string    `gorm:"index"`
	StartTime time.Time `gorm:"index"`
	EndTime   time.Time `gorm:"index"`
	Status    string    `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
