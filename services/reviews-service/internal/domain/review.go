package domain

import "time"

const (
	StatusActive  = "ACTIVE"
	StatusDeleted = "DELETED"
)

// Review is one user's feedback on one room. Deletion is soft: the row flips
// to DELETED and disappears from listings while the history stays queryable.
type Review struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	RoomID    string `gorm:"index"`
	Rating    int
	Comment   string
	Status    string `gorm:"index"`
	IsFlagged bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
