package domain

import "time"

// Room is one bookable meeting room. Available=false marks it out of service
// without removing it from inventory.
type Room struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Capacity  int
	Equipment string // comma-separated, e.g. "Projector, Whiteboard, HDMI"
	Location  string
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
