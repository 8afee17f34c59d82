package models

import "time"

// Workday is a system-wide override for a single date (holiday, make-up day).
// It wins over every student's personal schedule.
type Workday struct {
	Date      string    `bson:"_id" json:"date"`
	IsWorkday bool      `bson:"is_workday" json:"is_workday"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
