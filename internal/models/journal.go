package models

import (
	"time"
)

// Journal is a student's daily OJT activity entry. The document ID is
// "{userId}_{date}" so a student has at most one entry per day.
type Journal struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Date        string     `bson:"date" json:"date"`
	Week        int        `bson:"week" json:"week"`
	Content     string     `bson:"content" json:"content"`
	Submitted   bool       `bson:"submitted" json:"submitted"`
	Reviewed    bool       `bson:"reviewed" json:"reviewed"`
	Remarks     string     `bson:"remarks" json:"remarks"`
	Attachments []string   `bson:"attachments,omitempty" json:"attachments,omitempty"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	Timestamp   *time.Time `bson:"timestamp,omitempty" json:"timestamp,omitempty"` // set when submitted
	ReviewedAt  *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}

// JournalID builds the composite journal key.
func JournalID(userID, date string) string {
	return userID + "_" + date
}

// JournalStatus filters the admin journal listing.
type JournalStatus string

const (
	JournalStatusAll      JournalStatus = "all"
	JournalStatusPending  JournalStatus = "pending"
	JournalStatusReviewed JournalStatus = "reviewed"
)
