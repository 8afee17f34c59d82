package models

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// DefaultWorkSchedule is Monday through Friday (time.Weekday numbering).
var DefaultWorkSchedule = []int{1, 2, 3, 4, 5}

// User is the profile record kept in the document store. Its ID is the
// identity account's UUID.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	Email     string `bson:"email" json:"email"`
	Role      Role   `bson:"role" json:"role"`
	IsActive  bool   `bson:"is_active" json:"is_active"`
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`

	// OJT enrollment
	OJTStart     string `bson:"ojt_start,omitempty" json:"ojt_start,omitempty"`         // YYYY-MM-DD
	WorkSchedule []int  `bson:"work_schedule,omitempty" json:"work_schedule,omitempty"` // 0=Sunday ... 6=Saturday
}

// Schedule returns the user's working weekdays, falling back to Mon-Fri.
func (u *User) Schedule() []int {
	if len(u.WorkSchedule) == 0 {
		return DefaultWorkSchedule
	}
	return u.WorkSchedule
}
