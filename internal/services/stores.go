package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
)

// UserStore reads and writes user profile records.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// ListStudents returns students with the given active flag ordered by last name.
	ListStudents(ctx context.Context, isActive bool) ([]models.User, error)
	SetActive(ctx context.Context, id string, isActive bool) error
	SetWorkSchedule(ctx context.Context, id string, schedule []int) error
}

// JournalStore persists journal entries.
type JournalStore interface {
	GetJournal(ctx context.Context, id string) (*models.Journal, error)
	// SaveUnreviewed upserts the student-owned fields of j. It must fail with
	// ErrJournalReviewed, without writing, when the stored entry is reviewed.
	SaveUnreviewed(ctx context.Context, j *models.Journal) error
	// ListByUser returns a student's journals ordered by date descending.
	ListByUser(ctx context.Context, userID string) ([]models.Journal, error)
	// ListSubmitted returns journals carrying a submission timestamp, newest first.
	ListSubmitted(ctx context.Context, status models.JournalStatus) ([]models.Journal, error)
	Review(ctx context.Context, id, remarks string, reviewed bool, at time.Time) error
	// AddAttachment appends a URL to an unreviewed journal.
	AddAttachment(ctx context.Context, id, url string) error
}

// WorkdayStore holds the global per-date overrides.
type WorkdayStore interface {
	GetWorkday(ctx context.Context, date string) (*models.Workday, error)
	// ListWorkdays returns overrides with from <= date <= to, ordered by date.
	ListWorkdays(ctx context.Context, from, to string) ([]models.Workday, error)
	SetWorkday(ctx context.Context, w *models.Workday) error
	DeleteWorkday(ctx context.Context, date string) error
}

// AccountStore is the identity provider's credential table.
type AccountStore interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string) error
}

// SessionStore maps opaque tokens to user IDs.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
	Invalidate(ctx context.Context, token string) error
}

// Cache is a best-effort JSON cache. A miss is (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Publisher broadcasts journal events to connected clients.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
