package services_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
	"github.com/AnshRaj112/ojt-journal-backend/internal/storage/memstore"
)

var errStoreDown = errors.New("store unavailable")

type fixture struct {
	users    *memstore.UserStore
	journals *memstore.JournalStore
	workdays *memstore.WorkdayStore
	accounts *memstore.AccountStore
	sessions *memstore.Sessions
	cache    *memstore.Cache
	hub      *services.EventHub
}

func newFixture() *fixture {
	db := memstore.Open()
	return &fixture{
		users:    memstore.NewUserStore(db),
		journals: memstore.NewJournalStore(db),
		workdays: memstore.NewWorkdayStore(db),
		accounts: memstore.NewAccountStore(db),
		sessions: memstore.NewSessions(db),
		cache:    memstore.NewCache(db),
		hub:      services.NewEventHub(),
	}
}

// clockAt returns a clock fixed at midday UTC on date.
func clockAt(date string) func() time.Time {
	day, err := time.Parse(services.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return day.Add(12 * time.Hour) }
}

func (f *fixture) journalService(today string) *services.JournalService {
	return services.NewJournalService(f.users, f.journals, f.workdays, services.JournalOptions{
		FailOpen: true,
		Cache:    f.cache,
		Events:   f.hub,
		Now:      clockAt(today),
	})
}

func (f *fixture) adminService(today string) *services.AdminService {
	return services.NewAdminService(f.users, f.journals, f.workdays, f.accounts, services.AdminOptions{
		Cache:  f.cache,
		Events: f.hub,
		Now:    clockAt(today),
	})
}

func (f *fixture) addStudent(t *testing.T, id, lastName, ojtStart string, schedule ...int) {
	t.Helper()
	require.NoError(t, f.users.CreateUser(context.Background(), &models.User{
		ID:           id,
		Email:        id + "@example.com",
		Role:         models.RoleStudent,
		IsActive:     true,
		LastName:     lastName,
		OJTStart:     ojtStart,
		WorkSchedule: schedule,
	}))
}

func (f *fixture) setWorkday(t *testing.T, date string, isWorkday bool) {
	t.Helper()
	require.NoError(t, f.workdays.SetWorkday(context.Background(), &models.Workday{Date: date, IsWorkday: isWorkday}))
}

func submittedAt(userID, date string, ts time.Time, reviewed bool) models.Journal {
	return models.Journal{
		ID:        models.JournalID(userID, date),
		UserID:    userID,
		Date:      date,
		Week:      1,
		Content:   "did things",
		Submitted: true,
		Reviewed:  reviewed,
		Timestamp: &ts,
	}
}

// brokenWorkdays fails every lookup.
type brokenWorkdays struct {
	services.WorkdayStore
}

func (brokenWorkdays) GetWorkday(context.Context, string) (*models.Workday, error) {
	return nil, errStoreDown
}

func (brokenWorkdays) ListWorkdays(context.Context, string, string) ([]models.Workday, error) {
	return nil, errStoreDown
}

// brokenUsers rejects writes.
type brokenUsers struct {
	services.UserStore
}

func (brokenUsers) CreateUser(context.Context, *models.User) error {
	return errStoreDown
}

type fakeUploader struct {
	folder string
	body   string
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, folder string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.folder = folder
	u.body = string(data)
	return "https://res.cloudinary.com/demo/image/upload/" + folder + "/evidence.png", nil
}
