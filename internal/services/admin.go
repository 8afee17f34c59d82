package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/pkg/utils"
	"github.com/google/uuid"
)

const adminStatsCacheKey = "admin:stats"

// AdminOptions tunes an AdminService. Zero values are usable.
type AdminOptions struct {
	Cache    Cache
	StatsTTL time.Duration
	Events   Publisher
	Now      func() time.Time
}

// AdminService holds the administrator queries and updates.
type AdminService struct {
	users    UserStore
	journals JournalStore
	workdays WorkdayStore
	accounts AccountStore
	opts     AdminOptions
}

func NewAdminService(users UserStore, journals JournalStore, workdays WorkdayStore, accounts AccountStore, opts AdminOptions) *AdminService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StatsTTL <= 0 {
		opts.StatsTTL = time.Minute
	}
	return &AdminService{
		users:    users,
		journals: journals,
		workdays: workdays,
		accounts: accounts,
		opts:     opts,
	}
}

// AdminStats feeds the admin dashboard counters.
type AdminStats struct {
	TotalStudents  int `json:"total_students"`
	TotalJournals  int `json:"total_journals"`
	PendingReviews int `json:"pending_reviews"`
}

// GetAllStudents lists students with the given active flag, by last name.
func (s *AdminService) GetAllStudents(ctx context.Context, isActive bool) ([]models.User, error) {
	students, err := s.users.ListStudents(ctx, isActive)
	if err != nil {
		log.Printf("Get all students error: %v", err)
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	if students == nil {
		students = []models.User{}
	}
	return students, nil
}

// UpdateUserStatus flips a user's active flag.
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID string, isActive bool) error {
	if err := s.users.SetActive(ctx, userID, isActive); err != nil {
		log.Printf("Update user status error (user %s): %v", userID, err)
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	s.invalidateStats(ctx)
	return nil
}

// ParseJournalStatus maps a query value to a status; empty means all.
func ParseJournalStatus(v string) (models.JournalStatus, error) {
	switch status := models.JournalStatus(strings.ToLower(strings.TrimSpace(v))); status {
	case "":
		return models.JournalStatusAll, nil
	case models.JournalStatusAll, models.JournalStatusPending, models.JournalStatusReviewed:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// GetAllJournals lists submitted journals, newest submission first.
// "pending" keeps submitted and unreviewed entries, "reviewed" the reviewed ones.
func (s *AdminService) GetAllJournals(ctx context.Context, status models.JournalStatus) ([]models.Journal, error) {
	if _, err := ParseJournalStatus(string(status)); err != nil {
		return nil, err
	}
	if status == "" {
		status = models.JournalStatusAll
	}
	journals, err := s.journals.ListSubmitted(ctx, status)
	if err != nil {
		log.Printf("Get all journals error (status %s): %v", status, err)
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		journals = []models.Journal{}
	}
	return journals, nil
}

// ReviewJournal records the admin verdict and remarks on a journal.
func (s *AdminService) ReviewJournal(ctx context.Context, journalID, remarks string, reviewed bool) error {
	now := s.opts.Now().UTC()
	if err := s.journals.Review(ctx, journalID, remarks, reviewed, now); err != nil {
		log.Printf("Review journal error (%s): %v", journalID, err)
		return fmt.Errorf("failed to review journal %s: %w", journalID, err)
	}
	s.invalidateStats(ctx)

	if s.opts.Events != nil {
		userID, date := splitJournalID(journalID)
		event := Event{
			Type:      EventJournalReviewed,
			JournalID: journalID,
			UserID:    userID,
			Date:      date,
			Reviewed:  reviewed,
			Remarks:   remarks,
			Timestamp: now,
		}
		if err := s.opts.Events.Publish(ctx, event); err != nil {
			log.Printf("events: failed to publish %s for %s: %v", event.Type, journalID, err)
		}
	}
	return nil
}

// GetAdminStats derives the dashboard counters from the student and
// journal listings. Results are cached briefly when a cache is configured.
func (s *AdminService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	if s.opts.Cache != nil {
		var cached AdminStats
		if hit, err := s.opts.Cache.Get(ctx, adminStatsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	students, err := s.GetAllStudents(ctx, true)
	if err != nil {
		return nil, err
	}
	journals, err := s.GetAllJournals(ctx, models.JournalStatusAll)
	if err != nil {
		return nil, err
	}

	pending := 0
	for _, j := range journals {
		if j.Submitted && !j.Reviewed {
			pending++
		}
	}
	stats := &AdminStats{
		TotalStudents:  len(students),
		TotalJournals:  len(journals),
		PendingReviews: pending,
	}

	if s.opts.Cache != nil {
		if err := s.opts.Cache.Set(ctx, adminStatsCacheKey, stats, s.opts.StatsTTL); err != nil {
			log.Printf("cache: failed to store admin stats: %v", err)
		}
	}
	return stats, nil
}

// RegisterStudentInput is what an admin supplies to enroll a student.
type RegisterStudentInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	OJTStart     string
	WorkSchedule []int
}

// RegisterStudent enrolls a student with a sign-in account and profile.
func (s *AdminService) RegisterStudent(ctx context.Context, in RegisterStudentInput) (*models.User, error) {
	if in.OJTStart != "" {
		if _, err := ParseDate(in.OJTStart); err != nil {
			return nil, err
		}
	}
	if !validSchedule(in.WorkSchedule) {
		return nil, ErrInvalidSchedule
	}

	user := &models.User{
		Role:         models.RoleStudent,
		IsActive:     true,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		OJTStart:     in.OJTStart,
		WorkSchedule: in.WorkSchedule,
	}
	if err := s.createIdentity(ctx, in.Email, in.Password, user); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return user, nil
}

// EnsureAdmin creates an administrator with the given credentials unless
// an account already uses the email.
func (s *AdminService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.accounts.GetAccountByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return false, fmt.Errorf("failed to look up admin account: %w", err)
	}

	user := &models.User{Role: models.RoleAdmin, IsActive: true, FirstName: "Admin"}
	if err := s.createIdentity(ctx, email, password, user); err != nil {
		return false, err
	}
	return true, nil
}

// createIdentity writes the sign-in account, then the profile record keyed
// by the account ID. The account is removed again if the profile write fails.
func (s *AdminService) createIdentity(ctx context.Context, email, password string, user *models.User) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.opts.Now().UTC()
	account := &models.Account{
		ID:           uuid.New(),
		CreatedAt:    now,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		log.Printf("Create account error (%s): %v", account.Email, err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	user.ID = account.ID.String()
	user.Email = account.Email
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.users.CreateUser(ctx, user); err != nil {
		log.Printf("Create user record error (%s): %v", account.Email, err)
		if delErr := s.accounts.DeleteAccount(ctx, user.ID); delErr != nil {
			log.Printf("Create user record: failed to roll back account %s: %v", user.ID, delErr)
		}
		return fmt.Errorf("failed to create user record: %w", err)
	}
	return nil
}

// UpdateWorkSchedule replaces a student's working weekdays. An empty
// schedule restores the Mon-Fri default.
func (s *AdminService) UpdateWorkSchedule(ctx context.Context, userID string, schedule []int) error {
	if !validSchedule(schedule) {
		return ErrInvalidSchedule
	}
	if err := s.users.SetWorkSchedule(ctx, userID, schedule); err != nil {
		log.Printf("Update work schedule error (user %s): %v", userID, err)
		return fmt.Errorf("failed to update schedule for %s: %w", userID, err)
	}
	return nil
}

// SetWorkday creates or replaces the global override for date.
func (s *AdminService) SetWorkday(ctx context.Context, date string, isWorkday bool, note string) (*models.Workday, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	workday := &models.Workday{
		Date:      date,
		IsWorkday: isWorkday,
		Note:      strings.TrimSpace(note),
		UpdatedAt: s.opts.Now().UTC(),
	}
	if err := s.workdays.SetWorkday(ctx, workday); err != nil {
		log.Printf("Set workday error (%s): %v", date, err)
		return nil, fmt.Errorf("failed to set workday %s: %w", date, err)
	}
	return workday, nil
}

// DeleteWorkday drops the override so student schedules apply again.
func (s *AdminService) DeleteWorkday(ctx context.Context, date string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	if err := s.workdays.DeleteWorkday(ctx, date); err != nil {
		if !errors.Is(err, ErrWorkdayNotFound) {
			log.Printf("Delete workday error (%s): %v", date, err)
		}
		return fmt.Errorf("failed to delete workday %s: %w", date, err)
	}
	return nil
}

// ListWorkdays returns overrides between from and to inclusive.
func (s *AdminService) ListWorkdays(ctx context.Context, from, to string) ([]models.Workday, error) {
	for _, d := range []string{from, to} {
		if _, err := ParseDate(d); err != nil {
			return nil, err
		}
	}
	workdays, err := s.workdays.ListWorkdays(ctx, from, to)
	if err != nil {
		log.Printf("List workdays error (%s..%s): %v", from, to, err)
		return nil, fmt.Errorf("failed to list workdays: %w", err)
	}
	if workdays == nil {
		workdays = []models.Workday{}
	}
	return workdays, nil
}

func (s *AdminService) invalidateStats(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Delete(ctx, adminStatsCacheKey); err != nil {
		log.Printf("cache: failed to invalidate admin stats: %v", err)
	}
}

// splitJournalID reverses models.JournalID.
func splitJournalID(id string) (userID, date string) {
	i := strings.LastIndex(id, "_")
	if i < 0 {
		return id, ""
	}
	return id[:i], id[i+1:]
}
