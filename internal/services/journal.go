package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
)

// JournalOptions tunes a JournalService. Zero values are usable.
type JournalOptions struct {
	// Location decides what "today" is for progress calculations.
	Location *time.Location
	// FailOpen makes CheckWorkday answer true when a lookup fails instead of
	// returning the error.
	FailOpen bool
	// AttachmentFolder is the Cloudinary folder journal images go to.
	AttachmentFolder string

	Cache    Cache
	Events   Publisher
	Uploader Uploader
	Now      func() time.Time
}

// JournalService implements the student-facing journal operations and the
// progress engine.
type JournalService struct {
	users    UserStore
	journals JournalStore
	workdays WorkdayStore
	opts     JournalOptions
}

func NewJournalService(users UserStore, journals JournalStore, workdays WorkdayStore, opts JournalOptions) *JournalService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.AttachmentFolder == "" {
		opts.AttachmentFolder = "ojt-journals"
	}
	return &JournalService{
		users:    users,
		journals: journals,
		workdays: workdays,
		opts:     opts,
	}
}

// Progress summarises a student's submissions against their schedule.
type Progress struct {
	TotalSubmitted int              `json:"total_submitted"`
	TotalMissing   int              `json:"total_missing"`
	MissingDates   []string         `json:"missing_dates"`
	Journals       []models.Journal `json:"journals"`
	User           *models.User     `json:"user"`
}

// CheckWorkday reports whether date is a scheduled workday for userID.
// A global override wins; otherwise the student's schedule (Mon-Fri by
// default) decides.
func (s *JournalService) CheckWorkday(ctx context.Context, date, userID string) (bool, error) {
	day, err := ParseDate(date)
	if err != nil {
		return false, err
	}

	isWorkday, err := s.checkWorkday(ctx, day, userID)
	if err != nil {
		log.Printf("Check workday error (user %s, date %s): %v", userID, date, err)
		if s.opts.FailOpen {
			return true, nil
		}
		return false, err
	}
	return isWorkday, nil
}

func (s *JournalService) checkWorkday(ctx context.Context, day time.Time, userID string) (bool, error) {
	override, err := s.workdays.GetWorkday(ctx, day.Format(DateLayout))
	if err == nil {
		return override.IsWorkday, nil
	}
	if !errors.Is(err, ErrWorkdayNotFound) {
		return false, fmt.Errorf("failed to load workday override: %w", err)
	}

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	return scheduleIncludes(user.Schedule(), day.Weekday()), nil
}

// GetStudentProgress walks every day from the student's OJT start through
// today and lists the scheduled workdays that have no submitted journal.
func (s *JournalService) GetStudentProgress(ctx context.Context, userID string) (*Progress, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Get student progress error (user %s): %v", userID, err)
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	journals, err := s.journals.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Get student progress error (user %s): %v", userID, err)
		return nil, fmt.Errorf("failed to load journals: %w", err)
	}

	submitted := make(map[string]struct{}, len(journals))
	for _, j := range journals {
		if j.Submitted {
			submitted[j.Date] = struct{}{}
		}
	}

	missing, err := s.missingDates(ctx, user, submitted)
	if err != nil {
		log.Printf("Get student progress error (user %s): %v", userID, err)
		return nil, err
	}

	if journals == nil {
		journals = []models.Journal{}
	}
	return &Progress{
		TotalSubmitted: len(submitted),
		TotalMissing:   len(missing),
		MissingDates:   missing,
		Journals:       journals,
		User:           user,
	}, nil
}

func (s *JournalService) missingDates(ctx context.Context, user *models.User, submitted map[string]struct{}) ([]string, error) {
	missing := []string{}
	if user.OJTStart == "" {
		return missing, nil
	}
	start, err := ParseDate(user.OJTStart)
	if err != nil {
		log.Printf("User %s has an unparsable OJT start %q; skipping progress walk", user.ID, user.OJTStart)
		return missing, nil
	}
	end := today(s.opts.Now(), s.opts.Location)
	if start.After(end) {
		return missing, nil
	}

	overrides, err := s.workdays.ListWorkdays(ctx, start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load workday overrides: %w", err)
	}
	overrideByDate := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		overrideByDate[o.Date] = o.IsWorkday
	}

	schedule := user.Schedule()
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		isWorkday, ok := overrideByDate[date]
		if !ok {
			isWorkday = scheduleIncludes(schedule, day.Weekday())
		}
		if !isWorkday {
			continue
		}
		if _, done := submitted[date]; !done {
			missing = append(missing, date)
		}
	}
	return missing, nil
}

// SaveJournal stores a draft (submitted=false) or a final submission for a
// date. Final submissions must fall on a workday, and reviewed entries can
// no longer be changed.
func (s *JournalService) SaveJournal(ctx context.Context, userID, date, content string, submitted bool) (*models.Journal, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	if submitted {
		isWorkday, err := s.CheckWorkday(ctx, date, userID)
		if err != nil {
			return nil, err
		}
		if !isWorkday {
			return nil, ErrNotWorkday
		}
	}

	var ojtStart string
	user, err := s.users.GetUser(ctx, userID)
	switch {
	case err == nil:
		ojtStart = user.OJTStart
	case errors.Is(err, ErrUserNotFound):
	default:
		log.Printf("Save journal error (user %s, date %s): %v", userID, date, err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := s.opts.Now().UTC()
	journal := &models.Journal{
		ID:        models.JournalID(userID, date),
		UserID:    userID,
		Date:      date,
		Week:      CalculateWeekNumber(date, ojtStart),
		Content:   content,
		Submitted: submitted,
		UpdatedAt: now,
	}
	if submitted {
		journal.Timestamp = &now
	}

	if err := s.journals.SaveUnreviewed(ctx, journal); err != nil {
		log.Printf("Save journal error (%s): %v", journal.ID, err)
		return nil, fmt.Errorf("failed to save journal %s: %w", journal.ID, err)
	}

	if submitted {
		s.invalidateStats(ctx)
		s.publish(ctx, Event{
			Type:      EventJournalSubmitted,
			JournalID: journal.ID,
			UserID:    userID,
			Date:      date,
		})
	}

	saved, err := s.journals.GetJournal(ctx, journal.ID)
	if err != nil {
		// The write went through; hand back what we sent.
		log.Printf("Reload journal %s after save failed: %v", journal.ID, err)
		return journal, nil
	}
	return saved, nil
}

// GetJournal returns the entry for userID on date, or nil when there is none.
func (s *JournalService) GetJournal(ctx context.Context, userID, date string) (*models.Journal, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	journal, err := s.journals.GetJournal(ctx, models.JournalID(userID, date))
	if errors.Is(err, ErrJournalNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	return journal, nil
}

// GetStudentJournals lists a student's journals, newest date first.
func (s *JournalService) GetStudentJournals(ctx context.Context, userID string) ([]models.Journal, error) {
	journals, err := s.journals.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Get student journals error (user %s): %v", userID, err)
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		journals = []models.Journal{}
	}
	return journals, nil
}

// AttachToJournal uploads an evidence file and links it to the student's
// existing, unreviewed entry for date.
func (s *JournalService) AttachToJournal(ctx context.Context, userID, date string, file io.Reader) (*models.Journal, error) {
	if s.opts.Uploader == nil {
		return nil, ErrUploadsDisabled
	}
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	id := models.JournalID(userID, date)
	journal, err := s.journals.GetJournal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal %s: %w", id, err)
	}
	if journal.Reviewed {
		return nil, ErrJournalReviewed
	}

	url, err := s.opts.Uploader.Upload(ctx, file, s.opts.AttachmentFolder+"/"+userID)
	if err != nil {
		log.Printf("Attachment upload error (%s): %v", id, err)
		return nil, err
	}

	if err := s.journals.AddAttachment(ctx, id, url); err != nil {
		log.Printf("Attach to journal error (%s): %v", id, err)
		return nil, fmt.Errorf("failed to attach file to journal %s: %w", id, err)
	}
	journal.Attachments = append(journal.Attachments, url)
	return journal, nil
}

func (s *JournalService) invalidateStats(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Delete(ctx, adminStatsCacheKey); err != nil {
		log.Printf("cache: failed to invalidate admin stats: %v", err)
	}
}

func (s *JournalService) publish(ctx context.Context, event Event) {
	if s.opts.Events == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.opts.Now().UTC()
	}
	if err := s.opts.Events.Publish(ctx, event); err != nil {
		log.Printf("events: failed to publish %s for %s: %v", event.Type, event.JournalID, err)
	}
}
