package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type JournalStore struct {
	db *DB
}

func NewJournalStore(db *DB) *JournalStore {
	return &JournalStore{db: db}
}

func (s *JournalStore) GetJournal(_ context.Context, id string) (*models.Journal, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	journal, ok := s.db.journals[id]
	if !ok {
		return nil, services.ErrJournalNotFound
	}
	journal = clone(journal)
	return &journal, nil
}

// clone copies the slice and pointer fields so callers cannot alias stored state.
func clone(j models.Journal) models.Journal {
	if j.Attachments != nil {
		j.Attachments = append([]string(nil), j.Attachments...)
	}
	if j.Timestamp != nil {
		ts := *j.Timestamp
		j.Timestamp = &ts
	}
	if j.ReviewedAt != nil {
		at := *j.ReviewedAt
		j.ReviewedAt = &at
	}
	return j
}

// Put stores a journal as-is, bypassing the reviewed check.
func (s *JournalStore) Put(j models.Journal) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.journals[j.ID] = clone(j)
}

func (s *JournalStore) SaveUnreviewed(_ context.Context, j *models.Journal) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, exists := s.db.journals[j.ID]
	if exists && stored.Reviewed {
		return services.ErrJournalReviewed
	}
	if !exists {
		stored = models.Journal{ID: j.ID}
	}

	stored.UserID = j.UserID
	stored.Date = j.Date
	stored.Week = j.Week
	stored.Content = j.Content
	stored.Submitted = j.Submitted
	stored.UpdatedAt = j.UpdatedAt
	if j.Timestamp != nil {
		ts := *j.Timestamp
		stored.Timestamp = &ts
	}
	s.db.journals[j.ID] = stored
	return nil
}

func (s *JournalStore) ListByUser(_ context.Context, userID string) ([]models.Journal, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var journals []models.Journal
	for _, j := range s.db.journals {
		if j.UserID == userID {
			journals = append(journals, clone(j))
		}
	}
	sort.Slice(journals, func(i, k int) bool { return journals[i].Date > journals[k].Date })
	return journals, nil
}

func (s *JournalStore) ListSubmitted(_ context.Context, status models.JournalStatus) ([]models.Journal, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var journals []models.Journal
	for _, j := range s.db.journals {
		if j.Timestamp == nil {
			continue
		}
		switch status {
		case models.JournalStatusPending:
			if !j.Submitted || j.Reviewed {
				continue
			}
		case models.JournalStatusReviewed:
			if !j.Reviewed {
				continue
			}
		}
		journals = append(journals, clone(j))
	}
	sort.Slice(journals, func(i, k int) bool { return journals[i].Timestamp.After(*journals[k].Timestamp) })
	return journals, nil
}

func (s *JournalStore) Review(_ context.Context, id, remarks string, reviewed bool, at time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	journal, ok := s.db.journals[id]
	if !ok {
		return services.ErrJournalNotFound
	}
	journal.Remarks = remarks
	journal.Reviewed = reviewed
	journal.ReviewedAt = &at
	s.db.journals[id] = journal
	return nil
}

func (s *JournalStore) AddAttachment(_ context.Context, id, url string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	journal, ok := s.db.journals[id]
	if !ok {
		return services.ErrJournalNotFound
	}
	if journal.Reviewed {
		return services.ErrJournalReviewed
	}
	journal.Attachments = append(append([]string(nil), journal.Attachments...), url)
	journal.UpdatedAt = time.Now().UTC()
	s.db.journals[id] = journal
	return nil
}
