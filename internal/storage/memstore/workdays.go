package memstore

import (
	"context"
	"sort"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type WorkdayStore struct {
	db *DB
}

func NewWorkdayStore(db *DB) *WorkdayStore {
	return &WorkdayStore{db: db}
}

func (s *WorkdayStore) GetWorkday(_ context.Context, date string) (*models.Workday, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	workday, ok := s.db.workdays[date]
	if !ok {
		return nil, services.ErrWorkdayNotFound
	}
	return &workday, nil
}

func (s *WorkdayStore) ListWorkdays(_ context.Context, from, to string) ([]models.Workday, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var workdays []models.Workday
	for date, w := range s.db.workdays {
		if date >= from && date <= to {
			workdays = append(workdays, w)
		}
	}
	sort.Slice(workdays, func(i, j int) bool { return workdays[i].Date < workdays[j].Date })
	return workdays, nil
}

func (s *WorkdayStore) SetWorkday(_ context.Context, w *models.Workday) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.workdays[w.Date] = *w
	return nil
}

func (s *WorkdayStore) DeleteWorkday(_ context.Context, date string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.workdays[date]; !ok {
		return services.ErrWorkdayNotFound
	}
	delete(s.db.workdays, date)
	return nil
}
