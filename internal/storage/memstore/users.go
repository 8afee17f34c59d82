package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserStore) CreateUser(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.users[user.ID] = *user
	return nil
}

func (s *UserStore) ListStudents(_ context.Context, isActive bool) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var users []models.User
	for _, u := range s.db.users {
		if u.Role == models.RoleStudent && u.IsActive == isActive {
			users = append(users, u)
		}
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].LastName < users[j].LastName })
	return users, nil
}

func (s *UserStore) SetActive(_ context.Context, id string, isActive bool) error {
	return s.update(id, func(u *models.User) { u.IsActive = isActive })
}

func (s *UserStore) SetWorkSchedule(_ context.Context, id string, schedule []int) error {
	return s.update(id, func(u *models.User) { u.WorkSchedule = schedule })
}

func (s *UserStore) update(id string, fn func(*models.User)) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return services.ErrUserNotFound
	}
	fn(&user)
	user.UpdatedAt = time.Now().UTC()
	s.db.users[id] = user
	return nil
}
