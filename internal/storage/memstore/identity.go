package memstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

type AccountStore struct {
	db *DB
}

func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	account, ok := s.db.accounts[email]
	if !ok {
		return nil, services.ErrAccountNotFound
	}
	return &account, nil
}

func (s *AccountStore) CreateAccount(_ context.Context, account *models.Account) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.accounts[account.Email]; ok {
		return services.ErrEmailTaken
	}
	s.db.accounts[account.Email] = *account
	return nil
}

func (s *AccountStore) DeleteAccount(_ context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for email, a := range s.db.accounts {
		if a.ID.String() == id {
			delete(s.db.accounts, email)
			return nil
		}
	}
	return services.ErrAccountNotFound
}

// Sessions is an in-memory SessionStore. Expiry is not modelled.
type Sessions struct {
	db *DB
}

func NewSessions(db *DB) *Sessions {
	return &Sessions{db: db}
}

func (s *Sessions) Create(_ context.Context, userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for t, id := range s.db.sessions {
		if id == userID {
			delete(s.db.sessions, t)
		}
	}
	s.db.sessions[token] = userID
	return token, nil
}

func (s *Sessions) Validate(_ context.Context, token string) (string, bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	userID, ok := s.db.sessions[token]
	return userID, ok, nil
}

func (s *Sessions) Invalidate(_ context.Context, token string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	delete(s.db.sessions, token)
	return nil
}

// Cache is an in-memory Cache. TTLs are ignored.
type Cache struct {
	db *DB
}

func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.db.mu.RLock()
	data, ok := c.db.cache[key]
	c.db.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.cache[key] = data
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	for _, k := range keys {
		delete(c.db.cache, k)
	}
	return nil
}
