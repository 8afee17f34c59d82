// Package memstore holds in-memory implementations of the service stores.
// They back the unit tests and keep the same semantics as the MongoDB,
// PostgreSQL and Redis adapters.
package memstore

import (
	"sync"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
)

// DB is a process-local stand-in for the document store and identity tables.
type DB struct {
	mu       sync.RWMutex
	users    map[string]models.User
	journals map[string]models.Journal
	workdays map[string]models.Workday
	accounts map[string]models.Account // by email
	sessions map[string]string         // token -> user ID
	cache    map[string][]byte
}

func Open() *DB {
	return &DB{
		users:    make(map[string]models.User),
		journals: make(map[string]models.Journal),
		workdays: make(map[string]models.Workday),
		accounts: make(map[string]models.Account),
		sessions: make(map[string]string),
		cache:    make(map[string][]byte),
	}
}
