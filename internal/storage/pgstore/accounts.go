package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

// AccountStore keeps sign-in credentials in the accounts table.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, email, password_hash
		FROM accounts
		WHERE email = $1
	`, email).Scan(&account.ID, &account.CreatedAt, &account.Email, &account.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (s *AccountStore) CreateAccount(ctx context.Context, account *models.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, created_at, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`, account.ID, account.CreatedAt, account.Email, account.PasswordHash)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return services.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *AccountStore) DeleteAccount(ctx context.Context, id string) error {
	accountID, err := uuid.Parse(id)
	if err != nil {
		return services.ErrAccountNotFound
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return services.ErrAccountNotFound
	}
	return nil
}
