package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/pkg/utils"
)

// Client page paths the gate redirects between.
const (
	EntryPage          = "/index.html"
	AdminDashboardPage = "/admin-pages/admin-dashboard.html"
	StudentDashboard   = "/student-pages/dashboard.html"
)

// AuthService signs users in and out and answers page-guard questions.
type AuthService struct {
	accounts AccountStore
	users    UserStore
	sessions SessionStore
}

func NewAuthService(accounts AccountStore, users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{
		accounts: accounts,
		users:    users,
		sessions: sessions,
	}
}

// LoginResult is returned on successful sign-in.
type LoginResult struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// Login checks the credentials, then requires a matching user record
// before a session is issued.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Printf("Login error (%s): %v", email, err)
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	valid, err := utils.VerifyPassword(password, account.PasswordHash)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUser(ctx, account.ID.String())
	if err != nil {
		log.Printf("Login error (%s): %v", email, err)
		return nil, fmt.Errorf("user data not found in database: %w", err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Printf("Login error (%s): failed to create session: %v", email, err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResult{
		Token:    token,
		User:     user,
		Redirect: DashboardPath(user.Role),
	}, nil
}

// Logout ends the session. Failures are logged, never returned; the
// caller always goes back to the entry page.
func (s *AuthService) Logout(ctx context.Context, token string) string {
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		log.Printf("Logout error: %v", err)
	}
	return EntryPage
}

// CurrentUser resolves a session token to its user record.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, ok, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}
	if !ok {
		return nil, ErrNotAuthenticated
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

// GateDecision tells the client where to go. An empty Redirect means the
// current page may be shown.
type GateDecision struct {
	Redirect string       `json:"redirect,omitempty"`
	Logout   bool         `json:"logout,omitempty"`
	User     *models.User `json:"user,omitempty"`
}

// Guard evaluates the page rules for the session behind token. Users
// whose record has disappeared are signed out.
func (s *AuthService) Guard(ctx context.Context, token, path string, requiredRole models.Role) (GateDecision, error) {
	user, err := s.CurrentUser(ctx, token)
	switch {
	case err == nil:
		return DecideGate(path, requiredRole, user, true), nil
	case errors.Is(err, ErrNotAuthenticated):
		return DecideGate(path, requiredRole, nil, false), nil
	case errors.Is(err, ErrUserNotFound):
		s.Logout(ctx, token)
		return DecideGate(path, requiredRole, nil, true), nil
	default:
		return GateDecision{}, err
	}
}

// DecideGate applies the page rules:
//   - signed out: back to the entry page unless already there
//   - signed in without a user record: sign out
//   - wrong role, or sitting on the entry page: go to the role's dashboard
func DecideGate(path string, requiredRole models.Role, user *models.User, authenticated bool) GateDecision {
	if !authenticated {
		if IsEntryPage(path) {
			return GateDecision{}
		}
		return GateDecision{Redirect: EntryPage}
	}
	if user == nil {
		return GateDecision{Redirect: EntryPage, Logout: true}
	}

	decision := GateDecision{User: user}
	if requiredRole != "" && user.Role != requiredRole {
		decision.Redirect = DashboardPath(user.Role)
	}
	if IsEntryPage(path) {
		decision.Redirect = DashboardPath(user.Role)
	}
	return decision
}

// IsEntryPage reports whether path is the sign-in page.
func IsEntryPage(path string) bool {
	return path == "/" || strings.HasSuffix(path, "index.html")
}

// DashboardPath maps a role to its landing page.
func DashboardPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return AdminDashboardPage
	case models.RoleStudent:
		return StudentDashboard
	default:
		return EntryPage
	}
}
