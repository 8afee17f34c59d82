package services

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrJournalNotFound    = errors.New("journal not found")
	ErrWorkdayNotFound    = errors.New("workday override not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrJournalReviewed    = errors.New("cannot edit a journal that has already been reviewed")
	ErrNotWorkday         = errors.New("this date is not part of your OJT schedule")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidStatus      = errors.New("status must be one of all, pending, reviewed")
	ErrInvalidSchedule    = errors.New("work schedule days must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrUploadsDisabled  = errors.New("file uploads are not configured")
)
