package database

import (
	"context"
	"errors"

	"cropadvisory/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store persists learner accounts and quiz progress.
type Store interface {
	// CreateUser inserts u and fills in its ID and timestamps.
	CreateUser(ctx context.Context, u *models.User, passwordHash string) error
	// UserByEmail returns the user and its password hash.
	UserByEmail(ctx context.Context, email string) (models.User, string, error)
	CountUsers(ctx context.Context, role string) (int, error)

	// RecordAttempt inserts a and fills in its ID and SubmittedAt.
	RecordAttempt(ctx context.Context, a *models.QuizAttempt) error
	// ListAttempts returns one page of a user's attempts, newest first,
	// and the user's total attempt count.
	ListAttempts(ctx context.Context, userID string, limit, offset int) ([]models.QuizAttempt, int, error)
	Summary(ctx context.Context, userID string) (models.ProgressSummary, error)
	ModuleStats(ctx context.Context) ([]models.ModuleStat, error)

	Ping(ctx context.Context) error
	Close()
}

func correctRate(correct, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	return float64(correct*1000/attempts) / 10
}
