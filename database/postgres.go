package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cropadvisory/models"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStore is the Store backed by a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User, passwordHash string) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, is_active, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, u.Name, u.Email, passwordHash, u.Role).Scan(
		&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (models.User, string, error) {
	var u models.User
	var passwordHash string

	query := `
		SELECT id::text, name, email, password_hash, role, is_active, created_at, updated_at
		FROM users
		WHERE email = $1`

	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &passwordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, "", ErrNotFound
		}
		return models.User{}, "", fmt.Errorf("fetching user: %w", err)
	}
	return u, passwordHash, nil
}

func (s *PostgresStore) CountUsers(ctx context.Context, role string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = $1", role).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) RecordAttempt(ctx context.Context, a *models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (user_id, module_id, answer, correct)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, submitted_at`

	if err := s.pool.QueryRow(ctx, query, a.UserID, a.ModuleID, a.Answer, a.Correct).Scan(&a.ID, &a.SubmittedAt); err != nil {
		return fmt.Errorf("recording attempt: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAttempts(ctx context.Context, userID string, limit, offset int) ([]models.QuizAttempt, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting attempts: %w", err)
	}

	query := `
		SELECT id::text, user_id::text, module_id, answer, correct, submitted_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]models.QuizAttempt, 0)
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.ModuleID, &a.Answer, &a.Correct, &a.SubmittedAt); err != nil {
			log.Printf("[database] scan error on quiz_attempts: %v", err)
			return nil, 0, fmt.Errorf("scanning attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating attempts: %w", err)
	}
	return attempts, total, nil
}

func (s *PostgresStore) Summary(ctx context.Context, userID string) (models.ProgressSummary, error) {
	sum := models.ProgressSummary{ModulesPassed: make([]string, 0)}

	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE correct) FROM quiz_attempts WHERE user_id = $1",
		userID,
	).Scan(&sum.Attempts, &sum.CorrectAttempts)
	if err != nil {
		return sum, fmt.Errorf("summarising attempts: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT DISTINCT module_id FROM quiz_attempts WHERE user_id = $1 AND correct ORDER BY module_id",
		userID,
	)
	if err != nil {
		return sum, fmt.Errorf("listing passed modules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return sum, fmt.Errorf("scanning module id: %w", err)
		}
		sum.ModulesPassed = append(sum.ModulesPassed, id)
	}
	return sum, rows.Err()
}

func (s *PostgresStore) ModuleStats(ctx context.Context) ([]models.ModuleStat, error) {
	query := `
		SELECT module_id, COUNT(*), COUNT(*) FILTER (WHERE correct), COUNT(DISTINCT user_id)
		FROM quiz_attempts
		GROUP BY module_id
		ORDER BY module_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying module stats: %w", err)
	}
	defer rows.Close()

	stats := make([]models.ModuleStat, 0)
	for rows.Next() {
		var st models.ModuleStat
		if err := rows.Scan(&st.ModuleID, &st.Attempts, &st.CorrectCount, &st.Learners); err != nil {
			return nil, fmt.Errorf("scanning module stat: %w", err)
		}
		st.CorrectRatePc = correctRate(st.CorrectCount, st.Attempts)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
		log.Println("Database connection pool closed")
	}
}
