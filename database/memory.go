package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cropadvisory/models"

	"github.com/google/uuid"
)

type memoryUser struct {
	user         models.User
	passwordHash string
}

// MemoryStore keeps everything in process memory. It is used when no
// DATABASE_URL is configured; all data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*memoryUser // keyed by lower-cased email
	attempts []models.QuizAttempt
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*memoryUser),
		now:   time.Now,
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User, passwordHash string) error {
	key := strings.ToLower(u.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return ErrDuplicateEmail
	}

	now := s.now()
	u.ID = uuid.NewString()
	u.IsActive = true
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[key] = &memoryUser{user: *u, passwordHash: passwordHash}
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (models.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mu, ok := s.users[strings.ToLower(email)]
	if !ok {
		return models.User{}, "", ErrNotFound
	}
	return mu.user, mu.passwordHash, nil
}

func (s *MemoryStore) CountUsers(_ context.Context, role string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, mu := range s.users {
		if mu.user.Role == role {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) RecordAttempt(_ context.Context, a *models.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.SubmittedAt = s.now()
	s.attempts = append(s.attempts, *a)
	return nil
}

func (s *MemoryStore) ListAttempts(_ context.Context, userID string, limit, offset int) ([]models.QuizAttempt, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mine := make([]models.QuizAttempt, 0)
	for i := len(s.attempts) - 1; i >= 0; i-- {
		if s.attempts[i].UserID == userID {
			mine = append(mine, s.attempts[i])
		}
	}
	total := len(mine)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []models.QuizAttempt{}, total, nil
	}
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	return mine[offset:end], total, nil
}

func (s *MemoryStore) Summary(_ context.Context, userID string) (models.ProgressSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := models.ProgressSummary{ModulesPassed: make([]string, 0)}
	passed := make(map[string]bool)
	for _, a := range s.attempts {
		if a.UserID != userID {
			continue
		}
		sum.Attempts++
		if a.Correct {
			sum.CorrectAttempts++
			if !passed[a.ModuleID] {
				passed[a.ModuleID] = true
				sum.ModulesPassed = append(sum.ModulesPassed, a.ModuleID)
			}
		}
	}
	sort.Strings(sum.ModulesPassed)
	return sum, nil
}

func (s *MemoryStore) ModuleStats(_ context.Context) ([]models.ModuleStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byModule := make(map[string]*models.ModuleStat)
	learners := make(map[string]map[string]bool)
	for _, a := range s.attempts {
		st, ok := byModule[a.ModuleID]
		if !ok {
			st = &models.ModuleStat{ModuleID: a.ModuleID}
			byModule[a.ModuleID] = st
			learners[a.ModuleID] = make(map[string]bool)
		}
		st.Attempts++
		if a.Correct {
			st.CorrectCount++
		}
		learners[a.ModuleID][a.UserID] = true
	}

	stats := make([]models.ModuleStat, 0, len(byModule))
	for id, st := range byModule {
		st.Learners = len(learners[id])
		st.CorrectRatePc = correctRate(st.CorrectCount, st.Attempts)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ModuleID < stats[j].ModuleID })
	return stats, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() {}
