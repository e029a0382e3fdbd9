package database

import (
	"context"
	"math"
	"testing"

	"cropadvisory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{Name: "Asha", Email: "asha@example.com", Role: "learner"}
	require.NoError(t, s.CreateUser(ctx, u, "hash"))
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)

	dup := &models.User{Name: "Other", Email: "ASHA@example.com", Role: "learner"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup, "x"), ErrDuplicateEmail)

	got, hash, err := s.UserByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", hash)

	_, _, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.CountUsers(ctx, "learner")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, _ = s.CountUsers(ctx, "admin")
	assert.Equal(t, 0, n)
}

func TestMemoryStoreAttempts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	record := func(user, module string, correct bool) {
		a := &models.QuizAttempt{UserID: user, ModuleID: module, Answer: "a", Correct: correct}
		require.NoError(t, s.RecordAttempt(ctx, a))
		require.NotEmpty(t, a.ID)
	}
	record("u1", "crop-rotation", false)
	record("u1", "crop-rotation", true)
	record("u1", "soil-health-basics", true)
	record("u2", "crop-rotation", true)
	record("u1", "smart-irrigation", false)

	page, total, err := s.ListAttempts(ctx, "u1", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "smart-irrigation", page[0].ModuleID)
	assert.Equal(t, "soil-health-basics", page[1].ModuleID)

	page, _, err = s.ListAttempts(ctx, "u1", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.False(t, page[1].Correct)

	page, _, _ = s.ListAttempts(ctx, "u1", 2, 10)
	assert.Empty(t, page)

	page, _, err = s.ListAttempts(ctx, "u1", 10, -5)
	require.NoError(t, err)
	assert.Len(t, page, 4)

	page, _, err = s.ListAttempts(ctx, "u1", math.MaxInt, 1)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	sum, err := s.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Attempts)
	assert.Equal(t, 2, sum.CorrectAttempts)
	assert.Equal(t, []string{"crop-rotation", "soil-health-basics"}, sum.ModulesPassed)

	stats, err := s.ModuleStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, models.ModuleStat{ModuleID: "crop-rotation", Attempts: 3, CorrectCount: 2, Learners: 2, CorrectRatePc: 66.6}, stats[0])
	assert.Equal(t, "smart-irrigation", stats[1].ModuleID)
	assert.Equal(t, 0.0, stats[1].CorrectRatePc)
}

func TestCorrectRate(t *testing.T) {
	assert.Equal(t, 0.0, correctRate(0, 0))
	assert.Equal(t, 50.0, correctRate(1, 2))
	assert.Equal(t, 100.0, correctRate(3, 3))
}
