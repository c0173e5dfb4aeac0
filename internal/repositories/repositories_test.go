package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/models"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/testutil"
)

func TestUserRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	created := testutil.CreateTestUser(t, repo, "ana@example.com", "password123")

	t.Run("FindByEmail", func(t *testing.T) {
		u, err := repo.FindByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
		assert.NoError(t, repositories.VerifyPassword(u.PasswordHash, "password123"))
		assert.Error(t, repositories.VerifyPassword(u.PasswordHash, "wrong"))
	})

	t.Run("FindByID", func(t *testing.T) {
		u, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", u.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, &models.User{Email: "ana@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	})
}

func TestTaskRepository_WritesAreScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	repo := repositories.NewTaskRepository(db)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, userRepo, "owner@example.com", "password123")
	other := testutil.CreateTestUser(t, userRepo, "other@example.com", "password123")

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	task, err := repo.Create(ctx, &models.Task{UserID: owner.ID, Title: "mine", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	require.NotZero(t, task.ID)

	hijack := *task
	hijack.UserID = other.ID
	hijack.Title = "stolen"
	assert.ErrorIs(t, repo.Update(ctx, &hijack), repositories.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, task.ID, other.ID), repositories.ErrTaskNotFound)

	got, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.Equal(t, owner.ID, got.UserID)
	assert.Nil(t, got.Description)

	// 値が変わらない更新も成功扱い
	assert.NoError(t, repo.Update(ctx, got))

	require.NoError(t, repo.Delete(ctx, task.ID, owner.ID))
	_, err = repo.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, repositories.ErrTaskNotFound)
}

func TestTaskRepository_ListAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	repo := repositories.NewTaskRepository(db)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, userRepo, "owner@example.com", "password123")

	tasks, err := repo.FindByUserID(ctx, owner.ID, nil)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, done := range []bool{true, false, true} {
		at := base.Add(time.Duration(i) * time.Minute)
		desc := "note"
		_, err := repo.Create(ctx, &models.Task{
			UserID: owner.ID, Title: "t", Description: &desc, IsCompleted: done, CreatedAt: at, UpdatedAt: at,
		})
		require.NoError(t, err)
	}

	total, completed, err := repo.CountByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, completed)

	done := true
	tasks, err = repo.FindByUserID(ctx, owner.ID, &done)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.True(t, tasks[0].CreatedAt.After(tasks[1].CreatedAt))
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, "note", *tasks[0].Description)
}
