package client_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/client"
	"todoapp/backend/internal/models"
	"todoapp/backend/testutil"
)

func newServer(t *testing.T) *httptest.Server {
	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(testutil.SetupTestRouter(t, db))
	t.Cleanup(srv.Close)
	return srv
}

func registerAndLogin(t *testing.T, baseURL, email string) *client.Client {
	ctx := context.Background()
	c := client.New(baseURL)
	_, err := c.Register(ctx, models.UserRegisterRequest{Email: email, Password: testutil.TestPassword, FirstName: "Test"})
	require.NoError(t, err)
	res, err := c.Login(ctx, email, testutil.TestPassword)
	require.NoError(t, err)
	assert.Equal(t, res.Token, c.Token())
	return c
}

func TestClient_TaskLifecycle(t *testing.T) {
	srv := newServer(t)
	c := registerAndLogin(t, srv.URL, "ana@example.com")
	ctx := context.Background()

	desc := "2 liters"
	created, err := c.CreateTask(ctx, models.CreateTaskRequest{Title: "Buy milk", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.IsCompleted)

	got, err := c.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	toggled, err := c.ToggleTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	done := true
	completed, err := c.ListTasks(ctx, &done)
	require.NoError(t, err)
	require.Len(t, completed, 1)

	updated, err := c.UpdateTask(ctx, created.ID, models.UpdateTaskRequest{Title: "Buy oat milk", IsCompleted: false})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.Nil(t, updated.Description)

	stats, err := c.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatistics{TotalTasks: 1, CompletedTasks: 0, PendingTasks: 1}, *stats)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	all, err := c.ListTasks(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestClient_Errors(t *testing.T) {
	srv := newServer(t)
	alice := registerAndLogin(t, srv.URL, "alice@example.com")
	bob := registerAndLogin(t, srv.URL, "bob@example.com")
	ctx := context.Background()

	task, err := alice.CreateTask(ctx, models.CreateTaskRequest{Title: "private"})
	require.NoError(t, err)

	t.Run("another user's task is not found", func(t *testing.T) {
		_, err := bob.GetTask(ctx, task.ID)
		assert.True(t, client.IsNotFound(err), "got %v", err)
		assert.True(t, client.IsNotFound(bob.DeleteTask(ctx, task.ID)))
	})

	t.Run("validation errors are decoded", func(t *testing.T) {
		_, err := alice.CreateTask(ctx, models.CreateTaskRequest{Title: strings.Repeat("a", 201)})
		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "Validation failed", apiErr.Message)
		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "title", apiErr.Errors[0].Field)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		anon := client.New(srv.URL)
		_, err := anon.ListTasks(ctx, nil)
		assert.True(t, client.IsUnauthorized(err))
	})

	t.Run("bad credentials", func(t *testing.T) {
		anon := client.New(srv.URL)
		_, err := anon.Login(ctx, "alice@example.com", "wrong-password")
		assert.True(t, client.IsUnauthorized(err))
		assert.EqualError(t, err, "api error (401): Invalid credentials")
		assert.Empty(t, anon.Token())
	})
}
