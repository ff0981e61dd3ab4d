package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"tasks_api/internal/db"
	"tasks_api/internal/domain"
	"tasks_api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPostgres(t *testing.T) *db.Store {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	store, err := db.Open(context.Background(), db.Options{Driver: db.DriverPostgres, URL: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPostgres_UserRepository(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(store)

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
	u := &domain.User{Name: "Integration", Email: email}
	require.NoError(t, repo.Create(ctx, u))
	require.Positive(t, u.ID)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), u.ID) })

	err := repo.Create(ctx, &domain.User{Name: "Dup", Email: email})
	require.Error(t, err)

	u.Name = "Integration 2"
	require.NoError(t, repo.Update(ctx, u))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	var found *domain.User
	for _, x := range users {
		if x.ID == u.ID {
			found = x
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Integration 2", found.Name)
	assert.False(t, found.CreatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), repository.ErrNotFound)
}

func TestPostgres_TaskRepository(t *testing.T) {
	store := openPostgres(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(store)

	desc := "2%"
	a := &domain.Task{Title: "A", Description: &desc}
	b := &domain.Task{Title: "B"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), a.ID)
		_ = repo.Delete(context.Background(), b.ID)
	})

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tasks), 2)
	assert.Equal(t, b.ID, tasks[0].ID)
	assert.Equal(t, a.ID, tasks[1].ID)
	require.NotNil(t, tasks[1].Description)
	assert.Equal(t, "2%", *tasks[1].Description)

	require.NoError(t, repo.Update(ctx, &domain.Task{ID: a.ID, Title: "A2", Completed: true}))
	assert.ErrorIs(t, repo.Update(ctx, &domain.Task{ID: -1, Title: "x"}), repository.ErrNotFound)
}
