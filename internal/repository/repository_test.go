package repository

import (
	"context"
	"testing"
	"time"

	"tasks_api/internal/db"
	"tasks_api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *db.Store {
	t.Helper()
	s, err := db.Open(context.Background(), db.Options{Driver: db.DriverSQLite, Path: db.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newStore(t))

	u := &domain.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Positive(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, "ana@example.com", users[0].Email)
	assert.WithinDuration(t, u.CreatedAt, users[0].CreatedAt, time.Second)

	u.Name = "Ana Maria"
	require.NoError(t, repo.Update(ctx, u))
	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", users[0].Name)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), ErrNotFound)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newStore(t))

	first := &domain.User{Name: "A", Email: "dup@example.com"}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &domain.User{Name: "B", Email: "dup@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "A", users[0].Name)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := NewUserRepository(newStore(t))
	err := repo.Update(context.Background(), &domain.User{ID: 42, Name: "x", Email: "x@x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepository_CreateListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newStore(t))

	a := &domain.Task{Title: "A", Description: strPtr("first")}
	b := &domain.Task{Title: "B"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, b.ID, tasks[0].ID)
	assert.Nil(t, tasks[0].Description)
	assert.Equal(t, a.ID, tasks[1].ID)
	require.NotNil(t, tasks[1].Description)
	assert.Equal(t, "first", *tasks[1].Description)
	assert.False(t, tasks[1].Completed)
}

func TestTaskRepository_UpdateReplacesFields(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newStore(t))

	task := &domain.Task{Title: "Buy milk", Description: strPtr("2%")}
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.Update(ctx, &domain.Task{ID: task.ID, Title: "Buy bread", Completed: true}))

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy bread", tasks[0].Title)
	assert.Nil(t, tasks[0].Description)
	assert.True(t, tasks[0].Completed)
}

func TestTaskRepository_MissingID(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(newStore(t))

	assert.ErrorIs(t, repo.Update(ctx, &domain.Task{ID: 9, Title: "x"}), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 9), ErrNotFound)
}

func TestRepositories_UnavailableStore(t *testing.T) {
	ctx := context.Background()
	store, err := db.Open(ctx, db.Options{Driver: db.DriverSQLite})
	require.Error(t, err)

	_, err = NewTaskRepository(store).List(ctx)
	assert.ErrorIs(t, err, db.ErrUnavailable)
	err = NewUserRepository(store).Create(ctx, &domain.User{Name: "a", Email: "b"})
	assert.ErrorIs(t, err, db.ErrUnavailable)
}

func TestTimestamp_Scan(t *testing.T) {
	var got time.Time
	ts := timestamp{&got}

	require.NoError(t, ts.Scan("2024-05-01 10:20:30"))
	assert.Equal(t, time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC), got)

	require.NoError(t, ts.Scan([]byte("2024-05-01 10:20:30.5+00:00")))
	assert.Equal(t, 500*time.Millisecond, time.Duration(got.Nanosecond()))

	now := time.Now()
	require.NoError(t, ts.Scan(now))
	assert.Equal(t, now, got)

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(12))
}
