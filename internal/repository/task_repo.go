package repository

import (
	"context"
	"database/sql"

	"tasks_api/internal/db"
	"tasks_api/internal/domain"
)

type TaskRepository struct {
	store *db.Store
}

func NewTaskRepository(store *db.Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// List returns all tasks, newest first. id breaks ties between tasks created
// within the same timestamp.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	conn, err := r.store.Conn()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx,
		`SELECT id, title, description, completed, created_at FROM tasks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			t    domain.Task
			desc sql.NullString
			done sql.NullBool
		)
		if err := rows.Scan(&t.ID, &t.Title, &desc, &done, timestamp{&t.CreatedAt}); err != nil {
			return nil, err
		}
		if desc.Valid {
			t.Description = &desc.String
		}
		t.Completed = done.Valid && done.Bool
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	conn, err := r.store.Conn()
	if err != nil {
		return err
	}

	t.CreatedAt = db.Now()
	return conn.QueryRowContext(ctx,
		r.store.Rebind(`INSERT INTO tasks (title, description, completed, created_at) VALUES (?, ?, ?, ?) RETURNING id`),
		t.Title, t.Description, t.Completed, t.CreatedAt,
	).Scan(&t.ID)
}

// Update replaces title, description and completed of the task with t.ID.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	conn, err := r.store.Conn()
	if err != nil {
		return err
	}

	result, err := conn.ExecContext(ctx,
		r.store.Rebind(`UPDATE tasks SET title = ?, description = ?, completed = ? WHERE id = ?`),
		t.Title, t.Description, t.Completed, t.ID,
	)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.store.Conn()
	if err != nil {
		return err
	}

	result, err := conn.ExecContext(ctx, r.store.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
