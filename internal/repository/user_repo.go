package repository

import (
	"context"

	"tasks_api/internal/db"
	"tasks_api/internal/domain"
)

type UserRepository struct {
	store *db.Store
}

func NewUserRepository(store *db.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	conn, err := r.store.Conn()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `SELECT id, name, email, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, timestamp{&u.CreatedAt}); err != nil {
			return nil, err
		}
		res = append(res, &u)
	}
	return res, rows.Err()
}

// Create inserts u and fills in its ID and CreatedAt. A duplicate email fails
// with the driver's constraint error.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	conn, err := r.store.Conn()
	if err != nil {
		return err
	}

	u.CreatedAt = db.Now()
	return conn.QueryRowContext(ctx,
		r.store.Rebind(`INSERT INTO users (name, email, created_at) VALUES (?, ?, ?) RETURNING id`),
		u.Name, u.Email, u.CreatedAt,
	).Scan(&u.ID)
}

// Update replaces name and email of the user with u.ID.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	conn, err := r.store.Conn()
	if err != nil {
		return err
	}

	result, err := conn.ExecContext(ctx,
		r.store.Rebind(`UPDATE users SET name = ?, email = ? WHERE id = ?`),
		u.Name, u.Email, u.ID,
	)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.store.Conn()
	if err != nil {
		return err
	}

	result, err := conn.ExecContext(ctx, r.store.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}
