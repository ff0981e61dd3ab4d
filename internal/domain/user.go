package domain

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"nome"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"data_criacao"`
}

// UserInput is the body of POST /usuarios and PUT /usuarios/:id.
type UserInput struct {
	Name  string `json:"nome" binding:"notblank"`
	Email string `json:"email" binding:"notblank"`
}
