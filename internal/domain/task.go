package domain

import (
	"bytes"
	"fmt"
	"time"
)

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"titulo"`
	Description *string   `db:"description" json:"descricao"`
	Completed   bool      `db:"completed" json:"concluida"`
	CreatedAt   time.Time `db:"created_at" json:"data_criacao"`
}

// TaskInput is the body of POST /tarefas and PUT /tarefas/:id. The title
// limit is counted in runes. Description stays nil when the client omits it
// and is stored as NULL.
type TaskInput struct {
	Title       string  `json:"titulo" binding:"notblank,max=100"`
	Description *string `json:"descricao"`
	Completed   Flag    `json:"concluida"`
}

// Flag is a boolean that also accepts 0 and 1, the way clients of this API
// have always sent it.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid boolean value %s", b)
	}
	return nil
}
