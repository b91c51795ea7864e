package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Board columns a task can sit in. "done" is the terminal column.
const (
	ColumnTodo  = "todo"
	ColumnDoing = "doing"
	ColumnTest  = "test"
	ColumnDone  = "done"
)

var validColumns = map[string]struct{}{
	ColumnTodo:  {},
	ColumnDoing: {},
	ColumnTest:  {},
	ColumnDone:  {},
}

func IsValidColumn(column string) bool {
	_, ok := validColumns[column]
	return ok
}

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Column      string     `json:"column" gorm:"column:board_column;not null;default:'todo'"`
	DoneAt      *time.Time `json:"done_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
