package task

import (
	"time"
)

// MaxTitleLength is the upper bound on task titles.
const MaxTitleLength = 255

// Task represents a to-do item. Tasks carry no owner reference: every
// authenticated user operates on the same shared list.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
