package model

import (
	"strings"
	"time"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Note is a single task/reminder owned by one account. Title is never empty
// for a persisted note; priority comparisons are case-insensitive.
type Note struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	IsCompleted bool       `bson:"is_completed" json:"isCompleted"`
	DueDate     *time.Time `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Priority    string     `bson:"priority" json:"priority"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
	AudioURL    string     `bson:"audio_url,omitempty" json:"audioUrl,omitempty"`
}

// HasPriority reports whether the note's priority matches p, ignoring case.
func (n *Note) HasPriority(p string) bool {
	return strings.EqualFold(n.Priority, p)
}
