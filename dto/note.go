package dto

import "time"

// NoteRequest is the request body for creating and updating notes.
type NoteRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority" binding:"omitempty,priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	AudioURL    string     `json:"audioUrl"`
}

// NormalizeDates converts all timestamp fields to UTC before they cross the
// storage boundary.
func (r *NoteRequest) NormalizeDates() {
	if r.DueDate != nil {
		utc := r.DueDate.UTC()
		r.DueDate = &utc
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
}
