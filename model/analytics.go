package model

import "time"

// Analytics is a derived priority-bucketed summary of one account's notes
// within a date range. It is computed fresh on every request and never
// persisted.
type Analytics struct {
	UserID              string    `json:"userId"`
	Date                time.Time `json:"date"` // first day of the queried month
	HighPriorityCount   int       `json:"highPriorityCount"`
	MediumPriorityCount int       `json:"mediumPriorityCount"`
	LowPriorityCount    int       `json:"lowPriorityCount"`
	Tasks               []*Note   `json:"tasks"`
}
