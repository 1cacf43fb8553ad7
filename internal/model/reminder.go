package model

import "time"

// Reminder is a single time-bound reminder. Title and DueAt are fixed at
// creation; Done changes only through an explicit toggle.
type Reminder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DueAt     time.Time `json:"due_at"`
	Done      bool      `json:"done"`
	UserID    *string   `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DueOn reports whether the reminder falls on the given calendar date in loc.
func (r Reminder) DueOn(year int, month time.Month, day int, loc *time.Location) bool {
	y, m, d := r.DueAt.In(loc).Date()
	return y == year && m == month && d == day
}
