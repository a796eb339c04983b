package model

import "time"

// DateLayout is the wire format for exercise dates.
// Matches a human-readable day-month-date-year string, e.g. "Sun Jan 01 2023".
const DateLayout = "Mon Jan 02 2006"

// Exercise represents a logged activity entry associated with a user.
type Exercise struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// DateString formats the exercise date for API responses.
// Dates are always serialized this way, never as raw timestamps.
func (e *Exercise) DateString() string {
	return e.Date.Format(DateLayout)
}
