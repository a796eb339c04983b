package dto

import (
	"errors"
	"time"

	"github.com/fitlog/fitlog/internal/model"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// dateInputLayouts are the accepted input formats for date fields.
var dateInputLayouts = []string{"2006-01-02", time.RFC3339}

// CreateExerciseRequest represents the request body for logging an exercise.
type CreateExerciseRequest struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date,omitempty"`
}

// ExerciseResponse represents a created exercise in API responses.
// The id is the exercise's own id.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// LogEntry represents one exercise inside a logs response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogsResponse represents a user's filtered exercise log.
type LogsResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

// ParseDate parses a date field, accepting YYYY-MM-DD or RFC3339.
// Returns ErrInvalidDate for anything else.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ToExerciseResponse converts a created exercise and its owner to a DTO.
func ToExerciseResponse(user *model.User, exercise *model.Exercise) ExerciseResponse {
	return ExerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.DateString(),
		ID:          exercise.ID,
	}
}

// ToLogsResponse converts a user and their exercises to a logs DTO.
func ToLogsResponse(user *model.User, exercises []*model.Exercise) LogsResponse {
	log := make([]LogEntry, len(exercises))
	for i, exercise := range exercises {
		log[i] = LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.DateString(),
		}
	}

	return LogsResponse{
		Username: user.Username,
		Count:    len(log),
		ID:       user.ID,
		Log:      log,
	}
}
