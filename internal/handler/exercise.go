package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fitlog/fitlog/internal/handler/dto"
	"github.com/fitlog/fitlog/internal/service"
)

// ExerciseHandler handles HTTP requests for exercise operations.
type ExerciseHandler struct {
	svc    *service.ExerciseService
	logger *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(svc *service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/users/{userID}/exercises.
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "User ID is required")
		return
	}

	var req dto.CreateExerciseRequest

	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_FORM", "Unable to parse form body")
			return
		}
		req.Description = r.PostFormValue("description")
		req.Date = r.PostFormValue("date")

		if raw := r.PostFormValue("duration"); raw != "" {
			duration, err := strconv.Atoi(raw)
			if err != nil {
				h.writeError(w, http.StatusBadRequest, "INVALID_DURATION", "Duration must be a number")
				return
			}
			req.Duration = duration
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
			return
		}
	}

	input := service.AddExerciseInput{
		UserID:      userID,
		Description: req.Description,
		Duration:    req.Duration,
	}

	if req.Date != "" {
		date, err := dto.ParseDate(req.Date)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD or RFC3339")
			return
		}
		input.Date = &date
	}

	result, err := h.svc.Add(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("exercise_created",
		"exercise_id", result.Exercise.ID,
		"user_id", result.User.ID,
		"duration_min", result.Exercise.Duration,
	)

	writeJSON(w, http.StatusOK, dto.ToExerciseResponse(result.User, result.Exercise))
}

// Logs handles GET /api/users/{userID}/logs.
func (h *ExerciseHandler) Logs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_USER_ID", "User ID is required")
		return
	}

	query := r.URL.Query()

	input := service.LogsInput{
		UserID: userID,
	}

	if raw := query.Get("from"); raw != "" {
		from, err := dto.ParseDate(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "from must be YYYY-MM-DD or RFC3339")
			return
		}
		input.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := dto.ParseDate(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "to must be YYYY-MM-DD or RFC3339")
			return
		}
		input.To = &to
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		input.Limit = limit
	}

	result, err := h.svc.Logs(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLogsResponse(result.User, result.Exercises))
}

// handleServiceError maps service errors to HTTP responses.
func (h *ExerciseHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrDescriptionRequired):
		h.writeError(w, http.StatusBadRequest, "DESCRIPTION_REQUIRED", "Description is required")
	case errors.Is(err, service.ErrInvalidDuration):
		h.writeError(w, http.StatusBadRequest, "INVALID_DURATION", "Duration must be a positive number of minutes")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *ExerciseHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
