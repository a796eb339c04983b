package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fitlog/fitlog/internal/cache"
	"github.com/fitlog/fitlog/internal/metrics"
	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
)

// Exercise service errors.
var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidDuration     = errors.New("duration must be a positive number of minutes")
)

// ExerciseStore is the persistence surface the exercise service depends on.
type ExerciseStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]*model.Exercise, error)
}

// UserCache is the cache surface for user-by-id lookups.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.CachedUser, error)
	SetUser(ctx context.Context, user *model.User, ttl time.Duration) error
	SetNegativeUser(ctx context.Context, id string) error
	IsNegativelyCached(ctx context.Context, id string) (bool, error)
}

// ExerciseService handles exercise business logic.
type ExerciseService struct {
	store   ExerciseStore
	cache   UserCache
	userTTL time.Duration
	metrics metrics.Recorder
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(store ExerciseStore, userCache UserCache, userTTL time.Duration, recorder metrics.Recorder) *ExerciseService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ExerciseService{
		store:   store,
		cache:   userCache,
		userTTL: userTTL,
		metrics: recorder,
	}
}

// AddExerciseInput defines input for logging an exercise.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    int
	Date        *time.Time // nil defaults to the creation day
}

// AddExerciseOutput pairs the created exercise with its owner.
type AddExerciseOutput struct {
	User     *model.User
	Exercise *model.Exercise
}

// Add logs an exercise against an existing user.
// The user is resolved first: an unknown user id fails before any write,
// so no orphan exercise rows are created.
func (s *ExerciseService) Add(ctx context.Context, input AddExerciseInput) (*AddExerciseOutput, error) {
	user, err := s.resolveUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if input.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	exercise := &model.Exercise{
		ID:          ulid.Make().String(),
		UserID:      user.ID,
		Description: description,
		Duration:    input.Duration,
		Date:        truncateToDay(date),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateExercise(ctx, exercise); err != nil {
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}

	s.metrics.IncExerciseCreated()

	return &AddExerciseOutput{User: user, Exercise: exercise}, nil
}

// LogsInput defines input for querying a user's exercise log.
type LogsInput struct {
	UserID string
	From   *time.Time // inclusive lower bound
	To     *time.Time // inclusive upper bound
	Limit  int        // <= 0 means no cap
}

// LogsOutput packages the filtered exercise log.
type LogsOutput struct {
	User      *model.User
	Exercises []*model.Exercise
	Count     int
}

// Logs returns a user's exercises, bounded by the optional date range and
// truncated to the limit. The limit applies after the date bounds.
func (s *ExerciseService) Logs(ctx context.Context, input LogsInput) (*LogsOutput, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveLogsQueryDuration(time.Since(start))
	}()

	user, err := s.resolveUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	filter := repository.ExerciseFilter{
		UserID: user.ID,
		Limit:  input.Limit,
	}
	if input.From != nil {
		from := truncateToDay(*input.From)
		filter.From = &from
	}
	if input.To != nil {
		to := truncateToDay(*input.To)
		filter.To = &to
	}

	exercises, err := s.store.ListExercises(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	return &LogsOutput{
		User:      user,
		Exercises: exercises,
		Count:     len(exercises),
	}, nil
}

// resolveUser looks a user up cache-first, falling back to the store.
// Unknown ids are negatively cached so repeated probes skip the database.
func (s *ExerciseService) resolveUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, id)
		if err == nil {
			s.metrics.IncUserCacheHit()
			return cached.ToUser(id), nil
		}

		if errors.Is(err, cache.ErrCacheMiss) {
			s.metrics.IncUserCacheMiss()
			if negative, _ := s.cache.IsNegativelyCached(ctx, id); negative {
				return nil, ErrUserNotFound
			}
		}
		// Redis errors fall through to the database.
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			if s.cache != nil {
				_ = s.cache.SetNegativeUser(ctx, id)
			}
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.cache != nil {
		// Backfill is best-effort; a cache failure never fails the request.
		_ = s.cache.SetUser(ctx, user, s.userTTL)
	}

	return user, nil
}

// truncateToDay normalizes a timestamp to midnight UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
