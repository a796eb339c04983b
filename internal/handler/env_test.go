package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
	"github.com/fitlog/fitlog/internal/service"
)

// memStore is an in-memory store backing handler tests.
type memStore struct {
	users     []*model.User
	exercises []*model.Exercise
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}
	m.users = append(m.users, user)
	return nil
}

func (m *memStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	return m.users, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	m.exercises = append(m.exercises, exercise)
	return nil
}

func (m *memStore) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]*model.Exercise, error) {
	var result []*model.Exercise
	for _, e := range m.exercises {
		if e.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		result = append(result, e)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

// newTestServer wires the API routes against an in-memory store.
func newTestServer() (*httptest.Server, *memStore) {
	store := &memStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userService := service.NewUserService(store, nil)
	exerciseService := service.NewExerciseService(store, nil, time.Hour, nil)

	userHandler := NewUserHandler(userService, logger)
	exerciseHandler := NewExerciseHandler(exerciseService, logger)

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Post("/{userID}/exercises", exerciseHandler.Create)
		r.Get("/{userID}/logs", exerciseHandler.Logs)
	})

	return httptest.NewServer(r), store
}
