package service

import (
	"context"
	"time"

	"github.com/fitlog/fitlog/internal/cache"
	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/repository"
)

// fakeStore is an in-memory store implementing UserStore and ExerciseStore.
type fakeStore struct {
	users     []*model.User
	exercises []*model.Exercise

	createUserErr    error
	listUsersErr     error
	getUserErr       error
	createExErr      error
	listExercisesErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.users, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	if f.createExErr != nil {
		return f.createExErr
	}
	f.exercises = append(f.exercises, exercise)
	return nil
}

func (f *fakeStore) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]*model.Exercise, error) {
	if f.listExercisesErr != nil {
		return nil, f.listExercisesErr
	}

	var result []*model.Exercise
	for _, e := range f.exercises {
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

// fakeUserCache is an in-memory UserCache.
type fakeUserCache struct {
	users     map[string]*model.CachedUser
	negatives map[string]bool

	getErr error
	setErr error
}

func newFakeUserCache() *fakeUserCache {
	return &fakeUserCache{
		users:     make(map[string]*model.CachedUser),
		negatives: make(map[string]bool),
	}
}

func (f *fakeUserCache) GetUser(ctx context.Context, id string) (*model.CachedUser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if cached, ok := f.users[id]; ok {
		return cached, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeUserCache) SetUser(ctx context.Context, user *model.User, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.users[user.ID] = user.ToCachedUser()
	delete(f.negatives, user.ID)
	return nil
}

func (f *fakeUserCache) SetNegativeUser(ctx context.Context, id string) error {
	f.negatives[id] = true
	return nil
}

func (f *fakeUserCache) IsNegativelyCached(ctx context.Context, id string) (bool, error) {
	return f.negatives[id], nil
}
