//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fitlog/fitlog/internal/model"
	"github.com/fitlog/fitlog/internal/testutil"
)

func newExerciseTestEnv(t *testing.T) (context.Context, *Repository) {
	ctx, repo := newUserTestEnv(t)

	if err := testutil.ResetExercisesSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset exercises schema: %v", err)
	}

	return ctx, repo
}

func seedExercises(t *testing.T, ctx context.Context, repo *Repository, userID string, days ...int) []*model.Exercise {
	t.Helper()

	exercises := make([]*model.Exercise, 0, len(days))
	for i, d := range days {
		exercise := testutil.NewTestExercise(t, userID)
		exercise.ID = fmt.Sprintf("%s-ex-%03d", userID, i)
		exercise.Date = time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC)
		if err := repo.CreateExercise(ctx, exercise); err != nil {
			t.Fatalf("CreateExercise failed: %v", err)
		}
		exercises = append(exercises, exercise)
	}
	return exercises
}

func TestIntegrationExerciseRepository_CreateExercise(t *testing.T) {
	ctx, repo := newExerciseTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("excreate"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	exercise := testutil.NewTestExercise(t, user.ID)
	if err := repo.CreateExercise(ctx, exercise); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	listed, err := repo.ListExercises(ctx, ExerciseFilter{UserID: user.ID})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(listed))
	}
	if listed[0].Description != exercise.Description {
		t.Errorf("Description mismatch: got %q, want %q", listed[0].Description, exercise.Description)
	}
	if listed[0].Duration != exercise.Duration {
		t.Errorf("Duration mismatch: got %d, want %d", listed[0].Duration, exercise.Duration)
	}
}

func TestIntegrationExerciseRepository_ListExercises_OnlyOwnEntries(t *testing.T) {
	ctx, repo := newExerciseTestEnv(t)

	alice := testutil.NewTestUser(t, testutil.UniqueUsername("alice"))
	bob := testutil.NewTestUser(t, testutil.UniqueUsername("bob"))
	for _, u := range []*model.User{alice, bob} {
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	seedExercises(t, ctx, repo, alice.ID, 1, 2)
	seedExercises(t, ctx, repo, bob.ID, 3)

	listed, err := repo.ListExercises(ctx, ExerciseFilter{UserID: alice.ID})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 exercises for alice, got %d", len(listed))
	}
	for _, e := range listed {
		if e.UserID != alice.ID {
			t.Errorf("expected only alice's entries, got one for %q", e.UserID)
		}
	}
}

func TestIntegrationExerciseRepository_ListExercises_DateBounds(t *testing.T) {
	ctx, repo := newExerciseTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("bounds"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	seedExercises(t, ctx, repo, user.ID, 1, 5, 10)

	from := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)

	// Both bounds are inclusive
	listed, err := repo.ListExercises(ctx, ExerciseFilter{UserID: user.ID, From: &from, To: &to})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 exercises in [Jan 5, Jan 10], got %d", len(listed))
	}
}

func TestIntegrationExerciseRepository_ListExercises_Limit(t *testing.T) {
	ctx, repo := newExerciseTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueUsername("limit"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	seeded := seedExercises(t, ctx, repo, user.ID, 1, 2, 3, 4, 5)

	listed, err := repo.ListExercises(ctx, ExerciseFilter{UserID: user.ID, Limit: 2})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(listed))
	}

	// Limit keeps the earliest entries in insertion order
	if listed[0].ID != seeded[0].ID || listed[1].ID != seeded[1].ID {
		t.Errorf("unexpected entries under limit: %q, %q", listed[0].ID, listed[1].ID)
	}
}

func TestIntegrationExerciseRepository_ListExercises_Empty(t *testing.T) {
	ctx, repo := newExerciseTestEnv(t)

	listed, err := repo.ListExercises(ctx, ExerciseFilter{UserID: "no-such-user"})
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected no exercises, got %d", len(listed))
	}
}
