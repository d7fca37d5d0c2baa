package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironmind/internal/models"
	"ironmind/internal/planner"
	"ironmind/internal/storage"
	"ironmind/internal/storage/storagetest"
)

func TestUpdateProfile(t *testing.T) {
	db := storagetest.Open(t)
	svc := NewUserService(storage.NewGormUserRepository(db), storage.NewGormRelationshipRepository(db), nil)
	u := storagetest.CreateUser(t, db, "Ana", "ANA23456")
	ctx := context.Background()

	age := 10
	_, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Age: &age})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name, volume := " Ana Maria ", "5-6"
	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Name: &name, WorkoutVolume: &volume})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "5-6", got.WorkoutVolume)
	assert.Equal(t, "ANA23456", got.FriendCodeValue())

	_, err = svc.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateTheme(t *testing.T) {
	db := storagetest.Open(t)
	svc := NewUserService(storage.NewGormUserRepository(db), storage.NewGormRelationshipRepository(db), nil)
	u := storagetest.CreateUser(t, db, "Ana", "")
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateTheme(ctx, u.ID, "sepia"), ErrInvalidTheme)
	assert.ErrorIs(t, svc.UpdateTheme(ctx, 9999, "dark"), ErrUserNotFound)
	require.NoError(t, svc.UpdateTheme(ctx, u.ID, "DARK"))

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, got.Theme)
}

func TestSearchUsersLimits(t *testing.T) {
	db := storagetest.Open(t)
	svc := NewUserService(storage.NewGormUserRepository(db), storage.NewGormRelationshipRepository(db), nil)
	me := storagetest.CreateUser(t, db, "Sam", "")
	for _, n := range []string{"Sama", "Samb", "Samc"} {
		storagetest.CreateUser(t, db, n, "")
	}
	ctx := context.Background()

	got, err := svc.SearchUsers(ctx, me.ID, "  ", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.SearchUsers(ctx, me.ID, "sam", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.SearchUsers(ctx, me.ID, "sam", 500)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestGenerateWorkoutAndFeedback(t *testing.T) {
	db := storagetest.Open(t)
	userRepo := storage.NewGormUserRepository(db)
	svc := NewPlanService(userRepo, storage.NewGormWorkoutRepository(db))
	ctx := context.Background()

	u := storagetest.CreateUser(t, db, "Ana", "")
	require.NoError(t, db.Model(u).Update("workout_volume", "3-4").Error)

	w, err := svc.GenerateForUser(ctx, u.ID)
	require.NoError(t, err)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal(w.Plan, &plan))
	assert.Equal(t, planner.SplitUpperLower, plan.Split)
	assert.Equal(t, 4, plan.DaysPerWeek)
	assert.Len(t, plan.Week, planner.DaysInWeek)

	_, err = svc.GetWorkout(ctx, u.ID+1, w.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	_, err = svc.AddFeedback(ctx, u.ID, w.ID, FeedbackInput{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.AddFeedback(ctx, u.ID+1, w.ID, FeedbackInput{Rating: 4})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	fb, err := svc.AddFeedback(ctx, u.ID, w.ID, FeedbackInput{Rating: 4, Difficulty: "hard"})
	require.NoError(t, err)
	assert.NotZero(t, fb.ID)

	list, err := svc.ListWorkouts(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.GenerateForUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPreview(t *testing.T) {
	svc := NewPlanService(nil, nil)
	plan := svc.Preview(PlanPreviewInput{WorkoutVolume: "5-6", Goals: []string{"hypertrophy"}})
	assert.Equal(t, planner.SplitPPL, plan.Split)
	assert.Equal(t, 6, plan.DaysPerWeek)
}
