package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ironmind/internal/models"
	"ironmind/internal/planner"
	"ironmind/internal/storage"
)

const defaultWorkoutListLimit = 20

// PlanPreviewInput 用于在不落库的情况下预览计划。
type PlanPreviewInput struct {
	ExperienceLevel string   `json:"experienceLevel"`
	WorkoutVolume   string   `json:"workoutVolume"`
	Goals           []string `json:"goals"`
	Equipment       string   `json:"equipment"`
}

// FeedbackInput 是对某次计划的评价。
type FeedbackInput struct {
	Rating     int    `json:"rating"`
	Difficulty string `json:"difficulty"`
	Notes      string `json:"notes"`
}

// PlanService 生成训练计划并管理保存下来的计划。
type PlanService interface {
	Preview(in PlanPreviewInput) planner.Plan
	GenerateForUser(ctx context.Context, userID uint) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID uint, limit int) ([]models.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID uint) (*models.Workout, error)
	AddFeedback(ctx context.Context, userID, workoutID uint, in FeedbackInput) (*models.Feedback, error)
}

type planService struct {
	userRepo    storage.UserRepository
	workoutRepo storage.WorkoutRepository
}

func NewPlanService(userRepo storage.UserRepository, workoutRepo storage.WorkoutRepository) PlanService {
	return &planService{userRepo: userRepo, workoutRepo: workoutRepo}
}

func (s *planService) Preview(in PlanPreviewInput) planner.Plan {
	return planner.GeneratePlan(in.ExperienceLevel, in.WorkoutVolume, in.Goals, in.Equipment)
}

// GenerateForUser 根据用户资料生成计划并保存。
func (s *planService) GenerateForUser(ctx context.Context, userID uint) (*models.Workout, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan := planner.GeneratePlan(user.ExperienceLevel, user.WorkoutVolume, user.Goals, user.Equipment)
	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("序列化训练计划失败: %w", err)
	}

	workout := &models.Workout{UserID: userID, Plan: raw}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *planService) ListWorkouts(ctx context.Context, userID uint, limit int) ([]models.Workout, error) {
	if limit <= 0 {
		limit = defaultWorkoutListLimit
	}
	return s.workoutRepo.ListForUser(ctx, userID, limit)
}

func (s *planService) GetWorkout(ctx context.Context, userID, workoutID uint) (*models.Workout, error) {
	workout, err := s.workoutRepo.GetForUser(ctx, userID, workoutID)
	if err != nil {
		if errors.Is(err, storage.ErrWorkoutNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// AddFeedback 只允许计划的所有者评价。
func (s *planService) AddFeedback(ctx context.Context, userID, workoutID uint, in FeedbackInput) (*models.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.GetWorkout(ctx, userID, workoutID); err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		WorkoutID:  workoutID,
		UserID:     userID,
		Rating:     in.Rating,
		Difficulty: in.Difficulty,
		Notes:      in.Notes,
	}
	if err := s.workoutRepo.AddFeedback(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}
