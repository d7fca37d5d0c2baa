package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ironmind/internal/models"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// WorkoutRepository 保存生成的训练计划及其反馈。
type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetForUser(ctx context.Context, userID, workoutID uint) (*models.Workout, error)
	ListForUser(ctx context.Context, userID uint, limit int) ([]models.Workout, error)
	AddFeedback(ctx context.Context, feedback *models.Feedback) error
}

type gormWorkoutRepository struct {
	db *gorm.DB
}

func NewGormWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return fmt.Errorf("保存训练计划失败: %w", err)
	}
	return nil
}

// GetForUser 只返回属于 userID 的计划，其他人的计划视为不存在。
func (r *gormWorkoutRepository) GetForUser(ctx context.Context, userID, workoutID uint) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", workoutID, userID).
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("查询训练计划失败: %w", err)
	}
	return &workout, nil
}

// ListForUser 按创建时间倒序返回最近的计划。
func (r *gormWorkoutRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Workout, error) {
	workouts := []models.Workout{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&workouts).Error
	if err != nil {
		return nil, fmt.Errorf("查询训练计划失败: %w", err)
	}
	return workouts, nil
}

func (r *gormWorkoutRepository) AddFeedback(ctx context.Context, feedback *models.Feedback) error {
	if err := r.db.WithContext(ctx).Omit("Workout").Create(feedback).Error; err != nil {
		return fmt.Errorf("保存反馈失败: %w", err)
	}
	return nil
}
