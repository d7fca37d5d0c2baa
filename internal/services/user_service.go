package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ironmind/internal/logger"
	"ironmind/internal/models"
	appRedis "ironmind/internal/redis"
	"ironmind/internal/storage"
)

const (
	DefaultSearchLimit = 8
	MaxSearchLimit     = 20
)

// ProfileUpdate 中为 nil 的字段保持不变。
type ProfileUpdate struct {
	Name            *string   `json:"name"`
	Age             *int      `json:"age"`
	Height          *string   `json:"height"`
	Weight          *float64  `json:"weight"`
	ExperienceLevel *string   `json:"experienceLevel"`
	WorkoutVolume   *string   `json:"workoutVolume"`
	Goals           *[]string `json:"goals"`
	Equipment       *string   `json:"equipment"`
	ProfileImageURL *string   `json:"profile_image_url"`
}

// UserService 定义了用户相关服务的接口。
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error)
	UpdateTheme(ctx context.Context, userID uint, theme string) error
	SearchUsers(ctx context.Context, currentUserID uint, query string, limit int) ([]models.UserBasicInfo, error)
}

type userService struct {
	userRepo storage.UserRepository
	relRepo  storage.RelationshipRepository
	cache    appRedis.FriendListCache
}

// NewUserService 创建一个新的 UserService 实例。cache 可以为 nil。
// 好友列表缓存中含有名字和头像，资料变更后需要清除所有好友的缓存。
func NewUserService(userRepo storage.UserRepository, relRepo storage.RelationshipRepository, cache appRedis.FriendListCache) UserService {
	return &userService{userRepo: userRepo, relRepo: relRepo, cache: cache}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("获取用户 %d 失败: %w", userID, err)
	}
	return user, nil
}

// UpdateProfile 按注册时相同的规则校验后保存。邮箱和好友码不可修改。
func (s *userService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, invalidField("name", "Name is required")
		}
		user.Name = name
	}
	if update.Age != nil {
		if *update.Age < 13 || *update.Age > 120 {
			return nil, invalidField("age", "Age must be between 13 and 120")
		}
		user.Age = *update.Age
	}
	if update.Weight != nil {
		if *update.Weight < 50 || *update.Weight > 500 {
			return nil, invalidField("weight", "Weight must be between 50 and 500")
		}
		user.Weight = *update.Weight
	}
	if update.Goals != nil {
		if len(*update.Goals) == 0 {
			return nil, invalidField("goals", "Select at least one goal")
		}
		user.Goals = *update.Goals
	}
	if update.Height != nil {
		user.Height = *update.Height
	}
	if update.ExperienceLevel != nil {
		user.ExperienceLevel = *update.ExperienceLevel
	}
	if update.WorkoutVolume != nil {
		user.WorkoutVolume = *update.WorkoutVolume
	}
	if update.Equipment != nil {
		user.Equipment = *update.Equipment
	}
	if update.ProfileImageURL != nil {
		user.ProfileImageURL = update.ProfileImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("更新用户资料失败: %w", err)
	}
	if update.Name != nil || update.ProfileImageURL != nil {
		s.invalidateFriendLists(ctx, userID)
	}
	return user, nil
}

// invalidateFriendLists 清除 userID 所有好友的列表缓存，失败只记录日志。
func (s *userService) invalidateFriendLists(ctx context.Context, userID uint) {
	if s.cache == nil || s.relRepo == nil {
		return
	}
	rels, err := s.relRepo.ListAccepted(ctx, userID)
	if err != nil {
		logger.Warn("查询好友以清除缓存失败", zap.Uint("userID", userID), zap.Error(err))
		return
	}
	if len(rels) == 0 {
		return
	}
	ids := make([]uint, 0, len(rels))
	for i := range rels {
		ids = append(ids, rels[i].OtherUser(userID))
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		logger.Warn("清除好友列表缓存失败", zap.Uints("userIDs", ids), zap.Error(err))
	}
}

func (s *userService) UpdateTheme(ctx context.Context, userID uint, theme string) error {
	t := models.Theme(strings.ToLower(strings.TrimSpace(theme)))
	if t != models.ThemeLight && t != models.ThemeDark {
		return ErrInvalidTheme
	}
	if err := s.userRepo.UpdateTheme(ctx, userID, t); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// SearchUsers 按名字搜索其他用户；空查询返回空列表。
func (s *userService) SearchUsers(ctx context.Context, currentUserID uint, query string, limit int) ([]models.UserBasicInfo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserBasicInfo{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return s.userRepo.SearchByName(ctx, query, currentUserID, limit)
}
