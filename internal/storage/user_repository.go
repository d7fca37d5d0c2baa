package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ironmind/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser 表示邮箱或好友码违反唯一约束，由调用方区分是哪一个。
	ErrDuplicateUser = errors.New("duplicate user")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByFriendCode(ctx context.Context, code string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdateTheme(ctx context.Context, id uint, theme models.Theme) error
	SearchByName(ctx context.Context, query string, excludeUserID uint, limit int) ([]models.UserBasicInfo, error)
	GetMultipleBasicInfoByIDs(ctx context.Context, userIDs []uint) ([]models.UserBasicInfo, error)
}

// gormUserRepository implements UserRepository using GORM.
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based UserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create 插入用户；邮箱或好友码冲突时返回 ErrDuplicateUser。
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

// GetByFriendCode 按好友码精确查找用户。
func (r *gormUserRepository) GetByFriendCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("friend_code = ?", code).First(&user).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (r *gormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("检查邮箱失败: %w", err)
	}
	return count > 0, nil
}

// Update 保存用户的全部字段。
func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		return gorm.ErrMissingWhereClause
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdateTheme 直接更新主题字段，用户不存在时返回 ErrUserNotFound。
func (r *gormUserRepository) UpdateTheme(ctx context.Context, id uint, theme models.Theme) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("theme", theme)
	if result.Error != nil {
		return fmt.Errorf("更新主题失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchByName 按名字做大小写不敏感的模糊匹配，排除当前用户。
func (r *gormUserRepository) SearchByName(ctx context.Context, query string, excludeUserID uint, limit int) ([]models.UserBasicInfo, error) {
	infos := []models.UserBasicInfo{}
	searchTerm := "%" + strings.ToLower(query) + "%"

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "name", "friend_code").
		Where("LOWER(name) LIKE ? AND id <> ?", searchTerm, excludeUserID).
		Order("name").
		Limit(limit).
		Find(&infos).Error
	if err != nil {
		return nil, fmt.Errorf("搜索用户失败: %w", err)
	}
	return infos, nil
}

// GetMultipleBasicInfoByIDs retrieves minimal public user info for a list of user IDs.
func (r *gormUserRepository) GetMultipleBasicInfoByIDs(ctx context.Context, userIDs []uint) ([]models.UserBasicInfo, error) {
	infos := []models.UserBasicInfo{}
	if len(userIDs) == 0 {
		return infos, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "name", "friend_code", "profile_image_url").
		Where("id IN ?", userIDs).
		Find(&infos).Error
	if err != nil {
		return nil, fmt.Errorf("批量查询用户失败: %w", err)
	}
	return infos, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
