package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ironmind/internal/models"
)

var (
	// ErrRelationshipExists 表示该组合已有一行关系记录，无论其状态如何。
	ErrRelationshipExists = errors.New("relationship already exists")
	// ErrRelationshipNotFound 表示没有满足操作前置条件的记录。
	// 不存在、状态不符、操作者是发起人三种情况不做区分。
	ErrRelationshipNotFound = errors.New("relationship not found")
)

// RelationshipRepository 管理规范化的用户关系表。
// 所有写操作都是单条条件语句，并发安全依赖 (user_low, user_high) 唯一索引。
type RelationshipRepository interface {
	CreatePending(ctx context.Context, requesterID, targetID uint) (*models.Relationship, error)
	Get(ctx context.Context, pair models.Pair) (*models.Relationship, error)
	Accept(ctx context.Context, pair models.Pair, actingUserID uint) error
	Decline(ctx context.Context, pair models.Pair, actingUserID uint) error
	Remove(ctx context.Context, pair models.Pair) error
	Block(ctx context.Context, pair models.Pair, actingUserID uint) error
	Unblock(ctx context.Context, pair models.Pair, actingUserID uint) error
	ListPendingIncoming(ctx context.Context, userID uint) ([]models.Relationship, error)
	ListAccepted(ctx context.Context, userID uint) ([]models.Relationship, error)
}

type gormRelationshipRepository struct {
	db *gorm.DB
}

// NewGormRelationshipRepository creates a new GORM-based RelationshipRepository.
func NewGormRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &gormRelationshipRepository{db: db}
}

// CreatePending 插入一条 pending 记录，发起人为 requesterID。
func (r *gormRelationshipRepository) CreatePending(ctx context.Context, requesterID, targetID uint) (*models.Relationship, error) {
	pair, err := models.NewPair(requesterID, targetID)
	if err != nil {
		return nil, err
	}

	rel := &models.Relationship{
		UserLow:     pair.Low(),
		UserHigh:    pair.High(),
		InitiatedBy: requesterID,
		Status:      models.RelationshipPending,
	}
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrRelationshipExists
		}
		return nil, fmt.Errorf("创建关系记录失败: %w", err)
	}
	return rel, nil
}

// Get 读取组合对应的记录。
func (r *gormRelationshipRepository) Get(ctx context.Context, pair models.Pair) (*models.Relationship, error) {
	if pair.IsZero() {
		return nil, models.ErrInvalidPair
	}
	var rel models.Relationship
	err := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ?", pair.Low(), pair.High()).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("查询关系记录失败: %w", err)
	}
	return &rel, nil
}

// Accept 仅在记录为 pending 且发起人不是 actingUserID 时更新为 accepted。
func (r *gormRelationshipRepository) Accept(ctx context.Context, pair models.Pair, actingUserID uint) error {
	if pair.IsZero() {
		return models.ErrInvalidPair
	}
	result := r.db.WithContext(ctx).
		Model(&models.Relationship{}).
		Where("user_low = ? AND user_high = ? AND status = ? AND initiated_by <> ?",
			pair.Low(), pair.High(), models.RelationshipPending, actingUserID).
		Update("status", models.RelationshipAccepted)
	return affectedOrNotFound(result, "接受好友请求失败")
}

// Decline 以与 Accept 相同的条件删除 pending 记录。
func (r *gormRelationshipRepository) Decline(ctx context.Context, pair models.Pair, actingUserID uint) error {
	if pair.IsZero() {
		return models.ErrInvalidPair
	}
	result := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ? AND status = ? AND initiated_by <> ?",
			pair.Low(), pair.High(), models.RelationshipPending, actingUserID).
		Delete(&models.Relationship{})
	return affectedOrNotFound(result, "拒绝好友请求失败")
}

// Remove 删除 accepted 记录，任一方都可以执行。
func (r *gormRelationshipRepository) Remove(ctx context.Context, pair models.Pair) error {
	if pair.IsZero() {
		return models.ErrInvalidPair
	}
	result := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ? AND status = ?",
			pair.Low(), pair.High(), models.RelationshipAccepted).
		Delete(&models.Relationship{})
	return affectedOrNotFound(result, "删除好友失败")
}

// Block 将组合置为 blocked，覆盖 pending 或 accepted 记录。
// 已经被屏蔽的记录保持不变：actingUserID 本人屏蔽的视为成功，
// 被对方屏蔽时返回 ErrRelationshipExists。
func (r *gormRelationshipRepository) Block(ctx context.Context, pair models.Pair, actingUserID uint) error {
	if pair.IsZero() || !pair.Contains(actingUserID) {
		return models.ErrInvalidPair
	}
	rel := &models.Relationship{
		UserLow:     pair.Low(),
		UserHigh:    pair.High(),
		InitiatedBy: actingUserID,
		Status:      models.RelationshipBlocked,
	}
	result := r.db.WithContext(ctx).Clauses(blockUpsert(r.db.Dialector.Name())).Create(rel)
	if result.Error != nil {
		return fmt.Errorf("屏蔽用户失败: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	existing, err := r.Get(ctx, pair)
	if err != nil {
		return err
	}
	if existing.Status == models.RelationshipBlocked && existing.InitiatedBy == actingUserID {
		return nil
	}
	return ErrRelationshipExists
}

// blockUpsert 只更新尚未被屏蔽的记录。
// mysql 不支持 ON DUPLICATE KEY UPDATE ... WHERE，改用 IF 保留原值；
// 赋值从左到右执行，所以 initiated_by 必须在 status 之前。
func blockUpsert(dialect string) clause.OnConflict {
	columns := []clause.Column{{Name: "user_low"}, {Name: "user_high"}}
	if dialect == "mysql" {
		keep := func(col string) clause.Assignment {
			expr := fmt.Sprintf("IF(status = ?, %s, VALUES(%s))", col, col)
			return clause.Assignment{
				Column: clause.Column{Name: col},
				Value:  gorm.Expr(expr, models.RelationshipBlocked),
			}
		}
		return clause.OnConflict{
			Columns:   columns,
			DoUpdates: clause.Set{keep("initiated_by"), keep("updated_at"), keep("status")},
		}
	}
	return clause.OnConflict{
		Columns:   columns,
		DoUpdates: clause.AssignmentColumns([]string{"initiated_by", "status", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "relationships.status <> ?", Vars: []interface{}{models.RelationshipBlocked}},
		}},
	}
}

// Unblock 只允许屏蔽的发起人解除屏蔽。
func (r *gormRelationshipRepository) Unblock(ctx context.Context, pair models.Pair, actingUserID uint) error {
	if pair.IsZero() {
		return models.ErrInvalidPair
	}
	result := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ? AND status = ? AND initiated_by = ?",
			pair.Low(), pair.High(), models.RelationshipBlocked, actingUserID).
		Delete(&models.Relationship{})
	return affectedOrNotFound(result, "解除屏蔽失败")
}

// ListPendingIncoming 返回等待 userID 处理的请求。
func (r *gormRelationshipRepository) ListPendingIncoming(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var rels []models.Relationship
	err := r.db.WithContext(ctx).
		Where("(user_low = ? OR user_high = ?) AND status = ? AND initiated_by <> ?",
			userID, userID, models.RelationshipPending, userID).
		Order("id").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("查询待处理请求失败: %w", err)
	}
	return rels, nil
}

// ListAccepted 返回 userID 的全部好友关系。
func (r *gormRelationshipRepository) ListAccepted(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var rels []models.Relationship
	err := r.db.WithContext(ctx).
		Where("(user_low = ? OR user_high = ?) AND status = ?",
			userID, userID, models.RelationshipAccepted).
		Order("id").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("查询好友关系失败: %w", err)
	}
	return rels, nil
}

func affectedOrNotFound(result *gorm.DB, op string) error {
	if result.Error != nil {
		return fmt.Errorf("%s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRelationshipNotFound
	}
	return nil
}
