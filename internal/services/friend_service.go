package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"ironmind/internal/friendcode"
	"ironmind/internal/logger"
	"ironmind/internal/models"
	appRedis "ironmind/internal/redis"
	"ironmind/internal/storage"
)

// EventPublisher 发布关系变更事件，由 kafka.RelationshipEventPublisher 实现。
type EventPublisher interface {
	Publish(ctx context.Context, event models.RelationshipEvent) error
}

// FriendService 定义好友关系相关的业务操作。
type FriendService interface {
	SendRequest(ctx context.Context, requesterID uint, rawFriendCode string) (*models.Relationship, error)
	AcceptRequest(ctx context.Context, userID, otherUserID uint) error
	DeclineRequest(ctx context.Context, userID, otherUserID uint) error
	RemoveFriend(ctx context.Context, userID, otherUserID uint) error
	BlockUser(ctx context.Context, userID, otherUserID uint) error
	UnblockUser(ctx context.Context, userID, otherUserID uint) error
	ListIncoming(ctx context.Context, userID uint) ([]models.FriendRequestSummary, error)
	ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error)
}

type friendService struct {
	relRepo   storage.RelationshipRepository
	userRepo  storage.UserRepository
	cache     appRedis.FriendListCache
	publisher EventPublisher
}

// NewFriendService 创建 FriendService。cache 和 publisher 可以为 nil。
func NewFriendService(
	relRepo storage.RelationshipRepository,
	userRepo storage.UserRepository,
	cache appRedis.FriendListCache,
	publisher EventPublisher,
) FriendService {
	return &friendService{
		relRepo:   relRepo,
		userRepo:  userRepo,
		cache:     cache,
		publisher: publisher,
	}
}

// SendRequest 通过好友码向另一位用户发送好友请求。
func (s *friendService) SendRequest(ctx context.Context, requesterID uint, rawFriendCode string) (*models.Relationship, error) {
	code := friendcode.Normalize(rawFriendCode)
	if !friendcode.Valid(code) {
		return nil, ErrInvalidFriendCode
	}

	target, err := s.userRepo.GetByFriendCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrFriendCodeNotFound
		}
		return nil, fmt.Errorf("查找好友码失败: %w", err)
	}
	if target.ID == requesterID {
		return nil, ErrCannotAddSelf
	}

	rel, err := s.relRepo.CreatePending(ctx, requesterID, target.ID)
	if err != nil {
		if errors.Is(err, storage.ErrRelationshipExists) {
			return nil, s.conflictFor(ctx, requesterID, target.ID)
		}
		return nil, fmt.Errorf("创建好友请求失败: %w", err)
	}

	s.publish(ctx, models.EventFriendRequestSent, requesterID, target.ID)
	return rel, nil
}

// conflictFor 根据已有记录的状态选择冲突消息。
// 记录可能在冲突之后被并发删除，此时退回到通用的请求已存在。
func (s *friendService) conflictFor(ctx context.Context, a, b uint) error {
	pair, err := models.NewPair(a, b)
	if err != nil {
		return ErrFriendRequestExists
	}
	existing, err := s.relRepo.Get(ctx, pair)
	if err != nil {
		if !errors.Is(err, storage.ErrRelationshipNotFound) {
			logger.Warn("读取冲突关系记录失败", zap.String("pair", pair.String()), zap.Error(err))
		}
		return ErrFriendRequestExists
	}
	switch existing.Status {
	case models.RelationshipAccepted:
		return ErrAlreadyFriends
	case models.RelationshipBlocked:
		return ErrRequestBlocked
	default:
		return ErrFriendRequestExists
	}
}

// AcceptRequest 接受 otherUserID 发给 userID 的请求。
func (s *friendService) AcceptRequest(ctx context.Context, userID, otherUserID uint) error {
	pair, err := models.NewPair(userID, otherUserID)
	if err != nil {
		return ErrInvalidUser
	}
	if err := s.relRepo.Accept(ctx, pair, userID); err != nil {
		if errors.Is(err, storage.ErrRelationshipNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("接受好友请求失败: %w", err)
	}

	s.invalidateFriends(ctx, userID, otherUserID)
	s.publish(ctx, models.EventFriendRequestAccepted, userID, otherUserID)
	return nil
}

// DeclineRequest 拒绝请求，记录被删除，双方之后可以重新发起。
func (s *friendService) DeclineRequest(ctx context.Context, userID, otherUserID uint) error {
	pair, err := models.NewPair(userID, otherUserID)
	if err != nil {
		return ErrInvalidUser
	}
	if err := s.relRepo.Decline(ctx, pair, userID); err != nil {
		if errors.Is(err, storage.ErrRelationshipNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("拒绝好友请求失败: %w", err)
	}

	s.publish(ctx, models.EventFriendRequestDeclined, userID, otherUserID)
	return nil
}

func (s *friendService) RemoveFriend(ctx context.Context, userID, otherUserID uint) error {
	pair, err := models.NewPair(userID, otherUserID)
	if err != nil {
		return ErrInvalidUser
	}
	if err := s.relRepo.Remove(ctx, pair); err != nil {
		if errors.Is(err, storage.ErrRelationshipNotFound) {
			return ErrFriendshipNotFound
		}
		return fmt.Errorf("删除好友失败: %w", err)
	}

	s.invalidateFriends(ctx, userID, otherUserID)
	s.publish(ctx, models.EventFriendRemoved, userID, otherUserID)
	return nil
}

// BlockUser 屏蔽对方，覆盖两人之间已有的任何关系。
func (s *friendService) BlockUser(ctx context.Context, userID, otherUserID uint) error {
	pair, err := models.NewPair(userID, otherUserID)
	if err != nil {
		return ErrInvalidUser
	}
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if err := s.relRepo.Block(ctx, pair, userID); err != nil {
		// 对方已经屏蔽了当前用户，记录保持原样
		if errors.Is(err, storage.ErrRelationshipExists) {
			return ErrRequestBlocked
		}
		return fmt.Errorf("屏蔽用户失败: %w", err)
	}

	s.invalidateFriends(ctx, userID, otherUserID)
	s.publish(ctx, models.EventUserBlocked, userID, otherUserID)
	return nil
}

// UnblockUser 只有屏蔽发起人可以解除。
func (s *friendService) UnblockUser(ctx context.Context, userID, otherUserID uint) error {
	pair, err := models.NewPair(userID, otherUserID)
	if err != nil {
		return ErrInvalidUser
	}
	if err := s.relRepo.Unblock(ctx, pair, userID); err != nil {
		if errors.Is(err, storage.ErrRelationshipNotFound) {
			return ErrBlockNotFound
		}
		return fmt.Errorf("解除屏蔽失败: %w", err)
	}

	s.publish(ctx, models.EventUserUnblocked, userID, otherUserID)
	return nil
}

// ListIncoming 返回等待 userID 处理的请求，按发起人名字排序。
func (s *friendService) ListIncoming(ctx context.Context, userID uint) ([]models.FriendRequestSummary, error) {
	rels, err := s.relRepo.ListPendingIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos, err := s.basicInfoFor(ctx, userID, rels)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.FriendRequestSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, models.FriendRequestSummary{
			ID:         info.ID,
			Name:       info.Name,
			FriendCode: deref(info.FriendCode),
		})
	}
	return summaries, nil
}

// ListFriends 返回好友列表，按名字排序，名字相同按 id。优先读缓存。
func (s *friendService) ListFriends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, userID)
		if err != nil {
			logger.Warn("读取好友列表缓存失败", zap.Uint("userID", userID), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	rels, err := s.relRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos, err := s.basicInfoFor(ctx, userID, rels)
	if err != nil {
		return nil, err
	}

	friends := make([]models.FriendSummary, 0, len(infos))
	for _, info := range infos {
		friends = append(friends, models.FriendSummary{
			ID:              info.ID,
			Name:            info.Name,
			FriendCode:      deref(info.FriendCode),
			ProfileImageURL: info.ProfileImageURL,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, friends); err != nil {
			logger.Warn("写入好友列表缓存失败", zap.Uint("userID", userID), zap.Error(err))
		}
	}
	return friends, nil
}

// basicInfoFor 批量读取关系另一方的用户信息，并按名字和 id 排序。
// 已经不存在的用户会被跳过。
func (s *friendService) basicInfoFor(ctx context.Context, userID uint, rels []models.Relationship) ([]models.UserBasicInfo, error) {
	if len(rels) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(rels))
	for i := range rels {
		ids = append(ids, rels[i].OtherUser(userID))
	}

	infos, err := s.userRepo.GetMultipleBasicInfoByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Name != infos[j].Name {
			return infos[i].Name < infos[j].Name
		}
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

func (s *friendService) invalidateFriends(ctx context.Context, userIDs ...uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
		logger.Warn("清除好友列表缓存失败", zap.Uints("userIDs", userIDs), zap.Error(err))
	}
}

// publish 尽力发布事件；状态变更已经提交，发布失败只记录日志。
func (s *friendService) publish(ctx context.Context, eventType models.RelationshipEventType, actorID, targetID uint) {
	if s.publisher == nil {
		return
	}
	event := models.RelationshipEvent{
		Type:      eventType,
		ActorID:   actorID,
		TargetID:  targetID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("发布关系事件失败",
			zap.String("type", string(eventType)),
			zap.Uint("actor", actorID),
			zap.Uint("target", targetID),
			zap.Error(err))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
