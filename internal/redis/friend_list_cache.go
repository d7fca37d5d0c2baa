package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ironmind/internal/models"

	"github.com/redis/go-redis/v9"
)

const friendListKeyPrefix = "friends:uid:"

// FriendListCache 缓存每个用户的好友列表。
type FriendListCache interface {
	Get(ctx context.Context, userID uint) ([]models.FriendSummary, bool, error)
	Set(ctx context.Context, userID uint, friends []models.FriendSummary) error
	Invalidate(ctx context.Context, userIDs ...uint) error
}

type redisFriendListCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisFriendListCache 创建好友列表缓存，ttl 为每个条目的过期时间。
func NewRedisFriendListCache(client redis.UniversalClient, ttl time.Duration) FriendListCache {
	return &redisFriendListCache{client: client, ttl: ttl}
}

func friendListKey(userID uint) string {
	return fmt.Sprintf("%s%d", friendListKeyPrefix, userID)
}

// Get 返回缓存的列表；未命中时第二个返回值为 false。
func (c *redisFriendListCache) Get(ctx context.Context, userID uint) ([]models.FriendSummary, bool, error) {
	raw, err := c.client.Get(ctx, friendListKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("读取好友列表缓存失败: %w", err)
	}

	var friends []models.FriendSummary
	if err := json.Unmarshal(raw, &friends); err != nil {
		// 损坏的条目当作未命中，下一次 Set 会覆盖
		return nil, false, nil
	}
	return friends, true, nil
}

func (c *redisFriendListCache) Set(ctx context.Context, userID uint, friends []models.FriendSummary) error {
	raw, err := json.Marshal(friends)
	if err != nil {
		return fmt.Errorf("序列化好友列表失败: %w", err)
	}
	if err := c.client.Set(ctx, friendListKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入好友列表缓存失败: %w", err)
	}
	return nil
}

// Invalidate 删除给定用户的缓存条目。
func (c *redisFriendListCache) Invalidate(ctx context.Context, userIDs ...uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = friendListKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("清除好友列表缓存失败: %w", err)
	}
	return nil
}
