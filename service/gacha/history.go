package gacha

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"epe_gacha/models"

	"github.com/redis/go-redis/v9"
)

// historyLimit 每个学员缓存的近期记录条数，与前台展示条数一致
const historyLimit = 10

// RecordCache 近期抽奖记录缓存
type RecordCache interface {
	// Push 把新记录推到学员近期记录的头部
	Push(ctx context.Context, record *models.DrawRecord) error
	// Recent 读取学员的近期记录，从新到旧
	Recent(ctx context.Context, userName string, limit int) ([]models.DrawRecord, error)
	// Invalidate 丢弃学员的缓存记录，记录状态变化后让查询回源
	Invalidate(ctx context.Context, userName string) error
}

// HistoryCache 基于Redis的近期抽奖记录缓存
// 前台抽奖后的历史面板走缓存，避免每次抽完都打一次数据库；
// 缓存是可选的，任何失败都降级回数据库查询
type HistoryCache struct {
	RDB *redis.Client
}

// NewHistoryCache 创建缓存，client为nil时返回nil（不启用）
func NewHistoryCache(client *redis.Client) *HistoryCache {
	if client == nil {
		return nil
	}
	return &HistoryCache{RDB: client}
}

func historyKey(userName string) string {
	return "gacha:history:" + userName
}

// Push 把一条新记录推到学员的近期记录头部并裁剪长度
func (h *HistoryCache) Push(ctx context.Context, record *models.DrawRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化抽奖记录失败: %w", err)
	}

	key := historyKey(record.UserName)
	pipe := h.RDB.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, historyLimit-1)
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入记录缓存失败: %w", err)
	}
	return nil
}

// Recent 读取学员的近期记录，缓存无数据时返回空切片
func (h *HistoryCache) Recent(ctx context.Context, userName string, limit int) ([]models.DrawRecord, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	items, err := h.RDB.LRange(ctx, historyKey(userName), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取记录缓存失败: %w", err)
	}

	records := make([]models.DrawRecord, 0, len(items))
	for _, item := range items {
		var record models.DrawRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			// 脏数据跳过，不影响其余条目
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Invalidate 删除学员的缓存键，核销后记录状态已变
func (h *HistoryCache) Invalidate(ctx context.Context, userName string) error {
	if err := h.RDB.Del(ctx, historyKey(userName)).Err(); err != nil {
		return fmt.Errorf("删除记录缓存失败: %w", err)
	}
	return nil
}
