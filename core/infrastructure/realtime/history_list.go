package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"agari/common/database"
	"agari/common/log"
	"agari/core/domain/entity"
	"agari/core/domain/repository"
)

const historyListKey = "agari:history" // List: 最新的记录在表头

// Lua 脚本：原子性地写入并截断
// KEYS[1]: historyListKey
// ARGV[1]: 记录 JSON
// ARGV[2]: 保留条数
var pushAndTrimScript = `
redis.call('LPUSH', KEYS[1], ARGV[1])
redis.call('LTRIM', KEYS[1], 0, tonumber(ARGV[2]) - 1)
return redis.call('LLEN', KEYS[1])
`

// RedisHistoryRepository Redis List 实现的计算记录仓储
type RedisHistoryRepository struct {
	redis *database.RedisManager
	limit int
}

func NewRedisHistoryRepository(redis *database.RedisManager, limit int) (repository.HistoryRepository, error) {
	if limit <= 0 {
		return nil, repository.ErrInvalidLimit
	}
	return &RedisHistoryRepository{
		redis: redis,
		limit: limit,
	}, nil
}

func (r *RedisHistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("序列化计算记录失败: %w", err)
	}
	if _, err := r.redis.EvalScript(ctx, "history_push", pushAndTrimScript, []string{historyListKey}, string(data), r.limit); err != nil {
		log.Error("写入计算记录失败: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrRedis, err)
	}
	return nil
}

func (r *RedisHistoryRepository) List(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	raws, err := r.redis.LRange(ctx, historyListKey, 0, stop)
	if err != nil {
		log.Error("读取计算记录失败: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrRedis, err)
	}

	result := make([]*entity.HistoryEntry, 0, len(raws))
	for _, raw := range raws {
		var entry entity.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Warn("解析计算记录失败: %v", err)
			continue
		}
		result = append(result, &entry)
	}
	return result, nil
}

func (r *RedisHistoryRepository) EvictBeyond(ctx context.Context, keep int) error {
	if keep < 0 {
		return repository.ErrInvalidLimit
	}
	var err error
	if keep == 0 {
		err = r.redis.Del(ctx, historyListKey)
	} else {
		err = r.redis.LTrim(ctx, historyListKey, 0, int64(keep)-1)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrRedis, err)
	}
	return nil
}

func (r *RedisHistoryRepository) Clear(ctx context.Context) error {
	if err := r.redis.Del(ctx, historyListKey); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrRedis, err)
	}
	return nil
}
