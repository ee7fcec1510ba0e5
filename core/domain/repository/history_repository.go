package repository

import (
	"context"

	"agari/core/domain/entity"
)

// HistoryRepository 计算记录仓储接口，按写入时间倒序读取
type HistoryRepository interface {
	// Append 写入一条记录，超过保留上限的旧记录被淘汰
	Append(ctx context.Context, entry *entity.HistoryEntry) error

	// List 最新的 limit 条记录，limit <= 0 时返回全部
	List(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)

	// EvictBeyond 只保留最新的 keep 条
	EvictBeyond(ctx context.Context, keep int) error

	// Clear 删除全部记录
	Clear(ctx context.Context) error
}
