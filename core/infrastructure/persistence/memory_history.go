package persistence

import (
	"context"
	"sync"

	"agari/core/domain/entity"
	"agari/core/domain/repository"
)

// MemoryHistoryRepository 进程内记录，按写入顺序保存，重启后丢失
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries []*entity.HistoryEntry // 旧 -> 新
	limit   int
}

func NewMemoryHistoryRepository(limit int) (repository.HistoryRepository, error) {
	if limit <= 0 {
		return nil, repository.ErrInvalidLimit
	}
	return &MemoryHistoryRepository{
		entries: make([]*entity.HistoryEntry, 0, limit),
		limit:   limit,
	}, nil
}

func (r *MemoryHistoryRepository) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return r.EvictBeyond(ctx, r.limit)
}

func (r *MemoryHistoryRepository) List(_ context.Context, limit int) ([]*entity.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*entity.HistoryEntry, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *MemoryHistoryRepository) EvictBeyond(_ context.Context, keep int) error {
	if keep < 0 {
		return repository.ErrInvalidLimit
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if over := len(r.entries) - keep; over > 0 {
		// 拷贝一份，避免底层数组无限增长
		r.entries = append(make([]*entity.HistoryEntry, 0, r.limit), r.entries[over:]...)
	}
	return nil
}

func (r *MemoryHistoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	r.entries = r.entries[:0]
	r.mu.Unlock()
	return nil
}
