// Package memory 提供生命周期仓储契约的内存实现。
// 适用于测试、示例与单机部署；列表操作使用 pagination.FromSlice 开窗。
//
// 并发语义与 SQL 实现对齐：
//   - Persist 以存储中的版本号做乐观检查；
//   - MarkDeleted / ClearDeleted 在锁内对删除标记做 test-and-set，
//     并发竞争只有一方得到 affected=1。
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorecord/domain"
	"gorecord/domain/record"
	"gorecord/pagination"
)

// Entity 仓储可管理的实体约束：实现生命周期接口并暴露嵌入的 Record。
type Entity interface {
	domain.IRecord[int64]
	record.Carrier
}

// Repo 内存仓储。存储内部保存实体副本，读写均经过 clone，
// 调用方持有的实例与存储状态互不混叠，乐观锁因此可被真实检验。
type Repo[T Entity] struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]T
	clone func(T) T
}

// NewRepo 创建内存仓储。clone 负责深复制实体（通常为值复制后取址）。
func NewRepo[T Entity](clone func(T) T) *Repo[T] {
	return &Repo[T]{
		items: make(map[int64]T),
		clone: clone,
	}
}

func (r *Repo[T]) FindActive(ctx context.Context, id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var zero T
	stored, ok := r.items[id]
	if !ok || stored.IsDeleted() {
		return zero, domain.NewNotFoundError(id)
	}
	return r.clone(stored), nil
}

func (r *Repo[T]) FindAny(ctx context.Context, id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var zero T
	stored, ok := r.items[id]
	if !ok {
		return zero, domain.NewNotFoundError(id)
	}
	return r.clone(stored), nil
}

func (r *Repo[T]) ListActive(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.list(req, func(e T) bool { return !e.IsDeleted() }), nil
}

func (r *Repo[T]) ListDeleted(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.list(req, func(e T) bool { return e.IsDeleted() }), nil
}

func (r *Repo[T]) ListAll(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.list(req, func(T) bool { return true }), nil
}

func (r *Repo[T]) list(req pagination.Request, match func(T) bool) pagination.Page[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]T, 0, len(r.items))
	for _, stored := range r.items {
		if match(stored) {
			all = append(all, stored)
		}
	}
	// 按 ID 排序保证分页结果确定
	sort.Slice(all, func(i, j int) bool { return all[i].GetID() < all[j].GetID() })

	page := pagination.FromSlice(all, req)
	content := make([]T, len(page.Content))
	for i, stored := range page.Content {
		content[i] = r.clone(stored)
	}
	page.Content = content
	return page
}

func (r *Repo[T]) Persist(ctx context.Context, e T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T

	if e.IsNew() {
		r.seq++
		stored := r.clone(e)
		meta := stored.Meta()
		meta.ID = r.seq
		meta.Version = 0
		r.items[meta.ID] = stored
		return r.clone(stored), nil
	}

	current, ok := r.items[e.GetID()]
	if !ok {
		return zero, domain.NewNotFoundError(e.GetID())
	}
	if current.GetVersion() != e.GetVersion() {
		return zero, domain.NewConcurrencyConflictError(e.GetID())
	}

	stored := r.clone(e)
	meta := stored.Meta()
	meta.Version = current.GetVersion() + 1
	// 创建信息与删除标记以存储中的值为准
	meta.CreatedAt = current.Meta().CreatedAt
	meta.CreatedBy = current.Meta().CreatedBy
	meta.DeletedAt = current.Meta().DeletedAt
	meta.DeletedBy = current.Meta().DeletedBy
	r.items[meta.ID] = stored
	return r.clone(stored), nil
}

func (r *Repo[T]) MarkDeleted(ctx context.Context, id int64, by string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok || stored.IsDeleted() {
		return 0, nil
	}
	meta := stored.Meta()
	deletedAt := at
	deletedBy := by
	meta.DeletedAt = &deletedAt
	meta.DeletedBy = &deletedBy
	meta.Version++
	return 1, nil
}

func (r *Repo[T]) ClearDeleted(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok || !stored.IsDeleted() {
		return 0, nil
	}
	meta := stored.Meta()
	meta.DeletedAt = nil
	meta.DeletedBy = nil
	meta.Version++
	return 1, nil
}

func (r *Repo[T]) EraseAny(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *Repo[T]) ExistsActive(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	return ok && !stored.IsDeleted(), nil
}

func (r *Repo[T]) CountActive(ctx context.Context) (int64, error) {
	return r.count(func(e T) bool { return !e.IsDeleted() }), nil
}

func (r *Repo[T]) CountDeleted(ctx context.Context) (int64, error) {
	return r.count(func(e T) bool { return e.IsDeleted() }), nil
}

func (r *Repo[T]) count(match func(T) bool) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, stored := range r.items {
		if match(stored) {
			n++
		}
	}
	return n
}
