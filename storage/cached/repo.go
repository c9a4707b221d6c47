// Package cached 提供读穿透缓存仓储装饰器，
// 包装任意生命周期仓储并缓存活跃记录的按 ID 读取。
package cached

import (
	"context"
	"time"

	"gorecord/cache"
	"gorecord/domain"
	"gorecord/domain/lifecycle"
	"gorecord/domain/record"
	"gorecord/pagination"
)

// Entity 可被缓存仓储管理的实体约束。
type Entity interface {
	domain.IRecord[int64]
	record.Carrier
}

// Repo 读穿透缓存仓储。
//
// 只缓存 FindActive 的结果；任何变更操作都会使对应条目失效。
// 缓存读写均经过 clone，调用方修改返回值不会污染缓存。
type Repo[T Entity] struct {
	inner lifecycle.IRepository[T, int64]
	cache *cache.Cache[int64, T]
	clone func(T) T
}

// Config 缓存仓储配置。
type Config struct {
	// Name 缓存名称。
	Name string

	// MaxEntries 缓存容量，0 表示不限。
	MaxEntries int

	// TTL 缓存过期时间，0 表示永不过期。
	TTL time.Duration
}

// NewRepo 包装 inner 仓储。clone 必须返回独立副本。
func NewRepo[T Entity](inner lifecycle.IRepository[T, int64], clone func(T) T, config Config) *Repo[T] {
	return &Repo[T]{
		inner: inner,
		cache: cache.New[int64, T](cache.Config{
			Name:       config.Name,
			MaxEntries: config.MaxEntries,
			TTL:        config.TTL,
		}),
		clone: clone,
	}
}

// CacheStats 返回底层缓存统计。
func (r *Repo[T]) CacheStats() cache.Stats {
	return r.cache.Stats()
}

func (r *Repo[T]) FindActive(ctx context.Context, id int64) (T, error) {
	if hit, found := r.cache.Get(id); found {
		return r.clone(hit), nil
	}

	entity, err := r.inner.FindActive(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	r.cache.Set(id, r.clone(entity))
	return entity, nil
}

// FindAny 不走缓存：已删除记录的读取频率低，缓存活跃视图即可。
func (r *Repo[T]) FindAny(ctx context.Context, id int64) (T, error) {
	return r.inner.FindAny(ctx, id)
}

func (r *Repo[T]) ListActive(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.inner.ListActive(ctx, req)
}

func (r *Repo[T]) ListDeleted(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.inner.ListDeleted(ctx, req)
}

func (r *Repo[T]) ListAll(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.inner.ListAll(ctx, req)
}

func (r *Repo[T]) Persist(ctx context.Context, entity T) (T, error) {
	saved, err := r.inner.Persist(ctx, entity)
	if err != nil {
		return saved, err
	}
	r.cache.Delete(saved.GetID())
	return saved, nil
}

func (r *Repo[T]) MarkDeleted(ctx context.Context, id int64, by string, at time.Time) (int64, error) {
	affected, err := r.inner.MarkDeleted(ctx, id, by, at)
	if affected > 0 {
		r.cache.Delete(id)
	}
	return affected, err
}

func (r *Repo[T]) ClearDeleted(ctx context.Context, id int64) (int64, error) {
	affected, err := r.inner.ClearDeleted(ctx, id)
	if affected > 0 {
		r.cache.Delete(id)
	}
	return affected, err
}

func (r *Repo[T]) EraseAny(ctx context.Context, id int64) error {
	if err := r.inner.EraseAny(ctx, id); err != nil {
		return err
	}
	r.cache.Delete(id)
	return nil
}

func (r *Repo[T]) ExistsActive(ctx context.Context, id int64) (bool, error) {
	if _, found := r.cache.Get(id); found {
		return true, nil
	}
	return r.inner.ExistsActive(ctx, id)
}

func (r *Repo[T]) CountActive(ctx context.Context) (int64, error) {
	return r.inner.CountActive(ctx)
}

func (r *Repo[T]) CountDeleted(ctx context.Context) (int64, error) {
	return r.inner.CountDeleted(ctx)
}
