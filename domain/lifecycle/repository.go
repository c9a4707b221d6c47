// Package lifecycle 提供通用实体生命周期引擎：
// 仓储契约 + 服务编排（校验 → 预处理 → 持久化 → 后处理），
// 以及软删/恢复状态机与乐观并发控制。
//
// 状态机：ACTIVE --SoftDelete--> DELETED --Restore--> ACTIVE；
// 任一状态 --HardDelete--> ERASED（终态，无法再转移）。
package lifecycle

import (
	"context"
	"time"

	"gorecord/domain"
	"gorecord/pagination"
)

// Filter 列表/计数的删除态过滤器。
type Filter string

const (
	FilterActive  Filter = "active"
	FilterDeleted Filter = "deleted"
	FilterAll     Filter = "all"
)

// IRepository 生命周期仓储契约：存储后端必须提供的最小操作集。
//
// 约定：
//   - 所有变更操作在单次调用内保持原子；
//   - MarkDeleted / ClearDeleted 必须实现为条件化的单语句更新
//     （对 deleted_at 做 test-and-set），而非读取后写回，
//     以保证并发删除/恢复的竞争只有一方成功；
//   - 找不到目标时返回 NOT_FOUND 类错误（domain.IsNotFound 可判定）。
type IRepository[T domain.IRecord[ID], ID comparable] interface {
	// FindActive 查找未删除的实体。
	FindActive(ctx context.Context, id ID) (T, error)

	// FindAny 查找实体，无论删除状态。
	FindAny(ctx context.Context, id ID) (T, error)

	// ListActive 分页列出未删除实体。
	ListActive(ctx context.Context, req pagination.Request) (pagination.Page[T], error)

	// ListDeleted 分页列出已软删实体。
	ListDeleted(ctx context.Context, req pagination.Request) (pagination.Page[T], error)

	// ListAll 分页列出全部实体。
	ListAll(ctx context.Context, req pagination.Request) (pagination.Page[T], error)

	// Persist 插入或更新实体。
	// 更新时以实体携带的版本号做乐观并发检查，不匹配返回 CONCURRENCY_CONFLICT；
	// 成功后返回版本号/标识已回填的实体。
	Persist(ctx context.Context, e T) (T, error)

	// MarkDeleted 仅当 deleted_at 为空时原子地写入删除标记。
	// 返回受影响行数：目标不存在或已删除时为 0，成功为 1。
	MarkDeleted(ctx context.Context, id ID, by string, at time.Time) (int64, error)

	// ClearDeleted 仅当 deleted_at 非空时原子地清除删除标记，0/1 约定同上。
	ClearDeleted(ctx context.Context, id ID) (int64, error)

	// EraseAny 无条件物理删除，目标不存在时静默成功。
	EraseAny(ctx context.Context, id ID) error

	// ExistsActive 检查未删除实体是否存在。
	ExistsActive(ctx context.Context, id ID) (bool, error)

	// CountActive 统计未删除实体数量。
	CountActive(ctx context.Context) (int64, error)

	// CountDeleted 统计已软删实体数量。
	CountDeleted(ctx context.Context) (int64, error)
}
