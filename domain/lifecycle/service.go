package lifecycle

import (
	"context"
	"fmt"
	"time"

	"gorecord/audit"
	"gorecord/domain"
	"gorecord/eventing"
	"gorecord/logging"
	"gorecord/pagination"
)

// 分页请求边界，越界直接拒绝而非静默截断。
const (
	MinPageSize = 1
	MaxPageSize = 100
)

// Clock 时间源，作为显式依赖注入（取代框架环境注入的审计时间）。
type Clock func() time.Time

// IService 生命周期服务接口：具体实体类型继承的公共 CRUD + 软删 API。
// 所有变更操作显式携带操作者标识 actor，用于审计字段与审计轨迹。
type IService[T domain.IRecord[ID], ID comparable] interface {
	Create(ctx context.Context, actor string, e T) (T, error)
	Update(ctx context.Context, actor string, id ID, e T) (T, error)
	FindByID(ctx context.Context, id ID) (T, error)
	FindByIDIncludingDeleted(ctx context.Context, id ID) (T, error)
	ExistsByID(ctx context.Context, id ID) (bool, error)
	SoftDelete(ctx context.Context, actor string, id ID) error
	Restore(ctx context.Context, actor string, id ID) error
	HardDelete(ctx context.Context, actor string, id ID) error
	List(ctx context.Context, filter Filter, req pagination.Request) (pagination.Page[T], error)
	Count(ctx context.Context, filter Filter) (int64, error)

	Repository() IRepository[T, ID]
}

// Service IService 的默认实现。
// 拥有状态转移的决策权；转移如何落盘由仓储契约负责。
type Service[T domain.IRecord[ID], ID comparable] struct {
	repo       IRepository[T, ID]
	hooks      Hooks[T]
	clock      Clock
	logger     logging.Logger
	auditStore audit.IStore
	publisher  eventing.IPublisher
	entityType string
}

// Option 服务可选配置。
type Option[T domain.IRecord[ID], ID comparable] func(*Service[T, ID])

// WithHooks 注入业务扩展点（校验 / 预处理 / 后处理）。
func WithHooks[T domain.IRecord[ID], ID comparable](h Hooks[T]) Option[T, ID] {
	return func(s *Service[T, ID]) { s.hooks = h }
}

// WithClock 注入时间源（测试中可固定时间）。
func WithClock[T domain.IRecord[ID], ID comparable](c Clock) Option[T, ID] {
	return func(s *Service[T, ID]) { s.clock = c }
}

// WithLogger 注入日志器。
func WithLogger[T domain.IRecord[ID], ID comparable](l logging.Logger) Option[T, ID] {
	return func(s *Service[T, ID]) { s.logger = l }
}

// WithAuditStore 启用审计轨迹写入。
func WithAuditStore[T domain.IRecord[ID], ID comparable](store audit.IStore) Option[T, ID] {
	return func(s *Service[T, ID]) { s.auditStore = store }
}

// WithPublisher 启用生命周期事件发布。
func WithPublisher[T domain.IRecord[ID], ID comparable](p eventing.IPublisher) Option[T, ID] {
	return func(s *Service[T, ID]) { s.publisher = p }
}

// WithEntityType 指定审计与事件中的实体类型名（默认 "record"）。
func WithEntityType[T domain.IRecord[ID], ID comparable](name string) Option[T, ID] {
	return func(s *Service[T, ID]) { s.entityType = name }
}

// NewService 创建生命周期服务。
func NewService[T domain.IRecord[ID], ID comparable](repo IRepository[T, ID], opts ...Option[T, ID]) *Service[T, ID] {
	s := &Service[T, ID]{
		repo:       repo,
		clock:      time.Now,
		logger:     logging.GetLogger().WithFields(logging.String("component", "lifecycle.service")),
		entityType: "record",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository 返回底层仓储。
func (s *Service[T, ID]) Repository() IRepository[T, ID] { return s.repo }

// Create 创建实体：要求实体尚未持久化，
// 依序执行 Validate → PreSave → Persist → PostSave。
func (s *Service[T, ID]) Create(ctx context.Context, actor string, e T) (T, error) {
	var zero T
	if !e.IsNew() {
		return zero, domain.NewInvalidArgumentError("entity already has id %v, use Update", e.GetID())
	}
	if err := s.hooks.validate(e); err != nil {
		return zero, err
	}
	e = s.hooks.preSave(e)

	now := s.clock()
	e.SetCreatedInfo(actor, now)
	e.SetUpdatedInfo(actor, now)

	saved, err := s.repo.Persist(ctx, e)
	if err != nil {
		return zero, err
	}
	saved = s.hooks.postSave(saved)

	s.logger.Info(ctx, "entity created",
		logging.String("entity_type", s.entityType),
		logging.String("entity_id", fmt.Sprint(saved.GetID())))
	if err := s.appendAudit(ctx, audit.OpCreate, actor, saved.GetID(), now); err != nil {
		return zero, err
	}
	s.publish(ctx, eventing.TypeCreated, actor, saved.GetID(), now)
	return saved, nil
}

// Update 更新实体：目标必须可解析（含已软删），
// 乐观并发检查由 Persist 完成，版本过期返回 CONCURRENCY_CONFLICT。
func (s *Service[T, ID]) Update(ctx context.Context, actor string, id ID, e T) (T, error) {
	var zero T
	if isZeroID(id) {
		return zero, domain.NewInvalidArgumentError("id must not be zero")
	}
	current, err := s.repo.FindAny(ctx, id)
	if err != nil {
		return zero, err
	}

	e.SetID(id)
	// 创建信息不可变，始终以已存储的值为准
	e.SetCreatedInfo(current.GetCreatedBy(), current.GetCreatedAt())

	if err := s.hooks.validate(e); err != nil {
		return zero, err
	}
	e = s.hooks.preSave(e)

	now := s.clock()
	e.SetUpdatedInfo(actor, now)

	saved, err := s.repo.Persist(ctx, e)
	if err != nil {
		return zero, err
	}
	saved = s.hooks.postSave(saved)

	s.logger.Info(ctx, "entity updated",
		logging.String("entity_type", s.entityType),
		logging.String("entity_id", fmt.Sprint(id)),
		logging.Int64("version", saved.GetVersion()))
	if err := s.appendAudit(ctx, audit.OpUpdate, actor, id, now); err != nil {
		return zero, err
	}
	s.publish(ctx, eventing.TypeUpdated, actor, id, now)
	return saved, nil
}

// FindByID 查找未删除实体；不存在或已软删时返回 NOT_FOUND。
func (s *Service[T, ID]) FindByID(ctx context.Context, id ID) (T, error) {
	var zero T
	if isZeroID(id) {
		return zero, domain.NewInvalidArgumentError("id must not be zero")
	}
	return s.repo.FindActive(ctx, id)
}

// FindByIDIncludingDeleted 查找实体，无论删除状态（用于恢复/巡检流程）。
func (s *Service[T, ID]) FindByIDIncludingDeleted(ctx context.Context, id ID) (T, error) {
	var zero T
	if isZeroID(id) {
		return zero, domain.NewInvalidArgumentError("id must not be zero")
	}
	return s.repo.FindAny(ctx, id)
}

// ExistsByID 仅对未删除实体返回 true。
func (s *Service[T, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	if isZeroID(id) {
		return false, domain.NewInvalidArgumentError("id must not be zero")
	}
	return s.repo.ExistsActive(ctx, id)
}

// SoftDelete 软删除实体。
// 目标必须存在；已删除时返回 ALREADY_DELETED（重复删除通常意味着调用方 bug，
// 不做静默幂等）；条件更新竞争失败返回 CONCURRENCY_CONFLICT。
func (s *Service[T, ID]) SoftDelete(ctx context.Context, actor string, id ID) error {
	if isZeroID(id) {
		return domain.NewInvalidArgumentError("id must not be zero")
	}
	current, err := s.repo.FindAny(ctx, id)
	if err != nil {
		return err
	}
	if current.IsDeleted() {
		s.logger.Warn(ctx, "soft delete rejected: already deleted",
			logging.String("entity_type", s.entityType),
			logging.String("entity_id", fmt.Sprint(id)))
		return domain.NewAlreadyDeletedError(id)
	}

	now := s.clock()
	affected, err := s.repo.MarkDeleted(ctx, id, actor, now)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 与并发删除方竞争失败
		return domain.NewConcurrencyConflictError(id)
	}

	s.logger.Info(ctx, "entity soft deleted",
		logging.String("entity_type", s.entityType),
		logging.String("entity_id", fmt.Sprint(id)))
	if err := s.appendAudit(ctx, audit.OpDelete, actor, id, now); err != nil {
		return err
	}
	s.publish(ctx, eventing.TypeSoftDeleted, actor, id, now)
	return nil
}

// Restore 恢复已软删实体，与 SoftDelete 对称：
// 目标必须处于删除态，否则返回 NOT_DELETED。
func (s *Service[T, ID]) Restore(ctx context.Context, actor string, id ID) error {
	if isZeroID(id) {
		return domain.NewInvalidArgumentError("id must not be zero")
	}
	current, err := s.repo.FindAny(ctx, id)
	if err != nil {
		return err
	}
	if !current.IsDeleted() {
		s.logger.Warn(ctx, "restore rejected: not deleted",
			logging.String("entity_type", s.entityType),
			logging.String("entity_id", fmt.Sprint(id)))
		return domain.NewNotDeletedError(id)
	}

	affected, err := s.repo.ClearDeleted(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewConcurrencyConflictError(id)
	}

	now := s.clock()
	s.logger.Info(ctx, "entity restored",
		logging.String("entity_type", s.entityType),
		logging.String("entity_id", fmt.Sprint(id)))
	if err := s.appendAudit(ctx, audit.OpRestore, actor, id, now); err != nil {
		return err
	}
	s.publish(ctx, eventing.TypeRestored, actor, id, now)
	return nil
}

// HardDelete 物理删除实体，任意状态可用。
// 对不存在的 id 是无操作而非错误：重复物理删除无害，
// 这里刻意与软删/恢复的严格前置检查不同。
func (s *Service[T, ID]) HardDelete(ctx context.Context, actor string, id ID) error {
	if isZeroID(id) {
		return domain.NewInvalidArgumentError("id must not be zero")
	}
	if err := s.repo.EraseAny(ctx, id); err != nil {
		return err
	}

	now := s.clock()
	s.logger.Info(ctx, "entity erased",
		logging.String("entity_type", s.entityType),
		logging.String("entity_id", fmt.Sprint(id)))
	if err := s.appendAudit(ctx, audit.OpDeleteHard, actor, id, now); err != nil {
		return err
	}
	s.publish(ctx, eventing.TypeErased, actor, id, now)
	return nil
}

// List 按过滤器分页列出实体。页号 ≥ 0、页大小 ∈ [1,100]，越界直接拒绝。
func (s *Service[T, ID]) List(ctx context.Context, filter Filter, req pagination.Request) (pagination.Page[T], error) {
	var zero pagination.Page[T]
	if req.Number < 0 {
		return zero, domain.NewInvalidArgumentError("page number must be >= 0, got %d", req.Number)
	}
	if req.Size < MinPageSize || req.Size > MaxPageSize {
		return zero, domain.NewInvalidArgumentError("page size must be in [%d,%d], got %d", MinPageSize, MaxPageSize, req.Size)
	}

	switch filter {
	case FilterActive:
		return s.repo.ListActive(ctx, req)
	case FilterDeleted:
		return s.repo.ListDeleted(ctx, req)
	case FilterAll:
		return s.repo.ListAll(ctx, req)
	default:
		return zero, domain.NewInvalidArgumentError("unknown filter %q", filter)
	}
}

// Count 按过滤器统计实体数量，不物化记录。
func (s *Service[T, ID]) Count(ctx context.Context, filter Filter) (int64, error) {
	switch filter {
	case FilterActive:
		return s.repo.CountActive(ctx)
	case FilterDeleted:
		return s.repo.CountDeleted(ctx)
	case FilterAll:
		active, err := s.repo.CountActive(ctx)
		if err != nil {
			return 0, err
		}
		deleted, err := s.repo.CountDeleted(ctx)
		if err != nil {
			return 0, err
		}
		return active + deleted, nil
	default:
		return 0, domain.NewInvalidArgumentError("unknown filter %q", filter)
	}
}

// appendAudit 写入审计记录（未配置审计存储时为无操作）。
func (s *Service[T, ID]) appendAudit(ctx context.Context, op, actor string, id ID, at time.Time) error {
	if s.auditStore == nil {
		return nil
	}
	return s.auditStore.Append(ctx, audit.Record{
		EntityType: s.entityType,
		EntityID:   fmt.Sprint(id),
		Operation:  op,
		Actor:      actor,
		At:         at,
	})
}

// publish 发布生命周期事件。事件是通知性质的，发布失败只记日志，不影响操作结果。
func (s *Service[T, ID]) publish(ctx context.Context, eventType, actor string, id ID, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := eventing.NewEvent(eventType, s.entityType, fmt.Sprint(id), actor, at)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "failed to publish lifecycle event",
			logging.String("event_type", eventType),
			logging.String("entity_id", event.EntityID),
			logging.Err(err))
	}
}

func isZeroID[ID comparable](id ID) bool {
	var zero ID
	return id == zero
}
