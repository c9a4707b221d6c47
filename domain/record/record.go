// Package record 提供可嵌入的通用实体字段与谓词。
// 具体领域实体通过值嵌入 Record 获得标识、审计、软删与版本能力，
// 生命周期服务与仓储只依赖 domain.IRecord / Carrier，不依赖具体类型。
package record

import (
	"time"

	"gorecord/domain"
)

// Record 通用实体字段（用于嵌入），默认使用 int64 作为主键类型。
// ID 为 0 表示实体尚未持久化；DeletedAt 非 nil 表示已软删。
type Record struct {
	ID        int64      `json:"id"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	UpdatedAt time.Time  `json:"updated_at"`
	UpdatedBy string     `json:"updated_by"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `json:"deleted_by,omitempty"`
}

// Carrier 暴露嵌入的 Record，供存储实现按统一方式读写基础字段。
type Carrier interface {
	Meta() *Record
}

// Meta 实现 Carrier 接口。
func (r *Record) Meta() *Record { return r }

func (r *Record) GetID() int64       { return r.ID }
func (r *Record) SetID(id int64)     { r.ID = id }
func (r *Record) GetVersion() int64  { return r.Version }
func (r *Record) SetVersion(v int64) { r.Version = v }

func (r *Record) GetCreatedAt() time.Time { return r.CreatedAt }
func (r *Record) GetCreatedBy() string    { return r.CreatedBy }
func (r *Record) GetUpdatedAt() time.Time { return r.UpdatedAt }
func (r *Record) GetUpdatedBy() string    { return r.UpdatedBy }

// SetCreatedInfo 实现 domain.IAuditable 接口。创建信息只应写入一次。
func (r *Record) SetCreatedInfo(by string, at time.Time) {
	r.CreatedBy = by
	r.CreatedAt = at
}

// SetUpdatedInfo 实现 domain.IAuditable 接口。
// 不触碰版本号：版本递增由存储层在写入成功时完成，保证“每次成功持久化恰好 +1”。
func (r *Record) SetUpdatedInfo(by string, at time.Time) {
	r.UpdatedBy = by
	r.UpdatedAt = at
}

func (r *Record) GetDeletedAt() *time.Time { return r.DeletedAt }
func (r *Record) GetDeletedBy() *string    { return r.DeletedBy }

// IsDeleted 实现 domain.ISoftDeletable 接口。
func (r *Record) IsDeleted() bool { return r.DeletedAt != nil }

// IsNew 判断实体是否尚未持久化（ID 未分配）。
func (r *Record) IsNew() bool { return r.ID == 0 }

// IsModified 判断实体在创建之后是否被修改过。
func (r *Record) IsModified() bool {
	return !r.UpdatedAt.IsZero() && !r.UpdatedAt.Equal(r.CreatedAt)
}

// Lifetime 返回创建到最后修改之间的时长，未修改时为 0。
func (r *Record) Lifetime() time.Duration {
	if r.IsModified() {
		return r.UpdatedAt.Sub(r.CreatedAt)
	}
	return 0
}

// Equals 按标识比较两个实体。
// 未持久化的实体（ID 为 0）不与任何实体相等；类型差异由调用方的泛型参数保证。
func (r *Record) Equals(other domain.IObject[int64]) bool {
	if other == nil || r.IsNew() {
		return false
	}
	return r.ID == other.GetID()
}
