// Package domain 定义实体生命周期引擎的核心接口体系与错误分类。
//
// 设计原则：
// 1. 接口最小化 - 每个能力接口只包含必需的方法
// 2. 组合优于继承 - 具体实体通过嵌入 record.Record 获得全部能力
// 3. 泛型支持 - ID 类型可为 int64、string、UUID 等
package domain

import "time"

// IObject 最基础的对象接口，所有实体的根接口。
type IObject[ID comparable] interface {
	// GetID 返回对象的唯一标识
	GetID() ID
}

// IEntity 实体接口，在 IObject 基础上增加版本控制。
// 版本号用于乐观锁，由存储层在每次成功的变更写入时递增。
type IEntity[ID comparable] interface {
	IObject[ID]

	// GetVersion 返回实体的乐观锁版本号
	GetVersion() int64
}

// IAuditable 审计追踪接口。
// 实现此接口的实体可以记录创建和修改信息。
type IAuditable interface {
	// 创建信息
	GetCreatedAt() time.Time
	GetCreatedBy() string

	// 最后修改信息
	GetUpdatedAt() time.Time
	GetUpdatedBy() string

	// 设置审计信息（由生命周期服务在持久化前调用，操作者与时钟均为显式入参）
	SetCreatedInfo(by string, at time.Time)
	SetUpdatedInfo(by string, at time.Time)
}

// ISoftDeletable 软删除接口。
// 删除标记的写入由仓储的条件更新完成，实体侧只暴露只读谓词。
type ISoftDeletable interface {
	// GetDeletedAt 返回删除时间，nil 表示未删除
	GetDeletedAt() *time.Time

	// GetDeletedBy 返回删除操作者
	GetDeletedBy() *string

	// IsDeleted 判断是否已删除
	IsDeleted() bool
}

// IValidatable 可验证接口。
// 实现此接口的实体可以验证自身状态的有效性。
type IValidatable interface {
	// Validate 验证实体状态是否有效
	Validate() error
}

// IRecord 生命周期引擎操作的实体接口。
// 在审计/软删/版本能力之上补充引擎所需的写入口：
//   - SetID/SetVersion 由仓储在持久化成功后回填；
//   - IsNew 以“尚未分配 ID”为判断依据。
type IRecord[ID comparable] interface {
	IEntity[ID]
	IAuditable
	ISoftDeletable

	// SetID 设置实体标识（仅供仓储在首次持久化后回填）
	SetID(id ID)

	// SetVersion 设置乐观锁版本号（仅供仓储在写入成功后回填）
	SetVersion(v int64)

	// IsNew 判断实体是否尚未持久化（ID 为零值）
	IsNew() bool
}
