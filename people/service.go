package people

import (
	"gorecord/domain/lifecycle"
)

// EntityType 审计与事件中使用的实体类型名。
const EntityType = "person"

// Hooks 人员领域的业务钩子：
// 校验在规范化后的副本上进行，入库前统一规范化。
func Hooks() lifecycle.Hooks[*Person] {
	return lifecycle.Hooks[*Person]{
		Validate: func(p *Person) error {
			normalized := p.Clone()
			normalized.Normalize()
			return normalized.Validate()
		},
		PreSave: func(p *Person) *Person {
			p.Normalize()
			return p
		},
	}
}

// NewService 基于任意仓储构建人员生命周期服务。
func NewService(repo lifecycle.IRepository[*Person, int64], opts ...lifecycle.Option[*Person, int64]) *lifecycle.Service[*Person, int64] {
	base := []lifecycle.Option[*Person, int64]{
		lifecycle.WithHooks[*Person, int64](Hooks()),
		lifecycle.WithEntityType[*Person, int64](EntityType),
	}
	return lifecycle.NewService(repo, append(base, opts...)...)
}
