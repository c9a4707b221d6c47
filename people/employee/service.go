package employee

import (
	"gorecord/domain/lifecycle"
)

// EntityType 审计与事件中使用的实体类型名。
const EntityType = "employee"

// Hooks 雇员钩子：人员基础规则叠加雇员自身规则。
func Hooks() lifecycle.Hooks[*Employee] {
	personRules := lifecycle.Hooks[*Employee]{
		Validate: func(e *Employee) error {
			normalized := e.Person.Clone()
			normalized.Normalize()
			return normalized.Validate()
		},
		PreSave: func(e *Employee) *Employee {
			e.Person.Normalize()
			return e
		},
	}
	employeeRules := lifecycle.Hooks[*Employee]{
		Validate: func(e *Employee) error {
			normalized := e.Clone()
			normalized.NormalizeEmployment()
			return normalized.ValidateEmployment()
		},
		PreSave: func(e *Employee) *Employee {
			e.NormalizeEmployment()
			return e
		},
	}
	return lifecycle.Chain(personRules, employeeRules)
}

// NewService 基于任意仓储构建雇员生命周期服务。
func NewService(repo lifecycle.IRepository[*Employee, int64], opts ...lifecycle.Option[*Employee, int64]) *lifecycle.Service[*Employee, int64] {
	base := []lifecycle.Option[*Employee, int64]{
		lifecycle.WithHooks[*Employee, int64](Hooks()),
		lifecycle.WithEntityType[*Employee, int64](EntityType),
	}
	return lifecycle.NewService(repo, append(base, opts...)...)
}
