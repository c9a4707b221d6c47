package sqlite

import "gorecord/domain/record"

// 基础列，所有生命周期实体共用，顺序与扫描顺序一致。
var baseColumns = []string{
	"id", "version",
	"created_at", "created_by",
	"updated_at", "updated_by",
	"deleted_at", "deleted_by",
}

// Schema 实体与表之间的映射。
// 基础字段（标识/审计/软删/版本）由仓储统一处理，
// Schema 只描述实体特有的列。
type Schema[T record.Carrier] struct {
	// Table 表名
	Table string

	// Columns 实体特有列名，顺序与 Values / Fields 一致
	Columns []string

	// Values 返回实体特有列的写入值（INSERT / UPDATE 共用）
	Values func(e T) []any

	// Fields 返回实体特有列的扫描目标指针
	Fields func(e T) []any

	// New 构造空实体（供扫描填充）
	New func() T

	// DDL 建表语句（可选，供 EnsureSchema 使用）
	DDL string
}
