package sqlite

import (
	"database/sql"
	"time"
)

// 可空列的扫描与取值辅助：
// Schema.Fields 返回的目标需要实现 sql.Scanner 才能接住 NULL，
// Schema.Values 传入驱动的参数需要把 nil 指针转成 SQL NULL。

type timePtrScanner struct{ dest **time.Time }

func (s timePtrScanner) Scan(src any) error {
	var v sql.NullTime
	if err := v.Scan(src); err != nil {
		return err
	}
	if !v.Valid {
		*s.dest = nil
		return nil
	}
	t := v.Time
	*s.dest = &t
	return nil
}

// NullTimePtr 包装 *time.Time 字段用于扫描可空时间列。
func NullTimePtr(dest **time.Time) sql.Scanner { return timePtrScanner{dest: dest} }

type int64PtrScanner struct{ dest **int64 }

func (s int64PtrScanner) Scan(src any) error {
	var v sql.NullInt64
	if err := v.Scan(src); err != nil {
		return err
	}
	if !v.Valid {
		*s.dest = nil
		return nil
	}
	n := v.Int64
	*s.dest = &n
	return nil
}

// NullInt64Ptr 包装 *int64 字段用于扫描可空整数列。
func NullInt64Ptr(dest **int64) sql.Scanner { return int64PtrScanner{dest: dest} }

type stringScanner[T ~string] struct{ dest *T }

func (s stringScanner[T]) Scan(src any) error {
	var v sql.NullString
	if err := v.Scan(src); err != nil {
		return err
	}
	*s.dest = T(v.String)
	return nil
}

// StringAs 包装自定义字符串类型（如枚举）用于扫描文本列，NULL 映射为空串。
func StringAs[T ~string](dest *T) sql.Scanner { return stringScanner[T]{dest: dest} }

// TimeArg 把 *time.Time 转成驱动参数，nil 映射为 NULL。
func TimeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// Int64Arg 把 *int64 转成驱动参数，nil 映射为 NULL。
func Int64Arg(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
