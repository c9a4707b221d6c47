// Package validation 提供字段级校验辅助函数，
// 所有失败都返回 VALIDATION_ERROR 域错误，便于服务层统一处理。
package validation

import (
	"regexp"
	"strings"
	"time"

	"gorecord/domain"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,24}$`)
	nameRegex  = regexp.MustCompile(`^[\p{L}][\p{L} '-]*$`)
)

// IValidator 通用验证器接口。
type IValidator interface {
	Validate(value any) error
}

// NoopValidator 空验证器。
type NoopValidator struct{}

func (NoopValidator) Validate(value any) error { return nil }

// Required 非空白校验。
func Required(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError("%s must not be empty", field)
	}
	return nil
}

// Length 字符串长度校验，max<=0 表示不限上限。
func Length(value, field string, min, max int) error {
	n := len([]rune(value))
	if n < min {
		return domain.NewValidationError("%s must be at least %d characters (got %d)", field, min, n)
	}
	if max > 0 && n > max {
		return domain.NewValidationError("%s must be at most %d characters (got %d)", field, max, n)
	}
	return nil
}

// Range 整数范围校验。
func Range(value int64, field string, min, max int64) error {
	if value < min || value > max {
		return domain.NewValidationError("%s must be between %d and %d (got %d)", field, min, max, value)
	}
	return nil
}

// Positive 正数校验。
func Positive(value int64, field string) error {
	if value <= 0 {
		return domain.NewValidationError("%s must be positive (got %d)", field, value)
	}
	return nil
}

// Email 邮箱格式校验，空值视为通过（必填用 Required 组合）。
func Email(value, field string) error {
	if value == "" {
		return nil
	}
	if !emailRegex.MatchString(value) {
		return domain.NewValidationError("%s is not a valid email address", field)
	}
	return nil
}

// Phone 电话号码格式校验，空值视为通过。
func Phone(value, field string) error {
	if value == "" {
		return nil
	}
	if !phoneRegex.MatchString(value) {
		return domain.NewValidationError("%s is not a valid phone number", field)
	}
	return nil
}

// PersonName 人名校验：字母开头，允许空格、撇号与连字符。
func PersonName(value, field string) error {
	if err := Required(value, field); err != nil {
		return err
	}
	if !nameRegex.MatchString(value) {
		return domain.NewValidationError("%s contains invalid characters", field)
	}
	return Length(value, field, 1, 100)
}

// NotInFuture 日期不得晚于参考时间。
func NotInFuture(value time.Time, field string, now time.Time) error {
	if value.After(now) {
		return domain.NewValidationError("%s must not be in the future", field)
	}
	return nil
}

// OneOf 枚举值校验。
func OneOf(value, field string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return domain.NewValidationError("%s must be one of [%s] (got %q)", field, strings.Join(allowed, ", "), value)
}

// All 依次执行校验，返回第一个失败。
func All(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
