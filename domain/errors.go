package domain

import (
	stderrors "errors"
	"fmt"
)

// 错误代码，覆盖生命周期引擎的全部失败语义。
const (
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyDeleted      = "ALREADY_DELETED"
	CodeNotDeleted          = "NOT_DELETED"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeStorage             = "STORAGE_ERROR"
)

// Error 生命周期引擎的通用错误类型。
// 通过 Code 承载分类，EntityID 携带目标实体标识，Cause 保留底层错误。
type Error struct {
	Code     string
	Message  string
	EntityID any
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 支持 errors.Is 按错误代码比较，哨兵与实例同码即视为同类。
func (e *Error) Is(target error) bool {
	var other *Error
	if stderrors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// 错误哨兵（用于 errors.Is 比较）
var (
	ErrInvalidArgument     = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "entity not found"}
	ErrAlreadyDeleted      = &Error{Code: CodeAlreadyDeleted, Message: "entity is already deleted"}
	ErrNotDeleted          = &Error{Code: CodeNotDeleted, Message: "entity is not deleted"}
	ErrConcurrencyConflict = &Error{Code: CodeConcurrencyConflict, Message: "concurrent modification detected"}
	ErrStorage             = &Error{Code: CodeStorage, Message: "storage operation failed"}
)

// NewInvalidArgumentError 创建非法入参错误。
func NewInvalidArgumentError(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewValidationError 创建业务校验错误。
func NewValidationError(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError 创建未找到错误。
func NewNotFoundError(id any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("entity %v not found", id), EntityID: id}
}

// NewAlreadyDeletedError 创建重复软删错误。
func NewAlreadyDeletedError(id any) *Error {
	return &Error{Code: CodeAlreadyDeleted, Message: fmt.Sprintf("entity %v is already deleted", id), EntityID: id}
}

// NewNotDeletedError 创建“未处于删除态”错误。
func NewNotDeletedError(id any) *Error {
	return &Error{Code: CodeNotDeleted, Message: fmt.Sprintf("entity %v is not deleted", id), EntityID: id}
}

// NewConcurrencyConflictError 创建并发冲突错误（乐观锁版本不匹配或条件更新竞争失败）。
func NewConcurrencyConflictError(id any) *Error {
	return &Error{Code: CodeConcurrencyConflict, Message: fmt.Sprintf("entity %v was modified concurrently", id), EntityID: id}
}

// NewStorageError 包装存储层错误，保持原因可追溯。
func NewStorageError(cause error, format string, args ...any) *Error {
	return &Error{Code: CodeStorage, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func hasCode(err error, code string) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsInvalidArgument 检查是否为非法入参错误。
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsValidation 检查是否为业务校验错误。
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsNotFound 检查是否为未找到错误。
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsAlreadyDeleted 检查是否为重复软删错误。
func IsAlreadyDeleted(err error) bool { return hasCode(err, CodeAlreadyDeleted) }

// IsNotDeleted 检查是否为“未处于删除态”错误。
func IsNotDeleted(err error) bool { return hasCode(err, CodeNotDeleted) }

// IsConcurrencyConflict 检查是否为并发冲突错误。
func IsConcurrencyConflict(err error) bool { return hasCode(err, CodeConcurrencyConflict) }

// IsStorage 检查是否为存储层错误。
func IsStorage(err error) bool { return hasCode(err, CodeStorage) }
