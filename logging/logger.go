// Package logging 提供统一的日志接口抽象。
// 生命周期服务与各存储实现只依赖 Logger 接口，默认实现基于标准库 log。
package logging

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Level 日志级别
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger 日志接口
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// WithFields 附加字段，返回新的 Logger
	WithFields(fields ...Field) Logger
}

// Field 日志字段
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field          { return Field{Key: key, Value: value} }
func Int(key string, value int) Field         { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field     { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field       { return Field{Key: key, Value: value} }
func Any(key string, value any) Field         { return Field{Key: key, Value: value} }
func Err(err error) Field                     { return Field{Key: "error", Value: err} }
func Duration(key string, v time.Duration) Field { return Field{Key: key, Value: v} }

// StdLogger 基于标准库 log 的实现，带级别过滤。
type StdLogger struct {
	component string
	minLevel  Level
	fields    []Field
}

// NewStdLogger 创建标准库 Logger。
func NewStdLogger(component string, minLevel Level) *StdLogger {
	return &StdLogger{component: component, minLevel: minLevel}
}

func (l *StdLogger) format(msg string, fields ...Field) string {
	result := msg
	if l.component != "" {
		result = l.component + ": " + msg
	}
	all := append(append([]Field{}, l.fields...), fields...)
	for _, f := range all {
		result += " " + f.Key + "=" + formatValue(f.Value)
	}
	return result
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case error:
		return val.Error()
	default:
		return fmt.Sprint(val)
	}
}

func (l *StdLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	if l.minLevel <= DebugLevel {
		log.Println("[DEBUG]", l.format(msg, fields...))
	}
}

func (l *StdLogger) Info(ctx context.Context, msg string, fields ...Field) {
	if l.minLevel <= InfoLevel {
		log.Println("[INFO]", l.format(msg, fields...))
	}
}

func (l *StdLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	if l.minLevel <= WarnLevel {
		log.Println("[WARN]", l.format(msg, fields...))
	}
}

func (l *StdLogger) Error(ctx context.Context, msg string, fields ...Field) {
	if l.minLevel <= ErrorLevel {
		log.Println("[ERROR]", l.format(msg, fields...))
	}
}

func (l *StdLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &StdLogger{component: l.component, minLevel: l.minLevel, fields: merged}
}

// NoopLogger 空日志实现（用于测试）。
type NoopLogger struct{}

func NewNoopLogger() *NoopLogger { return &NoopLogger{} }

func (l *NoopLogger) Debug(ctx context.Context, msg string, fields ...Field) {}
func (l *NoopLogger) Info(ctx context.Context, msg string, fields ...Field)  {}
func (l *NoopLogger) Warn(ctx context.Context, msg string, fields ...Field)  {}
func (l *NoopLogger) Error(ctx context.Context, msg string, fields ...Field) {}
func (l *NoopLogger) WithFields(fields ...Field) Logger                      { return l }

// 全局 Logger
var globalLogger Logger = NewStdLogger("", InfoLevel)

// SetLogger 设置全局 Logger。
func SetLogger(logger Logger) { globalLogger = logger }

// GetLogger 获取全局 Logger。
func GetLogger() Logger { return globalLogger }
