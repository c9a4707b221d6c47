package eventing

import (
	"context"
	"fmt"
	"sync"

	"gorecord/logging"
)

// Bus 进程内同步事件总线。
// 按事件类型路由到已订阅的处理函数；某个处理函数失败不阻断其余处理函数，
// 错误聚合后返回。适用于单机部署、开发环境和测试场景。
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
	logger   logging.Logger
}

// NewBus 创建进程内事件总线。
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logging.GetLogger().WithFields(logging.String("component", "eventing.bus")),
	}
}

// Subscribe 订阅指定类型的事件。eventType 为空串时订阅全部事件。
func (b *Bus) Subscribe(eventType string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish 同步投递事件到所有匹配的处理函数。
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	matched := make([]HandlerFunc, 0, len(b.handlers[event.Type])+len(b.handlers[""]))
	matched = append(matched, b.handlers[event.Type]...)
	matched = append(matched, b.handlers[""]...)
	b.mu.RUnlock()

	var firstErr error
	for _, handler := range matched {
		if err := handler(ctx, event); err != nil {
			b.logger.Warn(ctx, "event handler failed",
				logging.String("event_type", event.Type),
				logging.String("event_id", event.ID),
				logging.Err(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("handle event %s: %w", event.ID, err)
			}
		}
	}
	return firstErr
}
