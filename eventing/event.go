// Package eventing 提供生命周期事件的定义与发布抽象。
// 生命周期服务在每次状态转移成功后发布事件；
// 进程内使用 Bus，跨进程投递见 transport 子包（NATS JetStream / Redis Streams）。
package eventing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// 生命周期事件类型。
const (
	TypeCreated     = "record.created"
	TypeUpdated     = "record.updated"
	TypeSoftDeleted = "record.soft_deleted"
	TypeRestored    = "record.restored"
	TypeErased      = "record.erased"
)

// Event 生命周期事件。
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Actor      string         `json:"actor"`
	Timestamp  time.Time      `json:"timestamp"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewEvent 构造生命周期事件，事件 ID 为随机 UUID。
func NewEvent(eventType, entityType, entityID, actor string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Timestamp:  at,
	}
}

// IPublisher 事件发布接口。
type IPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// HandlerFunc 事件处理函数。
type HandlerFunc func(ctx context.Context, event Event) error
