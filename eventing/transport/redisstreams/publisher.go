// Package redisstreams publishes lifecycle events to a Redis stream via XADD.
package redisstreams

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"gorecord/eventing"
	"gorecord/logging"
)

// client captures the subset of go-redis commands we rely on (for easier testing).
type client interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// Config describes how the Redis Streams publisher should connect/behave.
type Config struct {
	Client   redis.UniversalClient
	Addr     string
	Username string
	Password string
	DB       int

	// Stream 目标流名称，默认 "records"。
	Stream string

	// MaxLen 流长度上限（近似裁剪），0 表示不裁剪。
	MaxLen int64

	Logger logging.Logger
}

// Publisher implements eventing.IPublisher backed by a Redis stream.
type Publisher struct {
	cfg       Config
	client    client
	ownClient bool
	logger    logging.Logger
}

// NewPublisher builds a Redis Streams publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.Stream == "" {
		cfg.Stream = "records"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.String("component", "transport.redisstreams"))
	}

	var cl client
	var own bool
	if cfg.Client != nil {
		cl = cfg.Client
	} else {
		if cfg.Addr == "" {
			return nil, errors.New("redis addr not configured")
		}
		cl = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		own = true
	}

	return &Publisher{cfg: cfg, client: cl, ownClient: own, logger: cfg.Logger}, nil
}

// Publish appends the event to the stream.
func (p *Publisher) Publish(ctx context.Context, event eventing.Event) error {
	values, err := encodeEvent(event)
	if err != nil {
		return err
	}
	args := &redis.XAddArgs{Stream: p.cfg.Stream, Values: values}
	if p.cfg.MaxLen > 0 {
		args.MaxLen = p.cfg.MaxLen
		args.Approx = true
	}
	return p.client.XAdd(ctx, args).Err()
}

// Close releases the client when this publisher owns it.
func (p *Publisher) Close() error {
	if p.ownClient {
		return p.client.Close()
	}
	return nil
}

func encodeEvent(event eventing.Event) (map[string]any, error) {
	if event.ID == "" {
		return nil, errors.New("event id required")
	}
	values := map[string]any{
		"id":          event.ID,
		"type":        event.Type,
		"entity_type": event.EntityType,
		"entity_id":   event.EntityID,
		"actor":       event.Actor,
		"timestamp":   strconv.FormatInt(event.Timestamp.UnixNano(), 10),
	}
	if len(event.Metadata) > 0 {
		metadata, err := json.Marshal(event.Metadata)
		if err != nil {
			return nil, err
		}
		values["metadata"] = string(metadata)
	}
	return values, nil
}

func decodeEvent(entry redis.XMessage) (eventing.Event, error) {
	event := eventing.Event{
		ID:         stringValue(entry.Values, "id"),
		Type:       stringValue(entry.Values, "type"),
		EntityType: stringValue(entry.Values, "entity_type"),
		EntityID:   stringValue(entry.Values, "entity_id"),
		Actor:      stringValue(entry.Values, "actor"),
	}
	if raw := stringValue(entry.Values, "timestamp"); raw != "" {
		nanos, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return eventing.Event{}, err
		}
		event.Timestamp = time.Unix(0, nanos)
	}
	if raw := stringValue(entry.Values, "metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &event.Metadata); err != nil {
			return eventing.Event{}, err
		}
	}
	return event, nil
}

func stringValue(values map[string]any, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
