// Package natsjetstream publishes lifecycle events to a NATS JetStream stream.
package natsjetstream

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"gorecord/eventing"
	"gorecord/logging"
)

// Config configures the JetStream publisher.
type Config struct {
	URL           string
	Stream        string
	SubjectPrefix string
	Logger        logging.Logger
	Conn          *nats.Conn

	// 可选：流参数
	Retention string // limits|workqueue|interest（默认 limits）
	MaxBytes  int64  // 0 表示不设置
	MaxAge    time.Duration
	Replicas  int
}

// Publisher implements eventing.IPublisher on top of NATS JetStream.
type Publisher struct {
	cfg      Config
	logger   logging.Logger
	conn     *nats.Conn
	js       nats.JetStreamContext
	ownsConn bool

	mu     sync.Mutex
	closed bool
}

// NewPublisher connects (unless a Conn is supplied) and ensures the stream exists.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.Stream == "" {
		cfg.Stream = "RECORDS"
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "records."
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.String("component", "transport.nats"))
	}

	p := &Publisher{cfg: cfg, logger: cfg.Logger}
	if cfg.Conn != nil {
		p.conn = cfg.Conn
	} else {
		url := cfg.URL
		if url == "" {
			url = nats.DefaultURL
		}
		conn, err := nats.Connect(url)
		if err != nil {
			return nil, err
		}
		p.conn = conn
		p.ownsConn = true
	}

	js, err := p.conn.JetStream()
	if err != nil {
		if p.ownsConn {
			p.conn.Close()
		}
		return nil, err
	}
	p.js = js

	if err := p.ensureStream(); err != nil {
		if p.ownsConn {
			p.conn.Close()
		}
		return nil, err
	}
	return p, nil
}

// Publish sends one event. The event ID doubles as the JetStream message ID,
// so retries after a transient failure are deduplicated server side.
func (p *Publisher) Publish(ctx context.Context, event eventing.Event) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return errors.New("nats publisher closed")
	}

	data, err := encodeEvent(event)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(p.subjectName(event), data, nats.MsgId(event.ID), nats.Context(ctx))
	return err
}

// Close releases the connection when this publisher owns it.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.ownsConn && p.conn != nil {
		p.conn.Close()
	}
	return nil
}

func (p *Publisher) ensureStream() error {
	_, err := p.js.StreamInfo(p.cfg.Stream)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrStreamNotFound) && !strings.Contains(err.Error(), "stream not found") {
		return err
	}

	retention := nats.LimitsPolicy
	switch strings.ToLower(p.cfg.Retention) {
	case "workqueue":
		retention = nats.WorkQueuePolicy
	case "interest":
		retention = nats.InterestPolicy
	}
	sc := &nats.StreamConfig{
		Name:      p.cfg.Stream,
		Subjects:  []string{p.cfg.SubjectPrefix + ">"},
		Retention: retention,
	}
	if p.cfg.MaxBytes > 0 {
		sc.MaxBytes = p.cfg.MaxBytes
	}
	if p.cfg.MaxAge > 0 {
		sc.MaxAge = p.cfg.MaxAge
	}
	if p.cfg.Replicas > 0 {
		sc.Replicas = p.cfg.Replicas
	}
	_, err = p.js.AddStream(sc)
	return err
}

// subjectName maps "record.created" to "<prefix>note.created" style subjects:
// the entity type comes first so consumers can subscribe per entity.
func (p *Publisher) subjectName(event eventing.Event) string {
	op := strings.TrimPrefix(event.Type, "record.")
	return p.cfg.SubjectPrefix + event.EntityType + "." + op
}

func encodeEvent(event eventing.Event) ([]byte, error) {
	if event.ID == "" {
		return nil, errors.New("event id required")
	}
	return json.Marshal(event)
}

func decodeEvent(data []byte) (eventing.Event, error) {
	var event eventing.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return eventing.Event{}, err
	}
	return event, nil
}
