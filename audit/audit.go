// Package audit 提供生命周期操作的审计轨迹。
// 审计记录由生命周期服务在每次变更成功后写入，
// 存储实现可为独立审计表（storage/sqlite）或内存（本包 MemoryStore）。
package audit

import (
	"context"
	"sync"
	"time"
)

// 审计操作类型。
const (
	OpCreate     = "CREATE"
	OpUpdate     = "UPDATE"
	OpDelete     = "DELETE"
	OpRestore    = "RESTORE"
	OpDeleteHard = "DELETE_HARD"
)

// Record 一条审计记录。
type Record struct {
	ID         int64          `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Operation  string         `json:"operation"`
	Actor      string         `json:"actor"`
	At         time.Time      `json:"at"`
	Details    map[string]any `json:"details,omitempty"`
}

// IStore 审计记录存储接口。
type IStore interface {
	// Append 追加一条审计记录。
	Append(ctx context.Context, rec Record) error

	// ListByEntity 按实体维度查询审计轨迹（offset/limit 分页，按写入顺序）。
	ListByEntity(ctx context.Context, entityType, entityID string, offset, limit int) ([]Record, error)
}

// MemoryStore 内存审计存储，适用于测试与单机部署。
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []Record
}

// NewMemoryStore 创建内存审计存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) ListByEntity(ctx context.Context, entityType, entityID string, offset, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Record, 0)
	for _, rec := range s.records {
		if rec.EntityType == entityType && rec.EntityID == entityID {
			matched = append(matched, rec)
		}
	}
	if offset >= len(matched) {
		return []Record{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// All 返回全部审计记录的副本（测试辅助）。
func (s *MemoryStore) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
