package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"gorecord/audit"
	"gorecord/domain"
)

var auditDDL = []string{
	`CREATE TABLE IF NOT EXISTS audit_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type TEXT NOT NULL,
	entity_id   TEXT NOT NULL,
	operation   TEXT NOT NULL,
	actor       TEXT NOT NULL,
	at          TIMESTAMP NOT NULL,
	details     TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id)`,
}

// AuditStore 审计轨迹的 SQL 存储实现（独立审计表）。
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore 创建审计存储并确保审计表存在。
func NewAuditStore(ctx context.Context, db *sql.DB) (*AuditStore, error) {
	for _, stmt := range auditDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, domain.NewStorageError(err, "create audit_log table")
		}
	}
	return &AuditStore{db: db}, nil
}

func (s *AuditStore) Append(ctx context.Context, rec audit.Record) error {
	var details any
	if len(rec.Details) > 0 {
		encoded, err := json.Marshal(rec.Details)
		if err != nil {
			return domain.NewStorageError(err, "encode audit details")
		}
		details = string(encoded)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO audit_log (entity_type, entity_id, operation, actor, at, details) VALUES (?, ?, ?, ?, ?, ?)",
		rec.EntityType, rec.EntityID, rec.Operation, rec.Actor, rec.At, details)
	if err != nil {
		return domain.NewStorageError(err, "append audit record")
	}
	return nil
}

func (s *AuditStore) ListByEntity(ctx context.Context, entityType, entityID string, offset, limit int) ([]audit.Record, error) {
	if limit <= 0 {
		limit = -1 // sqlite: LIMIT -1 表示不限制
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, entity_type, entity_id, operation, actor, at, details FROM audit_log"+
			" WHERE entity_type = ? AND entity_id = ? ORDER BY id LIMIT ? OFFSET ?",
		entityType, entityID, limit, offset)
	if err != nil {
		return nil, domain.NewStorageError(err, "query audit records")
	}
	defer rows.Close()

	records := []audit.Record{}
	for rows.Next() {
		var rec audit.Record
		var details sql.NullString
		if err := rows.Scan(&rec.ID, &rec.EntityType, &rec.EntityID, &rec.Operation, &rec.Actor, &rec.At, &details); err != nil {
			return nil, domain.NewStorageError(err, "scan audit record")
		}
		if details.Valid {
			if err := json.Unmarshal([]byte(details.String), &rec.Details); err != nil {
				return nil, domain.NewStorageError(err, "decode audit details")
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError(err, "iterate audit records")
	}
	return records, nil
}
