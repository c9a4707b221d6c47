package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"gorecord/domain"
	"gorecord/domain/record"
	"gorecord/pagination"
)

// Entity 仓储可管理的实体约束。
type Entity interface {
	domain.IRecord[int64]
	record.Carrier
}

// Repo 基于 database/sql 的通用生命周期仓储。
type Repo[T Entity] struct {
	db     *sql.DB
	schema Schema[T]
}

// NewRepo 创建 SQL 仓储实例。
func NewRepo[T Entity](db *sql.DB, schema Schema[T]) *Repo[T] {
	return &Repo[T]{db: db, schema: schema}
}

// EnsureSchema 执行 Schema 携带的建表语句（未提供 DDL 时为无操作）。
func (r *Repo[T]) EnsureSchema(ctx context.Context) error {
	if r.schema.DDL == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, r.schema.DDL); err != nil {
		return domain.NewStorageError(err, "create table %s", r.schema.Table)
	}
	return nil
}

func (r *Repo[T]) selectColumns() string {
	cols := append(append([]string{}, baseColumns...), r.schema.Columns...)
	return strings.Join(cols, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repo[T]) scanRow(row scanner) (T, error) {
	e := r.schema.New()
	meta := e.Meta()

	var deletedAt sql.NullTime
	var deletedBy sql.NullString
	targets := []any{
		&meta.ID, &meta.Version,
		&meta.CreatedAt, &meta.CreatedBy,
		&meta.UpdatedAt, &meta.UpdatedBy,
		&deletedAt, &deletedBy,
	}
	targets = append(targets, r.schema.Fields(e)...)

	var zero T
	if err := row.Scan(targets...); err != nil {
		return zero, err
	}
	if deletedAt.Valid {
		at := deletedAt.Time
		meta.DeletedAt = &at
	}
	if deletedBy.Valid {
		by := deletedBy.String
		meta.DeletedBy = &by
	}
	return e, nil
}

func (r *Repo[T]) findWhere(ctx context.Context, id int64, condition string) (T, error) {
	var zero T
	query := "SELECT " + r.selectColumns() + " FROM " + r.schema.Table + " WHERE id = ?" + condition
	e, err := r.scanRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return zero, domain.NewNotFoundError(id)
		}
		return zero, domain.NewStorageError(err, "query %s by id", r.schema.Table)
	}
	return e, nil
}

func (r *Repo[T]) FindActive(ctx context.Context, id int64) (T, error) {
	return r.findWhere(ctx, id, " AND deleted_at IS NULL")
}

func (r *Repo[T]) FindAny(ctx context.Context, id int64) (T, error) {
	return r.findWhere(ctx, id, "")
}

func (r *Repo[T]) ListActive(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.listWhere(ctx, req, " WHERE deleted_at IS NULL")
}

func (r *Repo[T]) ListDeleted(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.listWhere(ctx, req, " WHERE deleted_at IS NOT NULL")
}

func (r *Repo[T]) ListAll(ctx context.Context, req pagination.Request) (pagination.Page[T], error) {
	return r.listWhere(ctx, req, "")
}

// listWhere 分页下推：总数与窗口各一条语句，结果形状与内存开窗一致。
func (r *Repo[T]) listWhere(ctx context.Context, req pagination.Request, condition string) (pagination.Page[T], error) {
	var zero pagination.Page[T]

	var total int64
	countQuery := "SELECT COUNT(*) FROM " + r.schema.Table + condition
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return zero, domain.NewStorageError(err, "count %s", r.schema.Table)
	}

	query := "SELECT " + r.selectColumns() + " FROM " + r.schema.Table + condition +
		" ORDER BY id LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, req.Size, req.Offset())
	if err != nil {
		return zero, domain.NewStorageError(err, "list %s", r.schema.Table)
	}
	defer rows.Close()

	content := []T{}
	for rows.Next() {
		e, err := r.scanRow(rows)
		if err != nil {
			return zero, domain.NewStorageError(err, "scan %s row", r.schema.Table)
		}
		content = append(content, e)
	}
	if err := rows.Err(); err != nil {
		return zero, domain.NewStorageError(err, "iterate %s rows", r.schema.Table)
	}
	return pagination.New(content, req, total), nil
}

func (r *Repo[T]) Persist(ctx context.Context, e T) (T, error) {
	if e.IsNew() {
		return r.insert(ctx, e)
	}
	return r.update(ctx, e)
}

func (r *Repo[T]) insert(ctx context.Context, e T) (T, error) {
	var zero T
	meta := e.Meta()

	cols := append([]string{
		"version",
		"created_at", "created_by",
		"updated_at", "updated_by",
	}, r.schema.Columns...)
	args := []any{
		int64(0),
		meta.CreatedAt, meta.CreatedBy,
		meta.UpdatedAt, meta.UpdatedBy,
	}
	args = append(args, r.schema.Values(e)...)

	query := "INSERT INTO " + r.schema.Table + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders(len(cols)) + ")"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return zero, domain.NewStorageError(err, "insert into %s", r.schema.Table)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return zero, domain.NewStorageError(err, "read generated id for %s", r.schema.Table)
	}
	meta.ID = id
	meta.Version = 0
	return e, nil
}

func (r *Repo[T]) update(ctx context.Context, e T) (T, error) {
	var zero T
	meta := e.Meta()

	set := "updated_at = ?, updated_by = ?, version = version + 1"
	args := []any{meta.UpdatedAt, meta.UpdatedBy}
	for _, col := range r.schema.Columns {
		set += ", " + col + " = ?"
	}
	args = append(args, r.schema.Values(e)...)
	args = append(args, meta.ID, meta.Version)

	query := "UPDATE " + r.schema.Table + " SET " + set + " WHERE id = ? AND version = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return zero, domain.NewStorageError(err, "update %s", r.schema.Table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return zero, domain.NewStorageError(err, "read affected rows for %s", r.schema.Table)
	}
	if affected == 0 {
		// 区分目标不存在与版本过期
		var n int64
		check := "SELECT COUNT(*) FROM " + r.schema.Table + " WHERE id = ?"
		if err := r.db.QueryRowContext(ctx, check, meta.ID).Scan(&n); err != nil {
			return zero, domain.NewStorageError(err, "check existence in %s", r.schema.Table)
		}
		if n == 0 {
			return zero, domain.NewNotFoundError(meta.ID)
		}
		return zero, domain.NewConcurrencyConflictError(meta.ID)
	}
	meta.Version++
	return e, nil
}

func (r *Repo[T]) MarkDeleted(ctx context.Context, id int64, by string, at time.Time) (int64, error) {
	query := "UPDATE " + r.schema.Table +
		" SET deleted_at = ?, deleted_by = ?, version = version + 1" +
		" WHERE id = ? AND deleted_at IS NULL"
	res, err := r.db.ExecContext(ctx, query, at, by, id)
	if err != nil {
		return 0, domain.NewStorageError(err, "mark %s deleted", r.schema.Table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError(err, "read affected rows for %s", r.schema.Table)
	}
	return affected, nil
}

func (r *Repo[T]) ClearDeleted(ctx context.Context, id int64) (int64, error) {
	query := "UPDATE " + r.schema.Table +
		" SET deleted_at = NULL, deleted_by = NULL, version = version + 1" +
		" WHERE id = ? AND deleted_at IS NOT NULL"
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, domain.NewStorageError(err, "clear %s deletion mark", r.schema.Table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, domain.NewStorageError(err, "read affected rows for %s", r.schema.Table)
	}
	return affected, nil
}

func (r *Repo[T]) EraseAny(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM "+r.schema.Table+" WHERE id = ?", id); err != nil {
		return domain.NewStorageError(err, "delete from %s", r.schema.Table)
	}
	return nil
}

func (r *Repo[T]) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + r.schema.Table + " WHERE id = ? AND deleted_at IS NULL"
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, domain.NewStorageError(err, "check existence in %s", r.schema.Table)
	}
	return n > 0, nil
}

func (r *Repo[T]) CountActive(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, " WHERE deleted_at IS NULL")
}

func (r *Repo[T]) CountDeleted(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, " WHERE deleted_at IS NOT NULL")
}

func (r *Repo[T]) countWhere(ctx context.Context, condition string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.schema.Table+condition).Scan(&n); err != nil {
		return 0, domain.NewStorageError(err, "count %s", r.schema.Table)
	}
	return n, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
