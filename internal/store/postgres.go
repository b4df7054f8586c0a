package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx used by Postgres. Satisfied by both
// *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

const (
	listRecordsSQL  = `SELECT data FROM records WHERE resource = $1 ORDER BY position`
	getRecordSQL    = `SELECT data FROM records WHERE resource = $1 AND id = $2`
	deleteRecordSQL = `DELETE FROM records WHERE resource = $1 AND id = $2`
	countRecordsSQL = `SELECT count(*) FROM records WHERE resource = $1`

	insertRecordSQL = `INSERT INTO records (resource, id, data) VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (resource, id) DO NOTHING`

	updateRecordSQL = `UPDATE records SET data = $3::jsonb, updated_at = now()
		WHERE resource = $1 AND id = $2`
)

// Postgres stores records of one resource as JSONB rows in the shared
// records table.
type Postgres[T Record[T]] struct {
	db       DBTX
	resource string
}

// NewPostgres returns a repository for resource backed by db.
func NewPostgres[T Record[T]](db DBTX, resource string) *Postgres[T] {
	return &Postgres[T]{db: db, resource: resource}
}

// Connect opens a pgx pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns > 0 {
		cfg.MinConns = minConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func (p *Postgres[T]) List(ctx context.Context) ([]T, error) {
	rows, err := p.db.Query(ctx, listRecordsSQL, p.resource)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", p.resource, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", p.resource, err)
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.resource, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", p.resource, err)
	}
	return out, nil
}

func (p *Postgres[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	var data []byte
	err := p.db.QueryRow(ctx, getRecordSQL, p.resource, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, fmt.Errorf("get %s %q: %w", p.resource, id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("get %s %q: %w", p.resource, id, err)
	}

	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return zero, fmt.Errorf("decode %s %q: %w", p.resource, id, err)
	}
	return rec, nil
}

func (p *Postgres[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	id := rec.RecordID()
	if id == "" {
		id = uuid.NewString()
	}
	rec = rec.WithID(id)

	data, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", p.resource, err)
	}

	tag, err := p.db.Exec(ctx, insertRecordSQL, p.resource, id, string(data))
	if err != nil {
		return zero, fmt.Errorf("create %s %q: %w", p.resource, id, err)
	}
	if tag.RowsAffected() == 0 {
		return zero, fmt.Errorf("create %s %q: %w", p.resource, id, ErrDuplicateID)
	}
	return rec, nil
}

func (p *Postgres[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	rec = rec.WithID(id)

	data, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", p.resource, err)
	}

	tag, err := p.db.Exec(ctx, updateRecordSQL, p.resource, id, string(data))
	if err != nil {
		return zero, fmt.Errorf("update %s %q: %w", p.resource, id, err)
	}
	if tag.RowsAffected() == 0 {
		return zero, fmt.Errorf("update %s %q: %w", p.resource, id, ErrNotFound)
	}
	return rec, nil
}

func (p *Postgres[T]) Delete(ctx context.Context, id string) error {
	tag, err := p.db.Exec(ctx, deleteRecordSQL, p.resource, id)
	if err != nil {
		return fmt.Errorf("delete %s %q: %w", p.resource, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %q: %w", p.resource, id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored records.
func (p *Postgres[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := p.db.QueryRow(ctx, countRecordsSQL, p.resource).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", p.resource, err)
	}
	return n, nil
}
