// Package postgres implements store.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"mdip/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const uniqueViolation = "23505"

// NewPool opens a connection pool for databaseURL.
func NewPool(ctx context.Context, databaseURL string, maxConns int) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}

// mapError converts driver errors into the store sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", store.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

// buildUpdate renders an UPDATE statement for the writable columns in fields.
// Columns are emitted in sorted order so the statement is stable.
func buildUpdate(table string, writable map[string]bool, id int64, fields store.Fields) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, errors.New("no fields to update")
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !writable[col] {
			return "", nil, fmt.Errorf("%s has no writable column %q", table, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, fields[col])
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(cols)+1)
	return sql, args, nil
}

// table bundles the statements shared by every entity store.
type table struct {
	pool     *pgxpool.Pool
	name     string
	entity   string
	writable map[string]bool
}

func (t table) update(ctx context.Context, id int64, fields store.Fields) error {
	sql, args, err := buildUpdate(t.name, t.writable, id, fields)
	if err != nil {
		return store.Wrap("update", t.entity, id, err)
	}

	tag, err := t.pool.Exec(ctx, sql, args...)
	if err != nil {
		return store.Wrap("update", t.entity, id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return store.Wrap("update", t.entity, id, store.ErrNotFound)
	}
	log.Debug().Str("entity", t.entity).Int64("id", id).Int("fields", len(fields)).Msg("Updated row")
	return nil
}

func (t table) delete(ctx context.Context, id int64) error {
	tag, err := t.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), id)
	if err != nil {
		return store.Wrap("delete", t.entity, id, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return store.Wrap("delete", t.entity, id, store.ErrNotFound)
	}
	log.Debug().Str("entity", t.entity).Int64("id", id).Msg("Deleted row")
	return nil
}

func (t table) insert(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	var id int64
	if err := t.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, store.Wrap("insert", t.entity, 0, mapError(err))
	}
	log.Debug().Str("entity", t.entity).Int64("id", id).Msg("Inserted row")
	return id, nil
}

func columns(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}
