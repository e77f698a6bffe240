package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Row is one result row keyed by column name.
type Row = map[string]any

// Result is the outcome of a single statement.
//
// RowCount is the number of rows the store reports as matched or affected.
// Writes issued with RETURNING report the same count through both
// executor implementations.
type Result struct {
	Rows     []Row
	RowCount int64
}

// Executor runs exactly one parameterized statement against the store.
//
// Arguments are always bound positionally ($1, $2, ...). Any failure
// (connectivity, constraint, syntax) is returned as an error; a statement
// that succeeds without touching rows returns a Result with RowCount 0.
type Executor interface {
	Execute(ctx context.Context, sql string, args ...any) (*Result, error)
}

// slowQueryLog warns about statements slower than the configured threshold.
type slowQueryLog struct {
	log       *zerolog.Logger
	threshold time.Duration
}

func (s slowQueryLog) observe(query string, start time.Time) {
	elapsed := time.Since(start)
	if s.log == nil || s.threshold <= 0 || elapsed < s.threshold {
		return
	}

	s.log.Warn().
		Str("sql", query).
		Dur("duration", elapsed).
		Dur("threshold", s.threshold).
		Msg("slow query")
}

// PoolExecutor executes statements on a pgx connection pool.
type PoolExecutor struct {
	pool *pgxpool.Pool
	slowQueryLog
}

// NewPoolExecutor wraps pool. A zero threshold disables slow query logging.
func NewPoolExecutor(pool *pgxpool.Pool, logger *zerolog.Logger, slowQueryThreshold time.Duration) *PoolExecutor {
	return &PoolExecutor{
		pool:         pool,
		slowQueryLog: slowQueryLog{log: logger, threshold: slowQueryThreshold},
	}
}

// Execute borrows one pooled connection for the statement and collects every
// returned row.
func (e *PoolExecutor) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	start := time.Now()
	defer e.observe(query, start)

	rows, err := e.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// CollectRows closes rows, after which the command tag is final.
	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	return &Result{
		Rows:     collected,
		RowCount: rows.CommandTag().RowsAffected(),
	}, nil
}

// SQLExecutor executes statements through database/sql.
type SQLExecutor struct {
	db *sql.DB
	slowQueryLog
}

// NewSQLExecutor wraps db. A zero threshold disables slow query logging.
func NewSQLExecutor(db *sql.DB, logger *zerolog.Logger, slowQueryThreshold time.Duration) *SQLExecutor {
	return &SQLExecutor{
		db:           db,
		slowQueryLog: slowQueryLog{log: logger, threshold: slowQueryThreshold},
	}
}

// Execute runs the statement with QueryContext and scans every row into a Row.
//
// database/sql exposes no affected count for queries, so RowCount is the
// number of returned rows; writes must use RETURNING to be counted.
func (e *SQLExecutor) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	start := time.Now()
	defer e.observe(query, start)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	result := &Result{Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			// Drivers hand text back as []byte; rows are decoded as strings.
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.RowCount = int64(len(result.Rows))
	return result, nil
}
