// Package sql provides sqlguard adapters for MySQL, PostgreSQL and SQLite on top of database/sql.
// The same Adapter type serves all three dialects; the dialect only changes how results are labelled
// and how a connection is opened.
package sql

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
)

var (
	errUnsupportedConn = errors.New("connection does not support ExecContext and QueryContext")
	errSessionRequired = errors.Wrap(adapter.ErrTransactionsUnsupported, "manual transactions require a *sql.Conn")
	errNoTxSupport     = errors.New("connection does not support BeginTx")
)

// Conn is what the adapter needs from a connection. *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Adapter executes statements on a database/sql connection.
type Adapter struct {
	kind adapter.Kind
}

// New returns an adapter for kind.
func New(kind adapter.Kind) *Adapter {
	return &Adapter{kind: kind}
}

func (a *Adapter) Kind() adapter.Kind {
	return a.kind
}

var (
	rowKeywords = map[string]struct{}{
		"SELECT": {}, "SHOW": {}, "WITH": {}, "PRAGMA": {}, "EXPLAIN": {}, "DESCRIBE": {}, "DESC": {}, "VALUES": {},
	}
	returningClause = regexp.MustCompile(`(?i)\bRETURNING\b`)
)

// returnsRows reports whether query produces a result set rather than a mutation summary.
func returnsRows(query string) bool {
	fields := strings.Fields(strings.TrimLeft(query, "( \t\r\n"))
	if len(fields) == 0 {
		return false
	}

	if _, ok := rowKeywords[strings.ToUpper(fields[0])]; ok {
		return true
	}

	return returningClause.MatchString(query)
}

// ExecuteRaw returns []adapter.Row for statements producing rows and adapter.MutationResult otherwise.
func (a *Adapter) ExecuteRaw(ctx context.Context, conn any, query string, params []any) (any, error) {
	if returnsRows(query) {
		return a.FetchAll(ctx, conn, query, params)
	}

	return a.Mutate(ctx, conn, query, params)
}

// FetchOne returns the first row, or adapter.NoRow when the result is empty.
func (a *Adapter) FetchOne(ctx context.Context, conn any, query string, params []any) (adapter.Row, error) {
	rows, err := a.FetchAll(ctx, conn, query, params)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return adapter.NoRow, nil
	}

	return rows[0], nil
}

func (a *Adapter) FetchAll(ctx context.Context, conn any, query string, params []any) ([]adapter.Row, error) {
	exec, err := executor(ctx, conn)
	if err != nil {
		return nil, err
	}

	rows, err := exec.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer rows.Close()

	return scanRows(rows)
}

// Mutate runs query with ExecContext. A statement with a RETURNING clause is run as a query instead and
// its rows are returned.
func (a *Adapter) Mutate(ctx context.Context, conn any, query string, params []any) (any, error) {
	if returningClause.MatchString(query) {
		return a.FetchAll(ctx, conn, query, params)
	}

	exec, err := executor(ctx, conn)
	if err != nil {
		return nil, err
	}

	res, err := exec.ExecContext(ctx, query, params...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return mutationResult(res), nil
}

// executor picks the transaction bound to ctx, if any, and conn otherwise.
func executor(ctx context.Context, conn any) (Conn, error) {
	if tx := TxFromContext(ctx); tx != nil {
		return tx, nil
	}

	c, ok := conn.(Conn)
	if !ok {
		return nil, errors.Wrapf(errUnsupportedConn, "got %T", conn)
	}

	return c, nil
}

func mutationResult(res sql.Result) adapter.MutationResult {
	var out adapter.MutationResult

	// drivers that cannot report a value return an error; the field is left at zero
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = id
	}

	if n, err := res.RowsAffected(); err == nil {
		out.AffectedRows = n
	}

	return out
}

func scanRows(rows *sql.Rows) ([]adapter.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out := make([]adapter.Row, 0)

	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))

		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.WithStack(err)
		}

		row := make(adapter.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}

			row[col] = values[i]
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return out, nil
}
