package sql

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
)

type txKey struct{}

// TxFromContext returns the transaction RunInTransaction bound to ctx, or nil.
func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTransaction opens a transaction on conn, runs unit with the transaction bound to its context and
// commits when unit succeeds. When unit fails the transaction is rolled back and unit's error is returned,
// unless the rollback fails too, in which case the rollback error is returned.
func (a *Adapter) RunInTransaction(ctx context.Context, conn any, unit adapter.Unit) (any, error) {
	b, ok := conn.(txBeginner)
	if !ok {
		return nil, errors.Wrapf(errNoTxSupport, "got %T", conn)
	}

	tx, err := b.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	res, err := unit(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, errors.WithStack(rbErr)
		}

		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.WithStack(err)
	}

	return res, nil
}

// Begin starts a transaction on a pinned session. Statements run through the same *sql.Conn until
// Commit or Rollback belong to it.
func (a *Adapter) Begin(ctx context.Context, conn any) error {
	return a.session(ctx, conn, "BEGIN")
}

func (a *Adapter) Commit(ctx context.Context, conn any) error {
	return a.session(ctx, conn, "COMMIT")
}

func (a *Adapter) Rollback(ctx context.Context, conn any) error {
	return a.session(ctx, conn, "ROLLBACK")
}

// SupportsManualTransactions reports whether conn is a pinned *sql.Conn. A pooled *sql.DB would run BEGIN
// and the statements after it on different connections.
func (*Adapter) SupportsManualTransactions(conn any) bool {
	_, ok := conn.(*sql.Conn)
	return ok
}

func (*Adapter) session(ctx context.Context, conn any, statement string) error {
	c, ok := conn.(*sql.Conn)
	if !ok {
		return errors.Wrapf(errSessionRequired, "%s on %T", statement, conn)
	}

	if _, err := c.ExecContext(ctx, statement); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
