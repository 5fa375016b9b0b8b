package engine

import (
	"context"
	"errors"

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
	"github.com/sllt/sqlguard/pkg/sqlguard/errs"
)

// unitError marks a failure returned by the caller's unit so it can be told apart from the adapter's own
// begin, commit or rollback failures once a runner hands it back.
type unitError struct {
	err error
}

func (u *unitError) Error() string { return u.err.Error() }
func (u *unitError) Unwrap() error { return u.err }

// RunInTransaction runs unit inside a transaction.
//
// An adapter that implements adapter.TransactionRunner owns the whole sequence. Otherwise the engine brackets
// unit with Begin and Commit, rolling back when unit fails. Errors returned by unit come back unchanged;
// transaction control failures are classified. When the rollback itself fails, its error is returned and the
// unit's error is only logged. Nesting is not supported.
func (e *Engine) RunInTransaction(ctx context.Context, unit adapter.Unit) (any, error) {
	if r := e.caps.Runner; r != nil {
		return e.runWithRunner(ctx, r, unit)
	}

	if e.caps.Transaction == nil {
		return nil, e.unsupported(ctx)
	}

	if err := e.Begin(ctx); err != nil {
		return nil, err
	}

	res, err := unit(ctx)
	if err != nil {
		if rbErr := e.Rollback(ctx); rbErr != nil {
			e.logger.Errorf("rollback failed after unit error, unit error: %v", describe(err))
			return nil, rbErr
		}

		return nil, err
	}

	if err := e.Commit(ctx); err != nil {
		return nil, err
	}

	return res, nil
}

// runWithRunner hands unit to the adapter's runner. The last failure of unit is kept aside so it is neither
// classified nor lost when the runner reports a rollback failure instead.
func (e *Engine) runWithRunner(ctx context.Context, r adapter.TransactionRunner, unit adapter.Unit) (any, error) {
	var unitErr error

	wrapped := func(ctx context.Context) (any, error) {
		res, err := unit(ctx)
		if err != nil {
			unitErr = err
			return nil, &unitError{err: err}
		}

		unitErr = nil

		return res, nil
	}

	res, err := e.call(ctx, "runInTransaction", "", nil, func(ctx context.Context) (any, error) {
		return r.RunInTransaction(ctx, e.conn, wrapped)
	})

	var ue *unitError

	switch {
	case errors.As(err, &ue):
		return nil, ue.err
	case unitErr != nil && err != nil:
		e.logger.Errorf("rollback failed after unit error, unit error: %v", describe(unitErr))
		return nil, err
	case unitErr != nil:
		return nil, unitErr
	}

	return res, err
}

// Begin starts a transaction on the engine's connection.
func (e *Engine) Begin(ctx context.Context) error {
	return e.control(ctx, "begin", func(ctx context.Context, tc adapter.TxController) error {
		return tc.Begin(ctx, e.conn)
	})
}

func (e *Engine) Commit(ctx context.Context) error {
	return e.control(ctx, "commit", func(ctx context.Context, tc adapter.TxController) error {
		return tc.Commit(ctx, e.conn)
	})
}

func (e *Engine) Rollback(ctx context.Context) error {
	return e.control(ctx, "rollback", func(ctx context.Context, tc adapter.TxController) error {
		return tc.Rollback(ctx, e.conn)
	})
}

func (e *Engine) control(ctx context.Context, op string, fn func(ctx context.Context, tc adapter.TxController) error) error {
	tc := e.caps.Transaction
	if tc == nil {
		return e.unsupported(ctx)
	}

	_, err := e.call(ctx, op, "", nil, func(ctx context.Context) (any, error) {
		return nil, fn(ctx, tc)
	})

	return err
}

func (e *Engine) unsupported(ctx context.Context) error {
	err := e.classifier.Configuration("transactions requested from an adapter without transaction support",
		adapter.ErrTransactionsUnsupported)
	e.countError(ctx, err.Category)

	return err
}

func describe(err error) string {
	if c, ok := errs.As(err); ok {
		return c.ID + " " + c.Category.String()
	}

	return err.Error()
}
