// Package adapter defines the contract a driver-binding module implements so sqlguard can talk to it.
//
// Only Adapter is required. Every other interface in this package is an optional capability: an adapter
// implements it when it has a better way of doing that operation than the generic path. Capabilities
// are detected once, by Describe, and stay fixed for the adapter's lifetime.
//
//go:generate mockgen -source=interface.go -destination=mock_interface.go -package=adapter
package adapter

import "context"

// Row is one result row keyed by column name.
type Row map[string]any

// NoRow is returned by single-row fetches when nothing matched. It is a nil Row.
var NoRow Row

// MutationResult reports the outcome of a statement that changes data.
// ChangedRows and WarningCount are nil when the driver does not report them.
type MutationResult struct {
	LastInsertID int64  `json:"lastInsertId"`
	AffectedRows int64  `json:"affectedRows"`
	ChangedRows  *int64 `json:"changedRows,omitempty"`
	WarningCount *int64 `json:"warningCount,omitempty"`
}

// Unit is a unit of work run inside a transaction. The context it receives may carry
// adapter-specific transaction state and must be used for the statements of the unit.
type Unit func(ctx context.Context) (any, error)

// Adapter executes a statement and returns the driver's raw result: either []Row or MutationResult.
type Adapter interface {
	ExecuteRaw(ctx context.Context, conn any, sql string, params []any) (any, error)
}

// RowFetcher returns exactly one row, or NoRow with a nil error when nothing matched.
type RowFetcher interface {
	FetchOne(ctx context.Context, conn any, sql string, params []any) (Row, error)
}

// RowsFetcher returns all rows in order.
type RowsFetcher interface {
	FetchAll(ctx context.Context, conn any, sql string, params []any) ([]Row, error)
}

// Mutator runs a data-changing statement.
type Mutator interface {
	Mutate(ctx context.Context, conn any, sql string, params []any) (any, error)
}

// TxController exposes the individual steps of a transaction on conn.
type TxController interface {
	Begin(ctx context.Context, conn any) error
	Commit(ctx context.Context, conn any) error
	Rollback(ctx context.Context, conn any) error
}

// SessionChecker is implemented by a TxController that can only drive manual transactions on some
// connections, such as a pinned session.
type SessionChecker interface {
	SupportsManualTransactions(conn any) bool
}

// TransactionRunner owns the whole begin/commit/rollback sequence for a unit of work.
// When an adapter implements it, it replaces the generic coordinator.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, conn any, unit Unit) (any, error)
}
