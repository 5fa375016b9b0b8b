// Package sqlguard wraps a database connection so that every statement has its parameters validated
// before it is sent, and every driver failure comes back as a classified *errs.Error carrying a
// display-safe message.
//
//	db, err := sqlguard.Wrap(conn, adapter.KindMySQL)
//	if err != nil {
//		return err
//	}
//
//	user, err := db.GetOne(ctx, "SELECT * FROM users WHERE id = ?", id)
//
// The value returned by Wrap only implements TxDatabase and Transactor when the adapter for kind
// supports transactions, so a type assertion tells callers what they can do.
package sqlguard

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
	sqladapter "github.com/sllt/sqlguard/pkg/sqlguard/datasource/sql"
	"github.com/sllt/sqlguard/pkg/sqlguard/engine"
	"github.com/sllt/sqlguard/pkg/sqlguard/errs"
	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
	"github.com/sllt/sqlguard/pkg/sqlguard/metrics"
)

// Database runs statements through the engine. Params are positional, in placeholder order. A single
// nil argument, as in Query(ctx, sql, nil), means no params.
type Database interface {
	// Query returns the adapter's raw result.
	Query(ctx context.Context, sql string, params ...any) (any, error)
	// GetOne returns the first row, or nil when nothing matched.
	GetOne(ctx context.Context, sql string, params ...any) (adapter.Row, error)
	// Get returns all rows. The slice is empty, not nil, when nothing matched.
	Get(ctx context.Context, sql string, params ...any) ([]adapter.Row, error)
	// Exec runs a data-changing statement.
	Exec(ctx context.Context, sql string, params ...any) (any, error)

	Connection() any
	Adapter() adapter.Adapter
	Engine() *engine.Engine
	Capabilities() adapter.Capabilities
}

// Transactor is implemented when the adapter can run a unit of work in a transaction.
type Transactor interface {
	Database
	Transaction(ctx context.Context, unit adapter.Unit) (any, error)
}

// TxDatabase is implemented when the adapter exposes begin, commit and rollback individually.
type TxDatabase interface {
	Transactor
	BeginTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type options struct {
	engineOpts []engine.Option
	classifier *errs.Classifier
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, engine.WithLogger(l)) }
}

// WithMetrics records into m. Call engine.RegisterMetrics(m) once beforehand.
func WithMetrics(m metrics.Manager) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, engine.WithMetrics(m)) }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, engine.WithTracer(t)) }
}

// WithClassifier routes diagnostics, including wrap-time configuration errors, through c.
func WithClassifier(c *errs.Classifier) Option {
	return func(o *options) { o.classifier = c }
}

var registerBundled sync.Once

// Wrap binds conn to the adapter registered for kind in the default registry. The bundled database/sql
// adapters are registered on first use for every kind that has no adapter yet.
func Wrap(conn any, kind adapter.Kind, opts ...Option) (Database, error) {
	registerBundled.Do(func() {
		reg := adapter.DefaultRegistry()

		for _, k := range adapter.Kinds() {
			if !reg.IsRegistered(k) {
				_ = reg.Register(k, sqladapter.New(k))
			}
		}
	})

	return WrapWith(conn, kind, adapter.DefaultRegistry(), opts...)
}

// WrapWith is Wrap with an explicit registry. Failures are CONFIGURATION errors.
func WrapWith(conn any, kind adapter.Kind, reg *adapter.Registry, opts ...Option) (Database, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.classifier == nil {
		o.classifier = errs.Default()
	}

	if conn == nil {
		return nil, o.classifier.Configuration("connection is required", nil)
	}

	if kind == "" {
		return nil, o.classifier.Configuration("adapter kind is required", nil)
	}

	a, err := reg.Get(kind)
	if err != nil {
		return nil, o.classifier.Configuration(err.Error(), err)
	}

	engineOpts := append([]engine.Option{engine.WithKind(kind), engine.WithClassifier(o.classifier)}, o.engineOpts...)
	e := engine.New(a, conn, engineOpts...)

	return compose(e), nil
}

// compose picks the narrowest type exposing exactly the engine's capabilities.
func compose(e *engine.Engine) Database {
	base := &database{engine: e}
	caps := e.Capabilities()

	switch {
	case caps.HasManualTransactions():
		return &txDatabase{transactor: transactor{base}}
	case caps.HasTransactions():
		return &transactor{base}
	default:
		return base
	}
}

type database struct {
	engine *engine.Engine
}

func (d *database) Query(ctx context.Context, sql string, params ...any) (any, error) {
	return d.engine.Run(ctx, sql, args(params))
}

func (d *database) GetOne(ctx context.Context, sql string, params ...any) (adapter.Row, error) {
	return d.engine.FetchOne(ctx, sql, args(params))
}

func (d *database) Get(ctx context.Context, sql string, params ...any) ([]adapter.Row, error) {
	return d.engine.FetchAll(ctx, sql, args(params))
}

func (d *database) Exec(ctx context.Context, sql string, params ...any) (any, error) {
	return d.engine.Mutate(ctx, sql, args(params))
}

// args maps a lone untyped nil to absent params.
func args(params []any) []any {
	if len(params) == 1 && params[0] == nil {
		return nil
	}

	return params
}

func (d *database) Connection() any                    { return d.engine.Connection() }
func (d *database) Adapter() adapter.Adapter           { return d.engine.Adapter() }
func (d *database) Engine() *engine.Engine             { return d.engine }
func (d *database) Capabilities() adapter.Capabilities { return d.engine.Capabilities() }

type transactor struct {
	*database
}

func (t *transactor) Transaction(ctx context.Context, unit adapter.Unit) (any, error) {
	return t.engine.RunInTransaction(ctx, unit)
}

type txDatabase struct {
	transactor
}

func (d *txDatabase) BeginTransaction(ctx context.Context) error { return d.engine.Begin(ctx) }
func (d *txDatabase) Commit(ctx context.Context) error           { return d.engine.Commit(ctx) }
func (d *txDatabase) Rollback(ctx context.Context) error         { return d.engine.Rollback(ctx) }

// InTransaction runs fn in a transaction on db and returns its typed result. db must implement Transactor.
func InTransaction[T any](ctx context.Context, db Database, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	t, ok := db.(Transactor)
	if !ok {
		e := db.Engine()
		return zero, e.Classifier().Configuration("transactions requested from an adapter without transaction support",
			adapter.ErrTransactionsUnsupported)
	}

	res, err := t.Transaction(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}

	v, _ := res.(T)

	return v, nil
}
