// Package engine runs statements against an adapter with parameter validation, error classification and
// instrumentation around every call.
package engine

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
	"github.com/sllt/sqlguard/pkg/sqlguard/errs"
	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
	"github.com/sllt/sqlguard/pkg/sqlguard/metrics"
	"github.com/sllt/sqlguard/pkg/sqlguard/validation"
)

const unknownKind = "unknown"

// Engine binds an adapter to one connection. It holds no mutable state after New and may be shared,
// though statements on the same connection must still be serialized by the caller.
type Engine struct {
	adapter adapter.Adapter
	conn    any
	caps    adapter.Capabilities
	kind    string

	logger     logging.Logger
	metrics    metrics.Manager
	tracer     trace.Tracer
	classifier *errs.Classifier
	validator  *validation.Validator
}

type Option func(*Engine)

// WithLogger sets the logger used for per-call debug records and transaction warnings.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMetrics records call latency and failures into m. The instruments must exist, see RegisterMetrics.
func WithMetrics(m metrics.Manager) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithClassifier replaces errs.Default(), usually to route diagnostics to a custom sink.
func WithClassifier(c *errs.Classifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithKind sets the adapter kind reported in logs, spans and metric labels.
func WithKind(k adapter.Kind) Option {
	return func(e *Engine) {
		e.kind = k.String()
	}
}

// New creates an Engine. The adapter's capabilities are inspected here, once, against conn.
func New(a adapter.Adapter, conn any, opts ...Option) *Engine {
	e := &Engine{
		adapter: a,
		conn:    conn,
		caps:    adapter.DescribeFor(a, conn),
		kind:    unknownKind,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewLogger(logging.INFO)
	}

	if e.tracer == nil {
		e.tracer = otel.GetTracerProvider().Tracer("sqlguard")
	}

	if e.classifier == nil {
		e.classifier = errs.Default()
	}

	e.validator = validation.New(e.classifier)

	return e
}

func (e *Engine) Adapter() adapter.Adapter           { return e.adapter }
func (e *Engine) Connection() any                    { return e.conn }
func (e *Engine) Capabilities() adapter.Capabilities { return e.caps }
func (e *Engine) Classifier() *errs.Classifier       { return e.classifier }
func (e *Engine) Kind() string                       { return e.kind }

// Run validates params and executes sql through ExecuteRaw. The raw result is returned unchanged.
func (e *Engine) Run(ctx context.Context, sql string, params []any) (any, error) {
	if err := e.validate(ctx, sql, params); err != nil {
		return nil, err
	}

	return e.call(ctx, "executeRaw", sql, params, func(ctx context.Context) (any, error) {
		return e.adapter.ExecuteRaw(ctx, e.conn, sql, params)
	})
}

// FetchOne returns the first row of the result, or nil when there is none.
func (e *Engine) FetchOne(ctx context.Context, sql string, params []any) (adapter.Row, error) {
	if f := e.caps.FetchOne; f != nil {
		if err := e.validate(ctx, sql, params); err != nil {
			return nil, err
		}

		res, err := e.call(ctx, "fetchOne", sql, params, func(ctx context.Context) (any, error) {
			return f.FetchOne(ctx, e.conn, sql, params)
		})
		if err != nil {
			return nil, err
		}

		row, _ := res.(adapter.Row)

		return row, nil
	}

	res, err := e.Run(ctx, sql, params)
	if err != nil {
		return nil, err
	}

	return firstRow(res), nil
}

// FetchAll returns every row of the result. The slice is never nil on success.
func (e *Engine) FetchAll(ctx context.Context, sql string, params []any) ([]adapter.Row, error) {
	var (
		res any
		err error
	)

	if f := e.caps.FetchAll; f != nil {
		if err = e.validate(ctx, sql, params); err != nil {
			return nil, err
		}

		res, err = e.call(ctx, "fetchAll", sql, params, func(ctx context.Context) (any, error) {
			return f.FetchAll(ctx, e.conn, sql, params)
		})
	} else {
		res, err = e.Run(ctx, sql, params)
	}

	if err != nil {
		return nil, err
	}

	return toRows(res), nil
}

// Mutate runs a data-changing statement and returns the adapter's result unchanged.
func (e *Engine) Mutate(ctx context.Context, sql string, params []any) (any, error) {
	m := e.caps.Mutate
	if m == nil {
		return e.Run(ctx, sql, params)
	}

	if err := e.validate(ctx, sql, params); err != nil {
		return nil, err
	}

	return e.call(ctx, "mutate", sql, params, func(ctx context.Context) (any, error) {
		return m.Mutate(ctx, e.conn, sql, params)
	})
}

func (e *Engine) validate(ctx context.Context, sql string, params []any) error {
	err := e.validator.Validate(sql, params)
	if err != nil {
		if c, ok := errs.CategoryOf(err); ok {
			e.countError(ctx, c)
		}
	}

	return err
}

// call makes exactly one adapter call, instrumented, and classifies its failure.
func (e *Engine) call(ctx context.Context, op, sql string, params []any, fn func(ctx context.Context) (any, error)) (any, error) {
	ctx, span := e.tracer.Start(ctx, "sqlguard."+op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", e.kind), attribute.String("db.statement", sql)))
	defer span.End()

	start := time.Now()
	res, err := fn(ctx)

	e.sendStats(ctx, start, op, sql, params)

	var ue *unitError
	if errors.As(err, &ue) {
		span.RecordError(ue.err)
		span.SetStatus(codes.Error, "unit failed")

		return nil, err
	}

	if err != nil {
		classified := e.classify(ctx, err, sql, params)

		span.RecordError(classified)
		span.SetStatus(codes.Error, classified.Category.String())

		return nil, classified
	}

	return res, nil
}

func (e *Engine) classify(ctx context.Context, err error, sql string, params []any) *errs.Error {
	if c, ok := errs.As(err); ok {
		return c
	}

	var c *errs.Error

	if errors.Is(err, adapter.ErrTransactionsUnsupported) {
		c = e.classifier.Configuration(err.Error(), err)
	} else {
		c = e.classifier.Classify(err, sql, params)
	}

	e.countError(ctx, c.Category)

	return c
}

func (e *Engine) sendStats(ctx context.Context, start time.Time, op, sql string, params []any) {
	elapsed := time.Since(start)

	logging.NewContextLogger(ctx, e.logger).Debug(&Log{
		Type:     op,
		Kind:     e.kind,
		Query:    sql,
		Duration: elapsed.Microseconds(),
		Args:     params,
	})

	if e.metrics != nil {
		queryType := operationType(sql)
		if queryType == "" {
			queryType = op
		}

		e.metrics.RecordHistogram(ctx, statsHistogram, float64(elapsed.Microseconds())/1e3,
			"kind", e.kind, "type", queryType)
	}
}

func (e *Engine) countError(ctx context.Context, c errs.Category) {
	if e.metrics != nil {
		e.metrics.IncrementCounter(ctx, errorsCounter, "kind", e.kind, "category", c.String())
	}
}

func firstRow(res any) adapter.Row {
	switch rows := res.(type) {
	case []adapter.Row:
		if len(rows) > 0 {
			return rows[0]
		}
	case []map[string]any:
		if len(rows) > 0 {
			return rows[0]
		}
	}

	return nil
}

func toRows(res any) []adapter.Row {
	switch rows := res.(type) {
	case []adapter.Row:
		if rows == nil {
			return []adapter.Row{}
		}

		return rows
	case []map[string]any:
		out := make([]adapter.Row, len(rows))
		for i, r := range rows {
			out[i] = r
		}

		return out
	default:
		return []adapter.Row{}
	}
}
