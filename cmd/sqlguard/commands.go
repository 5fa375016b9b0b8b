package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/sllt/sqlguard/pkg/sqlguard"
	"github.com/sllt/sqlguard/pkg/sqlguard/config"
	sqladapter "github.com/sllt/sqlguard/pkg/sqlguard/datasource/sql"
	"github.com/sllt/sqlguard/pkg/sqlguard/engine"
	"github.com/sllt/sqlguard/pkg/sqlguard/errs"
	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
	"github.com/sllt/sqlguard/pkg/sqlguard/metrics"
	"github.com/sllt/sqlguard/pkg/sqlguard/placeholder"
	"github.com/sllt/sqlguard/pkg/sqlguard/telemetry"
	"github.com/sllt/sqlguard/pkg/sqlguard/validation"
)

type operation int

const (
	opQuery operation = iota
	opGet
	opGetOne
	opExec
)

const nullLiteral = "NULL"

var (
	errMissingSQL   = errors.New("please provide a SQL statement")
	errInvalidInput = errors.New("parameters do not match the statement")
	errConnection   = errors.New(errs.MessageConnection)
)

// parseParams turns command line values into statement params. NULL becomes nil.
func parseParams(args []string) []any {
	params := make([]any, len(args))

	for i, a := range args {
		if a == nullLiteral {
			continue
		}

		params[i] = a
	}

	return params
}

func statementArgs(cmd *cli.Command) (string, []any, error) {
	if !cmd.Args().Present() {
		return "", nil, errMissingSQL
	}

	return cmd.Args().First(), parseParams(cmd.Args().Tail()), nil
}

func countAction(_ context.Context, cmd *cli.Command) error {
	if !cmd.Args().Present() {
		return errMissingSQL
	}

	query := cmd.Args().First()

	fmt.Fprintf(cmd.Root().Writer, "style: %s, placeholders: %d\n", placeholder.Detect(query), placeholder.Count(query))

	return nil
}

func checkAction(_ context.Context, cmd *cli.Command) error {
	query, params, err := statementArgs(cmd)
	if err != nil {
		return err
	}

	// diagnostics are printed below, not logged
	v := validation.New(errs.NewClassifier(errs.SinkFunc(func(errs.Diagnostic) {})))

	if err := v.Validate(query, params); err != nil {
		c, _ := errs.As(err)

		fmt.Fprintf(cmd.Root().Writer, "%s: %s\n%s\n", c.Category, c.UserMessage, c.Detail)

		return errInvalidInput
	}

	fmt.Fprintln(cmd.Root().Writer, "OK")

	return nil
}

func statementAction(op operation) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		query, params, err := statementArgs(cmd)
		if err != nil {
			return err
		}

		logger := logging.NewLogger(logging.INFO)
		cfg := config.NewEnvFile(cmd.Root().String("config-dir"), logger)
		logger.ChangeLevel(logging.GetLevelFromString(cfg.Get("LOG_LEVEL")))

		shutdown, err := telemetry.InitTracer(ctx, cfg, logger)
		if err != nil {
			return err
		}

		defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

		provider, err := metrics.NewPrometheusProvider()
		if err != nil {
			return err
		}

		defer func() { _ = provider.Shutdown(context.WithoutCancel(ctx)) }()

		manager := metrics.NewMetricsManager(provider.Meter("sqlguard"), logger)
		engine.RegisterMetrics(manager)

		conn, err := sqladapter.NewSQL(cfg, logger, manager)
		if err != nil {
			return errConnection
		}

		defer conn.Close()

		db, err := sqlguard.Wrap(conn, conn.Kind(),
			sqlguard.WithLogger(logger),
			sqlguard.WithMetrics(manager),
			sqlguard.WithClassifier(errs.NewClassifier(errs.LoggerSink{Logger: logger})))
		if err != nil {
			return err
		}

		if err := run(ctx, db, op, query, params, cmd.Root().Writer); err != nil {
			return err
		}

		port := cmd.Root().Int("metrics-port")
		if port <= 0 {
			return nil
		}

		g, gctx := errgroup.WithContext(ctx)
		srv := newMetricServer(int(port), provider, logger)

		g.Go(srv.Run)
		g.Go(func() error {
			<-gctx.Done()
			return srv.Shutdown(context.WithoutCancel(gctx))
		})

		return g.Wait()
	}
}

func run(ctx context.Context, db sqlguard.Database, op operation, query string, params []any, out io.Writer) error {
	var (
		res any
		err error
	)

	switch op {
	case opGet:
		res, err = db.Get(ctx, query, params...)
	case opGetOne:
		res, err = db.GetOne(ctx, query, params...)
	case opExec:
		res, err = db.Exec(ctx, query, params...)
	default:
		res, err = db.Query(ctx, query, params...)
	}

	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}
