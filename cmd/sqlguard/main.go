package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// CLIVersion is reported by --version.
const CLIVersion = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "sqlguard",
		Usage:   "Validate SQL parameters and run statements with classified errors",
		Version: CLIVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "Folder holding .env, .<APP_ENV>.env and config.yaml",
				Value: "./configs",
			},
			&cli.IntFlag{
				Name:  "metrics-port",
				Usage: "Serve Prometheus metrics on this port after the statement ran, until interrupted",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "Print the placeholder style and count of a statement",
				ArgsUsage: "<sql>",
				Action:    countAction,
			},
			{
				Name:      "check",
				Usage:     "Validate parameters against a statement without running it",
				ArgsUsage: "<sql> [params...]",
				Action:    checkAction,
			},
			{
				Name:      "query",
				Usage:     "Run a statement and print the raw result",
				ArgsUsage: "<sql> [params...]",
				Action:    statementAction(opQuery),
			},
			{
				Name:      "get",
				Usage:     "Run a query and print all rows",
				ArgsUsage: "<sql> [params...]",
				Action:    statementAction(opGet),
			},
			{
				Name:      "get-one",
				Usage:     "Run a query and print the first row",
				ArgsUsage: "<sql> [params...]",
				Action:    statementAction(opGetOne),
			},
			{
				Name:      "exec",
				Usage:     "Run a data-changing statement and print its result",
				ArgsUsage: "<sql> [params...]",
				Action:    statementAction(opExec),
			},
		},
	}
}
