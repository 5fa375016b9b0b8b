package sql

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq" // postgres driver
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/sllt/sqlguard/pkg/sqlguard/adapter"
	"github.com/sllt/sqlguard/pkg/sqlguard/config"
	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
	"github.com/sllt/sqlguard/pkg/sqlguard/metrics"
)

const statsInterval = 10 * time.Second

// DB is an instrumented *sql.DB opened from configuration.
type DB struct {
	*sql.DB

	config  *DBConfig
	logger  logging.Logger
	metrics metrics.Manager

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSQL opens a connection pool from the DB_* keys of cfg. Every statement is traced through otelsql.
// When metrics is not nil, pool statistics are reported every 10 seconds until Close.
func NewSQL(cfg config.Config, logger logging.Logger, metrics metrics.Manager) (*DB, error) {
	dbConfig := ReadConfig(cfg)

	if err := dbConfig.Validate(); err != nil {
		logger.Errorf("could not connect to database: %v", err)
		return nil, err
	}

	dsn, err := dbConfig.DSN()
	if err != nil {
		return nil, err
	}

	db, err := otelsql.Open(dbConfig.driverName(), dsn,
		otelsql.WithAttributes(attribute.String("db.system", dbConfig.Dialect)))
	if err != nil {
		logger.Errorf("could not open connection with '%s' dialect: %v", dbConfig.Dialect, err)
		return nil, err
	}

	db.SetMaxIdleConns(dbConfig.MaxIdleConn)
	db.SetMaxOpenConns(dbConfig.MaxOpenConn)

	if err := db.PingContext(context.Background()); err != nil {
		logger.Errorf("could not connect with '%s' user to '%s' database at '%s:%s', error: %v",
			dbConfig.User, dbConfig.Database, dbConfig.HostName, dbConfig.Port, err)
		_ = db.Close()

		return nil, err
	}

	logger.Infof("connected to '%s' database at '%s:%s'", dbConfig.Database, dbConfig.HostName, dbConfig.Port)

	d := &DB{DB: db, config: dbConfig, logger: logger, metrics: metrics, stop: make(chan struct{})}

	if metrics != nil {
		metrics.NewGauge("app_sql_open_connections", "Number of open SQL connections.")
		metrics.NewGauge("app_sql_inUse_connections", "Number of SQL connections in use.")

		go d.pushDBMetrics()
	}

	return d, nil
}

// Kind is the adapter kind matching the connection's dialect.
func (d *DB) Kind() adapter.Kind {
	return d.config.Kind()
}

func (d *DB) Config() *DBConfig {
	return d.config
}

// Close stops the statistics reporter and closes the pool.
func (d *DB) Close() error {
	d.stopOnce.Do(func() { close(d.stop) })

	return d.DB.Close()
}

func (d *DB) pushDBMetrics() {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			stats := d.DB.Stats()

			d.metrics.SetGauge("app_sql_open_connections", float64(stats.OpenConnections), "kind", d.config.Dialect)
			d.metrics.SetGauge("app_sql_inUse_connections", float64(stats.InUse), "kind", d.config.Dialect)
		}
	}
}
