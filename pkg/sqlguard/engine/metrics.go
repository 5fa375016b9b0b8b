package engine

import (
	"github.com/sllt/sqlguard/pkg/sqlguard/metrics"
)

const (
	statsHistogram = "app_sql_stats"
	errorsCounter  = "app_sql_errors"
)

// RegisterMetrics creates the instruments an Engine records into. Call it once per Manager, before
// handing the Manager to engines.
func RegisterMetrics(m metrics.Manager) {
	m.NewHistogram(statsHistogram, "Response time of SQL queries in milliseconds.",
		.05, .075, .1, .125, .15, .2, .3, .5, .75, 1, 2, 3, 4, 5, 7.5, 10)
	m.NewCounter(errorsCounter, "Number of failed SQL operations by error category.")
}
