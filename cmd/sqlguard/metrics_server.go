package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
	"github.com/sllt/sqlguard/pkg/sqlguard/metrics"
)

type metricServer struct {
	port     int
	provider *metrics.Provider
	logger   logging.Logger
	srv      *http.Server
}

func newMetricServer(port int, provider *metrics.Provider, logger logging.Logger) *metricServer {
	m := &metricServer{port: port, provider: provider, logger: logger}

	m.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           m.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return m
}

func (m *metricServer) handler() http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", otelhttp.NewHandler(metrics.GetHandler(m.provider), "metrics")).Methods(http.MethodGet)
	router.HandleFunc("/.well-known/alive", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	return router
}

// Run blocks until the server stops. A graceful shutdown is not an error.
func (m *metricServer) Run() error {
	m.logger.Infof("Starting metrics server on port: %d", m.port)

	err := m.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		m.logger.Errorf("error while listening to metrics server, err: %v", err)
		return err
	}

	return nil
}

func (m *metricServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return m.srv.Shutdown(ctx)
}
