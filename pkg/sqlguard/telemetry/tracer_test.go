package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sllt/sqlguard/pkg/sqlguard/config"
	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
)

func TestInitTracer(t *testing.T) {
	tests := []struct {
		desc    string
		conf    map[string]string
		wantErr error
	}{
		{desc: "disabled", conf: map[string]string{}},
		{desc: "unknown exporter", conf: map[string]string{"TRACE_EXPORTER": "jaeger", "TRACER_URL": "localhost:1"},
			wantErr: errUnsupportedExporter},
		{desc: "missing url", conf: map[string]string{"TRACE_EXPORTER": "zipkin"}, wantErr: errMissingTracerURL},
		{desc: "zipkin", conf: map[string]string{"TRACE_EXPORTER": "zipkin",
			"TRACER_URL": "http://localhost:9411/api/v2/spans"}},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			logs := &bytes.Buffer{}

			shutdown, err := InitTracer(context.Background(), config.NewMockConfig(tc.conf),
				logging.NewWriterLogger(logging.DEBUG, logs))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, shutdown)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}
