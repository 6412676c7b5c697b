package telemetry

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
		err      bool
	}{
		{input: "", expected: slog.LevelInfo},
		{input: "debug", expected: slog.LevelDebug},
		{input: " WARN ", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "verbose", expected: slog.LevelInfo, err: true},
	}

	for _, test := range testCases {
		level, err := ParseLevel(test.input)
		if test.err {
			require.Error(t, err, test.input)
		} else {
			require.NoError(t, err, test.input)
		}
		require.Equal(t, test.expected, level, test.input)
	}
}

func TestSetup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	tel, err := Setup(ctx, "test:telemetry", Config{})
	require.NoError(t, err)
	require.False(t, tel.Enabled())
	require.NoError(t, tel.Shutdown(ctx))

	tel, err = Setup(ctx, "test:telemetry", Config{
		Otlp: OtlpConfig{
			Traces: OtlpConnConfig{HttpEndpoint: "http://localhost:4318/v1/traces"},
		},
	})
	require.NoError(t, err)
	require.True(t, tel.Enabled())
	require.NotNil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(ctx))
}
