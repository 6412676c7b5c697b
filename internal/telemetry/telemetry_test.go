package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recorder := &RecorderAPI{}
	scoped := NewScopedAPI("crawler", recorder)

	scoped.ReportWarning("fetch-failed", "https://example.com", "timeout")
	scoped.ReportCount("found", 3)
	NewScopedAPI("outer", scoped).ReportBroken("write")

	require.Equal(t, []string{"crawler:fetch-failed"}, recorder.IDs("warning"))
	require.Equal(t, []string{"crawler:found"}, recorder.IDs("count"))
	require.Equal(t, []string{"outer:crawler:write"}, recorder.IDs("broken"))
	require.Equal(t, []any{"https://example.com", "timeout"}, recorder.Reports[0].Params)
	require.EqualValues(t, 3, recorder.Reports[1].Count)
}
