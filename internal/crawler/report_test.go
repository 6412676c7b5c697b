package crawler

import (
	"bytes"
	"promptscrape/internal/prompts"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRenderStats(t *testing.T) {
	out := &bytes.Buffer{}
	RenderStats(out, Stats{
		Checked:  601,
		Found:    12,
		Records:  12,
		Duration: 90 * time.Second,
	}, "nanyo_prompts.csv")

	text := out.String()
	require.Contains(t, text, "601")
	require.Contains(t, text, "nanyo_prompts.csv")
	require.Contains(t, text, "1m30s")
}

func TestRenderRecords(t *testing.T) {
	record, err := prompts.RecordFromValues("https://example.com/1.html", map[prompts.Field]string{
		prompts.FieldRole:  "広報担当",
		prompts.FieldNotes: strings.Repeat("あ", previewWidth*5),
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	RenderRecords(out, []prompts.Record{record})
	text := out.String()
	require.Contains(t, text, "あなたの役割")
	require.Contains(t, text, "広報担当")
	require.NotContains(t, text, "前提条件")
	require.Contains(t, text, "…")
}
