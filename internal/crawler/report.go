package crawler

import (
	"io"
	"promptscrape/internal/prompts"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderStats writes a summary table of a finished run.
func RenderStats(w io.Writer, stats Stats, output string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Stat", "Value"})
	if stats.RunID != "" {
		t.AppendRow(table.Row{"run", stats.RunID})
	}
	t.AppendRows([]table.Row{
		{"checked", stats.Checked},
		{"found", stats.Found},
		{"no target", stats.NoTarget},
		{"skipped", stats.Skipped},
		{"records", stats.Records},
		{"checkpoints", stats.Checkpoints},
		{"duration", stats.Duration.Round(time.Millisecond).String()},
		{"interrupted", strconv.FormatBool(stats.Interrupted)},
	})
	if stats.Records > 0 {
		t.AppendFooter(table.Row{"output", output})
	}
	t.Render()
}

const previewWidth = 40

// RenderRecords writes one table per record, listing the non-empty fields.
func RenderRecords(w io.Writer, records []prompts.Record) {
	for _, record := range records {
		t := newTable(w)
		t.SetTitle(record.URL)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: previewWidth, WidthMaxEnforcer: text.WrapSoft},
		})
		for _, f := range prompts.Fields() {
			value := record.Get(f)
			if value == "" {
				continue
			}
			t.AppendRow(table.Row{f.Label(), preview(value)})
		}
		t.Render()
	}
}

func preview(value string) string {
	if utf8.RuneCountInString(value) <= previewWidth*4 {
		return value
	}
	runes := []rune(value)
	return string(runes[:previewWidth*4]) + "…"
}
