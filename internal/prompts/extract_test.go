package prompts

import (
	"context"
	"os"
	"promptscrape/internal/telemetry"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const pageUrl = "https://nanyo-city.jpn.org/prompt/101.html"

func expectRecord(t testing.TB, url string, values map[Field]string) Record {
	record, err := RecordFromValues(url, values)
	require.NoError(t, err)
	return record
}

func TestExtractFixture(t *testing.T) {
	html, err := os.ReadFile("testdata/prompt.html")
	require.NoError(t, err)

	recorder := &telemetry.RecorderAPI{}
	schema := NewSchema(recorder)

	record, ok, err := schema.Extract(context.Background(), string(html), pageUrl)
	require.NoError(t, err)
	require.True(t, ok)

	expected := expectRecord(t, pageUrl, map[Field]string{
		FieldPurpose: "議事録の要点を3行でまとめる",
		FieldRole:    "市役所の広報担当者\n住民向けの文章に慣れている",
		FieldNotes:   "補足事項は特になし",
	})
	diff := cmp.Diff(expected, record, cmp.AllowUnexported(Record{}))
	if diff != "" {
		t.Fatal(diff)
	}

	require.Equal(t, []string{"unknown-label"}, recorder.IDs("debug"))
	require.Empty(t, recorder.IDs("warning"))
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		ok       bool
		expected map[Field]string
	}{
		{
			name: "textarea is preferred over block text",
			html: `<div class="box-bun"><h2>目的・ねらい</h2><p>ignored</p><textarea>Test Goal</textarea></div>`,
			ok:   true,
			expected: map[Field]string{
				FieldPurpose: "Test Goal",
			},
		},
		{
			name: "label is removed once from block text",
			html: `<div class="box-bun"><h2>出力形式</h2><p>出力形式は表</p></div>`,
			ok:   true,
			expected: map[Field]string{
				FieldOutputFormat: "出力形式は表",
			},
		},
		{
			name: "later block with the same label wins",
			html: `<div class="box-bun"><h2>リソース</h2><p>first</p></div>
				<div class="box-bun"><h2>リソース</h2><p>second</p></div>`,
			ok: true,
			expected: map[Field]string{
				FieldResources: "second",
			},
		},
		{
			name: "known label with empty content still marks a target page",
			html: `<div class="box-bun"><h2>実行指示</h2></div>`,
			ok:   true,
		},
		{
			name: "no known label",
			html: `<div class="box-bun"><h2>お知らせ</h2><p>text</p></div>`,
			ok:   false,
		},
		{
			name: "labels outside blocks are ignored",
			html: `<div class="box"><h2>目的・ねらい</h2><textarea>x</textarea></div>`,
			ok:   false,
		},
		{
			name: "empty document",
			html: ``,
			ok:   false,
		},
	}

	schema := NewSchema(&telemetry.RecorderAPI{})
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			record, ok, err := schema.Extract(context.Background(), test.html, pageUrl)
			require.NoError(t, err)
			require.Equal(t, test.ok, ok)
			if !ok {
				return
			}

			require.Equal(t, pageUrl, record.URL)
			expected := expectRecord(t, pageUrl, test.expected)
			diff := cmp.Diff(expected, record, cmp.AllowUnexported(Record{}))
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestExtractAlias(t *testing.T) {
	schema := NewSchema(&telemetry.RecorderAPI{})
	require.NoError(t, schema.AddAlias("ねらい", "purpose"))

	html := `<div class="box-bun"><h2>ねらい</h2><p>ねらいは要約</p></div>`
	record, ok, err := schema.Extract(context.Background(), html, pageUrl)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ねらいは要約", record.Get(FieldPurpose))
	require.Len(t, record.Row(), len(Columns()))
}

func TestExtractNearMiss(t *testing.T) {
	recorder := &telemetry.RecorderAPI{}
	schema := NewSchema(recorder)

	html := `<div class="box-bun"><h2>評価基準</h2><p>正確さ</p></div>`
	_, ok, err := schema.Extract(context.Background(), html, pageUrl)
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, []string{"near-miss-label"}, recorder.IDs("warning"))
	require.Equal(t, "評価の基準", recorder.Reports[0].Params[2])
}

func TestExtractNearMissTie(t *testing.T) {
	html := `<div class="box-bun"><h2>評価基準C</h2><p>正確さ</p></div>`
	for i := 0; i < 20; i++ {
		recorder := &telemetry.RecorderAPI{}
		schema := NewSchema(recorder)
		require.NoError(t, schema.AddAlias("評価基準B", "evaluation"))
		require.NoError(t, schema.AddAlias("評価基準A", "evaluation"))

		_, ok, err := schema.Extract(context.Background(), html, pageUrl)
		require.NoError(t, err)
		require.False(t, ok)
		require.Equal(t, []string{"near-miss-label"}, recorder.IDs("warning"))
		require.Equal(t, "評価基準A", recorder.Reports[0].Params[2])
	}
}
