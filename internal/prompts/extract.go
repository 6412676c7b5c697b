package prompts

import (
	"context"
	"fmt"
	"promptscrape/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("promptscrape/prompts")

const (
	blockSelector   = "div.box-bun"
	headingSelector = "h2"
	textareaSel     = "textarea"

	// unknown headings at least this similar to a known label are reported
	nearMissSimilarity = 0.9
)

// Extract reads every labelled block of a prompt page. ok is false when no
// block carried a known label, meaning the page is not a prompt page.
func (s *Schema) Extract(ctx context.Context, html, url string) (record Record, ok bool, err error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Record{}, false, fmt.Errorf("parse %s: %w", url, err)
	}

	record = NewRecord(url)
	matched := 0
	doc.Find(blockSelector).Each(func(_ int, box *goquery.Selection) {
		heading := box.Find(headingSelector).First()
		if heading.Length() == 0 {
			return
		}
		label := htmlutil.StrippedText(heading.Nodes[0], "")

		field, known := s.Lookup(label)
		if !known {
			s.reportUnknown(url, label)
			return
		}

		record.set(field, blockContent(box, label))
		matched++
	})

	span.SetAttributes(attribute.Int("matched_blocks", matched))
	if matched == 0 {
		return Record{}, false, nil
	}
	return record, true, nil
}

// blockContent prefers the text of an embedded textarea, otherwise it is
// the block text without the heading label.
func blockContent(box *goquery.Selection, label string) string {
	textarea := box.Find(textareaSel).First()
	if textarea.Length() > 0 {
		return htmlutil.StrippedText(textarea.Nodes[0], "")
	}
	text := htmlutil.StrippedText(box.Nodes[0], "\n")
	return strings.TrimSpace(strings.Replace(text, label, "", 1))
}

func (s *Schema) reportUnknown(url, label string) {
	if s.tel == nil || label == "" {
		return
	}

	var closest string
	var similarity float64
	for _, known := range s.knownLabels() {
		sim := matchr.JaroWinkler(label, known, false)
		if sim > similarity {
			similarity = sim
			closest = known
		}
	}
	if similarity < nearMissSimilarity {
		s.tel.ReportDebug("unknown-label", url, htmlutil.Normalize(label))
		return
	}
	s.tel.ReportWarning("near-miss-label", url, htmlutil.Normalize(label), closest)
}
