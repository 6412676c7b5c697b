package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"promptscrape/internal/chrono"
	"promptscrape/internal/fetch"
	"promptscrape/internal/prompts"
	"promptscrape/internal/telemetry"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("promptscrape/crawler")
var meter = otel.Meter("promptscrape/crawler")
var pagesCounter, _ = meter.Int64Counter(
	"pages_checked",
	metric.WithDescription("pages checked by outcome"),
)

// IDPlaceholder is replaced by the page id in a url template.
const IDPlaceholder = "{id}"

// FormatURL fills the page id into `template`, zero padding it to `width`
// digits when width > 0.
func FormatURL(template string, id, width int) string {
	return strings.ReplaceAll(template, IDPlaceholder, fmt.Sprintf("%0*d", width, id))
}

// Extractor turns page html into a record, ok is false for pages that
// are not prompt pages.
type Extractor interface {
	Extract(ctx context.Context, html, url string) (record prompts.Record, ok bool, err error)
}

// ResultStore mirrors collected records, it is optional.
type ResultStore interface {
	BeginRun(ctx context.Context, baseUrl string, startId, endId int) (string, error)
	PutRecord(ctx context.Context, runId string, pageId int, record prompts.Record) error
	FinishRun(ctx context.Context, runId string, records int) error
}

type Options struct {
	UrlTemplate     string
	IDWidth         int
	StartID         int
	EndID           int
	CheckpointEvery int

	Fetcher   fetch.Fetcher
	Extractor Extractor
	Snapshot  Snapshotter
	// optional
	Store ResultStore
	// optional, receives one progress line per page
	Progress io.Writer

	Telemetry telemetry.API
	Time      chrono.TimeAPI
}

type Stats struct {
	RunID       string
	Checked     int
	Found       int
	NoTarget    int
	Skipped     int
	Records     int
	Checkpoints int
	Duration    time.Duration
	Interrupted bool
}

type Crawler struct {
	opts Options
	tel  telemetry.API
}

func New(opts Options) (*Crawler, error) {
	if !strings.Contains(opts.UrlTemplate, IDPlaceholder) {
		return nil, fmt.Errorf("url template %q does not contain %s", opts.UrlTemplate, IDPlaceholder)
	}
	if opts.StartID > opts.EndID {
		return nil, fmt.Errorf("start id %d is after end id %d", opts.StartID, opts.EndID)
	}
	// the id loop could never step past it
	if opts.EndID == math.MaxInt {
		return nil, fmt.Errorf("end id %d is out of range", opts.EndID)
	}
	if opts.Fetcher == nil || opts.Extractor == nil || opts.Snapshot == nil {
		return nil, errors.New("fetcher, extractor and snapshot are required")
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}
	if opts.Time == nil {
		opts.Time = chrono.NewStandardTime()
	}
	return &Crawler{
		opts: opts,
		tel:  telemetry.NewScopedAPI("crawler", opts.Telemetry),
	}, nil
}

type outcome string

const (
	outcomeFound    outcome = "found"
	outcomeNoTarget outcome = "no_target"
	outcomeSkipped  outcome = "skipped"
)

func (o outcome) message() string {
	switch o {
	case outcomeFound:
		return "Found!"
	case outcomeNoTarget:
		return "No target table."
	}
	return "Skip (404/Error)."
}

// Run checks every id of the range in ascending order. It only returns an
// error when a snapshot could not be written, fetch and parse failures
// skip the page. Cancelling ctx stops before the next id, the records
// collected so far are still written.
func (c *Crawler) Run(ctx context.Context) (Stats, error) {
	opts := c.opts
	started := opts.Time.Now()
	stats := Stats{}
	collector := NewCollector(opts.Snapshot, opts.CheckpointEvery)

	if opts.Store != nil {
		runId, err := opts.Store.BeginRun(ctx, opts.UrlTemplate, opts.StartID, opts.EndID)
		if err != nil {
			c.tel.ReportBroken("store-begin-run", err)
		}
		stats.RunID = runId
	}

	for id := opts.StartID; id <= opts.EndID; id++ {
		if ctx.Err() != nil {
			stats.Interrupted = true
			break
		}

		url := FormatURL(opts.UrlTemplate, id, opts.IDWidth)
		fmt.Fprintf(opts.Progress, "[%d/%d] Checking: %s... ", id, opts.EndID, url)

		result, record := c.checkPage(ctx, id, url)
		stats.Checked++
		fmt.Fprintln(opts.Progress, result.message())
		pagesCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(result))))

		switch result {
		case outcomeFound:
			stats.Found++
		case outcomeNoTarget:
			stats.NoTarget++
			continue
		default:
			stats.Skipped++
			continue
		}

		err := collector.Add(record)
		if err != nil {
			stats.Records = collector.Len()
			stats.Checkpoints = collector.Checkpoints()
			stats.Duration = opts.Time.Now().Sub(started)
			return stats, err
		}
		if stats.RunID != "" {
			err = opts.Store.PutRecord(ctx, stats.RunID, id, record)
			if err != nil {
				c.tel.ReportBroken("store-put-record", id, err)
			}
		}
	}

	n, err := collector.Close()
	stats.Records = n
	stats.Checkpoints = collector.Checkpoints()
	stats.Duration = opts.Time.Now().Sub(started)
	if err != nil {
		return stats, err
	}
	if n == 0 {
		fmt.Fprintln(opts.Progress, "No data found.")
	}

	if stats.RunID != "" {
		// the run may have been interrupted, its bookkeeping should still land
		err = opts.Store.FinishRun(context.WithoutCancel(ctx), stats.RunID, n)
		if err != nil {
			c.tel.ReportBroken("store-finish-run", err)
		}
	}
	c.tel.ReportCount("records", int64(n))
	return stats, nil
}

func (c *Crawler) checkPage(ctx context.Context, id int, url string) (outcome, prompts.Record) {
	ctx, span := tracer.Start(ctx, "checkPage")
	defer span.End()
	span.SetAttributes(
		attribute.Int("id", id),
		attribute.String("url", url),
	)

	html, err := c.opts.Fetcher.Fetch(ctx, url)
	if fetch.Absent(err) {
		span.SetAttributes(attribute.String("outcome", string(outcomeSkipped)))
		c.tel.ReportDebug("absent", url, err.Error())
		return outcomeSkipped, prompts.Record{}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		c.tel.ReportWarning("fetch-failed", url, err)
		return outcomeSkipped, prompts.Record{}
	}

	record, ok, err := c.opts.Extractor.Extract(ctx, html, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract failed")
		c.tel.ReportWarning("extract-failed", url, err)
		return outcomeNoTarget, prompts.Record{}
	}
	if !ok {
		span.SetAttributes(attribute.String("outcome", string(outcomeNoTarget)))
		return outcomeNoTarget, prompts.Record{}
	}

	span.SetAttributes(attribute.String("outcome", string(outcomeFound)))
	return outcomeFound, record
}
