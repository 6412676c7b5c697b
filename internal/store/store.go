package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"promptscrape/internal/chrono"
	"promptscrape/internal/db"
	"promptscrape/internal/prompts"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("promptscrape/store")

var ErrNoRuns = errors.New("no runs recorded")

// Store mirrors scraped records into a sql database, one run per crawl.
type Store struct {
	qry    *db.Queries
	makeTx db.MakeTx
	time   chrono.TimeAPI
}

// Open applies the schema to `database` and wraps it.
func Open(ctx context.Context, database *sql.DB, clock chrono.TimeAPI) (Store, error) {
	err := db.Migrate(ctx, database)
	if err != nil {
		return Store{}, fmt.Errorf("migrate: %w", err)
	}
	return Store{
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
		time:   clock,
	}, nil
}

type Run struct {
	ID         string
	BaseUrl    string
	StartID    int
	EndID      int
	StartedAt  time.Time
	FinishedAt time.Time
	Records    int
}

func (s Store) BeginRun(ctx context.Context, baseUrl string, startId, endId int) (string, error) {
	id := uuid.NewString()
	err := s.qry.CreateRun(ctx, db.CreateRunParams{
		ID:        id,
		BaseUrl:   baseUrl,
		StartID:   int64(startId),
		EndID:     int64(endId),
		StartedAt: s.time.Now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

func (s Store) FinishRun(ctx context.Context, runId string, records int) error {
	return s.qry.FinishRun(ctx, db.FinishRunParams{
		ID:          runId,
		FinishedAt:  sql.NullInt64{Int64: s.time.Now().Unix(), Valid: true},
		RecordCount: int64(records),
	})
}

// PutRecord stores the record for `pageId`, replacing a previous one of
// the same run.
func (s Store) PutRecord(ctx context.Context, runId string, pageId int, record prompts.Record) error {
	ctx, span := tracer.Start(ctx, "PutRecord")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", runId),
		attribute.Int("page_id", pageId),
	)

	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to begin tx")
		return err
	}
	defer discard()

	err = txqry.CreateRecord(ctx, db.CreateRecordParams{
		RunID:  runId,
		PageID: int64(pageId),
		Url:    record.URL,
	})
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	err = txqry.DeleteRecordFields(ctx, db.DeleteRecordFieldsParams{
		RunID:  runId,
		PageID: int64(pageId),
	})
	if err != nil {
		return fmt.Errorf("clear record fields: %w", err)
	}

	for _, f := range prompts.Fields() {
		content := record.Get(f)
		if content == "" {
			continue
		}
		err = txqry.CreateRecordField(ctx, db.CreateRecordFieldParams{
			RunID:   runId,
			PageID:  int64(pageId),
			Field:   f.Key(),
			Content: content,
		})
		if err != nil {
			return fmt.Errorf("create record field %s: %w", f, err)
		}
	}

	err = commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit")
		return err
	}
	return nil
}

// Records returns the records of a run in ascending page order.
func (s Store) Records(ctx context.Context, runId string) ([]prompts.Record, error) {
	rows, err := s.qry.GetRunRecords(ctx, runId)
	if err != nil {
		return nil, err
	}
	fieldRows, err := s.qry.GetRunRecordFields(ctx, runId)
	if err != nil {
		return nil, err
	}

	values := make(map[int64]map[prompts.Field]string, len(rows))
	for _, row := range fieldRows {
		f, err := prompts.ParseField(row.Field)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", row.PageID, err)
		}
		pageValues, ok := values[row.PageID]
		if !ok {
			pageValues = map[prompts.Field]string{}
			values[row.PageID] = pageValues
		}
		pageValues[f] = row.Content
	}

	records := make([]prompts.Record, 0, len(rows))
	for _, row := range rows {
		record, err := prompts.RecordFromValues(row.Url, values[row.PageID])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s Store) Run(ctx context.Context, runId string) (Run, error) {
	run, err := s.qry.GetRun(ctx, runId)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", runId, ErrNoRuns)
	}
	if err != nil {
		return Run{}, err
	}
	return s.fromRow(run), nil
}

func (s Store) LatestRun(ctx context.Context) (Run, error) {
	run, err := s.qry.GetLatestRun(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, err
	}
	return s.fromRow(run), nil
}

func (s Store) fromRow(row db.Run) Run {
	run := Run{
		ID:        row.ID,
		BaseUrl:   row.BaseUrl,
		StartID:   int(row.StartID),
		EndID:     int(row.EndID),
		StartedAt: time.Unix(row.StartedAt, 0).In(chrono.Tokyo()),
		Records:   int(row.RecordCount),
	}
	if row.FinishedAt.Valid {
		run.FinishedAt = time.Unix(row.FinishedAt.Int64, 0).In(chrono.Tokyo())
	}
	return run
}
