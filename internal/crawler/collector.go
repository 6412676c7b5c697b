package crawler

import (
	"fmt"
	"promptscrape/internal/prompts"
	"promptscrape/lib/tsv"
)

const DefaultCheckpointEvery = 10

// Snapshotter persists the full list of records collected so far.
type Snapshotter interface {
	Snapshot(records []prompts.Record) error
}

// FileSnapshot rewrites a UTF-16 TSV file with every record.
type FileSnapshot struct {
	Path string
}

func (f FileSnapshot) Snapshot(records []prompts.Record) error {
	return tsv.WriteFile(f.Path, prompts.Columns(), prompts.Rows(records))
}

// Collector keeps records in discovery order and checkpoints them to a
// Snapshotter every `every` records. A checkpoint always rewrites the
// whole snapshot, it never appends.
type Collector struct {
	records     []prompts.Record
	every       int
	sink        Snapshotter
	checkpoints int
}

func NewCollector(sink Snapshotter, every int) *Collector {
	if every <= 0 {
		every = DefaultCheckpointEvery
	}
	return &Collector{sink: sink, every: every}
}

func (c *Collector) Add(record prompts.Record) error {
	c.records = append(c.records, record)
	if len(c.records)%c.every != 0 {
		return nil
	}
	err := c.sink.Snapshot(c.records)
	if err != nil {
		return fmt.Errorf("checkpoint at %d records: %w", len(c.records), err)
	}
	c.checkpoints++
	return nil
}

func (c *Collector) Len() int {
	return len(c.records)
}

// Checkpoints is the number of intermediate snapshots written.
func (c *Collector) Checkpoints() int {
	return c.checkpoints
}

// Records returns a copy of the collected records.
func (c *Collector) Records() []prompts.Record {
	out := make([]prompts.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Close writes the final snapshot and returns the number of records in
// it. Nothing is written when no record was collected.
func (c *Collector) Close() (int, error) {
	if len(c.records) == 0 {
		return 0, nil
	}
	err := c.sink.Snapshot(c.records)
	if err != nil {
		return 0, fmt.Errorf("final snapshot: %w", err)
	}
	return len(c.records), nil
}
