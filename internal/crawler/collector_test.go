package crawler

import (
	"errors"
	"promptscrape/internal/prompts"
	"testing"

	"github.com/stretchr/testify/require"
)

type sliceSnapshot struct {
	sizes []int
	err   error
}

func (s *sliceSnapshot) Snapshot(records []prompts.Record) error {
	if s.err != nil {
		return s.err
	}
	s.sizes = append(s.sizes, len(records))
	return nil
}

func TestCollector(t *testing.T) {
	sink := &sliceSnapshot{}
	c := NewCollector(sink, 3)
	for i := 0; i < 7; i++ {
		require.NoError(t, c.Add(prompts.NewRecord("u")))
	}
	require.Equal(t, []int{3, 6}, sink.sizes)
	require.Equal(t, 2, c.Checkpoints())

	n, err := c.Close()
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, []int{3, 6, 7}, sink.sizes)
}

func TestCollectorDefaults(t *testing.T) {
	sink := &sliceSnapshot{}
	c := NewCollector(sink, 0)
	for i := 0; i < DefaultCheckpointEvery; i++ {
		require.NoError(t, c.Add(prompts.NewRecord("u")))
	}
	require.Equal(t, []int{DefaultCheckpointEvery}, sink.sizes)
}

func TestCollectorEmpty(t *testing.T) {
	sink := &sliceSnapshot{}
	n, err := NewCollector(sink, 10).Close()
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, sink.sizes)
}

func TestCollectorRecordsAreCopies(t *testing.T) {
	c := NewCollector(&sliceSnapshot{}, 10)
	require.NoError(t, c.Add(prompts.NewRecord("a")))
	records := c.Records()
	records[0].URL = "b"
	require.Equal(t, "a", c.Records()[0].URL)
}

func TestCollectorSnapshotError(t *testing.T) {
	sink := &sliceSnapshot{err: errors.New("disk full")}
	c := NewCollector(sink, 1)
	err := c.Add(prompts.NewRecord("u"))
	require.ErrorContains(t, err, "disk full")
}
