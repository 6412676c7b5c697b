package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardTime(t *testing.T) {
	before := time.Now()
	now := NewStandardTime().Now()
	require.Equal(t, Tokyo(), now.Location())
	require.False(t, now.Before(before.Truncate(time.Second)))

	_, offset := now.Zone()
	require.Equal(t, 9*60*60, offset)
}

func TestFixedTime(t *testing.T) {
	at := time.Date(2024, 4, 1, 9, 0, 0, 0, Tokyo())
	require.Equal(t, at, FixedTime{At: at}.Now())
}
