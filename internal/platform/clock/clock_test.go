package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Fake(start)
	require.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	require.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	require.Equal(t, start, c.Now())
}

func TestSystemClockIsUTC(t *testing.T) {
	require.Equal(t, time.UTC, System().Now().Location())
}
