package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

	eventAt := func(date, start time.Time) Event {
		return Event{Date: date, StartTime: start, FinishTime: "23:00"}
	}

	t.Run("later day is upcoming", func(t *testing.T) {
		e := eventAt(now.AddDate(0, 0, 1), now.AddDate(0, 0, 1))
		assert.True(t, e.IsUpcoming(now))
	})

	t.Run("earlier day is not upcoming", func(t *testing.T) {
		e := eventAt(now.AddDate(0, 0, -1), now.AddDate(0, 0, -1))
		assert.False(t, e.IsUpcoming(now))
	})

	t.Run("same day starting later is upcoming", func(t *testing.T) {
		e := eventAt(now, now.Add(2*time.Hour))
		assert.True(t, e.IsUpcoming(now))
	})

	t.Run("same day starting exactly now is upcoming", func(t *testing.T) {
		// the boundary is inclusive of now
		e := eventAt(now, now)
		assert.True(t, e.IsUpcoming(now))
	})

	t.Run("same day already started is not upcoming", func(t *testing.T) {
		e := eventAt(now, now.Add(-time.Minute))
		assert.False(t, e.IsUpcoming(now))
	})
}

func TestIsPast(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

	t.Run("earlier day is past", func(t *testing.T) {
		e := Event{Date: now.AddDate(0, 0, -1)}
		assert.True(t, e.IsPast(now))
	})

	t.Run("same day is never past", func(t *testing.T) {
		e := Event{Date: now, StartTime: now.Add(-3 * time.Hour)}
		assert.False(t, e.IsPast(now))
	})

	t.Run("later day is not past", func(t *testing.T) {
		e := Event{Date: now.AddDate(0, 0, 1)}
		assert.False(t, e.IsPast(now))
	})
}
