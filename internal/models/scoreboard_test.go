package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInsertRanked(t *testing.T) {
	t.Run("keeps descending order", func(t *testing.T) {
		var entries []LeaderboardEntry
		for _, score := range []int{55, 90, 72, 60, 88} {
			entries = InsertRanked(entries, LeaderboardEntry{Name: fmt.Sprintf("user-%d", score), Score: score}, LeaderboardCapacity)
		}

		assert.Len(t, entries, 5)
		for i := 1; i < len(entries); i++ {
			assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
		}
		assert.Equal(t, 90, entries[0].Score)
	})

	t.Run("truncates to capacity", func(t *testing.T) {
		var entries []LeaderboardEntry
		for i := 0; i < 25; i++ {
			entries = InsertRanked(entries, LeaderboardEntry{Name: fmt.Sprintf("user-%d", i), Score: i * 4}, 20)
		}

		assert.Len(t, entries, 20)
		assert.Equal(t, 96, entries[0].Score)
		// The 5 lowest scores fell off the bottom.
		assert.Equal(t, 20, entries[len(entries)-1].Score)
	})

	t.Run("equal scores keep insertion order", func(t *testing.T) {
		var entries []LeaderboardEntry
		entries = InsertRanked(entries, LeaderboardEntry{Name: "first", Score: 80}, LeaderboardCapacity)
		entries = InsertRanked(entries, LeaderboardEntry{Name: "second", Score: 80}, LeaderboardCapacity)

		assert.Equal(t, "first", entries[0].Name)
		assert.Equal(t, "second", entries[1].Name)
	})

	t.Run("low score dropped when full", func(t *testing.T) {
		var entries []LeaderboardEntry
		for i := 0; i < LeaderboardCapacity; i++ {
			entries = InsertRanked(entries, LeaderboardEntry{Name: fmt.Sprintf("user-%d", i), Score: 50}, LeaderboardCapacity)
		}

		entries = InsertRanked(entries, LeaderboardEntry{Name: "straggler", Score: 10}, LeaderboardCapacity)

		assert.Len(t, entries, LeaderboardCapacity)
		for _, e := range entries {
			assert.NotEqual(t, "straggler", e.Name)
		}
	})
}

func TestPushHistory(t *testing.T) {
	now := time.Now()

	t.Run("most recent first", func(t *testing.T) {
		var records []InterviewRecord
		for i := 0; i < 3; i++ {
			records = PushHistory(records, InterviewRecord{JobTitle: fmt.Sprintf("job-%d", i), Date: now}, HistoryCapacity)
		}

		assert.Equal(t, "job-2", records[0].JobTitle)
		assert.Equal(t, "job-0", records[2].JobTitle)
	})

	t.Run("oldest evicted at capacity", func(t *testing.T) {
		var records []InterviewRecord
		for i := 0; i < HistoryCapacity+2; i++ {
			records = PushHistory(records, InterviewRecord{JobTitle: fmt.Sprintf("job-%d", i), Date: now}, HistoryCapacity)
		}

		assert.Len(t, records, HistoryCapacity)
		assert.Equal(t, "job-4", records[0].JobTitle)
		assert.Equal(t, "job-2", records[HistoryCapacity-1].JobTitle)
	})
}
