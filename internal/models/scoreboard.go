package models

import (
	"sort"
	"time"
)

const (
	// HistoryCapacity limits the per-user history to the last N interviews.
	HistoryCapacity = 3
	// LeaderboardCapacity limits the shared leaderboard to the top N scores.
	LeaderboardCapacity = 50
)

// LeaderboardEntry is append-only. The list is resorted on each insert and
// truncated to capacity; there is no update or delete path.
type LeaderboardEntry struct {
	Name   string    `json:"name" validate:"required,max=100"`
	Score  int       `json:"score" validate:"min=0,max=100"`
	Job    string    `json:"job"`
	Passed bool      `json:"passed"`
	Date   time.Time `json:"date"`
}

// InsertRanked appends entry, resorts descending by score and truncates to
// cap. Equal scores keep insertion order (stable sort).
func InsertRanked(entries []LeaderboardEntry, entry LeaderboardEntry, cap int) []LeaderboardEntry {
	updated := make([]LeaderboardEntry, 0, len(entries)+1)
	updated = append(updated, entries...)
	updated = append(updated, entry)
	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].Score > updated[j].Score
	})
	if cap > 0 && len(updated) > cap {
		updated = updated[:cap]
	}
	return updated
}

// PushHistory prepends record and truncates to cap, most-recent-first.
func PushHistory(records []InterviewRecord, record InterviewRecord, cap int) []InterviewRecord {
	updated := make([]InterviewRecord, 0, len(records)+1)
	updated = append(updated, record)
	updated = append(updated, records...)
	if cap > 0 && len(updated) > cap {
		updated = updated[:cap]
	}
	return updated
}
