package repositories

import (
	"context"
	"errors"

	"github.com/mockmate/interview-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err is the repository not-found sentinel.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ScoreboardRepository is the key-value side of persistence: capped history,
// the shared leaderboard, and the paywall counters. All list operations are
// read-modify-write over a single stored blob; there is no optimistic
// concurrency because a stored key has a single active client.
type ScoreboardRepository interface {
	GetHistory(ctx context.Context, clientID string) ([]models.InterviewRecord, error)
	AppendHistory(ctx context.Context, clientID string, record models.InterviewRecord) ([]models.InterviewRecord, error)

	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	AppendLeaderboard(ctx context.Context, entry models.LeaderboardEntry) ([]models.LeaderboardEntry, error)

	GetCompletedCount(ctx context.Context, clientID string) (int, error)
	IncrementCompletedCount(ctx context.Context, clientID string) (int, error)

	GetFreeTrialUsed(ctx context.Context, clientID string) (bool, error)
	MarkFreeTrialUsed(ctx context.Context, clientID string) error

	Reset(ctx context.Context, clientID string) error
}

// ProfileRepository is the row-based side: durable account data.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
}

// ContactRepository stores free-form contact submissions.
type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
}

// Repository aggregates the persistence surfaces behind one constructor-side
// dependency.
type Repository interface {
	Scoreboard() ScoreboardRepository
	Profile() ProfileRepository
	Contact() ContactRepository
}
