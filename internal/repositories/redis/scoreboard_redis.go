package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/repositories"
)

const leaderboardKey = "leaderboard:global"

type scoreboardRepository struct {
	client *redis.Client
}

func NewScoreboardRepository(client *redis.Client) repositories.ScoreboardRepository {
	return &scoreboardRepository{client: client}
}

func historyKey(clientID string) string {
	return "history:" + clientID
}

func countKey(clientID string) string {
	return "interviews:completed:" + clientID
}

func trialKey(clientID string) string {
	return "trial:used:" + clientID
}

func (r *scoreboardRepository) GetHistory(ctx context.Context, clientID string) ([]models.InterviewRecord, error) {
	var records []models.InterviewRecord
	if err := r.getJSON(ctx, historyKey(clientID), &records); err != nil {
		if repositories.IsNotFoundError(err) {
			return []models.InterviewRecord{}, nil
		}
		return nil, err
	}
	return records, nil
}

func (r *scoreboardRepository) AppendHistory(ctx context.Context, clientID string, record models.InterviewRecord) ([]models.InterviewRecord, error) {
	records, err := r.GetHistory(ctx, clientID)
	if err != nil {
		return nil, err
	}
	updated := models.PushHistory(records, record, models.HistoryCapacity)
	if err := r.setJSON(ctx, historyKey(clientID), updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *scoreboardRepository) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := r.getJSON(ctx, leaderboardKey, &entries); err != nil {
		if repositories.IsNotFoundError(err) {
			return []models.LeaderboardEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func (r *scoreboardRepository) AppendLeaderboard(ctx context.Context, entry models.LeaderboardEntry) ([]models.LeaderboardEntry, error) {
	entries, err := r.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	updated := models.InsertRanked(entries, entry, models.LeaderboardCapacity)
	if err := r.setJSON(ctx, leaderboardKey, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *scoreboardRepository) GetCompletedCount(ctx context.Context, clientID string) (int, error) {
	count, err := r.client.Get(ctx, countKey(clientID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get completed count: %w", err)
	}
	return count, nil
}

func (r *scoreboardRepository) IncrementCompletedCount(ctx context.Context, clientID string) (int, error) {
	count, err := r.client.Incr(ctx, countKey(clientID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment completed count: %w", err)
	}
	return int(count), nil
}

func (r *scoreboardRepository) GetFreeTrialUsed(ctx context.Context, clientID string) (bool, error) {
	val, err := r.client.Get(ctx, trialKey(clientID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get free trial flag: %w", err)
	}
	return val == "true", nil
}

func (r *scoreboardRepository) MarkFreeTrialUsed(ctx context.Context, clientID string) error {
	if err := r.client.Set(ctx, trialKey(clientID), "true", 0).Err(); err != nil {
		return fmt.Errorf("failed to mark free trial used: %w", err)
	}
	return nil
}

func (r *scoreboardRepository) Reset(ctx context.Context, clientID string) error {
	keys := []string{historyKey(clientID), countKey(clientID), trialKey(clientID)}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset client data: %w", err)
	}
	return nil
}

func (r *scoreboardRepository) getJSON(ctx context.Context, key string, dest any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return repositories.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (r *scoreboardRepository) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
