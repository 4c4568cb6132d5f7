package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/mockmate/interview-service/internal/events"
	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/repositories"
	"github.com/mockmate/interview-service/internal/utils"
)

type scoreboardService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewScoreboardService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *utils.Validator) ScoreboardService {
	return &scoreboardService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *scoreboardService) History(ctx context.Context, clientID string) ([]models.InterviewRecord, error) {
	return s.repo.Scoreboard().GetHistory(ctx, clientID)
}

// RecordInterview appends to the capped history and bumps the completed
// counter.
func (s *scoreboardService) RecordInterview(ctx context.Context, clientID string, record models.InterviewRecord) ([]models.InterviewRecord, error) {
	updated, err := s.repo.Scoreboard().AppendHistory(ctx, clientID, record)
	if err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}

	if _, err := s.repo.Scoreboard().IncrementCompletedCount(ctx, clientID); err != nil {
		s.logger.Warn("Failed to increment completed count", "client_id", clientID, "error", err)
	}
	if err := s.repo.Scoreboard().MarkFreeTrialUsed(ctx, clientID); err != nil {
		s.logger.Warn("Failed to mark free trial used", "client_id", clientID, "error", err)
	}

	return updated, nil
}

func (s *scoreboardService) FreeTrialUsed(ctx context.Context, clientID string) (bool, error) {
	return s.repo.Scoreboard().GetFreeTrialUsed(ctx, clientID)
}

func (s *scoreboardService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.repo.Scoreboard().GetLeaderboard(ctx)
}

func (s *scoreboardService) SubmitScore(ctx context.Context, entry models.LeaderboardEntry) ([]models.LeaderboardEntry, error) {
	if err := s.validator.Validate(&entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	updated, err := s.repo.Scoreboard().AppendLeaderboard(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to append leaderboard entry: %w", err)
	}

	if err := s.publisher.PublishInterviewEvent(ctx, events.NewInterviewEvent(events.EventLeaderboardEntry, events.LeaderboardEntryEvent{
		Name:   entry.Name,
		Score:  entry.Score,
		Job:    entry.Job,
		Passed: entry.Passed,
	})); err != nil {
		s.logger.Warn("Failed to publish leaderboard event", "error", err)
	}

	return updated, nil
}

// ExportLeaderboard renders the current leaderboard as an xlsx workbook.
func (s *scoreboardService) ExportLeaderboard(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.Scoreboard().GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Leaderboard"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Rank", "Name", "Score", "Role", "Passed", "Date"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, entry := range entries {
		row := []interface{}{
			rowIndex + 1,
			entry.Name,
			entry.Score,
			entry.Job,
			entry.Passed,
			entry.Date.Format("2006-01-02"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *scoreboardService) CompletedCount(ctx context.Context, clientID string) (int, error) {
	return s.repo.Scoreboard().GetCompletedCount(ctx, clientID)
}

func (s *scoreboardService) SubmitContact(ctx context.Context, submission *models.ContactSubmission) error {
	if submission.Email == "" || submission.Message == "" {
		return ErrBadRequest
	}
	if err := s.repo.Contact().Create(ctx, submission); err != nil {
		return err
	}

	if err := s.publisher.PublishInterviewEvent(ctx, events.NewInterviewEvent(events.EventContactSubmitted, events.ContactSubmittedEvent{
		Email: submission.Email,
	})); err != nil {
		s.logger.Warn("Failed to publish contact event", "error", err)
	}
	return nil
}

func (s *scoreboardService) Profile(ctx context.Context, id string) (*models.UserProfile, error) {
	profile, err := s.repo.Profile().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *scoreboardService) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == "" {
		return ErrBadRequest
	}
	return s.repo.Profile().Upsert(ctx, profile)
}
