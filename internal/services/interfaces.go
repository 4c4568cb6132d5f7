package services

import (
	"context"

	"github.com/mockmate/interview-service/internal/models"
)

// Completer is the text/vision completion surface this service depends on.
// Satisfied by llm.Client; stubbed in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	CompleteWithImages(ctx context.Context, prompt string, jpegBase64 []string, maxTokens int) (string, error)
}

type QuestionService interface {
	// Generate returns the question set for a job posting and whether the
	// fixed fallback set was substituted. It never fails.
	Generate(ctx context.Context, jobTitle, jobDescription string) ([]string, bool)
}

type FollowUpService interface {
	// Evaluate decides whether a follow-up should be asked. It never fails:
	// evaluation errors degrade to a no-follow-up decision.
	Evaluate(ctx context.Context, req FollowUpEvalRequest) *models.FollowUpDecision
}

type AnalysisService interface {
	// AnalyzeStrict propagates hard failures (transport, malformed JSON) to
	// the caller.
	AnalyzeStrict(ctx context.Context, answers []models.Answer, jobTitle string, meta FollowUpMeta) (*models.InterviewResult, error)

	// Analyze builds the scorecard for a finished interview. usedFallback
	// reports that the local heuristic substituted for the AI result.
	Analyze(ctx context.Context, answers []models.Answer, jobTitle string, meta FollowUpMeta) (result *models.InterviewResult, usedFallback bool, err error)

	// AnalyzeVideo scores presence from interview snapshots. Returns nil on
	// any failure; video feedback is never load-bearing.
	AnalyzeVideo(ctx context.Context, snapshots []string) *models.VideoAnalysis
}

type SpeechService interface {
	// Synthesize renders text to mp3 audio bytes.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type ScoreboardService interface {
	History(ctx context.Context, clientID string) ([]models.InterviewRecord, error)
	RecordInterview(ctx context.Context, clientID string, record models.InterviewRecord) ([]models.InterviewRecord, error)

	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	SubmitScore(ctx context.Context, entry models.LeaderboardEntry) ([]models.LeaderboardEntry, error)
	ExportLeaderboard(ctx context.Context) ([]byte, error)

	CompletedCount(ctx context.Context, clientID string) (int, error)
	FreeTrialUsed(ctx context.Context, clientID string) (bool, error)

	SubmitContact(ctx context.Context, submission *models.ContactSubmission) error
	Profile(ctx context.Context, id string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}

// FollowUpEvalRequest carries everything the gate needs for one decision.
type FollowUpEvalRequest struct {
	Question       string                `json:"question" validate:"required"`
	Answer         string                `json:"answer"`
	QuestionIndex  int                   `json:"questionIndex" validate:"min=0"`
	TotalQuestions int                   `json:"totalQuestions" validate:"min=1"`
	AskedSoFar     int                   `json:"followUpsAskedSoFar" validate:"min=0"`
	JobTitle       string                `json:"jobTitle" validate:"required"`
	UsedTypes      []models.FollowUpType `json:"previousFollowUpTypes"`
}
