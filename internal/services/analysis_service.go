package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mockmate/interview-service/internal/llm"
	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/prompts"
	"github.com/mockmate/interview-service/internal/utils"
)

// maxVideoSamples bounds how many snapshots are sent to the vision endpoint.
const maxVideoSamples = 4

type analysisService struct {
	llm        Completer
	logger     *slog.Logger
	aggregator *responseAggregator
}

func NewAnalysisService(completer Completer, logger *slog.Logger, validator *utils.Validator) AnalysisService {
	return &analysisService{
		llm:        completer,
		logger:     logger,
		aggregator: newResponseAggregator(validator),
	}
}

// AnalyzeStrict runs the full scorecard pipeline and propagates hard
// failures (transport errors, malformed model JSON) to the caller.
func (s *analysisService) AnalyzeStrict(ctx context.Context, answers []models.Answer, jobTitle string, meta FollowUpMeta) (*models.InterviewResult, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	groups := models.GroupAnswers(answers)
	prompt := prompts.BuildAnalysisPrompt(groups, jobTitle)

	raw, err := s.llm.Complete(ctx, prompt, llm.MaxTokensAnalysis)
	if err != nil {
		return nil, err
	}

	result, err := s.aggregator.Parse(raw, len(groups))
	if err != nil {
		return nil, err
	}

	s.aggregator.Enrich(result, meta)
	return result, nil
}

// Analyze is the flow-controller entry point: any unrecoverable failure
// degrades to the deterministic local heuristic so the user still reaches a
// results screen.
func (s *analysisService) Analyze(ctx context.Context, answers []models.Answer, jobTitle string, meta FollowUpMeta) (*models.InterviewResult, bool, error) {
	if len(answers) == 0 {
		return nil, false, ErrNoAnswers
	}

	result, err := s.AnalyzeStrict(ctx, answers, jobTitle, meta)
	if err != nil {
		s.logger.Error("Analysis failed, substituting heuristic result",
			"job_title", jobTitle,
			"answers", len(answers),
			"error", err)
		return buildFallbackResult(models.GroupAnswers(answers), meta), true, nil
	}

	s.logger.Info("Interview analyzed",
		"job_title", jobTitle,
		"overall_score", result.OverallScore,
		"passed", result.Passed)
	return result, false, nil
}

// AnalyzeVideo scores interview presence from up to four representative
// snapshots. Every failure returns nil; video feedback never blocks a
// result.
func (s *analysisService) AnalyzeVideo(ctx context.Context, snapshots []string) *models.VideoAnalysis {
	if len(snapshots) == 0 {
		return nil
	}

	samples := sampleSnapshots(snapshots)
	images := make([]string, 0, len(samples))
	for _, snap := range samples {
		images = append(images, stripDataURL(snap))
	}

	raw, err := s.llm.CompleteWithImages(ctx, prompts.BuildVideoPrompt(len(samples)), images, llm.MaxTokensVideo)
	if err != nil {
		s.logger.Warn("Video analysis call failed", "error", err)
		return nil
	}

	var analysis models.VideoAnalysis
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &analysis); err != nil {
		s.logger.Warn("Video analysis reply did not parse", "error", err)
		return nil
	}
	return &analysis
}

// sampleSnapshots picks the whole set when small, otherwise the first,
// one-third, two-thirds and last frames.
func sampleSnapshots(snapshots []string) []string {
	if len(snapshots) <= maxVideoSamples {
		return snapshots
	}
	n := len(snapshots)
	return []string{
		snapshots[0],
		snapshots[n/3],
		snapshots[2*n/3],
		snapshots[n-1],
	}
}

// stripDataURL drops a "data:image/jpeg;base64," prefix if present.
func stripDataURL(snapshot string) string {
	if idx := strings.Index(snapshot, ","); idx >= 0 && strings.HasPrefix(snapshot, "data:") {
		return snapshot[idx+1:]
	}
	return snapshot
}
