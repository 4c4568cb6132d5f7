package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mockmate/interview-service/internal/cache"
	"github.com/mockmate/interview-service/internal/llm"
	"github.com/mockmate/interview-service/internal/prompts"
)

const questionCacheTTL = time.Hour

type questionService struct {
	llm    Completer
	cache  cache.CacheService
	logger *slog.Logger
}

func NewQuestionService(completer Completer, cacheService cache.CacheService, logger *slog.Logger) QuestionService {
	return &questionService{
		llm:    completer,
		cache:  cacheService,
		logger: logger,
	}
}

// Generate produces the 5-question set for a job posting. Generation
// failures substitute the fixed fallback set; the interview is never blocked
// here.
func (s *questionService) Generate(ctx context.Context, jobTitle, jobDescription string) ([]string, bool) {
	cacheKey := questionCacheKey(jobTitle, jobDescription)
	if s.cache != nil {
		var cached []string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) == prompts.QuestionCount {
			s.logger.Debug("Question set served from cache", "job_title", jobTitle)
			return cached, false
		}
	}

	questions, err := s.generate(ctx, jobTitle, jobDescription)
	if err != nil {
		s.logger.Warn("Question generation failed, using fallback set",
			"job_title", jobTitle,
			"error", err)
		return prompts.FallbackQuestions(jobTitle), true
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, questions, questionCacheTTL); err != nil {
			s.logger.Warn("Failed to cache question set", "error", err)
		}
	}

	s.logger.Info("Generated interview questions", "job_title", jobTitle, "count", len(questions))
	return questions, false
}

func (s *questionService) generate(ctx context.Context, jobTitle, jobDescription string) ([]string, error) {
	raw, err := s.llm.Complete(ctx, prompts.BuildQuestionPrompt(jobTitle, jobDescription), llm.MaxTokensQuestions)
	if err != nil {
		return nil, err
	}

	var questions []string
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &questions); err != nil {
		return nil, err
	}

	if len(questions) != prompts.QuestionCount {
		return nil, ErrQuestionGenEmpty
	}
	for _, q := range questions {
		if strings.TrimSpace(q) == "" {
			return nil, ErrQuestionGenEmpty
		}
	}
	return questions, nil
}

func questionCacheKey(jobTitle, jobDescription string) string {
	sum := sha256.Sum256([]byte(jobTitle + "\x00" + jobDescription))
	return "questions:" + hex.EncodeToString(sum[:8])
}
