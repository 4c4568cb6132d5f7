package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mockmate/interview-service/internal/llm"
	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/prompts"
	"github.com/mockmate/interview-service/internal/utils"
)

type followUpService struct {
	llm       Completer
	logger    *slog.Logger
	validator *utils.Validator
}

func NewFollowUpService(completer Completer, logger *slog.Logger, validator *utils.Validator) FollowUpService {
	return &followUpService{
		llm:       completer,
		logger:    logger,
		validator: validator,
	}
}

// Evaluate runs the follow-up gate for one main answer. The cap is enforced
// locally before any model call; every failure past that point fails open to
// a no-follow-up decision, because a follow-up is a bonus, never a blocking
// dependency of the interview proceeding.
func (s *followUpService) Evaluate(ctx context.Context, req FollowUpEvalRequest) *models.FollowUpDecision {
	if req.AskedSoFar >= models.MaxFollowUps {
		return &models.FollowUpDecision{
			ShouldFollowUp: false,
			Reason:         models.ReasonMaxFollowUpsReached,
		}
	}

	prompt := prompts.BuildFollowUpPrompt(prompts.FollowUpInput{
		Question:      req.Question,
		Answer:        req.Answer,
		QuestionIndex: req.QuestionIndex,
		TotalCount:    req.TotalQuestions,
		AskedSoFar:    req.AskedSoFar,
		UsedTypes:     req.UsedTypes,
		JobTitle:      req.JobTitle,
	})

	raw, err := s.llm.Complete(ctx, prompt, llm.MaxTokensFollowUp)
	if err != nil {
		s.logger.Warn("Follow-up evaluation call failed, skipping follow-up",
			"question_index", req.QuestionIndex,
			"error", err)
		return evaluationErrorDecision()
	}

	var decision models.FollowUpDecision
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &decision); err != nil {
		s.logger.Warn("Follow-up decision did not parse, skipping follow-up",
			"question_index", req.QuestionIndex,
			"error", err)
		return evaluationErrorDecision()
	}

	if err := s.validator.Validate(&decision); err != nil {
		s.logger.Warn("Follow-up decision failed validation, skipping follow-up",
			"question_index", req.QuestionIndex,
			"error", err)
		return evaluationErrorDecision()
	}

	// An affirmative decision is only usable with a question to ask.
	if decision.ShouldFollowUp && (decision.FollowUpQuestion == nil || *decision.FollowUpQuestion == "" || decision.FollowUpType == nil) {
		s.logger.Warn("Affirmative decision missing question or type, skipping follow-up",
			"question_index", req.QuestionIndex)
		return evaluationErrorDecision()
	}

	s.logger.Info("Follow-up gate decision",
		"question_index", req.QuestionIndex,
		"should_follow_up", decision.ShouldFollowUp,
		"reason", decision.Reason)
	return &decision
}

func evaluationErrorDecision() *models.FollowUpDecision {
	return &models.FollowUpDecision{
		ShouldFollowUp: false,
		Reason:         models.ReasonEvaluationError,
	}
}
