package services

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/mockmate/interview-service/internal/llm"
	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/utils"
)

const (
	mainScoreWeight     = 0.7
	followUpScoreWeight = 0.3
)

// FollowUpRecord is what the gate remembered about a follow-up it asked.
type FollowUpRecord struct {
	Type     models.FollowUpType
	Question string
}

// FollowUpMeta is the session-local follow-up bookkeeping the aggregator
// merges into the model's reply. Keys are zero-based main-question indices.
type FollowUpMeta struct {
	Records map[int]FollowUpRecord
	Reasons map[int]models.FollowUpReason
}

// responseAggregator turns raw model output into a self-consistent
// InterviewResult. Parsing the main analysis is strict; enrichment never
// drops a question the session knows about.
type responseAggregator struct {
	validator *utils.Validator
}

func newResponseAggregator(validator *utils.Validator) *responseAggregator {
	return &responseAggregator{validator: validator}
}

// Parse strips code fences and decodes the scorecard. A parse or shape
// failure here is a hard error for the caller.
func (a *responseAggregator) Parse(raw string, expectedQuestions int) (*models.InterviewResult, error) {
	clean := llm.StripCodeFences(raw)

	var result models.InterviewResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if len(result.QuestionScores) != expectedQuestions {
		return nil, fmt.Errorf("%w: got %d question scores, want %d",
			ErrMalformedReply, len(result.QuestionScores), expectedQuestions)
	}

	if err := a.validator.Validate(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	return &result, nil
}

// Enrich merges session-local follow-up metadata into the result and
// recomputes every derived value. It is idempotent: values already present
// and valid are left untouched, so re-applying it changes nothing.
func (a *responseAggregator) Enrich(result *models.InterviewResult, meta FollowUpMeta) {
	for i := range result.QuestionScores {
		qs := &result.QuestionScores[i]

		if rec, ok := meta.Records[i]; ok {
			qs.HasFollowUp = true
			qs.NoFollowUpReason = ""
			if qs.FollowUp == nil {
				qs.FollowUp = &models.FollowUpScore{
					Question: rec.Question,
					Feedback: "Follow-up response was recorded but could not be scored.",
				}
			} else if qs.FollowUp.Score != nil && (*qs.FollowUp.Score < 0 || *qs.FollowUp.Score > 100) {
				// Mis-scored by the model: keep the text, drop the number.
				qs.FollowUp.Score = nil
			}
			if qs.FollowUp.Question == "" {
				qs.FollowUp.Question = rec.Question
			}
		} else {
			qs.HasFollowUp = false
			qs.FollowUp = nil
			if qs.NoFollowUpReason == "" {
				reason, ok := meta.Reasons[i]
				if !ok {
					reason = models.ReasonThoroughAnswer
				}
				qs.NoFollowUpReason = reason
			}
		}
	}

	a.recompute(result)
}

// recompute derives combined scores and the pass flag. Model-supplied values
// for either are never trusted when they can be recomputed.
func (a *responseAggregator) recompute(result *models.InterviewResult) {
	for i := range result.QuestionScores {
		qs := &result.QuestionScores[i]
		combined := CombineScores(qs.Score, followUpScoreOf(qs))
		qs.CombinedScore = &combined
	}
	result.Passed = result.OverallScore >= models.PassingScore
	a.applyCategoryDefaults(result)
}

func followUpScoreOf(qs *models.QuestionScore) *int {
	if qs.FollowUp == nil {
		return nil
	}
	return qs.FollowUp.Score
}

// CombineScores blends a main score with its follow-up score. With no
// numeric follow-up score the combined score is the main score alone; a
// weighted blend is never fabricated from a missing input.
func CombineScores(mainScore int, followUpScore *int) int {
	if followUpScore == nil {
		return mainScore
	}
	return int(math.Round(float64(mainScore)*mainScoreWeight + float64(*followUpScore)*followUpScoreWeight))
}

func (a *responseAggregator) applyCategoryDefaults(result *models.InterviewResult) {
	defaults := map[*models.CategoryScore]string{
		&result.Categories.Clarity:           "Evaluation based on response structure.",
		&result.Categories.Relevance:         "Evaluation based on answer relevance.",
		&result.Categories.Depth:             "Consider adding more detail.",
		&result.Categories.Confidence:        "Delivery assessment.",
		&result.Categories.Conciseness:       "Focused and to-the-point evaluation.",
		&result.Categories.StarMethod:        "Use STAR method for behavioral questions.",
		&result.Categories.TechnicalAccuracy: "Technical content evaluation.",
		&result.Categories.Enthusiasm:        "Energy and interest assessment.",
	}
	for cat, feedback := range defaults {
		if cat.Score == 0 && cat.Feedback == "" {
			cat.Score = result.OverallScore
			cat.Feedback = feedback
		}
	}
}
