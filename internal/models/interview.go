package models

import (
	"time"
)

// Answer is a single captured response. Immutable once appended to a session.
type Answer struct {
	QuestionIndex       int    `json:"questionIndex"`
	Question            string `json:"question" validate:"required"`
	Answer              string `json:"answer"`
	TimeSpent           int    `json:"timeSpent" validate:"min=0"`
	IsFollowUp          bool   `json:"isFollowUp"`
	ParentQuestionIndex int    `json:"parentQuestionIndex,omitempty"`
}

// QuestionGroup pairs a main answer with its follow-up, if one was asked.
type QuestionGroup struct {
	Main     Answer
	FollowUp *Answer
}

// GroupAnswers folds a session's ordered answer list into main/follow-up
// pairs. A follow-up with no preceding main answer is dropped.
func GroupAnswers(answers []Answer) []QuestionGroup {
	groups := make([]QuestionGroup, 0, len(answers))
	for _, a := range answers {
		if !a.IsFollowUp {
			groups = append(groups, QuestionGroup{Main: a})
			continue
		}
		if len(groups) == 0 {
			continue
		}
		fu := a
		groups[len(groups)-1].FollowUp = &fu
	}
	return groups
}

// HasAnyFollowUp reports whether at least one group carries a follow-up.
func HasAnyFollowUp(groups []QuestionGroup) bool {
	for _, g := range groups {
		if g.FollowUp != nil {
			return true
		}
	}
	return false
}

// FollowUpScore is the nested sub-score for a probed question. Score is nil
// when the model never graded the follow-up and a placeholder was
// synthesized.
type FollowUpScore struct {
	Question     string   `json:"question"`
	Score        *int     `json:"score" validate:"omitempty,min=0,max=100"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type QuestionScore struct {
	QuestionNum      int            `json:"questionNum" validate:"min=1"`
	Score            int            `json:"score" validate:"min=0,max=100"`
	Feedback         string         `json:"feedback"`
	Strengths        []string       `json:"strengths"`
	Improvements     []string       `json:"improvements"`
	HasFollowUp      bool           `json:"hasFollowUp"`
	FollowUp         *FollowUpScore `json:"followUp"`
	CombinedScore    *int           `json:"combinedScore,omitempty"`
	NoFollowUpReason FollowUpReason `json:"noFollowUpReason,omitempty"`
}

type CategoryScore struct {
	Score    int    `json:"score" validate:"min=0,max=100"`
	Feedback string `json:"feedback"`
}

// CategoryScores holds the eight fixed evaluation dimensions. They are scored
// independently of the per-question scores.
type CategoryScores struct {
	Clarity           CategoryScore `json:"clarity"`
	Relevance         CategoryScore `json:"relevance"`
	Depth             CategoryScore `json:"depth"`
	Confidence        CategoryScore `json:"confidence"`
	Conciseness       CategoryScore `json:"conciseness"`
	StarMethod        CategoryScore `json:"starMethod"`
	TechnicalAccuracy CategoryScore `json:"technicalAccuracy"`
	Enthusiasm        CategoryScore `json:"enthusiasm"`
}

type VideoCategory struct {
	Score    int    `json:"score" validate:"min=0,max=100"`
	Feedback string `json:"feedback"`
}

type VideoAnalysis struct {
	EyeContact        VideoCategory `json:"eyeContact"`
	Posture           VideoCategory `json:"posture"`
	FacialExpression  VideoCategory `json:"facialExpression"`
	Framing           VideoCategory `json:"framing"`
	Background        VideoCategory `json:"background"`
	OverallPresence   VideoCategory `json:"overallPresence"`
	TopTip            string        `json:"topTip"`
	OverallVideoScore int           `json:"overallVideoScore" validate:"min=0,max=100"`
}

// InterviewResult is the complete scorecard for one finished interview.
// Built once, then immutable.
type InterviewResult struct {
	OverallScore         int             `json:"overallScore" validate:"min=0,max=100"`
	Passed               bool            `json:"passed"`
	Verdict              string          `json:"verdict"`
	Summary              string          `json:"summary"`
	QuestionScores       []QuestionScore `json:"questionScores" validate:"required,dive"`
	Categories           CategoryScores  `json:"categories"`
	TopStrengths         []string        `json:"topStrengths"`
	CriticalImprovements []string        `json:"criticalImprovements"`
	CoachingTip          string          `json:"coachingTip"`
	VideoAnalysis        *VideoAnalysis  `json:"videoAnalysis,omitempty"`
}

// PassingScore is the inclusive pass threshold for the overall score.
const PassingScore = 70

// InterviewRecord is the summary kept in the capped history list.
type InterviewRecord struct {
	Date           time.Time       `json:"date"`
	JobTitle       string          `json:"jobTitle"`
	OverallScore   int             `json:"overallScore"`
	Passed         bool            `json:"passed"`
	Categories     CategoryScores  `json:"categories"`
	QuestionScores []QuestionScore `json:"questionScores"`
	VideoScore     *int            `json:"videoScore"`
}

// NewInterviewRecord builds the history summary for a completed result.
func NewInterviewRecord(result *InterviewResult, jobTitle string, at time.Time) InterviewRecord {
	rec := InterviewRecord{
		Date:           at,
		JobTitle:       jobTitle,
		OverallScore:   result.OverallScore,
		Passed:         result.Passed,
		Categories:     result.Categories,
		QuestionScores: result.QuestionScores,
	}
	if result.VideoAnalysis != nil {
		score := result.VideoAnalysis.OverallVideoScore
		rec.VideoScore = &score
	}
	return rec
}
