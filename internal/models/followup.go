package models

type FollowUpReason string

const (
	ReasonThoroughAnswer      FollowUpReason = "thorough_answer"
	ReasonLacksSpecifics      FollowUpReason = "lacks_specifics"
	ReasonMissedDimension     FollowUpReason = "missed_dimension"
	ReasonTooShort            FollowUpReason = "too_short"
	ReasonNoExperience        FollowUpReason = "no_experience"
	ReasonMaxFollowUpsReached FollowUpReason = "max_followups_reached"
	ReasonEvaluationError     FollowUpReason = "evaluation_error"
)

type FollowUpType string

const (
	FollowUpDepthProbe     FollowUpType = "DEPTH_PROBE"
	FollowUpMissingElement FollowUpType = "MISSING_ELEMENT"
	FollowUpChallenge      FollowUpType = "CHALLENGE"
	FollowUpClarification  FollowUpType = "CLARIFICATION"
)

// MaxFollowUps is the per-interview cap, enforced before any model call.
const MaxFollowUps = 3

// FollowUpDecision is produced once per main answer, before the next
// question is spoken. It is never persisted beyond the session.
type FollowUpDecision struct {
	ShouldFollowUp   bool           `json:"shouldFollowUp"`
	Reason           FollowUpReason `json:"reason" validate:"required,followup_reason"`
	FollowUpType     *FollowUpType  `json:"followUpType" validate:"omitempty,followup_type"`
	FollowUpQuestion *string        `json:"followUpQuestion"`
	WhatWasMissing   *string        `json:"whatWasMissing"`
}

func (r FollowUpReason) Valid() bool {
	switch r {
	case ReasonThoroughAnswer, ReasonLacksSpecifics, ReasonMissedDimension,
		ReasonTooShort, ReasonNoExperience, ReasonMaxFollowUpsReached,
		ReasonEvaluationError:
		return true
	}
	return false
}

func (t FollowUpType) Valid() bool {
	switch t {
	case FollowUpDepthProbe, FollowUpMissingElement, FollowUpChallenge, FollowUpClarification:
		return true
	}
	return false
}
