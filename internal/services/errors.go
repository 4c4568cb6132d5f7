package services

import "errors"

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrInternalError    = errors.New("internal server error")

	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidTransition   = errors.New("invalid stage transition")
	ErrInterviewNotActive  = errors.New("interview is not active")
	ErrRecordingNotAllowed = errors.New("recording not allowed while question is playing")
	ErrNoQuestionsLeft     = errors.New("no questions left to advance to")

	// Analysis errors
	ErrAnalysisFailed   = errors.New("failed to analyze interview")
	ErrMalformedReply   = errors.New("model reply did not parse as the expected JSON")
	ErrNoAnswers        = errors.New("no answers to analyze")
	ErrQuestionGenEmpty = errors.New("question generation returned no questions")

	// Speech errors
	ErrSpeechSynthesis = errors.New("failed to generate speech")
)
