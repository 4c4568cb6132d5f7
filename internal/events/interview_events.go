package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInterviewStarted   EventType = "interview.started"
	EventInterviewCompleted EventType = "interview.completed"
	EventLeaderboardEntry   EventType = "leaderboard.entry_added"
	EventContactSubmitted   EventType = "contact.submitted"
)

const (
	eventSource  = "interview-service"
	eventVersion = "1.0"
)

// InterviewEvent is the envelope published for downstream consumers
// (analytics, notifications).
type InterviewEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func NewInterviewEvent(eventType EventType, data any) *InterviewEvent {
	return &InterviewEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// InterviewStartedEvent is published when a session enters the interview
// stage.
type InterviewStartedEvent struct {
	SessionID string `json:"session_id"`
	JobTitle  string `json:"job_title"`
	Questions int    `json:"questions"`
	Video     bool   `json:"video"`
}

// InterviewCompletedEvent is published once per finished interview, after the
// result is built.
type InterviewCompletedEvent struct {
	SessionID    string `json:"session_id"`
	JobTitle     string `json:"job_title"`
	OverallScore int    `json:"overall_score"`
	Passed       bool   `json:"passed"`
	FollowUps    int    `json:"follow_ups"`
	UsedFallback bool   `json:"used_fallback"`
}

type LeaderboardEntryEvent struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Job    string `json:"job"`
	Passed bool   `json:"passed"`
}

type ContactSubmittedEvent struct {
	Email string `json:"email"`
}
