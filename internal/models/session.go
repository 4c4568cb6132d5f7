package models

// Stage is the interview flow state. Transitions are owned by the session
// service; nothing mutates a stage outside of it.
type Stage string

const (
	StageLanding     Stage = "landing"
	StageSetup       Stage = "setup"
	StageGenerating  Stage = "generating"
	StageInterview   Stage = "interview"
	StageAnalyzing   Stage = "analyzing"
	StageResults     Stage = "results"
	StagePaywall     Stage = "paywall"
	StageDashboard   Stage = "dashboard"
	StageHistory     Stage = "history"
	StageLeaderboard Stage = "leaderboard"
	StagePrivacy     Stage = "privacy"
)

func (s Stage) Valid() bool {
	switch s {
	case StageLanding, StageSetup, StageGenerating, StageInterview,
		StageAnalyzing, StageResults, StagePaywall, StageDashboard,
		StageHistory, StageLeaderboard, StagePrivacy:
		return true
	}
	return false
}

// Phase is the sub-state within the interview stage. Speaking and recording
// are mutually exclusive: recording only begins once question playback has
// ended or errored out.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSpeaking  Phase = "speaking"
	PhaseRecording Phase = "recording"
)

// QuestionTimeLimit is the per-question countdown in seconds.
const QuestionTimeLimit = 180

// NoResponsePlaceholder is captured when speech recognition produced nothing
// for a question.
const NoResponsePlaceholder = "[No response recorded]"
