package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockmate/interview-service/internal/events"
	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/utils"
)

var ErrPaywallRequired = errors.New("free interview already used")

// pendingFollowUp is a gate-approved question waiting to be asked before the
// next main question.
type pendingFollowUp struct {
	Question    string
	Type        models.FollowUpType
	ParentIndex int
}

// InterviewSession holds all per-interview state. Nothing outside the
// session service mutates it; handlers only see snapshots.
type InterviewSession struct {
	mu sync.Mutex

	ID       string
	ClientID string
	Stage    models.Stage
	Phase    models.Phase

	JobTitle       string
	JobDescription string
	ResumeText     string
	UserName       string
	VideoEnabled   bool

	Questions    []string
	CurrentIndex int
	pending      *pendingFollowUp
	askingFollow *pendingFollowUp

	Answers          []models.Answer
	TranscriptBuffer string
	RecordingEndsAt  time.Time

	FollowUpsAsked int
	UsedTypes      []models.FollowUpType
	meta           FollowUpMeta

	VideoSnapshots []string

	Result                *models.InterviewResult
	UsedFallbackQuestions bool
	UsedFallbackAnalysis  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionView is the read-only snapshot returned to handlers.
type SessionView struct {
	ID              string                  `json:"id"`
	Stage           models.Stage            `json:"stage"`
	Phase           models.Phase            `json:"phase"`
	JobTitle        string                  `json:"jobTitle"`
	Questions       []string                `json:"questions,omitempty"`
	CurrentQuestion string                  `json:"currentQuestion,omitempty"`
	CurrentIsFollow bool                    `json:"currentIsFollowUp"`
	QuestionNumber  int                     `json:"questionNumber"`
	TimeLeft        int                     `json:"timeLeft"`
	FollowUpsAsked  int                     `json:"followUpsAsked"`
	Answers         int                     `json:"answers"`
	Result          *models.InterviewResult `json:"result,omitempty"`
}

// SetupRequest is the interview setup form. Job title is the only required
// field.
type SetupRequest struct {
	JobTitle       string `json:"jobTitle" validate:"required,max=200"`
	JobDescription string `json:"jobDescription" validate:"max=10000"`
	ResumeText     string `json:"resumeText" validate:"max=50000"`
	UserName       string `json:"userName" validate:"max=100"`
	VideoEnabled   bool   `json:"videoEnabled"`
}

// SessionService drives the interview flow: question generation, the
// speaking/recording phases, follow-up injection, analysis and the final
// scoreboard writes.
type SessionService struct {
	questions  QuestionService
	followUps  FollowUpService
	analysis   AnalysisService
	scoreboard ScoreboardService
	publisher  events.EventPublisher
	logger     *slog.Logger
	validator  *utils.Validator

	mu       sync.RWMutex
	sessions map[string]*InterviewSession
}

func NewSessionService(
	questions QuestionService,
	followUps FollowUpService,
	analysis AnalysisService,
	scoreboard ScoreboardService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) *SessionService {
	return &SessionService{
		questions:  questions,
		followUps:  followUps,
		analysis:   analysis,
		scoreboard: scoreboard,
		publisher:  publisher,
		logger:     logger,
		validator:  validator,
		sessions:   make(map[string]*InterviewSession),
	}
}

// Create opens a new session on the landing stage.
func (s *SessionService) Create(clientID string) *InterviewSession {
	session := &InterviewSession{
		ID:       uuid.New().String(),
		ClientID: clientID,
		Stage:    models.StageLanding,
		Phase:    models.PhaseIdle,
		meta: FollowUpMeta{
			Records: make(map[int]FollowUpRecord),
			Reasons: make(map[int]models.FollowUpReason),
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Session created", "session_id", session.ID)
	return session
}

func (s *SessionService) get(id string) (*InterviewSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// View returns a read-only snapshot of the session.
func (s *SessionService) View(id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view(), nil
}

// StartSetup moves landing (or a side stage) to setup, enforcing the
// paywall: one free interview, then a subscription is required.
func (s *SessionService) StartSetup(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	switch session.Stage {
	case models.StageLanding, models.StageDashboard, models.StageResults,
		models.StageHistory, models.StageLeaderboard, models.StagePaywall:
	default:
		return nil, ErrInvalidTransition
	}

	completed, err := s.scoreboard.CompletedCount(ctx, session.ClientID)
	if err != nil {
		// Storage errors never block the flow; assume first interview.
		s.logger.Warn("Failed to read completed count", "session_id", id, "error", err)
		completed = 0
	}
	trialUsed, err := s.scoreboard.FreeTrialUsed(ctx, session.ClientID)
	if err != nil {
		s.logger.Warn("Failed to read free trial flag", "session_id", id, "error", err)
		trialUsed = false
	}
	if (completed >= 1 || trialUsed) && !s.isSubscribed(ctx, session.ClientID) {
		session.Stage = models.StagePaywall
		session.UpdatedAt = time.Now()
		return session.view(), ErrPaywallRequired
	}

	session.Stage = models.StageSetup
	session.UpdatedAt = time.Now()
	return session.view(), nil
}

func (s *SessionService) isSubscribed(ctx context.Context, clientID string) bool {
	profile, err := s.scoreboard.Profile(ctx, clientID)
	if err != nil {
		return false
	}
	return profile.IsSubscribed
}

// BeginInterview submits the setup form, generates questions (or the
// fallback set) and enters the interview stage in the speaking phase.
func (s *SessionService) BeginInterview(ctx context.Context, id string, req SetupRequest) (*SessionView, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Stage != models.StageSetup {
		return nil, ErrInvalidTransition
	}

	session.JobTitle = req.JobTitle
	session.JobDescription = req.JobDescription
	session.ResumeText = req.ResumeText
	session.UserName = req.UserName
	session.VideoEnabled = req.VideoEnabled
	session.Stage = models.StageGenerating
	session.UpdatedAt = time.Now()

	questions, usedFallback := s.questions.Generate(ctx, req.JobTitle, req.JobDescription)
	session.Questions = questions
	session.UsedFallbackQuestions = usedFallback
	session.CurrentIndex = 0
	session.Stage = models.StageInterview
	session.Phase = models.PhaseSpeaking
	session.UpdatedAt = time.Now()

	if err := s.publisher.PublishInterviewEvent(ctx, events.NewInterviewEvent(events.EventInterviewStarted, events.InterviewStartedEvent{
		SessionID: session.ID,
		JobTitle:  session.JobTitle,
		Questions: len(questions),
		Video:     session.VideoEnabled,
	})); err != nil {
		s.logger.Warn("Failed to publish interview started event", "session_id", id, "error", err)
	}

	return session.view(), nil
}

// SpeechEnded marks question playback finished (or errored) and opens the
// recording window. Recording never starts while the question is playing.
func (s *SessionService) SpeechEnded(id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Stage != models.StageInterview {
		return nil, ErrInterviewNotActive
	}
	if session.Phase != models.PhaseSpeaking {
		return nil, ErrInvalidTransition
	}

	session.Phase = models.PhaseRecording
	session.RecordingEndsAt = time.Now().Add(models.QuestionTimeLimit * time.Second)
	session.UpdatedAt = time.Now()
	return session.view(), nil
}

// AppendTranscript replaces the transcript buffer with the recognizer's
// running transcript. The buffer is the single source of truth read at
// capture time.
func (s *SessionService) AppendTranscript(id, transcript string) error {
	session, err := s.get(id)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Stage != models.StageInterview {
		return ErrInterviewNotActive
	}
	if session.Phase != models.PhaseRecording {
		return ErrRecordingNotAllowed
	}

	session.TranscriptBuffer = transcript
	session.UpdatedAt = time.Now()
	return nil
}

// AddSnapshot stores a video frame for later presence analysis.
func (s *SessionService) AddSnapshot(id, snapshot string) error {
	session, err := s.get(id)
	if err != nil {
		return err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Stage != models.StageInterview || !session.VideoEnabled {
		return ErrInterviewNotActive
	}
	session.VideoSnapshots = append(session.VideoSnapshots, snapshot)
	return nil
}

// Advance captures the current answer and moves on. Manual advance and timer
// expiry are the same operation. After a main answer the follow-up gate runs;
// an affirmative decision injects one follow-up question before the next
// main question. After the last answer the session transitions through
// analyzing to results.
func (s *SessionService) Advance(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Stage != models.StageInterview {
		return nil, ErrInterviewNotActive
	}
	if session.Phase != models.PhaseRecording {
		return nil, ErrInvalidTransition
	}

	answer := session.captureAnswer()
	session.Answers = append(session.Answers, answer)
	session.TranscriptBuffer = ""

	if session.askingFollow != nil {
		// A follow-up answer never triggers another gate check.
		session.askingFollow = nil
		return s.advanceToNext(ctx, session)
	}

	decision := s.followUps.Evaluate(ctx, FollowUpEvalRequest{
		Question:       answer.Question,
		Answer:         answer.Answer,
		QuestionIndex:  answer.QuestionIndex,
		TotalQuestions: len(session.Questions),
		AskedSoFar:     session.FollowUpsAsked,
		JobTitle:       session.JobTitle,
		UsedTypes:      session.UsedTypes,
	})

	if decision.ShouldFollowUp {
		session.FollowUpsAsked++
		session.UsedTypes = append(session.UsedTypes, *decision.FollowUpType)
		session.pending = &pendingFollowUp{
			Question:    *decision.FollowUpQuestion,
			Type:        *decision.FollowUpType,
			ParentIndex: answer.QuestionIndex,
		}
		session.meta.Records[answer.QuestionIndex] = FollowUpRecord{
			Type:     *decision.FollowUpType,
			Question: *decision.FollowUpQuestion,
		}
	} else {
		session.meta.Reasons[answer.QuestionIndex] = decision.Reason
	}

	return s.advanceToNext(ctx, session)
}

func (session *InterviewSession) captureAnswer() models.Answer {
	transcript := session.TranscriptBuffer
	if transcript == "" {
		transcript = models.NoResponsePlaceholder
	}

	timeLeft := int(time.Until(session.RecordingEndsAt).Seconds())
	if timeLeft < 0 {
		timeLeft = 0
	}
	if timeLeft > models.QuestionTimeLimit {
		timeLeft = models.QuestionTimeLimit
	}

	answer := models.Answer{
		QuestionIndex: session.CurrentIndex,
		Answer:        transcript,
		TimeSpent:     models.QuestionTimeLimit - timeLeft,
	}
	if session.askingFollow != nil {
		answer.Question = session.askingFollow.Question
		answer.IsFollowUp = true
		answer.ParentQuestionIndex = session.askingFollow.ParentIndex
		answer.QuestionIndex = session.askingFollow.ParentIndex
	} else {
		answer.Question = session.Questions[session.CurrentIndex]
	}
	return answer
}

func (s *SessionService) advanceToNext(ctx context.Context, session *InterviewSession) (*SessionView, error) {
	if session.pending != nil {
		session.askingFollow = session.pending
		session.pending = nil
		session.Phase = models.PhaseSpeaking
		session.UpdatedAt = time.Now()
		return session.view(), nil
	}

	if session.CurrentIndex < len(session.Questions)-1 {
		session.CurrentIndex++
		session.Phase = models.PhaseSpeaking
		session.UpdatedAt = time.Now()
		return session.view(), nil
	}

	return s.finish(ctx, session)
}

// finish runs analysis (heuristic fallback on failure), the independent and
// non-fatal video pass, then the scoreboard writes and the completion event.
func (s *SessionService) finish(ctx context.Context, session *InterviewSession) (*SessionView, error) {
	session.Stage = models.StageAnalyzing
	session.Phase = models.PhaseIdle
	session.UpdatedAt = time.Now()

	result, usedFallback, err := s.analysis.Analyze(ctx, session.Answers, session.JobTitle, session.meta)
	if err != nil {
		return nil, err
	}
	session.UsedFallbackAnalysis = usedFallback

	if session.VideoEnabled && len(session.VideoSnapshots) > 0 {
		result.VideoAnalysis = s.analysis.AnalyzeVideo(ctx, session.VideoSnapshots)
	}

	session.Result = result
	session.Stage = models.StageResults
	session.UpdatedAt = time.Now()

	record := models.NewInterviewRecord(result, session.JobTitle, time.Now())
	if _, err := s.scoreboard.RecordInterview(ctx, session.ClientID, record); err != nil {
		// At-most-once persistence: in-memory state still reflects the
		// result.
		s.logger.Warn("Failed to save interview history", "session_id", session.ID, "error", err)
	}

	if session.UserName != "" {
		entry := models.LeaderboardEntry{
			Name:   session.UserName,
			Score:  result.OverallScore,
			Job:    session.JobTitle,
			Passed: result.Passed,
			Date:   time.Now(),
		}
		if _, err := s.scoreboard.SubmitScore(ctx, entry); err != nil {
			s.logger.Warn("Failed to save leaderboard entry", "session_id", session.ID, "error", err)
		}
	}

	if err := s.publisher.PublishInterviewEvent(ctx, events.NewInterviewEvent(events.EventInterviewCompleted, events.InterviewCompletedEvent{
		SessionID:    session.ID,
		JobTitle:     session.JobTitle,
		OverallScore: result.OverallScore,
		Passed:       result.Passed,
		FollowUps:    session.FollowUpsAsked,
		UsedFallback: session.UsedFallbackAnalysis,
	})); err != nil {
		s.logger.Warn("Failed to publish interview completed event", "session_id", session.ID, "error", err)
	}

	s.logger.Info("Interview finished",
		"session_id", session.ID,
		"overall_score", result.OverallScore,
		"passed", result.Passed,
		"follow_ups", session.FollowUpsAsked,
		"used_fallback", session.UsedFallbackAnalysis)

	return session.view(), nil
}

// Navigate moves between terminal and side stages. Results is exited only by
// explicit navigation, which this is.
func (s *SessionService) Navigate(id string, stage models.Stage) (*SessionView, error) {
	if !stage.Valid() {
		return nil, ErrInvalidTransition
	}

	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()

	// In-flight stages cannot be navigated out of.
	switch session.Stage {
	case models.StageGenerating, models.StageAnalyzing:
		return nil, ErrInvalidTransition
	}
	switch stage {
	case models.StageGenerating, models.StageAnalyzing, models.StageInterview, models.StageResults, models.StageSetup:
		return nil, ErrInvalidTransition
	}

	session.Stage = stage
	session.Phase = models.PhaseIdle
	session.UpdatedAt = time.Now()
	return session.view(), nil
}

func (session *InterviewSession) view() *SessionView {
	v := &SessionView{
		ID:             session.ID,
		Stage:          session.Stage,
		Phase:          session.Phase,
		JobTitle:       session.JobTitle,
		FollowUpsAsked: session.FollowUpsAsked,
		Answers:        len(session.Answers),
		Result:         session.Result,
	}

	if session.Stage == models.StageInterview {
		v.Questions = session.Questions
		v.QuestionNumber = session.CurrentIndex + 1
		if session.askingFollow != nil {
			v.CurrentQuestion = session.askingFollow.Question
			v.CurrentIsFollow = true
		} else if session.CurrentIndex < len(session.Questions) {
			v.CurrentQuestion = session.Questions[session.CurrentIndex]
		}
		if session.Phase == models.PhaseRecording {
			left := int(time.Until(session.RecordingEndsAt).Seconds())
			if left < 0 {
				left = 0
			}
			v.TimeLeft = left
		} else {
			v.TimeLeft = models.QuestionTimeLimit
		}
	}
	return v
}
