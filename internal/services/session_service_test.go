package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-service/internal/events"
	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/utils"
)

type stubQuestions struct {
	questions []string
}

func (s *stubQuestions) Generate(context.Context, string, string) ([]string, bool) {
	return s.questions, false
}

// stubGate pops scripted decisions; once the script runs out it always says
// no.
type stubGate struct {
	decisions []*models.FollowUpDecision
	requests  []FollowUpEvalRequest
}

func (s *stubGate) Evaluate(_ context.Context, req FollowUpEvalRequest) *models.FollowUpDecision {
	s.requests = append(s.requests, req)
	if len(s.decisions) == 0 {
		return &models.FollowUpDecision{ShouldFollowUp: false, Reason: models.ReasonThoroughAnswer}
	}
	d := s.decisions[0]
	s.decisions = s.decisions[1:]
	return d
}

type stubAnalysis struct {
	result       *models.InterviewResult
	video        *models.VideoAnalysis
	usedFallback bool
	answers      []models.Answer
	meta         FollowUpMeta
	videoCalls   int
}

func (s *stubAnalysis) AnalyzeStrict(_ context.Context, answers []models.Answer, _ string, meta FollowUpMeta) (*models.InterviewResult, error) {
	s.answers = answers
	s.meta = meta
	return s.result, nil
}

func (s *stubAnalysis) Analyze(_ context.Context, answers []models.Answer, _ string, meta FollowUpMeta) (*models.InterviewResult, bool, error) {
	s.answers = answers
	s.meta = meta
	return s.result, s.usedFallback, nil
}

func (s *stubAnalysis) AnalyzeVideo(context.Context, []string) *models.VideoAnalysis {
	s.videoCalls++
	return s.video
}

type stubScoreboard struct {
	completed   int
	trialUsed   bool
	history     []models.InterviewRecord
	leaderboard []models.LeaderboardEntry
}

func (s *stubScoreboard) History(context.Context, string) ([]models.InterviewRecord, error) {
	return s.history, nil
}

func (s *stubScoreboard) RecordInterview(_ context.Context, _ string, record models.InterviewRecord) ([]models.InterviewRecord, error) {
	s.history = models.PushHistory(s.history, record, models.HistoryCapacity)
	s.completed++
	return s.history, nil
}

func (s *stubScoreboard) Leaderboard(context.Context) ([]models.LeaderboardEntry, error) {
	return s.leaderboard, nil
}

func (s *stubScoreboard) SubmitScore(_ context.Context, entry models.LeaderboardEntry) ([]models.LeaderboardEntry, error) {
	s.leaderboard = models.InsertRanked(s.leaderboard, entry, models.LeaderboardCapacity)
	return s.leaderboard, nil
}

func (s *stubScoreboard) ExportLeaderboard(context.Context) ([]byte, error) { return nil, nil }

func (s *stubScoreboard) CompletedCount(context.Context, string) (int, error) {
	return s.completed, nil
}

func (s *stubScoreboard) FreeTrialUsed(context.Context, string) (bool, error) {
	return s.trialUsed, nil
}

func (s *stubScoreboard) SubmitContact(context.Context, *models.ContactSubmission) error { return nil }

func (s *stubScoreboard) Profile(context.Context, string) (*models.UserProfile, error) {
	return nil, ErrNotFound
}

func (s *stubScoreboard) SaveProfile(context.Context, *models.UserProfile) error { return nil }

type sessionFixture struct {
	svc        *SessionService
	gate       *stubGate
	analysis   *stubAnalysis
	scoreboard *stubScoreboard
	publisher  *events.MockEventPublisher
}

func newSessionFixture() *sessionFixture {
	gate := &stubGate{}
	analysis := &stubAnalysis{
		result: &models.InterviewResult{
			OverallScore: 78,
			Passed:       true,
			QuestionScores: []models.QuestionScore{
				{QuestionNum: 1, Score: 78},
			},
		},
	}
	scoreboard := &stubScoreboard{}
	publisher := events.NewMockEventPublisher(testLogger())

	svc := NewSessionService(
		&stubQuestions{questions: []string{"Q1?", "Q2?", "Q3?", "Q4?", "Q5?"}},
		gate,
		analysis,
		scoreboard,
		publisher,
		testLogger(),
		utils.NewValidator(),
	)
	return &sessionFixture{svc: svc, gate: gate, analysis: analysis, scoreboard: scoreboard, publisher: publisher}
}

func (f *sessionFixture) startInterview(t *testing.T, req SetupRequest) string {
	t.Helper()
	ctx := context.Background()

	session := f.svc.Create("client-1")
	_, err := f.svc.StartSetup(ctx, session.ID)
	require.NoError(t, err)

	view, err := f.svc.BeginInterview(ctx, session.ID, req)
	require.NoError(t, err)
	require.Equal(t, models.StageInterview, view.Stage)
	require.Equal(t, models.PhaseSpeaking, view.Phase)
	return session.ID
}

// answer runs one speech-ended / transcript / advance cycle.
func (f *sessionFixture) answer(t *testing.T, id, transcript string) *SessionView {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.SpeechEnded(id)
	require.NoError(t, err)
	if transcript != "" {
		require.NoError(t, f.svc.AppendTranscript(id, transcript))
	}
	view, err := f.svc.Advance(ctx, id)
	require.NoError(t, err)
	return view
}

func TestSessionService_FullFlow(t *testing.T) {
	f := newSessionFixture()
	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer", UserName: "Ada"})

	var view *SessionView
	for i := 0; i < 5; i++ {
		view = f.answer(t, id, "My answer.")
	}

	assert.Equal(t, models.StageResults, view.Stage)
	require.NotNil(t, view.Result)
	assert.Equal(t, 78, view.Result.OverallScore)
	assert.Len(t, f.analysis.answers, 5)
	assert.Len(t, f.gate.requests, 5)

	// History written and, with a name set, the leaderboard too.
	require.Len(t, f.scoreboard.history, 1)
	assert.Equal(t, "Backend Engineer", f.scoreboard.history[0].JobTitle)
	require.Len(t, f.scoreboard.leaderboard, 1)
	assert.Equal(t, "Ada", f.scoreboard.leaderboard[0].Name)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventInterviewStarted, published[0].Type)
	assert.Equal(t, events.EventInterviewCompleted, published[1].Type)
}

func TestSessionService_AnonymousSkipsLeaderboard(t *testing.T) {
	f := newSessionFixture()
	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer"})

	for i := 0; i < 5; i++ {
		f.answer(t, id, "My answer.")
	}

	assert.Len(t, f.scoreboard.history, 1)
	assert.Empty(t, f.scoreboard.leaderboard)
}

func TestSessionService_FollowUpInjection(t *testing.T) {
	f := newSessionFixture()
	fuType := models.FollowUpDepthProbe
	fuQuestion := "What was the hardest part?"
	f.gate.decisions = []*models.FollowUpDecision{{
		ShouldFollowUp:   true,
		Reason:           models.ReasonLacksSpecifics,
		FollowUpType:     &fuType,
		FollowUpQuestion: &fuQuestion,
	}}

	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer"})

	view := f.answer(t, id, "We migrated the billing system.")
	assert.True(t, view.CurrentIsFollow)
	assert.Equal(t, fuQuestion, view.CurrentQuestion)
	assert.Equal(t, 1, view.FollowUpsAsked)

	// The follow-up answer itself never reaches the gate.
	view = f.answer(t, id, "The hardest part was data consistency.")
	assert.False(t, view.CurrentIsFollow)
	assert.Equal(t, "Q2?", view.CurrentQuestion)
	assert.Len(t, f.gate.requests, 1)

	for i := 0; i < 4; i++ {
		view = f.answer(t, id, "Another answer.")
	}
	assert.Equal(t, models.StageResults, view.Stage)

	// 5 mains + 1 follow-up captured, gate ran once per main answer.
	assert.Len(t, f.analysis.answers, 6)
	assert.Len(t, f.gate.requests, 5)

	fu := f.analysis.answers[1]
	assert.True(t, fu.IsFollowUp)
	assert.Equal(t, fuQuestion, fu.Question)
	assert.Equal(t, 0, fu.ParentQuestionIndex)

	// The merge metadata carries the asked follow-up and reasons for the
	// rest.
	require.Contains(t, f.analysis.meta.Records, 0)
	assert.Equal(t, fuType, f.analysis.meta.Records[0].Type)
	assert.NotContains(t, f.analysis.meta.Reasons, 0)
	assert.Contains(t, f.analysis.meta.Reasons, 1)
}

func TestSessionService_GateSeesAskedCount(t *testing.T) {
	f := newSessionFixture()
	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer"})

	for i := 0; i < 5; i++ {
		f.answer(t, id, "Answer.")
	}

	for _, req := range f.gate.requests {
		assert.Equal(t, 0, req.AskedSoFar)
		assert.Equal(t, 5, req.TotalQuestions)
		assert.Equal(t, "Backend Engineer", req.JobTitle)
	}
}

func TestSessionService_EmptyAnswerPlaceholder(t *testing.T) {
	f := newSessionFixture()
	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer"})

	for i := 0; i < 5; i++ {
		f.answer(t, id, "")
	}

	require.Len(t, f.analysis.answers, 5)
	for _, a := range f.analysis.answers {
		assert.Equal(t, models.NoResponsePlaceholder, a.Answer)
	}
}

func TestSessionService_RecordingGuards(t *testing.T) {
	f := newSessionFixture()
	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer"})

	// Speaking phase: no transcript, no advance.
	err := f.svc.AppendTranscript(id, "too early")
	assert.ErrorIs(t, err, ErrRecordingNotAllowed)

	_, err = f.svc.Advance(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Double speech-ended is rejected.
	_, err = f.svc.SpeechEnded(id)
	require.NoError(t, err)
	_, err = f.svc.SpeechEnded(id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionService_Paywall(t *testing.T) {
	t.Run("completed interview spends the free run", func(t *testing.T) {
		f := newSessionFixture()
		f.scoreboard.completed = 1

		session := f.svc.Create("client-1")
		view, err := f.svc.StartSetup(context.Background(), session.ID)

		assert.ErrorIs(t, err, ErrPaywallRequired)
		require.NotNil(t, view)
		assert.Equal(t, models.StagePaywall, view.Stage)
	})

	t.Run("trial flag alone also gates", func(t *testing.T) {
		f := newSessionFixture()
		f.scoreboard.trialUsed = true

		session := f.svc.Create("client-1")
		_, err := f.svc.StartSetup(context.Background(), session.ID)

		assert.ErrorIs(t, err, ErrPaywallRequired)
	})
}

func TestSessionService_Navigate(t *testing.T) {
	f := newSessionFixture()
	session := f.svc.Create("client-1")

	view, err := f.svc.Navigate(session.ID, models.StageHistory)
	require.NoError(t, err)
	assert.Equal(t, models.StageHistory, view.Stage)

	_, err = f.svc.Navigate(session.ID, models.StageInterview)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Navigate(session.ID, models.StageAnalyzing)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Navigate(session.ID, models.Stage("outer_space"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionService_SetupValidation(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	session := f.svc.Create("client-1")
	_, err := f.svc.StartSetup(ctx, session.ID)
	require.NoError(t, err)

	_, err = f.svc.BeginInterview(ctx, session.ID, SetupRequest{})
	assert.Error(t, err)

	// Unknown session ids surface as not found.
	_, err = f.svc.View("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_VideoAnalysisAttached(t *testing.T) {
	f := newSessionFixture()
	f.analysis.video = &models.VideoAnalysis{OverallVideoScore: 66}

	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer", VideoEnabled: true})

	_, err := f.svc.SpeechEnded(id)
	require.NoError(t, err)
	require.NoError(t, f.svc.AddSnapshot(id, "data:image/jpeg;base64,AAAA"))
	view, err := f.svc.Advance(context.Background(), id)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		view = f.answer(t, id, "Answer.")
	}

	require.Equal(t, models.StageResults, view.Stage)
	assert.Equal(t, 1, f.analysis.videoCalls)
	require.NotNil(t, view.Result.VideoAnalysis)
	assert.Equal(t, 66, view.Result.VideoAnalysis.OverallVideoScore)
}

func TestSessionService_SnapshotRequiresVideo(t *testing.T) {
	f := newSessionFixture()
	id := f.startInterview(t, SetupRequest{JobTitle: "Backend Engineer"})

	err := f.svc.AddSnapshot(id, "AAAA")
	assert.ErrorIs(t, err, ErrInterviewNotActive)
}
