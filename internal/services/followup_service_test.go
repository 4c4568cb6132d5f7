package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/utils"
)

// stubCompleter returns canned replies and counts calls.
type stubCompleter struct {
	reply      string
	imageReply string
	err        error
	calls      int
	imageCalls int
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, _ int) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.reply, s.err
}

func (s *stubCompleter) CompleteWithImages(_ context.Context, prompt string, _ []string, _ int) (string, error) {
	s.imageCalls++
	s.lastPrompt = prompt
	return s.imageReply, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func baseEvalRequest() FollowUpEvalRequest {
	return FollowUpEvalRequest{
		Question:       "Tell me about a time you led a project.",
		Answer:         "I led the migration of our billing system.",
		QuestionIndex:  1,
		TotalQuestions: 5,
		AskedSoFar:     0,
		JobTitle:       "Engineering Manager",
	}
}

func TestFollowUpService_Evaluate(t *testing.T) {
	validator := utils.NewValidator()

	t.Run("cap enforced before any model call", func(t *testing.T) {
		completer := &stubCompleter{}
		svc := NewFollowUpService(completer, testLogger(), validator)

		req := baseEvalRequest()
		req.AskedSoFar = models.MaxFollowUps

		decision := svc.Evaluate(context.Background(), req)

		assert.False(t, decision.ShouldFollowUp)
		assert.Equal(t, models.ReasonMaxFollowUpsReached, decision.Reason)
		assert.Zero(t, completer.calls)
	})

	t.Run("affirmative decision parsed from fenced reply", func(t *testing.T) {
		completer := &stubCompleter{reply: "```json\n" + `{
			"shouldFollowUp": true,
			"reason": "lacks_specifics",
			"followUpType": "DEPTH_PROBE",
			"followUpQuestion": "What was the hardest part of that migration?",
			"whatWasMissing": "Concrete obstacles"
		}` + "\n```"}
		svc := NewFollowUpService(completer, testLogger(), validator)

		decision := svc.Evaluate(context.Background(), baseEvalRequest())

		assert.True(t, decision.ShouldFollowUp)
		assert.Equal(t, models.ReasonLacksSpecifics, decision.Reason)
		require.NotNil(t, decision.FollowUpType)
		assert.Equal(t, models.FollowUpDepthProbe, *decision.FollowUpType)
		require.NotNil(t, decision.FollowUpQuestion)
		assert.Equal(t, 1, completer.calls)
	})

	t.Run("transport error fails open", func(t *testing.T) {
		completer := &stubCompleter{err: errors.New("connection reset")}
		svc := NewFollowUpService(completer, testLogger(), validator)

		decision := svc.Evaluate(context.Background(), baseEvalRequest())

		assert.False(t, decision.ShouldFollowUp)
		assert.Equal(t, models.ReasonEvaluationError, decision.Reason)
	})

	t.Run("unparseable reply fails open", func(t *testing.T) {
		completer := &stubCompleter{reply: "Sure! I think a follow-up would be great here."}
		svc := NewFollowUpService(completer, testLogger(), validator)

		decision := svc.Evaluate(context.Background(), baseEvalRequest())

		assert.False(t, decision.ShouldFollowUp)
		assert.Equal(t, models.ReasonEvaluationError, decision.Reason)
	})

	t.Run("unknown reason enum fails open", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"shouldFollowUp": false, "reason": "felt_like_it"}`}
		svc := NewFollowUpService(completer, testLogger(), validator)

		decision := svc.Evaluate(context.Background(), baseEvalRequest())

		assert.Equal(t, models.ReasonEvaluationError, decision.Reason)
	})

	t.Run("affirmative without a question fails open", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"shouldFollowUp": true, "reason": "too_short"}`}
		svc := NewFollowUpService(completer, testLogger(), validator)

		decision := svc.Evaluate(context.Background(), baseEvalRequest())

		assert.False(t, decision.ShouldFollowUp)
		assert.Equal(t, models.ReasonEvaluationError, decision.Reason)
	})

	t.Run("negative decision passes through", func(t *testing.T) {
		completer := &stubCompleter{reply: `{"shouldFollowUp": false, "reason": "thorough_answer"}`}
		svc := NewFollowUpService(completer, testLogger(), validator)

		decision := svc.Evaluate(context.Background(), baseEvalRequest())

		assert.False(t, decision.ShouldFollowUp)
		assert.Equal(t, models.ReasonThoroughAnswer, decision.Reason)
	})
}
