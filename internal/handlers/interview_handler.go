package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/services"
	"github.com/mockmate/interview-service/internal/utils"
)

// InterviewHandler exposes the stateless AI endpoints: question generation,
// full-interview analysis, the follow-up gate, video-presence analysis and
// speech synthesis.
type InterviewHandler struct {
	BaseHandler
	questionService services.QuestionService
	followUpService services.FollowUpService
	analysisService services.AnalysisService
	speechService   services.SpeechService
	validator       *utils.Validator
}

func NewInterviewHandler(
	questionService services.QuestionService,
	followUpService services.FollowUpService,
	analysisService services.AnalysisService,
	speechService services.SpeechService,
	validator *utils.Validator,
	logger utils.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
		followUpService: followUpService,
		analysisService: analysisService,
		speechService:   speechService,
		validator:       validator,
	}
}

type GenerateQuestionsRequest struct {
	JobTitle       string `json:"jobTitle" validate:"required,max=200"`
	JobDescription string `json:"jobDescription" validate:"max=10000"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

// GenerateQuestions builds the 5-question set for a job posting. A
// generation failure still answers 200 with the fallback set.
func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	h.LogRequest(c, "Generating interview questions", "job_title", req.JobTitle)

	questions, _ := h.questionService.Generate(c.Request.Context(), req.JobTitle, req.JobDescription)
	c.JSON(http.StatusOK, QuestionsResponse{Questions: questions})
}

// FollowUpRecordPayload mirrors the session-local gate bookkeeping the
// client sends back for the merge step.
type FollowUpRecordPayload struct {
	Type     models.FollowUpType `json:"type" validate:"required,followup_type"`
	Question string              `json:"question" validate:"required"`
}

type AnalyzeInterviewRequest struct {
	Answers  []models.Answer               `json:"answers" validate:"required,min=1,dive"`
	JobTitle string                        `json:"jobTitle" validate:"required,max=200"`
	Records  map[int]FollowUpRecordPayload `json:"followUpRecords"`
	Reasons  map[int]models.FollowUpReason `json:"noFollowUpReasons" validate:"omitempty,dive,followup_reason"`
}

type ResultsResponse struct {
	Results any `json:"results"`
}

// AnalyzeInterview runs the scorecard pipeline. Unlike the session flow,
// this endpoint propagates hard failures as 500 so the caller can decide on
// its own fallback.
func (h *InterviewHandler) AnalyzeInterview(c *gin.Context) {
	var req AnalyzeInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	h.LogRequest(c, "Analyzing interview", "job_title", req.JobTitle, "answers", len(req.Answers))

	meta := services.FollowUpMeta{
		Records: make(map[int]services.FollowUpRecord, len(req.Records)),
		Reasons: req.Reasons,
	}
	for idx, rec := range req.Records {
		meta.Records[idx] = services.FollowUpRecord{Type: rec.Type, Question: rec.Question}
	}
	if meta.Reasons == nil {
		meta.Reasons = make(map[int]models.FollowUpReason)
	}

	result, err := h.analysisService.AnalyzeStrict(c.Request.Context(), req.Answers, req.JobTitle, meta)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to analyze interview", err, err.Error())
		return
	}

	c.JSON(http.StatusOK, ResultsResponse{Results: result})
}

// EvaluateFollowUp runs the follow-up gate. Evaluation failures degrade to a
// soft 200 no-follow-up decision so the interview is never blocked here.
func (h *InterviewHandler) EvaluateFollowUp(c *gin.Context) {
	var req services.FollowUpEvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	h.LogRequest(c, "Evaluating follow-up", "question_index", req.QuestionIndex)

	decision := h.followUpService.Evaluate(c.Request.Context(), req)
	c.JSON(http.StatusOK, decision)
}

type AnalyzeVideoRequest struct {
	Snapshots []string `json:"snapshots"`
}

// AnalyzeVideo scores presence from snapshots. Always 200; a nil results
// field means the analysis was skipped or failed.
func (h *InterviewHandler) AnalyzeVideo(c *gin.Context) {
	var req AnalyzeVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}

	if len(req.Snapshots) == 0 {
		c.JSON(http.StatusOK, ResultsResponse{Results: nil})
		return
	}

	h.LogRequest(c, "Analyzing video snapshots", "snapshots", len(req.Snapshots))

	analysis := h.analysisService.AnalyzeVideo(c.Request.Context(), req.Snapshots)
	c.JSON(http.StatusOK, ResultsResponse{Results: analysis})
}

type SpeakRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Speak synthesizes the given text as mp3 audio.
func (h *InterviewHandler) Speak(c *gin.Context) {
	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	audio, err := h.speechService.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to generate speech", err)
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}
