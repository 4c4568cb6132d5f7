package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/services"
	"github.com/mockmate/interview-service/internal/utils"
)

// SessionHandler drives the server-side interview flow.
type SessionHandler struct {
	BaseHandler
	sessions  *services.SessionService
	validator *utils.Validator
}

func NewSessionHandler(sessions *services.SessionService, validator *utils.Validator, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
		validator:   validator,
	}
}

// CreateSession opens a new session on the landing stage.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := h.sessions.Create(clientID(c))

	h.LogRequest(c, "Session created", "session_id", session.ID)

	view, err := h.sessions.View(session.ID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession returns the current session snapshot.
func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessions.View(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// StartSetup moves the session to the setup form, or to the paywall when the
// free interview has been spent.
func (h *SessionHandler) StartSetup(c *gin.Context) {
	view, err := h.sessions.StartSetup(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrPaywallRequired) {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":   "free interview already used",
				"session": view,
			})
			return
		}
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// BeginInterview validates the setup form, generates questions and starts the
// first question.
func (h *SessionHandler) BeginInterview(c *gin.Context) {
	var req services.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	h.LogRequest(c, "Beginning interview", "session_id", c.Param("id"), "job_title", req.JobTitle)

	view, err := h.sessions.BeginInterview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SpeechEnded switches the current question from speaking to recording and
// starts the answer timer.
func (h *SessionHandler) SpeechEnded(c *gin.Context) {
	view, err := h.sessions.SpeechEnded(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type TranscriptRequest struct {
	Transcript string `json:"transcript"`
}

// AppendTranscript replaces the live transcript buffer for the current answer.
func (h *SessionHandler) AppendTranscript(c *gin.Context) {
	var req TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}

	if err := h.sessions.AppendTranscript(c.Param("id"), req.Transcript); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type SnapshotRequest struct {
	Snapshot string `json:"snapshot" validate:"required"`
}

// AddSnapshot stores a webcam frame for the later presence analysis.
func (h *SessionHandler) AddSnapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	if err := h.sessions.AddSnapshot(c.Param("id"), req.Snapshot); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Advance finalizes the current answer, consults the follow-up gate and moves
// to the next question or into analysis.
func (h *SessionHandler) Advance(c *gin.Context) {
	view, err := h.sessions.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type NavigateRequest struct {
	Stage models.Stage `json:"stage" validate:"required,interview_stage"`
}

// Navigate moves the session between non-flow stages (landing, history,
// leaderboard, contact, paywall).
func (h *SessionHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	view, err := h.sessions.Navigate(c.Param("id"), req.Stage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
