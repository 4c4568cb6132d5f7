package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/mockmate/interview-service/internal/models"
	"github.com/mockmate/interview-service/internal/services"
	"github.com/mockmate/interview-service/internal/utils"
)

// ScoreboardHandler serves interview history, the global leaderboard and the
// small profile/contact surface.
type ScoreboardHandler struct {
	BaseHandler
	scoreboard services.ScoreboardService
	validator  *utils.Validator
}

func NewScoreboardHandler(scoreboard services.ScoreboardService, validator *utils.Validator, logger utils.Logger) *ScoreboardHandler {
	return &ScoreboardHandler{
		BaseHandler: NewBaseHandler(logger),
		scoreboard:  scoreboard,
		validator:   validator,
	}
}

// GetHistory returns the caller's recent interviews, newest first.
func (h *ScoreboardHandler) GetHistory(c *gin.Context) {
	records, err := h.scoreboard.History(c.Request.Context(), clientID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

type RecordHistoryRequest struct {
	JobTitle     string `json:"jobTitle" validate:"required,max=200"`
	OverallScore int    `json:"overallScore" validate:"min=0,max=100"`
	Passed       bool   `json:"passed"`
}

// RecordHistory appends an interview summary to the caller's capped history.
// The session flow writes history itself; this exists for clients that ran
// the stateless endpoints.
func (h *ScoreboardHandler) RecordHistory(c *gin.Context) {
	var req RecordHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	record := models.InterviewRecord{
		Date:         time.Now().UTC(),
		JobTitle:     req.JobTitle,
		OverallScore: req.OverallScore,
		Passed:       req.Passed,
	}
	records, err := h.scoreboard.RecordInterview(c.Request.Context(), clientID(c), record)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

// GetLeaderboard returns the global top scores, highest first.
func (h *ScoreboardHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.scoreboard.Leaderboard(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

type SubmitScoreRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Score  int    `json:"score" validate:"min=0,max=100"`
	Job    string `json:"job" validate:"max=200"`
	Passed bool   `json:"passed"`
}

// SubmitScore adds a named score to the leaderboard and returns the updated
// ranking.
func (h *ScoreboardHandler) SubmitScore(c *gin.Context) {
	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	entry := models.LeaderboardEntry{
		Name:   req.Name,
		Score:  req.Score,
		Job:    req.Job,
		Passed: req.Passed,
		Date:   time.Now().UTC(),
	}

	entries, err := h.scoreboard.SubmitScore(c.Request.Context(), entry)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// ExportLeaderboard streams the leaderboard as an xlsx workbook.
func (h *ScoreboardHandler) ExportLeaderboard(c *gin.Context) {
	data, err := h.scoreboard.ExportLeaderboard(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// SubmitContact stores a contact form submission.
func (h *ScoreboardHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	payload, err := json.Marshal(req)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "failed to store submission", err)
		return
	}

	submission := &models.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Payload: datatypes.JSON(payload),
	}
	if err := h.scoreboard.SubmitContact(c.Request.Context(), submission); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Contact submission stored", "email", req.Email)
	c.JSON(http.StatusCreated, gin.H{"status": "received"})
}

// GetProfile returns the caller's profile, if one exists.
func (h *ScoreboardHandler) GetProfile(c *gin.Context) {
	profile, err := h.scoreboard.Profile(c.Request.Context(), clientID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type SaveProfileRequest struct {
	DisplayName       string         `json:"displayName" validate:"max=100"`
	Email             *string        `json:"email" validate:"omitempty,email"`
	PreferredJobTitle *string        `json:"preferredJobTitle" validate:"omitempty,max=200"`
	ResumeText        *string        `json:"resumeText" validate:"omitempty,max=50000"`
	IsSubscribed      bool           `json:"isSubscribed"`
	Preferences       map[string]any `json:"preferences"`
}

// SaveProfile upserts the caller's profile.
func (h *ScoreboardHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request payload", err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "validation failed", err, err.Error())
		return
	}

	profile := &models.UserProfile{
		ID:                clientID(c),
		DisplayName:       req.DisplayName,
		Email:             req.Email,
		PreferredJobTitle: req.PreferredJobTitle,
		ResumeText:        req.ResumeText,
		IsSubscribed:      req.IsSubscribed,
	}
	if req.Preferences != nil {
		prefs, err := json.Marshal(req.Preferences)
		if err != nil {
			h.RespondWithError(c, http.StatusInternalServerError, "failed to save profile", err)
			return
		}
		profile.Preferences = datatypes.JSON(prefs)
	}

	if err := h.scoreboard.SaveProfile(c.Request.Context(), profile); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
