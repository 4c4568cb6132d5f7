package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/interview-service/internal/services"
)

// handleServiceError maps service sentinels to HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrNotFound):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInterviewNotActive),
		errors.Is(err, services.ErrRecordingNotAllowed),
		errors.Is(err, services.ErrBadRequest),
		errors.Is(err, services.ErrNoAnswers):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrPaywallRequired):
		h.RespondWithError(c, http.StatusPaymentRequired, err.Error(), nil)
	case errors.Is(err, services.ErrMalformedReply),
		errors.Is(err, services.ErrAnalysisFailed),
		errors.Is(err, services.ErrSpeechSynthesis):
		h.RespondWithError(c, http.StatusInternalServerError, err.Error(), err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "internal server error", err)
	}
}

// clientID resolves the storage key for the caller. Falls back to the client
// IP when no explicit id is supplied.
func clientID(c *gin.Context) string {
	if id := c.GetHeader("X-Client-ID"); id != "" {
		return id
	}
	if id := c.Query("client_id"); id != "" {
		return id
	}
	return c.ClientIP()
}
