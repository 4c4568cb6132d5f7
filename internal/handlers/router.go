package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/interview-service/internal/services"
	"github.com/mockmate/interview-service/internal/utils"
)

type HandlerManager struct {
	interviewHandler  *InterviewHandler
	sessionHandler    *SessionHandler
	scoreboardHandler *ScoreboardHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		interviewHandler: NewInterviewHandler(
			serviceManager.Question(),
			serviceManager.FollowUp(),
			serviceManager.Analysis(),
			serviceManager.Speech(),
			validator,
			logger,
		),
		sessionHandler:    NewSessionHandler(serviceManager.Session(), validator, logger),
		scoreboardHandler: NewScoreboardHandler(serviceManager.Scoreboard(), validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.Use(CORSMiddleware())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Stateless AI endpoints
		interview := v1.Group("/interview")
		{
			interview.POST("/questions", hm.interviewHandler.GenerateQuestions)
			interview.POST("/analyze", hm.interviewHandler.AnalyzeInterview)
			interview.POST("/followup", hm.interviewHandler.EvaluateFollowUp)
			interview.POST("/video", hm.interviewHandler.AnalyzeVideo)
		}
		v1.POST("/speak", hm.interviewHandler.Speak)

		// Interview flow sessions
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/setup", hm.sessionHandler.StartSetup)
			sessions.POST("/:id/begin", hm.sessionHandler.BeginInterview)
			sessions.POST("/:id/speech-ended", hm.sessionHandler.SpeechEnded)
			sessions.POST("/:id/transcript", hm.sessionHandler.AppendTranscript)
			sessions.POST("/:id/snapshot", hm.sessionHandler.AddSnapshot)
			sessions.POST("/:id/advance", hm.sessionHandler.Advance)
			sessions.POST("/:id/navigate", hm.sessionHandler.Navigate)
		}

		// History, leaderboard and account surface
		v1.GET("/history", hm.scoreboardHandler.GetHistory)
		v1.POST("/history", hm.scoreboardHandler.RecordHistory)

		leaderboard := v1.Group("/leaderboard")
		{
			leaderboard.GET("", hm.scoreboardHandler.GetLeaderboard)
			leaderboard.POST("", hm.scoreboardHandler.SubmitScore)
			leaderboard.GET("/export", hm.scoreboardHandler.ExportLeaderboard)
		}

		v1.POST("/contact", hm.scoreboardHandler.SubmitContact)
		v1.GET("/profile", hm.scoreboardHandler.GetProfile)
		v1.PUT("/profile", hm.scoreboardHandler.SaveProfile)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "interview-service",
		})
	})
}

// CORSMiddleware mirrors the permissive browser policy the endpoints have
// always shipped with. Preflights short-circuit with 200.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Client-ID, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
