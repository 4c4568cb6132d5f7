package services

import (
	"log/slog"

	"github.com/mockmate/interview-service/internal/cache"
	"github.com/mockmate/interview-service/internal/events"
	"github.com/mockmate/interview-service/internal/repositories"
	"github.com/mockmate/interview-service/internal/utils"
)

// ServiceManager gives handlers one dependency carrying every service.
type ServiceManager interface {
	Question() QuestionService
	FollowUp() FollowUpService
	Analysis() AnalysisService
	Speech() SpeechService
	Scoreboard() ScoreboardService
	Session() *SessionService
}

type serviceManager struct {
	question   QuestionService
	followUp   FollowUpService
	analysis   AnalysisService
	speech     SpeechService
	scoreboard ScoreboardService
	session    *SessionService
}

func NewServiceManager(
	completer Completer,
	speech SpeechService,
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) ServiceManager {
	question := NewQuestionService(completer, cacheService, logger)
	followUp := NewFollowUpService(completer, logger, validator)
	analysis := NewAnalysisService(completer, logger, validator)
	scoreboard := NewScoreboardService(repo, publisher, logger, validator)
	session := NewSessionService(question, followUp, analysis, scoreboard, publisher, logger, validator)

	return &serviceManager{
		question:   question,
		followUp:   followUp,
		analysis:   analysis,
		speech:     speech,
		scoreboard: scoreboard,
		session:    session,
	}
}

func (m *serviceManager) Question() QuestionService     { return m.question }
func (m *serviceManager) FollowUp() FollowUpService     { return m.followUp }
func (m *serviceManager) Analysis() AnalysisService     { return m.analysis }
func (m *serviceManager) Speech() SpeechService         { return m.speech }
func (m *serviceManager) Scoreboard() ScoreboardService { return m.scoreboard }
func (m *serviceManager) Session() *SessionService      { return m.session }
