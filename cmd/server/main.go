package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mockmate/interview-service/internal/cache"
	"github.com/mockmate/interview-service/internal/config"
	"github.com/mockmate/interview-service/internal/events"
	"github.com/mockmate/interview-service/internal/handlers"
	"github.com/mockmate/interview-service/internal/llm"
	"github.com/mockmate/interview-service/internal/repositories"
	postgresrepo "github.com/mockmate/interview-service/internal/repositories/postgres"
	redisrepo "github.com/mockmate/interview-service/internal/repositories/redis"
	"github.com/mockmate/interview-service/internal/services"
	"github.com/mockmate/interview-service/internal/utils"
	"github.com/mockmate/interview-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to Redis")
		os.Exit(1)
	}
	defer redisClient.Close()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to database")
		os.Exit(1)
	}

	cacheService := cache.NewRedisCache(redisClient, logger)

	repo := repositories.NewRepository(
		redisrepo.NewScoreboardRepository(redisClient),
		postgresrepo.NewProfileRepository(db),
		postgresrepo.NewContactRepository(db),
	)

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.EventTopic,
			Logger:       slogger,
		})
		if err != nil {
			logger.LogError(err, "Failed to create Kafka publisher, events disabled")
			publisher = events.NoopEventPublisher{}
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
		}
	} else {
		publisher = events.NoopEventPublisher{}
	}

	completer := llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)

	speech, err := services.NewSpeechService(cfg, slogger)
	if err != nil {
		logger.LogError(err, "Failed to initialize speech service")
		os.Exit(1)
	}

	validator := utils.NewValidator()

	serviceManager := services.NewServiceManager(completer, speech, repo, cacheService, publisher, slogger, validator)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, validator, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting interview service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.LogError(err, "Server exited")
		os.Exit(1)
	}
}
