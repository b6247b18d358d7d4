package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/ahmednasr/autoguide-ai/server/internal/cache"
	"github.com/ahmednasr/autoguide-ai/server/internal/config"
	"github.com/ahmednasr/autoguide-ai/server/internal/database"
	"github.com/ahmednasr/autoguide-ai/server/internal/handler"
	"github.com/ahmednasr/autoguide-ai/server/internal/logger"
	"github.com/ahmednasr/autoguide-ai/server/internal/middleware"
	"github.com/ahmednasr/autoguide-ai/server/internal/repository"
	"github.com/ahmednasr/autoguide-ai/server/internal/service"
)

// main is the single entry‑point for the REST API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"db":       cfg.DBName,
		"provider": cfg.LLMProvider,
		"cache":    cfg.RedisURL != "",
		"embed":    cfg.EmbeddingsEnabled,
	}).Info("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.DBName)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}

	guideRepo := repository.NewGuideRepository(db, log)
	catalogRepo := repository.NewCatalogRepository(db)
	queryLogRepo := repository.NewQueryLogRepository(db)

	checkers := []service.Checker{
		{Name: "mongo", Check: guideRepo.Ping},
	}

	var guideCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("connect to Redis")
		}
		defer rdb.Close()
		rc := cache.NewRedisCache(rdb)
		guideCache = rc
		checkers = append(checkers, service.Checker{Name: "redis", Check: rc.Ping})
	}

	llm, closeLLM, err := newLLM(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("init LLM provider")
	}
	defer closeLLM()

	embedder, closeEmbedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("init embedder")
	}
	defer closeEmbedder()

	svcs := handler.Services{
		Guides: service.NewGuideService(guideRepo, llm, embedder, guideCache, log, service.GuideServiceConfig{
			LLMTimeout: cfg.LLMTimeout(),
			CacheTTL:   cfg.CacheTTLDuration(),
		}),
		Chat:       service.NewChatService(guideRepo, llm, guideCache, log, cfg.LLMTimeout()),
		Structured: service.NewStructuredGuideService(catalogRepo, queryLogRepo, llm, log, cfg.LLMTimeout()),
		Health:     service.NewHealthService(0, checkers...),
	}

	app := fiber.New(fiber.Config{
		AppName:      "autoguide-ai",
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		BodyLimit:    1 << 20,
		ErrorHandler: handler.ErrorHandler(log),
	})

	// Logging wraps recover so a recovered panic is still logged as a 500.
	app.Use(middleware.Logging(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins(), ","),
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(app, svcs)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}

// newLLM builds the configured provider and a func releasing its resources.
func newLLM(ctx context.Context, cfg config.Config) (service.LLM, func(), error) {
	switch cfg.LLMProvider {
	case config.ProviderVertex:
		v, err := service.NewVertexLLM(ctx, cfg.ProjectID, cfg.Location, cfg.VertexModel, cfg.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return v, func() { _ = v.Close() }, nil
	case config.ProviderDummy:
		return service.NewDummyLLM(), func() {}, nil
	default:
		return service.NewOpenAILLM(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), func() {}, nil
	}
}

// newEmbedder returns nil when embeddings are disabled. The dummy provider
// pairs with the local hashing embedder, every other provider with Vertex.
func newEmbedder(ctx context.Context, cfg config.Config) (service.EmbeddingClient, func(), error) {
	switch {
	case !cfg.EmbeddingsEnabled:
		return nil, func() {}, nil
	case cfg.LLMProvider == config.ProviderDummy:
		return service.NewDummyEmbedder(), func() {}, nil
	}
	ve, err := service.NewVertexEmbedder(ctx, cfg.ProjectID, cfg.Location, cfg.EmbeddingModel, cfg.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	return ve, func() { _ = ve.Close() }, nil
}
