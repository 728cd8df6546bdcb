package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/P-CIV/ecocycle-sub001/api/routes"
	"github.com/P-CIV/ecocycle-sub001/internal/config"
	"github.com/P-CIV/ecocycle-sub001/internal/handlers"
	"github.com/P-CIV/ecocycle-sub001/internal/repositories"
	mongorepo "github.com/P-CIV/ecocycle-sub001/internal/repositories/mongodb"
	"github.com/P-CIV/ecocycle-sub001/internal/services"
	"github.com/P-CIV/ecocycle-sub001/pkg/jwt"
	"github.com/P-CIV/ecocycle-sub001/pkg/mongodb"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional, viper falls back to real environment variables
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("error disconnecting from MongoDB")
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var agentRepo repositories.AgentRepository = mongorepo.NewAgentRepository(db)
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var tokenRepo repositories.TokenRepository = mongorepo.NewTokenRepository(db)
	var statsRepo repositories.StatsRepository = mongorepo.NewStatsRepository(db)
	var collecteRepo repositories.CollecteRepository = mongorepo.NewCollecteRepository(db)

	// Services
	tokens := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authService := services.NewAuthService(userRepo, tokens)
	rewardService := services.NewRewardService(tokenRepo, log)
	statsService := services.NewStatsService(agentRepo, userRepo, log)
	agentService := services.NewAgentService(agentRepo, userRepo, statsRepo, log)
	collecteService := services.NewCollecteService(collecteRepo, statsService)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		AgentHandler:    handlers.NewAgentHandler(agentService),
		CollecteHandler: handlers.NewCollecteHandler(collecteService),
		TokenHandler:    handlers.NewTokenHandler(rewardService),
	}

	router := routes.SetupRouter(cfg, tokens, log, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.WithField("port", cfg.Server.Port).Info("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
