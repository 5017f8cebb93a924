package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"goals-platform/internal/core/auth"
	"goals-platform/internal/core/config"
	"goals-platform/internal/core/database"
	"goals-platform/internal/core/logger"
	"goals-platform/internal/core/server"
	"goals-platform/internal/feature/goal"
	"goals-platform/internal/repo"
	"goals-platform/internal/service"
	"goals-platform/internal/transport/http/handler"
	"goals-platform/internal/transport/http/router"
	"goals-platform/internal/usergw"
)

const serviceName = "goalsvc"

func main() {
	_ = godotenv.Load()
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/goalsvc.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	log, cleanup := logger.New(serviceName, cfg.Log)
	defer cleanup()

	if cfg.UserService.BaseURL == "" {
		log.Fatal("userService.baseURL is required")
	}

	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB))
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&goal.GoalModel{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	opts := usergw.Options{
		BaseURL: cfg.UserService.BaseURL,
		Timeout: time.Duration(cfg.UserService.TimeoutMs) * time.Millisecond,
		Caller:  serviceName,
		Logger:  log,
	}
	if cfg.JWT.Secret != "" {
		opts.Tokens = &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		}
	}
	gw, err := usergw.NewHTTPGateway(opts)
	if err != nil {
		log.Fatal("user gateway", zap.Error(err))
	}

	goals := service.NewGoalService(repo.NewGoalRepo(db), gw, log)
	r := router.NewEngine(router.Options{Logger: log},
		&handler.GoalHandler{Goals: goals, Users: service.NewUserDirectory(gw)})

	srv := server.BuildServer(cfg.App.HTTP, r, log)
	log.Info("goal service starting",
		zap.String("addr", srv.Addr),
		zap.String("user_service", cfg.UserService.BaseURL),
		zap.Duration("user_timeout", opts.Timeout),
		zap.Bool("service_auth", opts.Tokens != nil),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("goal service stopped with error", zap.Error(err))
		return
	}
	log.Info("goal service stopped gracefully")
}
