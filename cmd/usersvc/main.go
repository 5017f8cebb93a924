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
	"goals-platform/internal/core/cache"
	"goals-platform/internal/core/config"
	"goals-platform/internal/core/database"
	"goals-platform/internal/core/logger"
	"goals-platform/internal/core/server"
	"goals-platform/internal/feature/user"
	"goals-platform/internal/repo"
	"goals-platform/internal/service"
	"goals-platform/internal/transport/http/handler"
	"goals-platform/internal/transport/http/router"
)

const serviceName = "usersvc"

func main() {
	_ = godotenv.Load()
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "configs/usersvc.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	log, cleanup := logger.New(serviceName, cfg.Log)
	defer cleanup()

	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB))
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&user.UserModel{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSec)*time.Second)
		defer c.Close()
		log.Info("user cache enabled", zap.String("redis", cfg.Redis.Addr))
	}

	ro := router.Options{Logger: log}
	if cfg.JWT.Secret != "" {
		ro.ServiceAuth = &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer}
		ro.Callers = []string{"goalsvc"}
	}
	users := service.NewUserService(repo.NewUserRepo(db), c, log)
	r := router.NewEngine(ro, &handler.UserHandler{Users: users})

	srv := server.BuildServer(cfg.App.HTTP, r, log)
	log.Info("user service starting",
		zap.String("addr", srv.Addr),
		zap.Bool("service_auth", ro.ServiceAuth != nil),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("user service stopped with error", zap.Error(err))
		return
	}
	log.Info("user service stopped gracefully")
}
