package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/auth"
	"github.com/tin229oo/nadias-lending/internal/config"
	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/kv"
	"github.com/tin229oo/nadias-lending/internal/kv/memory"
	mongokv "github.com/tin229oo/nadias-lending/internal/kv/mongo"
	postgreskv "github.com/tin229oo/nadias-lending/internal/kv/postgres"
	rediskv "github.com/tin229oo/nadias-lending/internal/kv/redis"
	"github.com/tin229oo/nadias-lending/internal/lending"
	"github.com/tin229oo/nadias-lending/internal/logging"
	"github.com/tin229oo/nadias-lending/internal/notify"
	"github.com/tin229oo/nadias-lending/internal/server"
	"github.com/tin229oo/nadias-lending/internal/store"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	slots, err := openSlots(ctx, cfg)
	if err != nil {
		logger.Fatal("init store backend", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer slots.Close()

	records := store.New(slots, cfg.StoreKey, store.SeedAdmin{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if _, err := records.Load(ctx); err != nil {
		logger.Fatal("initialize record store", zap.Error(err))
	}

	var events notify.Publisher = notify.Noop{}
	if cfg.NATSURL != "" {
		nc, err := notify.NewNATS(cfg.NATSURL, logger)
		if err != nil {
			logger.Fatal("connect to nats", zap.Error(err))
		}
		defer nc.Close()
		events = nc
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)
	ident := identity.NewManager(records, slots, cfg.SessionTTL, logger)
	loans := lending.NewManager(records, ident, events, logger)

	srv := server.New(cfg, server.Deps{Identity: ident, Loans: loans, Tokens: tokens, Log: logger})

	go func() {
		logger.Info("nadias lending backend listening", zap.String("addr", cfg.HTTPAddress()))
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Warn("graceful shutdown error", zap.Error(err))
	}
}

func openSlots(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		s := rediskv.New(cfg.RedisAddr)
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return s, nil
	case "postgres":
		return postgreskv.New(ctx, cfg.DatabaseURL)
	case "mongo":
		return mongokv.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return memory.New(), nil
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
