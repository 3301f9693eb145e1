package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pribylovaa/go-readlater/internal/bus"
	"github.com/pribylovaa/go-readlater/internal/config"
	"github.com/pribylovaa/go-readlater/internal/consumers"
	logctx "github.com/pribylovaa/go-readlater/internal/pkg/log"
	blendmongo "github.com/pribylovaa/go-readlater/internal/storage/mongo"
	"github.com/pribylovaa/go-readlater/internal/tokens"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting consumer", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	mongoStore, err := blendmongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("mongo_connected")

	tokenStore, err := tokens.New(cfg.Redis.URL, cfg.Redis.KeyPrefix)
	if err != nil {
		log.Error("redis_connect_failed", slog.String("err", err.Error()))
		_ = mongoStore.Close(context.Background())
		os.Exit(1)
	}
	log.Info("redis_connected")

	usersConsumer := bus.NewConsumer(bus.ConsumerConfig{
		URL:      cfg.AMQP.URL,
		Exchange: cfg.AMQP.UsersExchange(),
		Queue:    cfg.AMQP.UsersQueue,
		BindKey:  "users.*",
	}, consumers.NewUsers(mongoStore, tokenStore, cfg.Auth.TokenTTL).Handle)

	articlesConsumer := bus.NewConsumer(bus.ConsumerConfig{
		URL:      cfg.AMQP.URL,
		Exchange: cfg.AMQP.ArticlesExchange(),
		Queue:    cfg.AMQP.ArticlesQueue,
		BindKey:  "articles.*",
	}, consumers.NewArticles(mongoStore).Handle)

	// Несколько независимых циклов потребления; идемпотентность записей
	// позволяет запускать параллельные экземпляры без координации.
	ctx := logctx.Into(rootCtx, log)

	var wg sync.WaitGroup
	for _, c := range []*bus.Consumer{usersConsumer, articlesConsumer} {
		wg.Add(1)
		go func(c *bus.Consumer) {
			defer wg.Done()
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("consumer_stopped", slog.String("err", err.Error()))
			}
		}(c)
	}

	<-rootCtx.Done()
	log.Info("shutdown_requested")

	wg.Wait()

	_ = tokenStore.Close()
	_ = mongoStore.Close(context.Background())

	log.Info("consumer_stopped")
}

// setupLogger — выбор хендлера по окружению, как в остальных сервисах.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
