package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/api/tasks"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/clients/tmdb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/config"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/lib/logger"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage/mongodb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage/rediskv"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	godotenv.Load()
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     cfg.Sentry.DSN,
			Release: version,
			Debug:   cfg.Debug,
		})
		if err != nil {
			panic(err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		panic(err)
	}
	defer storage.Close(context.Background())
	if err := storage.EnsureIndexes(ctx); err != nil {
		panic(err)
	}
	log.Info("mongodb connection established", "database", cfg.Mongo.Database)

	kv, err := rediskv.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		panic(err)
	}
	log.Info("redis connection established", "addr", cfg.Redis.Addr)

	tmdbClient := tmdb.New(log, cfg.TMDB.APIKey, cfg.TMDB.Timeout)

	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	bgTasks.Run()

	svcs := services.New(log, cfg, storage, kv, tmdbClient, bgTasks)
	app := NewApplication(cfg, log, svcs, tmdbClient)
	if err := app.serve(); err != nil {
		log.Error("server stopped with error", "errMsg", err.Error())
		os.Exit(1)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := bgTasks.Shutdown(shutdownCtx); err != nil {
		log.Error("background tasks shutdown failed", "errMsg", err.Error())
	}
}
