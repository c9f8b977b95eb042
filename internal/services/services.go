package services

import (
	"log/slog"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/clients/tmdb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/config"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/auth"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/catalog"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/comments"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/favorites"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/prefs"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage/mongodb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage/rediskv"
)

type Services struct {
	Auth      *auth.AuthService
	Comments  *comments.CommentService
	Prefs     *prefs.PrefsService
	Catalog   *catalog.Registry
	Favorites *favorites.Registry
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	mongo *mongodb.MongoDB,
	kv *rediskv.RedisKV,
	tmdbClient *tmdb.Client,
	taskExecutor comments.TaskExecutor,
) *Services {
	return &Services{
		Auth:      auth.New(log, mongo, cfg.AppSecret, cfg.Auth.TokenTTL, cfg.Auth.GoogleTokenInfoURL),
		Comments:  comments.New(log, mongo, taskExecutor),
		Prefs:     prefs.New(log, kv),
		Catalog:   catalog.NewRegistry(log, tmdbClient, cfg.Catalog.DebounceDelay),
		Favorites: favorites.NewRegistry(log),
	}
}
