package main

import (
	"log/slog"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/clients/tmdb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/config"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/lib/validator"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg          *config.Config
	log          *slog.Logger
	Http         *Http
	Services     *services.Services
	Tmdb         *tmdb.Client
	validator    *govalidator.Validate
	queryDecoder *schema.Decoder
}

func NewApplication(cfg *config.Config, log *slog.Logger, svcs *services.Services, tmdbClient *tmdb.Client) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("genrelabel", validator.ValidateGenreLabel); err != nil {
		panic(err)
	}
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    v,
		queryDecoder: queryDecoder,
		Services:     svcs,
		Tmdb:         tmdbClient,
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
