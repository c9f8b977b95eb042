package prefs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"
)

type KVStorage interface {
	SetJSON(ctx context.Context, key string, value any) error
	GetJSON(ctx context.Context, key string, dst any) error
}

// PrefsService persists a user's selected genre labels under a single named
// slot, overwritten wholesale on every save.
type PrefsService struct {
	log *slog.Logger
	kv  KVStorage
}

func New(log *slog.Logger, kv KVStorage) *PrefsService {
	return &PrefsService{log: log, kv: kv}
}

func genresKey(userID string) string {
	return "prefs:genres:" + userID
}

func (s *PrefsService) SaveGenres(ctx context.Context, userID string, genres []string) error {
	const op = "prefs.PrefsService.SaveGenres"
	if genres == nil {
		genres = []string{}
	}
	if err := s.kv.SetJSON(ctx, genresKey(userID), genres); err != nil {
		s.log.Error("Error saving genres", "op", op, "user_id", userID, "errMsg", err.Error())
		return err
	}
	return nil
}

// GetGenres returns the stored list. A missing slot or a failed read both
// degrade to an empty list.
func (s *PrefsService) GetGenres(ctx context.Context, userID string) []string {
	const op = "prefs.PrefsService.GetGenres"
	var genres []string
	if err := s.kv.GetJSON(ctx, genresKey(userID), &genres); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("Error reading genres", "op", op, "user_id", userID, "errMsg", err.Error())
		}
		return []string{}
	}
	if genres == nil {
		genres = []string{}
	}
	return genres
}
