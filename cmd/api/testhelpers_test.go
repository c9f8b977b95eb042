package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/clients/tmdb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/config"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/auth"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/catalog"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/comments"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/favorites"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/prefs"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"
)

const testSecret = "test-secret"

type fakeUsersStorage struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by id
}

func newFakeUsersStorage() *fakeUsersStorage {
	return &fakeUsersStorage{users: make(map[string]*models.User)}
}

func (f *fakeUsersStorage) InsertUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return storage.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsersStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsersStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsersStorage) UpdateUserPassword(ctx context.Context, id string, passwordHash []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeKV struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{items: make(map[string][]byte)}
}

func (f *fakeKV) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = data
	return nil
}

func (f *fakeKV) GetJSON(ctx context.Context, key string, dst any) error {
	f.mu.Lock()
	data, ok := f.items[key]
	f.mu.Unlock()
	if !ok {
		return storage.ErrNotFound
	}
	return json.Unmarshal(data, dst)
}

type fakeCommentsStorage struct {
	mu       sync.Mutex
	comments []models.Comment
}

func (f *fakeCommentsStorage) InsertComment(ctx context.Context, movieID, userEmail, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, models.Comment{
		MovieID:   movieID,
		UserEmail: userEmail,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (f *fakeCommentsStorage) ListComments(ctx context.Context, movieID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, c := range f.comments {
		if c.MovieID == movieID {
			out = append(out, c)
		}
	}
	return out, nil
}

// inlineExecutor runs background tasks synchronously so tests can assert
// on their effects immediately.
type inlineExecutor struct{}

func (inlineExecutor) Add(task func()) { task() }

type stubFetcher struct {
	movies []models.Movie
}

func (s *stubFetcher) SearchMovies(ctx context.Context, params tmdb.SearchParams) ([]models.Movie, error) {
	return s.movies, nil
}

func NewTestApplication(t *testing.T) *Application {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Debug:     false,
		AppSecret: testSecret,
	}
	cfg.Server.ShutdownTimeout = time.Second
	svcs := &services.Services{
		Auth:      auth.New(log, newFakeUsersStorage(), testSecret, time.Hour, ""),
		Comments:  comments.New(log, &fakeCommentsStorage{}, inlineExecutor{}),
		Prefs:     prefs.New(log, newFakeKV()),
		Catalog: catalog.NewRegistry(log, &stubFetcher{movies: []models.Movie{
			{ID: "603", Title: "The Matrix", Year: "1999", Poster: "https://image.tmdb.org/t/p/w500/matrix.jpg"},
		}}, 10*time.Millisecond),
		Favorites: favorites.NewRegistry(log),
	}
	return NewApplication(cfg, log, svcs, nil)
}
