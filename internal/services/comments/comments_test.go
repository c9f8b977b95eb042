package comments

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inlineExecutor runs tasks synchronously so tests stay deterministic.
type inlineExecutor struct{}

func (inlineExecutor) Add(task func()) { task() }

type fakeStorage struct {
	comments  []models.Comment
	insertErr error
	listErr   error
}

func (f *fakeStorage) InsertComment(_ context.Context, movieID, userEmail, text string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.comments = append(f.comments, models.Comment{
		MovieID:   movieID,
		UserEmail: userEmail,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (f *fakeStorage) ListComments(_ context.Context, movieID string) ([]models.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Comment{}
	for _, c := range f.comments {
		if c.MovieID == movieID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func TestAddThenListIncludesNewCommentAtHead(t *testing.T) {
	storage := &fakeStorage{comments: []models.Comment{
		{MovieID: "603", UserEmail: "old@test.com", Text: "older", CreatedAt: time.Now().Add(-time.Hour)},
	}}
	svc := New(slog.Default(), storage, inlineExecutor{})

	svc.Add("603", "new@test.com", "great movie")

	got := svc.List(context.Background(), "603")
	require.Len(t, got, 2)
	assert.Equal(t, "great movie", got[0].Text)
	assert.Equal(t, "older", got[1].Text)
}

func TestAddFailureIsSwallowed(t *testing.T) {
	storage := &fakeStorage{insertErr: errors.New("boom")}
	svc := New(slog.Default(), storage, inlineExecutor{})

	svc.Add("603", "a@test.com", "text") // must not panic or surface

	assert.Empty(t, svc.List(context.Background(), "603"))
}

func TestListFailureDegradesToEmpty(t *testing.T) {
	storage := &fakeStorage{listErr: errors.New("boom")}
	svc := New(slog.Default(), storage, inlineExecutor{})

	got := svc.List(context.Background(), "603")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
