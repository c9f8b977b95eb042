package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data   map[string][]byte
	setErr error
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) SetJSON(_ context.Context, key string, value any) error {
	if f.setErr != nil {
		return f.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeKV) GetJSON(_ context.Context, key string, dst any) error {
	if f.getErr != nil {
		return f.getErr
	}
	b, ok := f.data[key]
	if !ok {
		return storage.ErrNotFound
	}
	return json.Unmarshal(b, dst)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	kv := newFakeKV()
	svc := New(slog.Default(), kv)
	ctx := context.Background()

	require.NoError(t, svc.SaveGenres(ctx, "u1", []string{"Drama", "Terror"}))
	require.NoError(t, svc.SaveGenres(ctx, "u1", []string{"Comedia"}))

	assert.Equal(t, []string{"Comedia"}, svc.GetGenres(ctx, "u1"))
}

func TestMissingSlotIsEmptyList(t *testing.T) {
	svc := New(slog.Default(), newFakeKV())

	got := svc.GetGenres(context.Background(), "nobody")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadFailureDegradesToEmpty(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("boom")
	svc := New(slog.Default(), kv)

	assert.Empty(t, svc.GetGenres(context.Background(), "u1"))
}

func TestWriteFailurePropagates(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("boom")
	svc := New(slog.Default(), kv)

	assert.Error(t, svc.SaveGenres(context.Background(), "u1", []string{"Drama"}))
}
