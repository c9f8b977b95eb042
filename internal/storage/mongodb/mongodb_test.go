package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a reachable instance; set TEST_MONGO_URI to run.
func testDB(t *testing.T) *MongoDB {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := New(ctx, uri, "buscador_peliculas_test")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(context.Background()) })
	require.NoError(t, db.EnsureIndexes(ctx))
	return db
}

func TestListCommentsNewestFirst(t *testing.T) {
	db := testDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	movieID := "it-" + uuid.NewString()
	require.NoError(t, db.InsertComment(ctx, movieID, "ana@gmail.com", "first"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, db.InsertComment(ctx, movieID, "ana@gmail.com", "second"))

	comments, err := db.ListComments(ctx, movieID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
}

func TestInsertUserDuplicateEmailConflicts(t *testing.T) {
	db := testDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := "it-" + uuid.NewString() + "@gmail.com"
	first := &models.User{ID: uuid.NewString(), Email: email, Provider: "password"}
	require.NoError(t, db.InsertUser(ctx, first))

	dup := &models.User{ID: uuid.NewString(), Email: email, Provider: "password"}
	assert.ErrorIs(t, db.InsertUser(ctx, dup), storage.ErrConflict)
}
