package tmdb

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBaseURL(slog.Default(), "test-key", srv.URL, 2*time.Second)
}

func TestSearchMoviesEmptyQueryDoesNotCallRemote(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	movies, err := client.SearchMovies(context.Background(), SearchParams{Search: "   ", Page: 1})

	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.False(t, called)
}

func TestSearchMoviesMapsResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "es-ES", r.URL.Query().Get("language"))
		w.Write([]byte(`{"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-31","poster_path":"/matrix.jpg"},
			{"id":604,"title":"Unknown","release_date":"","poster_path":""}
		]}`))
	}))

	movies, err := client.SearchMovies(context.Background(), SearchParams{Search: "Matrix", Page: 1})

	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "603", movies[0].ID)
	assert.Equal(t, "1999", movies[0].Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", movies[0].Poster)
	assert.Equal(t, "No disponible", movies[1].Year)
	assert.Equal(t, "https://via.placeholder.com/100x150?text=No+Image", movies[1].Poster)
}

func TestSearchMoviesDiscoverMode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "28,35", r.URL.Query().Get("with_genres"))
		w.Write([]byte(`{"results":[{"id":1,"title":"A","release_date":"2020-01-01","poster_path":"/a.jpg"}]}`))
	}))

	movies, err := client.SearchMovies(context.Background(), SearchParams{GenreID: "28,35", Page: 2})

	require.NoError(t, err)
	assert.Len(t, movies, 1)
}

func TestSearchMoviesReturnsTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	movies, err := client.SearchMovies(context.Background(), SearchParams{Search: "Matrix", Page: 1})

	assert.Error(t, err)
	assert.Nil(t, movies)
}

func TestGetMovieByIDMergesThreeRequests(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603":
			w.Write([]byte(`{"id":603,"title":"The Matrix","release_date":"1999-03-31",
				"poster_path":"/matrix.jpg","overview":"Neo.","runtime":136,"vote_average":8.2,
				"genres":[{"name":"Acción"},{"name":"Ciencia ficción"}]}`))
		case "/movie/603/videos":
			w.Write([]byte(`{"results":[{"key":"trailer-1"},{"key":"trailer-2"}]}`))
		case "/movie/603/credits":
			w.Write([]byte(`{
				"cast":[{"name":"a1","character":"c1","profile_path":"/p1.jpg"},{"name":"a2","character":"c2"},
					{"name":"a3","character":"c3"},{"name":"a4","character":"c4"},
					{"name":"a5","character":"c5"},{"name":"a6","character":"c6"}],
				"crew":[{"name":"someone","job":"Producer"},{"name":"Lana Wachowski","job":"Director"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	movie, err := client.GetMovieByID(context.Background(), "603")

	require.NoError(t, err)
	assert.Equal(t, "603", movie.ID)
	assert.Equal(t, "1999", movie.Year)
	assert.Equal(t, "Acción, Ciencia ficción", movie.Genre)
	assert.Equal(t, "Lana Wachowski", movie.Director)
	require.Len(t, movie.Cast, 5)
	assert.Equal(t, "a1", movie.Cast[0].Name)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p1.jpg", movie.Cast[0].ImageURL)
	require.NotNil(t, movie.TrailerKey)
	assert.Equal(t, "trailer-1", *movie.TrailerKey)
	require.NotNil(t, movie.VoteAverage)
	assert.Equal(t, 8.2, *movie.VoteAverage)
}

func TestGetMovieByIDNoDirector(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/42":
			w.Write([]byte(`{"id":42,"title":"X","release_date":""}`))
		case "/movie/42/videos":
			w.Write([]byte(`{"results":[]}`))
		case "/movie/42/credits":
			w.Write([]byte(`{"cast":[],"crew":[{"name":"someone","job":"Producer"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))

	movie, err := client.GetMovieByID(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, "No disponible", movie.Director)
	assert.Equal(t, "No disponible", movie.Year)
	assert.Nil(t, movie.TrailerKey)
	assert.Nil(t, movie.VoteAverage)
}

func TestGetMovieByIDPropagatesFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/603/credits" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":603,"title":"The Matrix","results":[]}`))
	}))

	movie, err := client.GetMovieByID(context.Background(), "603")

	assert.Error(t, err)
	assert.Nil(t, movie)
}
