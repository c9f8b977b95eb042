package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthenticatedUser(t *testing.T) {
	app := NewTestApplication(t)
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, &models.User{
			ID:    "u-1",
			Email: "test@gmail.com",
		}))
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyUser, models.AnonymousUser))
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		app.requireAuthenticatedUser(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	app := NewTestApplication(t)
	user, err := app.Services.Auth.Signup(context.Background(), auth.SignupParams{
		Email:     "auth-mw@gmail.com",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	token, _, err := app.Services.Auth.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxUser, ok := r.Context().Value(CtxKeyUser).(*models.User)
		require.True(t, ok)
		w.Header().Set("X-User-Email", ctxUser.Email)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no header proceeds as anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "", recorder.Header().Get("X-User-Email"))
	})
	t.Run("malformed header", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Token abc")
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
	t.Run("invalid token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer not-a-token")
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("valid token attaches user", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		app.Authenticate(next).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, user.Email, recorder.Header().Get("X-User-Email"))
	})
}
