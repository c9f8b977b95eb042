package main

import (
	"net/http"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
)

func (app *Application) getFavorites(w http.ResponseWriter, r *http.Request) {
	store := app.Services.Favorites.For(app.contextUser(r).ID)
	app.Http.Ok(w, r, envelop{"favorites": store.List()}, "")
}

type addFavoriteInput struct {
	ID     string `json:"id" validate:"required" errorMsg:"Movie id is required"`
	Title  string `json:"title" validate:"required" errorMsg:"Movie title is required"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
}

func (app *Application) addFavorite(w http.ResponseWriter, r *http.Request) {
	var input addFavoriteInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	store := app.Services.Favorites.For(app.contextUser(r).ID)
	added := store.Add(models.Favorite{
		ID:     input.ID,
		Title:  input.Title,
		Year:   input.Year,
		Poster: input.Poster,
	})
	if !added {
		app.Http.Ok(w, r, envelop{"favorites": store.List()}, "Already in favorites")
		return
	}
	app.Http.Created(w, r, envelop{"favorites": store.List()}, "Added to favorites")
}

func (app *Application) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractMovieIDParam(w, r)
	if !ok {
		return
	}
	store := app.Services.Favorites.For(app.contextUser(r).ID)
	if !store.Remove(id) {
		app.Http.NotFound(w, r, "Movie is not in favorites")
		return
	}
	app.Http.Ok(w, r, envelop{"favorites": store.List()}, "Removed from favorites")
}

func (app *Application) resetFavorites(w http.ResponseWriter, r *http.Request) {
	store := app.Services.Favorites.For(app.contextUser(r).ID)
	store.Reset()
	app.Http.Ok(w, r, envelop{"favorites": store.List()}, "Favorites cleared")
}
