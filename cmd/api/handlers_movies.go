package main

import (
	"net/http"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/clients/tmdb"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
)

type movieSearchQuery struct {
	Search  string `schema:"search"`
	Page    int    `schema:"page"`
	GenreID string `schema:"genre_id"`
}

// getMovies is the stateless list endpoint. Failed lookups degrade to an
// empty list; the client renders its "no results" state.
func (app *Application) getMovies(w http.ResponseWriter, r *http.Request) {
	var query movieSearchQuery
	if err := app.queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, "invalid query parameters")
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	movies, err := app.Tmdb.SearchMovies(r.Context(), tmdb.SearchParams{
		Search:  query.Search,
		Page:    query.Page,
		GenreID: query.GenreID,
	})
	if err != nil {
		app.Http.setupLogPerReq(r).Error("Error searching movies", "errMsg", err.Error())
		movies = []models.Movie{}
	}
	app.Http.Ok(w, r, envelop{"movies": movies}, "")
}

// getMovie propagates detail-fetch failures: the screen renders a terminal
// "could not load" state, with no retry affordance.
func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractMovieIDParam(w, r)
	if !ok {
		return
	}
	movie, err := app.Tmdb.GetMovieByID(r.Context(), id)
	if err != nil {
		app.Http.setupLogPerReq(r).Error("Error fetching movie detail", "errMsg", err.Error())
		app.Http.BadGateway(w, r, "No se pudo cargar la película.")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) getComments(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractMovieIDParam(w, r)
	if !ok {
		return
	}
	comments := app.Services.Comments.List(r.Context(), id)
	app.Http.Ok(w, r, envelop{"comments": comments}, "")
}

type createCommentInput struct {
	Text string `json:"text" validate:"required,max=500" errorMsg:"Comment text is required and must be at most 500 characters"`
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractMovieIDParam(w, r)
	if !ok {
		return
	}
	var input createCommentInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	user := app.contextUser(r)
	app.Services.Comments.Add(id, user.Email, input.Text)
	app.Http.Accepted(w, r, nil, "Comment submitted")
}
