package main

import (
	"net/http"
)

func (app *Application) getCatalog(w http.ResponseWriter, r *http.Request) {
	session := app.Services.Catalog.For(app.contextUser(r).ID)
	app.Http.Ok(w, r, envelop{"catalog": session.Snapshot()}, "")
}

type setSearchInput struct {
	Term string `json:"term" validate:"max=100"`
}

// setCatalogSearch schedules a debounced re-fetch; the response carries the
// pre-fetch snapshot, the client polls or re-reads after the quiet window.
func (app *Application) setCatalogSearch(w http.ResponseWriter, r *http.Request) {
	var input setSearchInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	session := app.Services.Catalog.For(app.contextUser(r).ID)
	session.SetSearchTerm(input.Term)
	app.Http.Accepted(w, r, envelop{"catalog": session.Snapshot()}, "Search scheduled")
}

type setGenresInput struct {
	Genres []string `json:"genres" validate:"dive,genrelabel"`
}

func (app *Application) setCatalogGenres(w http.ResponseWriter, r *http.Request) {
	var input setGenresInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	session := app.Services.Catalog.For(app.contextUser(r).ID)
	session.SetGenres(input.Genres)
	app.Http.Ok(w, r, envelop{"catalog": session.Snapshot()}, "")
}

func (app *Application) catalogLoadMore(w http.ResponseWriter, r *http.Request) {
	session := app.Services.Catalog.For(app.contextUser(r).ID)
	session.LoadMore()
	app.Http.Ok(w, r, envelop{"catalog": session.Snapshot()}, "")
}

func (app *Application) applyCatalogFilters(w http.ResponseWriter, r *http.Request) {
	var input setGenresInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	session := app.Services.Catalog.For(app.contextUser(r).ID)
	session.ApplyFilters(input.Genres)
	app.Http.Ok(w, r, envelop{"catalog": session.Snapshot()}, "")
}

func (app *Application) clearCatalogFilters(w http.ResponseWriter, r *http.Request) {
	session := app.Services.Catalog.For(app.contextUser(r).ID)
	session.ClearFilters()
	app.Http.Ok(w, r, envelop{"catalog": session.Snapshot()}, "")
}
