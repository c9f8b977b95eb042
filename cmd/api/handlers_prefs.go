package main

import (
	"net/http"
)

func (app *Application) getPreferredGenres(w http.ResponseWriter, r *http.Request) {
	user := app.contextUser(r)
	genres := app.Services.Prefs.GetGenres(r.Context(), user.ID)
	app.Http.Ok(w, r, envelop{"genres": genres}, "")
}

type savePreferredGenresInput struct {
	Genres []string `json:"genres" validate:"dive,genrelabel" errorMsg:"Unknown genre label"`
}

func (app *Application) savePreferredGenres(w http.ResponseWriter, r *http.Request) {
	var input savePreferredGenresInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	user := app.contextUser(r)
	if err := app.Services.Prefs.SaveGenres(r.Context(), user.ID, input.Genres); err != nil {
		app.Http.ServerError(w, r, err, "No se pudo guardar tus preferencias.")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": input.Genres}, "Preferences saved")
}
