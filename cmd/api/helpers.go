package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/domain/models"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/lib/validator"

	"github.com/go-chi/chi/v5"
)

func (app *Application) extractMovieIDParam(w http.ResponseWriter, r *http.Request) (id string, extracted bool) {
	id = chi.URLParam(r, "id")
	if id == "" {
		app.Http.BadRequest(w, r, "invalid movie ID")
		return "", false
	}
	return id, true
}

// contextUser returns the user the Authenticate middleware attached to the
// request. Handlers behind requireAuthenticatedUser can rely on it being a
// real account.
func (app *Application) contextUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

func (app *Application) readJSONOrBadRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := app.readJSON(w, r, dst); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	return true
}

func (app *Application) validateOrUnprocessable(w http.ResponseWriter, r *http.Request, obj any) bool {
	if errs := validator.ValidateStruct(app.validator, obj); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return false
	}
	return true
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}
