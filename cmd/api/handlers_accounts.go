package main

import (
	"errors"
	"net/http"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/metrics"
	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/services/auth"
)

type signupInput struct {
	Email     string `json:"email" validate:"required,email" errorMsg:"A valid email is required"`
	Password  string `json:"password" validate:"required,min=8,max=72" errorMsg:"Password must be between 8 and 72 characters"`
	FirstName string `json:"firstName" validate:"required" errorMsg:"First name is required"`
	LastName  string `json:"lastName" validate:"required" errorMsg:"Last name is required"`
	BirthDate string `json:"birthDate"`
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var input signupInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	user, err := app.Services.Auth.Signup(r.Context(), auth.SignupParams{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: input.BirthDate,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			metrics.AuthEvents.WithLabelValues("signup", "conflict").Inc()
			app.Http.Conflict(w, r, err.Error())
			return
		}
		metrics.AuthEvents.WithLabelValues("signup", "error").Inc()
		app.Http.ServerError(w, r, err, "")
		return
	}
	metrics.AuthEvents.WithLabelValues("signup", "ok").Inc()
	app.Http.Created(w, r, envelop{"user": user}, "Account created")
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email" errorMsg:"A valid email is required"`
	Password string `json:"password" validate:"required" errorMsg:"Password is required"`
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	token, user, err := app.Services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.AuthEvents.WithLabelValues("login", "rejected").Inc()
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		metrics.AuthEvents.WithLabelValues("login", "error").Inc()
		app.Http.ServerError(w, r, err, "")
		return
	}
	metrics.AuthEvents.WithLabelValues("login", "ok").Inc()
	app.Http.Ok(w, r, envelop{"token": token, "user": user}, "")
}

type socialLoginInput struct {
	IDToken string `json:"idToken" validate:"required" errorMsg:"Provider token is required"`
}

func (app *Application) socialLogin(w http.ResponseWriter, r *http.Request) {
	var input socialLoginInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	token, user, err := app.Services.Auth.GoogleSignIn(r.Context(), input.IDToken)
	if err != nil {
		if errors.Is(err, auth.ErrSocialSignIn) {
			metrics.AuthEvents.WithLabelValues("social", "rejected").Inc()
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		metrics.AuthEvents.WithLabelValues("social", "error").Inc()
		app.Http.ServerError(w, r, err, "")
		return
	}
	metrics.AuthEvents.WithLabelValues("social", "ok").Inc()
	app.Http.Ok(w, r, envelop{"token": token, "user": user}, "")
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required" errorMsg:"Current password is required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72" errorMsg:"New password must be between 8 and 72 characters"`
}

func (app *Application) changePassword(w http.ResponseWriter, r *http.Request) {
	var input changePasswordInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	if !app.validateOrUnprocessable(w, r, input) {
		return
	}
	user := app.contextUser(r)
	err := app.Services.Auth.ChangePassword(r.Context(), user.ID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Password updated")
}

func (app *Application) me(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"user": app.contextUser(r)}, "")
}
