package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/OriKozok/movie-town-server/api"
	"github.com/OriKozok/movie-town-server/internal/domain"
	"github.com/OriKozok/movie-town-server/internal/session"
)

func (app *application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user := domain.User{
		Name:  input.Name,
		Email: strings.ToLower(input.Email),
	}

	err = user.Password.Set(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// The admin identity is not backed by a user record and its email must
	// never become registrable.
	if user.Email == strings.ToLower(app.config.admin.email) {
		app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		return
	}

	err = app.userRepo.Create(r.Context(), &user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			app.logger.Warn("registration attempt for existing email")
			// do not return the info of existence of email to avoid user enumeration attacks
			app.badRequestResponse(w, r, fmt.Errorf("invalid input data"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.UserResponse{
		Id:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) Login(w http.ResponseWriter, r *http.Request) {
	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	principal, ok := app.authenticatePrincipal(r, input.Email, input.Password)
	if !ok {
		app.invalidCredentialsResponse(w, r)
		return
	}

	token, err := session.NewToken()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessions.Put(token, principal, time.Now())

	err = app.writeJSON(w, http.StatusCreated, api.TokenResponse{Token: token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) authenticatePrincipal(r *http.Request, email, password string) (session.Principal, bool) {
	if strings.EqualFold(email, app.config.admin.email) {
		if password != app.config.admin.password {
			return session.Principal{}, false
		}

		return session.AdminPrincipal(), true
	}

	user, err := app.userRepo.GetByEmail(r.Context(), strings.ToLower(email))
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			app.logError(r, err)
		}

		return session.Principal{}, false
	}

	matches, err := user.Password.Matches(password)
	if err != nil {
		app.logError(r, err)
		return session.Principal{}, false
	}
	if !matches {
		app.logger.Warn("login failed due to incorrect password")
		return session.Principal{}, false
	}

	return session.UserPrincipal(user.ID), true
}

func (app *application) Logout(w http.ResponseWriter, r *http.Request) {
	sess := app.contextGetSession(r)

	app.sessions.Remove(sess.Token)

	err := app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Logged out"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
