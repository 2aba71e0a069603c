package main

import (
	"errors"
	"net/http"

	"mensa/internal/store"
)

type AdminLoginPayload struct {
	Password string `json:"password" validate:"required"`
}

func (app *application) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var payload AdminLoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.unauthorizedErrorResponse(w, r, errors.New("Invalid admin password"))
		return
	}

	if payload.Password == "" || payload.Password != app.config.auth.adminPassword {
		app.unauthorizedErrorResponse(w, r, errors.New("Invalid admin password"))
		return
	}

	token, err := app.authenticator.GenerateAdminToken()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

type SignupPayload struct {
	Site     string `json:"site" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	user := &store.User{
		Site:     payload.Site,
		Username: payload.Username,
	}
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, errors.New("Username already exists for this site"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type LoginPayload struct {
	Site     string `json:"site" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	user, err := app.store.Users.GetBySiteUsername(r.Context(), payload.Site, payload.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, errors.New("Invalid credentials"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := user.Password.Compare(payload.Password); err != nil {
		app.unauthorizedErrorResponse(w, r, errors.New("Invalid credentials"))
		return
	}

	token, err := app.authenticator.GenerateUserToken(user.ID, user.Site, user.Username)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

// profileHandler echoes the verified session claims back to the caller. It is
// how clients check whether a stored token is still valid.
func (app *application) profileHandler(w http.ResponseWriter, r *http.Request) {
	claims := getClaimsFromContext(r)

	writeJSON(w, http.StatusOK, map[string]any{"user": claims})
}
