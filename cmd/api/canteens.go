package main

import (
	"errors"
	"net/http"

	"mensa/internal/store"
)

func (app *application) listCanteensHandler(w http.ResponseWriter, r *http.Request) {
	site := r.URL.Query().Get("site")
	if site == "" {
		app.badRequestResponse(w, r, errors.New("Missing site"))
		return
	}

	names, err := app.store.Canteens.ListNames(r.Context(), site)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"canteens": names})
}

type CreateCanteenPayload struct {
	Site string `json:"site" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func (app *application) createCanteenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateCanteenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing site or canteen name"))
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing site or canteen name"))
		return
	}

	canteen := &store.Canteen{Site: payload.Site, Name: payload.Name}
	if err := app.store.Canteens.Create(r.Context(), canteen); err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, errors.New("Canteen already exists for this site"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (app *application) deleteCanteenHandler(w http.ResponseWriter, r *http.Request) {
	site := r.URL.Query().Get("site")
	name := r.URL.Query().Get("name")
	if site == "" || name == "" {
		app.badRequestResponse(w, r, errors.New("Missing site or canteen name"))
		return
	}

	if err := app.store.Canteens.Delete(r.Context(), site, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, errors.New("Canteen not found for this site"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
