package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mensa/internal/store"
)

func (app *application) listSitesHandler(w http.ResponseWriter, r *http.Request) {
	sites, err := app.store.Sites.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if sites == nil {
		sites = []store.Site{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"sites": sites})
}

type CreateSitePayload struct {
	Location       string `json:"location" validate:"required"`
	BranchLocation string `json:"branch_location" validate:"required"`
}

func (app *application) createSiteHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateSitePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	site := &store.Site{
		Location:       payload.Location,
		BranchLocation: payload.BranchLocation,
	}
	if err := app.store.Sites.Create(r.Context(), site); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type UpdateSitePayload struct {
	Location       string `json:"location" validate:"required"`
	BranchLocation string `json:"branch_location" validate:"required"`
}

func (app *application) updateSiteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "siteID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("Invalid site ID"))
		return
	}

	var payload UpdateSitePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	if err := app.store.Sites.Update(r.Context(), id, payload.Location, payload.BranchLocation); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (app *application) deleteSiteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "siteID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("Invalid site ID"))
		return
	}

	if err := app.store.Sites.Delete(r.Context(), id); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
