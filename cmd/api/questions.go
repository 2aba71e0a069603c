package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mensa/internal/store"
)

func (app *application) listQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	site := r.URL.Query().Get("site")
	if site == "" {
		app.badRequestResponse(w, r, errors.New("Missing site"))
		return
	}

	questions, err := app.store.Questions.List(r.Context(), site)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if questions == nil {
		questions = []store.Question{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

type CreateQuestionPayload struct {
	Site         string `json:"site" validate:"required"`
	QuestionText string `json:"question_text" validate:"required"`
}

func (app *application) createQuestionHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateQuestionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing fields"))
		return
	}

	if err := app.store.Questions.Create(r.Context(), payload.Site, payload.QuestionText); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type UpdateQuestionPayload struct {
	QuestionText string `json:"question_text" validate:"required"`
}

func (app *application) updateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("Invalid question ID"))
		return
	}

	var payload UpdateQuestionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing question_text"))
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, errors.New("Missing question_text"))
		return
	}

	if err := app.store.Questions.UpdateText(r.Context(), id, payload.QuestionText); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (app *application) deleteQuestionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("Invalid question ID"))
		return
	}

	if err := app.store.Questions.Delete(r.Context(), id); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
