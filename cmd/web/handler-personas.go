package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jkantola/smalltalk/internal/contexthelpers"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/repositories"
	"github.com/jkantola/smalltalk/internal/session"
)

type personasTemplateData struct {
	BaseTemplateData
	Personas []models.Persona
	Targets  []string
}

func (app *application) personasPage(w http.ResponseWriter, r *http.Request) {
	// Best effort, a user browsing here mid-conversation keeps their session.
	_ = app.machine(r).Visit(session.StateManagingPersonas)

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	personas, err := app.personas.List(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	targets, err := app.targets.List(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := personasTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Personas:         personas,
		Targets:          targets,
	}
	app.render(w, r, http.StatusOK, "personas", data)
}

// personaCreate stores a single persona submitted through the form. The
// list fields take one entry per line.
func (app *application) personaCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	persona := models.Persona{
		Name:                 strings.TrimSpace(r.PostForm.Get("name")),
		Role:                 strings.TrimSpace(r.PostForm.Get("role")),
		VoiceName:            strings.TrimSpace(r.PostForm.Get("voice_name")),
		Psychology:           strings.TrimSpace(r.PostForm.Get("psychology")),
		Strengths:            strings.TrimSpace(r.PostForm.Get("strengths")),
		Weaknesses:           strings.TrimSpace(r.PostForm.Get("weaknesses")),
		TargetInfo:           splitLines(r.PostForm.Get("target_info")),
		ConversationStarters: splitLines(r.PostForm.Get("conversation_starters")),
	}

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	if err := app.personas.Create(r.Context(), userID, persona); err != nil {
		if errors.Is(err, repositories.ErrInvalidPersona) {
			app.flash(r, "A persona requires both a name and a role.")
			http.Redirect(w, r, "/personas", http.StatusSeeOther)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.flash(r, "Persona created.")
	http.Redirect(w, r, "/personas", http.StatusSeeOther)
}

// personasImport loads a JSON array of persona objects. A malformed payload
// leaves the registry untouched.
func (app *application) personasImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	var personas []models.Persona
	if err := json.Unmarshal([]byte(r.PostForm.Get("payload")), &personas); err != nil {
		app.flash(r, "Import failed: the payload is not a valid JSON array of personas.")
		http.Redirect(w, r, "/personas", http.StatusSeeOther)
		return
	}

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	if err := app.personas.CreateBatch(r.Context(), userID, personas); err != nil {
		if errors.Is(err, repositories.ErrInvalidPersona) {
			app.flash(r, "Import failed: every persona requires a name and a role. Nothing was imported.")
			http.Redirect(w, r, "/personas", http.StatusSeeOther)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.flash(r, "Personas imported.")
	http.Redirect(w, r, "/personas", http.StatusSeeOther)
}

// targetsImport loads a JSON array of attack-target descriptions for resist
// mode.
func (app *application) targetsImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	var targets []string
	if err := json.Unmarshal([]byte(r.PostForm.Get("payload")), &targets); err != nil {
		app.flash(r, "Import failed: the payload is not a valid JSON array of strings.")
		http.Redirect(w, r, "/personas", http.StatusSeeOther)
		return
	}

	userID := contexthelpers.AuthenticatedUserID(r.Context())
	if err := app.targets.CreateBatch(r.Context(), userID, targets); err != nil {
		if errors.Is(err, repositories.ErrInvalidTarget) {
			app.flash(r, "Import failed: target descriptions must not be empty. Nothing was imported.")
			http.Redirect(w, r, "/personas", http.StatusSeeOther)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.flash(r, "Attack targets imported.")
	http.Redirect(w, r, "/personas", http.StatusSeeOther)
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
