package main

import (
	"net/http"
	"strings"

	"github.com/jkantola/smalltalk/internal/contexthelpers"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/session"
)

type sessionTemplateData struct {
	BaseTemplateData
	Snapshot session.Snapshot
}

// sessionStart begins a new training session in the requested mode.
func (app *application) sessionStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	mode := models.ModeElicit
	if r.PostForm.Get("mode") == string(models.ModeResist) {
		mode = models.ModeResist
	}

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

	switch err = app.machine(r).StartSession(personas, targets, mode); {
	case errors.Is(err, session.ErrNoPersonas), errors.Is(err, session.ErrNoTargets):
		app.flash(r, "Add a persona with secrets and conversation starters before starting a session.")
		http.Redirect(w, r, "/personas", http.StatusSeeOther)
		return
	case errors.Is(err, session.ErrWrongState):
		// A session is already running, pick it up instead.
		http.Redirect(w, r, "/session", http.StatusSeeOther)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/session", http.StatusSeeOther)
}

// sessionPage renders the active conversation.
func (app *application) sessionPage(w http.ResponseWriter, r *http.Request) {
	snapshot := app.machine(r).Snapshot()
	if snapshot.State != session.StateConversation {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := sessionTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Snapshot:         snapshot,
	}
	app.render(w, r, http.StatusOK, "conversation", data)
}

// sessionTurn submits the user's message and waits for the persona's reply.
func (app *application) sessionTurn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	message := strings.TrimSpace(r.PostForm.Get("message"))
	if message == "" {
		http.Redirect(w, r, "/session", http.StatusSeeOther)
		return
	}

	switch err := app.machine(r).SubmitUserTurn(r.Context(), message); {
	case errors.Is(err, session.ErrTurnInFlight):
		// Concurrent submission dropped, the page shows the pending turn.
	case errors.Is(err, session.ErrWrongState):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/session", http.StatusSeeOther)
}

// sessionEnd closes the conversation. Sessions without a real exchange are
// discarded, the rest proceed to analysis.
func (app *application) sessionEnd(w http.ResponseWriter, r *http.Request) {
	machine := app.machine(r)
	if err := machine.EndSession(r.Context()); err != nil {
		if errors.Is(err, session.ErrWrongState) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		app.serverError(w, r, err)
		return
	}

	if machine.Snapshot().State == session.StateAnalysis {
		http.Redirect(w, r, "/session/analysis", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// sessionAnalysisPage renders the coach report of the finished session.
func (app *application) sessionAnalysisPage(w http.ResponseWriter, r *http.Request) {
	snapshot := app.machine(r).Snapshot()
	if snapshot.State != session.StateAnalysis || snapshot.Analysis == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := sessionTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Snapshot:         snapshot,
	}
	app.render(w, r, http.StatusOK, "analysis", data)
}

// sessionMenu clears all session state and returns to the menu.
func (app *application) sessionMenu(w http.ResponseWriter, r *http.Request) {
	app.machine(r).ReturnToMenu()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
