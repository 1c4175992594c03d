package main

import (
	"net/http"
	"strings"

	"github.com/jkantola/smalltalk/internal/contexthelpers"
	"github.com/jkantola/smalltalk/internal/models"
	"github.com/jkantola/smalltalk/internal/session"
)

const leaderboardLimit = 50

type leaderboardTemplateData struct {
	BaseTemplateData
	Entries []models.LeaderboardEntry
}

func (app *application) leaderboardPage(w http.ResponseWriter, r *http.Request) {
	if contexthelpers.IsAuthenticated(r.Context()) {
		// Best effort, an active session is never disturbed by browsing here.
		_ = app.machine(r).Visit(session.StateLeaderboard)
	}

	entries, err := app.leaderboard.List(r.Context(), leaderboardLimit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := leaderboardTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Entries:          entries,
	}
	app.render(w, r, http.StatusOK, "leaderboard", data)
}

// leaderboardSubmit records the score of the just-analyzed session under the
// submitted display name.
func (app *application) leaderboardSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	if name == "" {
		app.flash(r, "Enter a name to submit your score.")
		http.Redirect(w, r, "/session/analysis", http.StatusSeeOther)
		return
	}

	snapshot := app.machine(r).Snapshot()
	if snapshot.State != session.StateAnalysis || snapshot.Analysis == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	entry := models.LeaderboardEntry{
		Name:        name,
		Score:       snapshot.Analysis.Score,
		PersonaName: snapshot.Persona.Name,
	}
	if err := app.leaderboard.Add(r.Context(), entry); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.machine(r).ReturnToMenu()
	app.flash(r, "Score submitted.")
	http.Redirect(w, r, "/leaderboard", http.StatusSeeOther)
}
