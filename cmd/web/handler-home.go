package main

import (
	"net/http"

	"github.com/jkantola/smalltalk/internal/contexthelpers"
	"github.com/jkantola/smalltalk/internal/session"
)

type homeTemplateData struct {
	BaseTemplateData
}

// home renders the main menu. A signed-in user with an active session is sent
// back to where they left off.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if contexthelpers.IsAuthenticated(r.Context()) {
		machine := app.machine(r)
		switch machine.Snapshot().State {
		case session.StateConversation:
			http.Redirect(w, r, "/session", http.StatusSeeOther)
			return
		case session.StateAnalysis:
			http.Redirect(w, r, "/session/analysis", http.StatusSeeOther)
			return
		default:
			// Side screens return to the menu by navigating here.
			_ = machine.Visit(session.StateMenu)
		}
	}

	data := homeTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "home", data)
}
