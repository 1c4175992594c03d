package main

import (
	"net/http"

	"github.com/jkantola/smalltalk/ui"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	// The embedded filesystem already roots the assets at static/.
	fileServer := http.FileServer(http.FS(ui.Files))
	mux.Handle("GET /static/", cacheForeverHeaders(fileServer))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate, commonContext)
	protected := dynamic.Append(app.requireAuthentication)

	mux.Handle("GET /{$}", dynamic.ThenFunc(app.home))

	mux.Handle("GET /signup", dynamic.ThenFunc(app.signupForm))
	mux.Handle("POST /signup", dynamic.ThenFunc(app.signupPost))
	mux.Handle("GET /login", dynamic.ThenFunc(app.loginForm))
	mux.Handle("POST /login", dynamic.ThenFunc(app.loginPost))
	mux.Handle("POST /logout", protected.ThenFunc(app.logoutPost))

	mux.Handle("POST /session/start", protected.ThenFunc(app.sessionStart))
	mux.Handle("GET /session", protected.ThenFunc(app.sessionPage))
	mux.Handle("POST /session/turn", protected.ThenFunc(app.sessionTurn))
	mux.Handle("POST /session/end", protected.ThenFunc(app.sessionEnd))
	mux.Handle("GET /session/analysis", protected.ThenFunc(app.sessionAnalysisPage))
	mux.Handle("POST /session/menu", protected.ThenFunc(app.sessionMenu))

	mux.Handle("GET /personas", protected.ThenFunc(app.personasPage))
	mux.Handle("POST /personas", protected.ThenFunc(app.personaCreate))
	mux.Handle("POST /personas/import", protected.ThenFunc(app.personasImport))
	mux.Handle("POST /targets/import", protected.ThenFunc(app.targetsImport))

	mux.Handle("GET /leaderboard", dynamic.ThenFunc(app.leaderboardPage))
	mux.Handle("POST /leaderboard", protected.ThenFunc(app.leaderboardSubmit))

	mux.Handle("POST /speech", protected.ThenFunc(app.speechPost))

	standard := alice.New(app.recoverPanic, app.logRequest, app.secureHeaders)
	return standard.Then(mux)
}
