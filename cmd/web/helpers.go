package main

import (
	"log/slog"
	"net/http"

	"github.com/jkantola/smalltalk/internal/contexthelpers"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/session"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri, slog.Any("formdata", r.Form))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// machine returns the session state machine of the authenticated user.
func (app *application) machine(r *http.Request) *session.Machine {
	return app.sessions.ForUser(contexthelpers.AuthenticatedUserID(r.Context()))
}

// flash queues a one-time notice shown on the next rendered page.
func (app *application) flash(r *http.Request, message string) {
	app.sessionManager.Put(r.Context(), string(flashSessionKey), message)
}
