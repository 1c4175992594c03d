package main

import (
	"net/http"
	"strings"

	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/internal/repositories"
)

type authTemplateData struct {
	BaseTemplateData
	Error string
}

func (app *application) signupForm(w http.ResponseWriter, r *http.Request) {
	data := authTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "signup", data)
}

func (app *application) signupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	if username == "" || len(password) < 8 {
		app.renderAuthError(w, r, "signup", "Username is required and the password must be at least 8 characters.")
		return
	}

	userID, err := app.users.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			app.renderAuthError(w, r, "signup", "That username is already taken.")
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.loginSession(w, r, userID)
}

func (app *application) loginForm(w http.ResponseWriter, r *http.Request) {
	data := authTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "login", data)
}

func (app *application) loginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	userID, err := app.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidCredentials) {
			app.renderAuthError(w, r, "login", "Invalid username or password.")
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.loginSession(w, r, userID)
}

// loginSession rotates the session token and binds it to the user. Rotation
// on privilege change prevents session fixation.
func (app *application) loginSession(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), string(userIDSessionKey), userID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logoutPost(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Remove(r.Context(), string(userIDSessionKey))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) renderAuthError(w http.ResponseWriter, r *http.Request, page, message string) {
	data := authTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Error:            message,
	}
	app.render(w, r, http.StatusUnprocessableEntity, page, data)
}
