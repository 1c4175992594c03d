package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jkantola/smalltalk/internal/contexthelpers"
	"github.com/jkantola/smalltalk/internal/errors"
	"github.com/jkantola/smalltalk/ui"
)

type BaseTemplateData struct {
	Authenticated bool
	CurrentPath   string
	Flash         string
}

func (app *application) newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		Authenticated: contexthelpers.IsAuthenticated(r.Context()),
		CurrentPath:   contexthelpers.CurrentPath(r.Context()),
		Flash:         app.sessionManager.PopString(r.Context(), string(flashSessionKey)),
	}
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside ui/templates/pages. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	patterns := []string{
		"templates/base.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	}

	// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
	return template.New(pageName).Funcs(template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"csrf": func() string {
			panic("not implemented")
		},
	}).ParseFS(ui.Files, patterns...)
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, file string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // the nonce is not user-provided.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is not user-provided.
		},
	})
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", file)))
		return
	}

	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
