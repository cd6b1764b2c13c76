package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/sushihentaime/cmsblog/internal/cmsservice"
)

//go:embed templates
var templateFS embed.FS

type commentForm struct {
	Name      string
	Email     string
	Comment   string
	StoreData bool
	Error     string
	Submitted bool
}

type templateData struct {
	SiteTitle     string
	Static        bool
	RelayURL      string
	Posts         []cmsservice.PostEdge
	FeaturedPosts []cmsservice.Post
	Post          *cmsservice.Post
	Comments      []cmsservice.Comment
	Adjacent      *cmsservice.AdjacentPosts
	WidgetTitle   string
	WidgetPosts   []cmsservice.Post
	Categories    []cmsservice.Category
	Category      *cmsservice.Category
	Form          commentForm
	Error         string
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 02, 2006")
}

var functions = template.FuncMap{
	"formatDate": formatDate,
}

// newTemplateCache parses every page together with the base layout and the
// shared partials.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := path.Base(page)

		patterns := []string{
			"templates/base.html",
			"templates/partials/*.html",
			page,
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}

		cache[name] = ts
	}

	return cache, nil
}

func (app *application) newTemplateData() *templateData {
	return &templateData{
		SiteTitle: app.config.SiteTitle,
		RelayURL:  app.config.CommentRelayURL,
	}
}

func widgetTitle(slug string) string {
	if slug == "" {
		return "Recent Posts"
	}
	return "Related Posts"
}

func (app *application) renderTemplate(w io.Writer, page string, data *templateData) error {
	ts, ok := app.templates[page]
	if !ok {
		return fmt.Errorf("the template %s does not exist", page)
	}

	return ts.ExecuteTemplate(w, "base", data)
}

// render buffers the page so that a template failure still produces a clean
// error response.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	buf := new(bytes.Buffer)

	err := app.renderTemplate(buf, page, data)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
