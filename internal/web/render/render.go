// Package render owns the HTML templates and flash notifications.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "users", "edit"}

// Renderer executes page templates against the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page. The template runs into a buffer first so a
// template failure produces a clean 500 instead of a half-written page.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
