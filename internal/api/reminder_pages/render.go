package reminder_pages

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer holds the parsed page and partial templates. Templates are
// addressed by their define name ("page/reminders", "list-row", ...).
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/pages/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (rn *Renderer) Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("template render failed")
	}
}
