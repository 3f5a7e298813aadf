// ABOUTME: TemplateEngine loads embedded HTML templates and renders pages and partials.
// ABOUTME: Each page is parsed with the layout and shared partials so the layout wraps every page.

package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed static/css/*.css static/js/*.js static/img/*.svg
var staticFS embed.FS

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	pages    map[string]*template.Template
	partials *template.Template
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
func NewTemplateEngine() (*TemplateEngine, error) {
	pages := []string{
		"home.html",
		"residences.html",
		"amenities.html",
		"location.html",
		"contact.html",
	}

	engine := &TemplateEngine{
		pages: make(map[string]*template.Template),
	}

	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.pages[page] = t
	}

	partials, err := template.New("partials").ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing partials: %w", err)
	}
	engine.partials = partials

	return engine, nil
}

// Render executes the named page template with the given data and writes the
// result to w. It sets the Content-Type header to text/html.
func (e *TemplateEngine) Render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.RenderTo(w, name, data)
}

// RenderTo executes the named page template and writes the result to an
// arbitrary io.Writer (useful for testing without HTTP).
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// RenderPartial executes a named partial without the layout wrapper. This is
// the hook the editor handlers use to render the dialog.
func (e *TemplateEngine) RenderPartial(w io.Writer, name string, data any) error {
	if e.partials.Lookup(name) == nil {
		return fmt.Errorf("partial %q not found", name)
	}
	return e.partials.ExecuteTemplate(w, name, data)
}
