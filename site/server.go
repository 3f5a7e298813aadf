// ABOUTME: HTTP server for the Miravalle marketing site behind a single chi router.
// ABOUTME: Wires pages, embedded static assets, the contact form, and the mounted editor routes.

package site

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/miravalle/website/content"
	"github.com/miravalle/website/editor"
	"github.com/miravalle/website/inquiry"
)

// Server serves the marketing pages and the in-page editor.
type Server struct {
	router    chi.Router
	engine    *TemplateEngine
	contents  *content.Store
	registry  *content.Registry
	sessions  *editor.Store
	inquiries *inquiry.SqliteStore
}

// NewServer creates a Server with all routes configured and templates parsed.
func NewServer(contents *content.Store, registry *content.Registry, sessions *editor.Store, inquiries *inquiry.SqliteStore) (*Server, error) {
	engine, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:    engine,
		contents:  contents,
		registry:  registry,
		sessions:  sessions,
		inquiries: inquiries,
	}

	editorHandlers := editor.NewHandlers(sessions, contents, registry, engine)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	// Static assets from the embedded filesystem.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Pages.
	r.Get("/", s.handleHome)
	r.Get("/residences", s.handleResidences)
	r.Get("/amenities", s.handleAmenities)
	r.Get("/location", s.handleLocation)
	r.Get("/contact", s.handleContactPage)
	r.Post("/contact", s.handleContactSubmit)

	// Edit workflow.
	r.Mount("/editor", editorHandlers.Routes())

	s.router = r
	return s, nil
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// pageData builds the template context for a page, resolving the request's
// edit session so affordances only render for operators in edit mode.
func (s *Server) pageData(w http.ResponseWriter, r *http.Request, page, title string) PageData {
	sess := s.sessions.FromRequest(w, r)
	return PageData{
		Title:    title,
		Page:     page,
		EditMode: sess.EditMode(),
		store:    s.contents,
		manifest: s.registry.Manifest(),
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data PageData) {
	if err := s.engine.Render(w, name, data); err != nil {
		log.Printf("error rendering %s: %v", name, err)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home.html", s.pageData(w, r, "home", "Miravalle Residences"))
}

func (s *Server) handleResidences(w http.ResponseWriter, r *http.Request) {
	s.render(w, "residences.html", s.pageData(w, r, "residences", "Residences"))
}

func (s *Server) handleAmenities(w http.ResponseWriter, r *http.Request) {
	s.render(w, "amenities.html", s.pageData(w, r, "amenities", "Amenities"))
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	s.render(w, "location.html", s.pageData(w, r, "location", "Location"))
}

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(w, r, "contact", "Contact")
	data.Form = &ContactForm{}
	data.Sent = r.URL.Query().Get("sent") == "1"
	s.render(w, "contact.html", data)
}

// handleContactSubmit validates required fields and records the inquiry.
// Validation failures re-render the form with field errors; nothing external
// is ever called.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusUnprocessableEntity)
		return
	}

	form := &ContactForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}

	if !form.Validate() {
		data := s.pageData(w, r, "contact", "Contact")
		data.Form = form
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := s.engine.RenderTo(w, "contact.html", data); err != nil {
			log.Printf("error rendering contact.html: %v", err)
		}
		return
	}

	inq, err := s.inquiries.Add(form.Name, form.Email, form.Phone, form.Message)
	if err != nil {
		log.Printf("inquiry save failed err=%v", err)
		http.Error(w, "could not save your message, please try again", http.StatusInternalServerError)
		return
	}

	log.Printf("inquiry received id=%s email=%s", inq.ID, inq.Email)
	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}
