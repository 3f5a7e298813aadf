// ABOUTME: HTTP handlers for the edit workflow: mode toggle, dialog, commit, cancel, upload, reset.
// ABOUTME: Mounted under /editor by the site server; renders the dialog partial via the site's templates.

package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/miravalle/website/content"
)

// Renderer renders a named template partial. Satisfied by the site's
// template engine; kept as an interface so this package stays independent of
// the presentation layer.
type Renderer interface {
	RenderPartial(w io.Writer, name string, data any) error
}

// DialogData is passed to the editor_dialog partial. Value is the scratch
// seed: the slot's current resolved value at open time.
type DialogData struct {
	Key        string
	Label      string
	Kind       content.Kind
	Value      string
	Generation uint64
}

// ValueURL exposes the seed for the preview's src attribute. The default URL
// sanitizer rejects data: URIs, which are legitimate image values here.
func (d DialogData) ValueURL() template.URL {
	return template.URL(d.Value)
}

// Handlers wires the edit session store, content store, and slot registry
// into the editor's HTTP surface.
type Handlers struct {
	sessions *Store
	contents *content.Store
	registry *content.Registry
	renderer Renderer
}

// NewHandlers creates the editor handler set.
func NewHandlers(sessions *Store, contents *content.Store, registry *content.Registry, renderer Renderer) *Handlers {
	return &Handlers{
		sessions: sessions,
		contents: contents,
		registry: registry,
		renderer: renderer,
	}
}

// Routes returns the editor's router, mounted by the site server at /editor.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/mode", h.handleToggleMode)
	r.Get("/dialog", h.handleDialog)
	r.Post("/commit", h.handleCommit)
	r.Post("/cancel", h.handleCancel)
	r.Post("/upload", h.handleUpload)
	r.Post("/reset", h.handleReset)
	r.Get("/export", h.handleExport)
	r.Post("/import", h.handleImport)

	return r
}

// redirectBack sends the operator back to the page the action came from.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleToggleMode flips edit mode for the request's session.
func (h *Handlers) handleToggleMode(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)
	enabled := sess.ToggleEditMode()
	log.Printf("editor mode session=%s enabled=%t", sess.ID, enabled)
	redirectBack(w, r)
}

// handleDialog opens the editor for one slot and returns the dialog partial,
// seeded with the slot's current resolved value. Requires edit mode.
func (h *Handlers) handleDialog(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	key := r.URL.Query().Get("key")
	slot, ok := h.registry.Manifest().Slot(key)
	if !ok {
		http.NotFound(w, r)
		return
	}

	value := h.contents.Get(slot.Key, slot.Default)
	active, err := sess.OpenEditor(slot.Key, value, slot.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	data := DialogData{
		Key:        active.Key,
		Label:      slot.Label,
		Kind:       active.Kind,
		Value:      active.Value,
		Generation: active.Generation,
	}
	if err := h.renderer.RenderPartial(w, "editor_dialog", data); err != nil {
		log.Printf("editor dialog render error=%v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// handleCommit saves the dialog's value into the content store and closes
// the dialog. A commit with no open dialog is rejected without any store write.
func (h *Handlers) handleCommit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusUnprocessableEntity)
		return
	}

	key, err := sess.CommitEditor(h.contents, r.FormValue("value"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	log.Printf("editor commit session=%s key=%s", sess.ID, key)
	redirectBack(w, r)
}

// handleCancel discards the open dialog. Cancel, overlay click, and escape
// all post here; none of them touch the content store.
func (h *Handlers) handleCancel(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)
	sess.CloseEditor()
	w.WriteHeader(http.StatusNoContent)
}

// handleUpload converts an uploaded image to a data URI and returns it as
// JSON for the dialog's scratch value. The generation stamp rejects results
// that would land in a closed or superseded dialog.
func (h *Handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		http.Error(w, "upload too large (max 10MB)", http.StatusRequestEntityTooLarge)
		return
	}

	generation, err := strconv.ParseUint(r.FormValue("generation"), 10, 64)
	if err != nil {
		http.Error(w, "missing generation", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	uri, err := DataURI(file)
	if err != nil {
		if errors.Is(err, ErrUploadTooLarge) {
			http.Error(w, "upload too large (max 10MB)", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// Checked after the read completes: the dialog may have closed or been
	// superseded while the file was in flight.
	if !sess.AcceptsUpload(generation) {
		http.Error(w, "edit superseded", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"value": uri})
}

// handleReset clears every override. The UI asks the operator to confirm
// before posting; a declined confirmation never reaches this handler.
func (h *Handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)
	h.contents.ResetAll()
	log.Printf("editor reset session=%s", sess.ID)
	redirectBack(w, r)
}

// handleExport downloads the current overrides as YAML.
func (h *Handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := content.ExportYAML(h.contents)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="overrides.yaml"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleImport applies a previously exported overrides file.
func (h *Handlers) handleImport(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.FromRequest(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		http.Error(w, "upload too large (max 10MB)", http.StatusRequestEntityTooLarge)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read upload failed", http.StatusUnprocessableEntity)
		return
	}

	applied, skipped, err := content.ImportYAML(h.contents, h.registry.Manifest(), data)
	if err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	log.Printf("editor import session=%s applied=%d skipped=%d", sess.ID, len(applied), len(skipped))
	redirectBack(w, r)
}
