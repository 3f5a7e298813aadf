// ABOUTME: Test suite for the editor HTTP endpoints using httptest and a stub partial renderer.
// ABOUTME: Covers mode gating, dialog seeding, commit/cancel, upload guards, reset, export/import.

package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/miravalle/website/content"
)

const testManifest = `
slots:
  - key: hero_title
    kind: text
    section: home
    label: Hero title
    default: Miravalle Residences
  - key: hero_image
    kind: image
    section: home
    label: Hero background
    default: /static/img/hero.jpg
`

// stubRenderer writes the partial name and dialog fields as plain text so
// handler tests can assert on seeding without parsing HTML.
type stubRenderer struct{}

func (stubRenderer) RenderPartial(w io.Writer, name string, data any) error {
	d, ok := data.(DialogData)
	if !ok {
		return fmt.Errorf("unexpected data type %T", data)
	}
	_, err := fmt.Fprintf(w, "partial=%s key=%s kind=%s gen=%d value=%s", name, d.Key, d.Kind, d.Generation, d.Value)
	return err
}

type testEnv struct {
	handlers *Handlers
	router   http.Handler
	sessions *Store
	contents *content.Store
	sess     *Session
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	m, err := content.ParseManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}

	sessions := NewStore(100, time.Hour)
	contents := content.NewStore()
	h := NewHandlers(sessions, contents, content.NewRegistry(m), stubRenderer{})

	return &testEnv{
		handlers: h,
		router:   h.Routes(),
		sessions: sessions,
		contents: contents,
		sess:     sessions.Create(),
	}
}

func (env *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: env.sess.ID})
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, http.MethodPost, target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func TestToggleModeFlipsSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/mode", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if !env.sess.EditMode() {
		t.Fatal("expected edit mode on after toggle")
	}

	env.postForm(t, "/mode", nil)
	if env.sess.EditMode() {
		t.Fatal("expected edit mode off after second toggle")
	}
}

func TestDialogRequiresEditMode(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/dialog?key=hero_title", nil, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 outside edit mode, got %d", w.Code)
	}
	if _, ok := env.sess.Active(); ok {
		t.Fatal("no active edit may be created outside edit mode")
	}
}

func TestDialogUnknownKeyIs404(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()

	w := env.do(t, http.MethodGet, "/dialog?key=nope", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDialogSeedsDefaultThenOverride(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()

	w := env.do(t, http.MethodGet, "/dialog?key=hero_title", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "value=Miravalle Residences") {
		t.Fatalf("expected default seed, got %q", w.Body.String())
	}

	env.contents.Set("hero_title", "New Title")
	w = env.do(t, http.MethodGet, "/dialog?key=hero_title", nil, "")
	if !strings.Contains(w.Body.String(), "value=New Title") {
		t.Fatalf("expected override seed, got %q", w.Body.String())
	}
}

func TestCommitStoresValue(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()
	env.do(t, http.MethodGet, "/dialog?key=hero_title", nil, "")

	w := env.postForm(t, "/commit", url.Values{"value": {"New Title"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if got := env.contents.Get("hero_title", "default"); got != "New Title" {
		t.Fatalf("expected committed value, got %q", got)
	}
	if _, ok := env.sess.Active(); ok {
		t.Fatal("active edit must clear after commit")
	}
}

func TestCommitMalformedURLStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()
	env.do(t, http.MethodGet, "/dialog?key=hero_image", nil, "")

	w := env.postForm(t, "/commit", url.Values{"value": {"not-a-url"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected save to succeed, got %d", w.Code)
	}
	if got := env.contents.Get("hero_image", ""); got != "not-a-url" {
		t.Fatalf("expected literal string stored, got %q", got)
	}
}

func TestCommitWithoutDialogIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()

	w := env.postForm(t, "/commit", url.Values{"value": {"orphan"}})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if env.contents.Len() != 0 {
		t.Fatal("rejected commit mutated the store")
	}
}

func TestCancelDiscardsWithoutStoreWrite(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()
	env.do(t, http.MethodGet, "/dialog?key=hero_title", nil, "")

	w := env.postForm(t, "/cancel", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if env.contents.Len() != 0 {
		t.Fatal("cancel mutated the store")
	}
	if _, ok := env.sess.Active(); ok {
		t.Fatal("active edit must clear after cancel")
	}
}

func TestResetClearsAllOverrides(t *testing.T) {
	env := newTestEnv(t)
	env.contents.Set("hero_title", "New Title")
	env.contents.Set("hero_image", "x")

	w := env.postForm(t, "/reset", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if env.contents.Len() != 0 {
		t.Fatalf("expected empty store after reset, got %d", env.contents.Len())
	}
}

// uploadRequest builds a multipart body with a generation field and a file part.
func uploadRequest(t *testing.T, generation string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if generation != "" {
		if err := mw.WriteField("generation", generation); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadReturnsDataURI(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()
	active, err := env.sess.OpenEditor("hero_image", "/static/img/hero.jpg", content.KindImage)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	body, ctype := uploadRequest(t, fmt.Sprint(active.Generation), pngHeader)
	w := env.do(t, http.MethodPost, "/upload", body, ctype)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp["value"], "data:image/png;base64,") {
		t.Fatalf("unexpected value: %q", resp["value"])
	}
}

func TestUploadStaleGenerationIsDiscarded(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()
	active, err := env.sess.OpenEditor("hero_image", "/static/img/hero.jpg", content.KindImage)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// Dialog closes while the file read is in flight.
	env.sess.CloseEditor()

	body, ctype := uploadRequest(t, fmt.Sprint(active.Generation), pngHeader)
	w := env.do(t, http.MethodPost, "/upload", body, ctype)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for stale upload, got %d", w.Code)
	}
}

func TestUploadMissingGenerationIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.sess.ToggleEditMode()

	body, ctype := uploadRequest(t, "", pngHeader)
	w := env.do(t, http.MethodPost, "/upload", body, ctype)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestExportImportOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.contents.Set("hero_title", "Exported Title")

	w := env.do(t, http.MethodGet, "/export", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "overrides.yaml") {
		t.Fatalf("unexpected disposition: %q", cd)
	}
	exported := w.Body.Bytes()

	// Reset, then restore from the exported file.
	env.contents.ResetAll()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "overrides.yaml")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(exported)
	mw.Close()

	w = env.do(t, http.MethodPost, "/import", &buf, mw.FormDataContentType())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := env.contents.Get("hero_title", ""); got != "Exported Title" {
		t.Fatalf("import did not restore override, got %q", got)
	}
}
