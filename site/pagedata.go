// ABOUTME: PageData is the template context: resolves slot values and emits edit affordances.
// ABOUTME: Every slot read goes through the override store with the manifest default as fallback.

package site

import (
	"fmt"
	"html"
	"html/template"

	"github.com/miravalle/website/content"
)

// PageData holds all data passed to page templates for rendering.
type PageData struct {
	Title    string
	Page     string // active nav entry
	EditMode bool

	store    *content.Store
	manifest *content.Manifest

	// Contact page state.
	Form *ContactForm
	Sent bool
}

// Resolve returns the slot's current value: the override if one exists, else
// the manifest default. Unknown keys resolve to empty, which only happens if
// a template references a slot the manifest does not declare.
func (d PageData) Resolve(key string) string {
	slot, ok := d.manifest.Slot(key)
	if !ok {
		return ""
	}
	return d.store.Get(slot.Key, slot.Default)
}

// Text renders a text slot's value as HTML with line breaks preserved.
func (d PageData) Text(key string) template.HTML {
	return content.RenderText(d.Resolve(key))
}

// Plain returns a slot's value unrendered, for titles and attributes.
func (d PageData) Plain(key string) string {
	return d.Resolve(key)
}

// ImageSrc returns an image slot's value for use in a src attribute. The
// default URL sanitizer rejects data: URIs, which are a legitimate value
// here, so the operator-supplied string passes through as-is; a reference
// that fails to load falls back to the placeholder at render time.
func (d PageData) ImageSrc(key string) template.URL {
	return template.URL(d.Resolve(key))
}

// EditAttrs emits the click-target attributes for an editable slot, and
// nothing at all outside edit mode.
func (d PageData) EditAttrs(key string) template.HTMLAttr {
	if !d.EditMode {
		return ""
	}
	slot, ok := d.manifest.Slot(key)
	if !ok {
		return ""
	}
	return template.HTMLAttr(fmt.Sprintf(
		`data-editable="%s" data-kind="%s" tabindex="0"`,
		html.EscapeString(slot.Key), slot.Kind,
	))
}

// ContactForm carries the contact page's submitted values and per-field
// validation errors back into the template.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Errors  map[string]string
}

// Validate checks required-field presence only; there is deliberately no
// format validation. Returns true when the form is acceptable.
func (f *ContactForm) Validate() bool {
	f.Errors = make(map[string]string)
	if f.Name == "" {
		f.Errors["Name"] = "Please enter your name."
	}
	if f.Email == "" {
		f.Errors["Email"] = "Please enter an email address."
	}
	if f.Message == "" {
		f.Errors["Message"] = "Please enter a message."
	}
	return len(f.Errors) == 0
}

// Error returns the validation message for a field, if any.
func (f *ContactForm) Error(field string) string {
	if f == nil {
		return ""
	}
	return f.Errors[field]
}
