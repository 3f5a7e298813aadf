// ABOUTME: Renders text slot values to HTML via goldmark with hard line breaks.
// ABOUTME: Raw HTML in the input is stripped to prevent XSS; line breaks survive as <br>.

package content

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown is configured with hard wraps so a single newline in an edited
// value renders as a line break instead of collapsing into the previous line.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderText converts a text slot value to HTML. Line breaks in the value are
// preserved as rendered breaks. On conversion failure the input is returned
// escaped rather than dropped.
func RenderText(input string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}
