// ABOUTME: Converts an uploaded image file into a self-contained data URI string.
// ABOUTME: Sniffs the MIME type from content and enforces the upload size cap.

package editor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxUploadBytes caps image uploads at 10MB, matching the request body limit.
const MaxUploadBytes = 10 << 20

var (
	// ErrUploadTooLarge is returned for uploads over MaxUploadBytes.
	ErrUploadTooLarge = errors.New("upload too large")

	// ErrEmptyUpload is returned for zero-byte uploads.
	ErrEmptyUpload = errors.New("empty upload")
)

// DataURI reads an uploaded file and encodes it as a data URI so the value
// stays a single string compatible with the content store. The MIME type is
// sniffed from the bytes, not trusted from the client. The value is stored
// as-is either way; an unloadable image degrades to the render-time
// placeholder, never an error.
func DataURI(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return "", ErrUploadTooLarge
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	mime := http.DetectContentType(data)
	// DetectContentType may append parameters ("text/plain; charset=utf-8");
	// only the media type belongs in the URI header.
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
