package response

import (
	"strconv"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
)

const (
	ContentTypeText   = "text/plain"
	ContentTypeBinary = "application/octet-stream"
)

// ContentHeaders returns the Content-Type and Content-Length pair sent
// with every response body
func ContentHeaders(contentType string, length int64) *headers.Headers {
	h := headers.NewHeaders()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.FormatInt(length, 10))
	return h
}

// Empty writes a status line followed directly by the blank line: no
// headers, no body
func (w *Writer) Empty(code StatusCode) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}
	return w.WriteHeaders(nil)
}

// NotFound writes the bare 404 response
func (w *Writer) NotFound() error {
	return w.Empty(StatusNotFound)
}

// Content writes a response carrying body, with Content-Length taken
// from the bytes actually written
func (w *Writer) Content(code StatusCode, contentType string, body []byte) error {
	if err := w.WriteStatusLine(code); err != nil {
		return err
	}

	if err := w.WriteHeaders(ContentHeaders(contentType, int64(len(body)))); err != nil {
		return err
	}

	return w.WriteBody(body)
}

// TextResponse writes a text/plain response
func (w *Writer) TextResponse(code StatusCode, body string) error {
	return w.Content(code, ContentTypeText, []byte(body))
}
