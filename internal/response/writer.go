package response

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
)

var (
	ErrStatusWritten     = errors.New("status line already written")
	ErrStatusNotWritten  = errors.New("must write status line before headers")
	ErrHeadersNotWritten = errors.New("must write headers before body")
)

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one HTTP response. Output is buffered until Flush.
type Writer struct {
	w          *bufio.Writer
	state      writerState
	statusCode StatusCode
	bodyBytes  int64
	hadError   bool
}

// NewWriter creates a new response writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:     bufio.NewWriter(w),
		state: stateStart,
	}
}

// WriteStatusLine writes the HTTP status line
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return ErrStatusWritten
	}

	if _, err := fmt.Fprintf(w.w, "HTTP/1.1 %d %s\r\n", code, StatusText(code)); err != nil {
		w.hadError = true
		return err
	}

	w.statusCode = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes h in insertion order followed by the blank line
// that ends the header block. A nil h writes only the blank line.
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return ErrStatusNotWritten
	}

	var err error
	if h != nil {
		h.Each(func(key, value string) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(w.w, "%s: %s\r\n", key, value)
		})
	}
	if err == nil {
		_, err = w.w.WriteString("\r\n")
	}
	if err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the complete response body
func (w *Writer) WriteBody(data []byte) error {
	_, err := w.Write(data)
	return err
}

// Write appends p to the body. It lets a body be streamed in pieces
// once the headers are out.
func (w *Writer) Write(p []byte) (int, error) {
	if w.state != stateHeadersWritten && w.state != stateBodyWritten {
		return 0, ErrHeadersNotWritten
	}

	n, err := w.w.Write(p)
	w.bodyBytes += int64(n)
	if err != nil {
		w.hadError = true
		return n, err
	}

	w.state = stateBodyWritten
	return n, nil
}

// Flush pushes buffered output to the underlying writer
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		w.hadError = true
		return err
	}
	return nil
}

// HadError reports whether any write or flush to the peer failed
func (w *Writer) HadError() bool {
	return w.hadError
}

// Started reports whether the status line has been written
func (w *Writer) Started() bool {
	return w.state != stateStart
}

func (w *Writer) StatusCode() StatusCode {
	return w.statusCode
}

// BodyBytes returns how many body bytes were written
func (w *Writer) BodyBytes() int64 {
	return w.bodyBytes
}
