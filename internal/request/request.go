package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Brownie44l1/tinyhttp/internal/headers"
)

var (
	// ErrTruncated is returned when the stream ends before any byte of
	// the start line arrived.
	ErrTruncated = errors.New("truncated request: no start line")
)

type Request struct {
	Method   Method
	Target   string
	Segments []string
	Headers  *headers.Headers
}

// RequestFromReader reads the start line and header block from reader.
// Body bytes, if any, are left unread in reader.
func RequestFromReader(reader *bufio.Reader) (*Request, error) {
	line, err := readLine(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("read start line: %w", err)
	}

	method, target, ok := parseRequestLine(line)
	if !ok {
		return degraded(), nil
	}

	req := &Request{
		Method:   method,
		Target:   target,
		Segments: splitPath(target),
		Headers:  headers.NewHeaders(),
	}

	if err := readHeaders(reader, req.Headers); err != nil {
		return nil, err
	}
	return req, nil
}

// degraded is the request used when the start line carries no path
func degraded() *Request {
	return &Request{
		Method:  MethodUnknown,
		Headers: headers.NewHeaders(),
	}
}

// readLine returns one line without its terminator. A final line that
// ends at EOF is returned without error; io.EOF is only reported when
// nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readHeaders(reader *bufio.Reader, h *headers.Headers) error {
	for {
		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// End of stream closes the header block.
				return nil
			}
			return fmt.Errorf("read header line: %w", err)
		}
		if line == "" {
			return nil
		}
		h.ParseLine(line)
	}
}

// Header returns the value of a request header (case-sensitive)
func (r *Request) Header(key string) (string, bool) {
	return r.Headers.Get(key)
}

// ContentLength returns the declared body length. ok is false when the
// header is absent or not a non-negative integer.
func (r *Request) ContentLength() (int64, bool) {
	cl, ok := r.Headers.Get("Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(cl, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Path returns the request target rebuilt from its segments
func (r *Request) Path() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return "/" + strings.Join(r.Segments, "/")
}
