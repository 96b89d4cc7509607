package request

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, data string) (*Request, error) {
	t.Helper()
	return RequestFromReader(bufio.NewReader(strings.NewReader(data)))
}

func TestSimpleGETRequest(t *testing.T) {
	req, err := parse(t, "GET /echo/abc HTTP/1.1\r\nHost: example.com\r\n\r\n")

	require.NoError(t, err)
	assert.Equal(t, MethodGet, req.Method)
	assert.Equal(t, "/echo/abc", req.Target)
	assert.Equal(t, []string{"echo", "abc"}, req.Segments)

	host, ok := req.Header("Host")
	assert.True(t, ok)
	assert.Equal(t, "example.com", host)
}

func TestRootPath(t *testing.T) {
	req, err := parse(t, "GET / HTTP/1.1\r\n\r\n")

	require.NoError(t, err)
	assert.Equal(t, []string{""}, req.Segments)
	assert.Equal(t, "/", req.Path())
}

func TestSegmentsKeepEmptyComponents(t *testing.T) {
	req, err := parse(t, "GET /files//a/ HTTP/1.1\r\n\r\n")

	require.NoError(t, err)
	assert.Equal(t, []string{"files", "", "a", ""}, req.Segments)
}

func TestPOSTLeavesBodyUnread(t *testing.T) {
	data := "POST /files/report.txt HTTP/1.1\r\n" +
		"Content-Length: 11\r\n" +
		"\r\n" +
		"hello world"

	reader := bufio.NewReader(strings.NewReader(data))
	req, err := RequestFromReader(reader)

	require.NoError(t, err)
	assert.Equal(t, MethodPost, req.Method)
	n, ok := req.ContentLength()
	assert.True(t, ok)
	assert.Equal(t, int64(11), n)

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(body))
}

func TestContentLength(t *testing.T) {
	req, err := parse(t, "POST /files/x HTTP/1.1\r\n\r\n")
	require.NoError(t, err)
	_, ok := req.ContentLength()
	assert.False(t, ok)

	req, err = parse(t, "POST /files/x HTTP/1.1\r\nContent-Length: abc\r\n\r\n")
	require.NoError(t, err)
	_, ok = req.ContentLength()
	assert.False(t, ok)

	req, err = parse(t, "POST /files/x HTTP/1.1\r\nContent-Length: -4\r\n\r\n")
	require.NoError(t, err)
	_, ok = req.ContentLength()
	assert.False(t, ok)

	// Header names are case sensitive
	req, err = parse(t, "POST /files/x HTTP/1.1\r\ncontent-length: 4\r\n\r\n")
	require.NoError(t, err)
	_, ok = req.ContentLength()
	assert.False(t, ok)
}

func TestDuplicateHeadersFirstWins(t *testing.T) {
	req, err := parse(t, "GET /user-agent HTTP/1.1\r\n"+
		"User-Agent: first\r\n"+
		"User-Agent: second\r\n"+
		"\r\n")

	require.NoError(t, err)
	ua, _ := req.Header("User-Agent")
	assert.Equal(t, "first", ua)
}

func TestHeaderLineWithoutColonIsSkipped(t *testing.T) {
	req, err := parse(t, "GET / HTTP/1.1\r\n"+
		"garbage\r\n"+
		"Host: example.com\r\n"+
		"\r\n")

	require.NoError(t, err)
	assert.Equal(t, 1, req.Headers.Len())
}

func TestHeadersEndAtEOF(t *testing.T) {
	// No blank line; the final unterminated line is still a header
	req, err := parse(t, "GET /user-agent HTTP/1.1\r\nUser-Agent: curl/8.0")

	require.NoError(t, err)
	ua, ok := req.Header("User-Agent")
	assert.True(t, ok)
	assert.Equal(t, "curl/8.0", ua)
}

func TestBareLineFeeds(t *testing.T) {
	req, err := parse(t, "GET /echo/x HTTP/1.1\nHost: a\n\n")

	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "x"}, req.Segments)
	host, _ := req.Header("Host")
	assert.Equal(t, "a", host)
}

func TestStartLineWithoutTerminator(t *testing.T) {
	req, err := parse(t, "GET /echo/abc HTTP/1.1")

	require.NoError(t, err)
	assert.Equal(t, MethodGet, req.Method)
	assert.Equal(t, []string{"echo", "abc"}, req.Segments)
}

func TestTruncated(t *testing.T) {
	_, err := parse(t, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestMissingPathIsDegraded(t *testing.T) {
	req, err := parse(t, "GET\r\nHost: example.com\r\n\r\n")

	require.NoError(t, err)
	assert.Equal(t, MethodUnknown, req.Method)
	assert.Empty(t, req.Segments)
	assert.Equal(t, 0, req.Headers.Len())
	assert.Equal(t, "", req.Path())

	req, err = parse(t, "\r\n")
	require.NoError(t, err)
	assert.Equal(t, MethodUnknown, req.Method)
}

func TestVersionIsOptional(t *testing.T) {
	req, err := parse(t, "GET /echo/hi\r\n\r\n")

	require.NoError(t, err)
	assert.Equal(t, MethodGet, req.Method)
	assert.Equal(t, []string{"echo", "hi"}, req.Segments)
}

func TestOtherMethodsAreUnknown(t *testing.T) {
	methods := []string{"PUT", "DELETE", "PATCH", "HEAD", "OPTIONS", "get"}

	for _, method := range methods {
		req, err := parse(t, method+" / HTTP/1.1\r\n\r\n")

		require.NoError(t, err, "Method %s should parse", method)
		assert.Equal(t, MethodUnknown, req.Method)
		assert.Equal(t, []string{""}, req.Segments)
	}
}

func TestIncrementalParsing(t *testing.T) {
	// Simulate slow reader that returns data a few bytes at a time
	data := []byte("GET /user-agent HTTP/1.1\r\nUser-Agent: slow/1.0\r\n\r\n")
	reader := &slowReader{data: data, chunkSize: 5}

	req, err := RequestFromReader(bufio.NewReader(reader))

	require.NoError(t, err)
	assert.Equal(t, MethodGet, req.Method)
	ua, _ := req.Header("User-Agent")
	assert.Equal(t, "slow/1.0", ua)
}

func TestReadErrorIsReturned(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := RequestFromReader(bufio.NewReader(&failingReader{err: boom}))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTruncated)
}

// slowReader simulates a network connection that provides data slowly
type slowReader struct {
	data      []byte
	chunkSize int
	offset    int
}

func (r *slowReader) Read(p []byte) (int, error) {
	if r.offset >= len(r.data) {
		return 0, io.EOF
	}

	n := min(r.chunkSize, len(p), len(r.data)-r.offset)
	copy(p, r.data[r.offset:r.offset+n])
	r.offset += n
	return n, nil
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}
