package router

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
	"github.com/Brownie44l1/tinyhttp/internal/server"
)

func named(name string, hits *[]string) server.HandlerFunc {
	return func(ctx *server.Context) error {
		*hits = append(*hits, name)
		return nil
	}
}

func TestMatch(t *testing.T) {
	var hits []string
	r := New()
	r.GET("", named("root", &hits))
	r.GET("echo", named("echo", &hits))
	r.POST("files", named("upload", &hits))

	tests := []struct {
		method   request.Method
		segments []string
		found    bool
		rest     []string
	}{
		{request.MethodGet, []string{""}, true, []string{}},
		{request.MethodGet, []string{"echo", "a", "b"}, true, []string{"a", "b"}},
		{request.MethodGet, []string{"echo"}, true, []string{}},
		{request.MethodPost, []string{"files", "x"}, true, []string{"x"}},
		{request.MethodGet, []string{"files", "x"}, false, nil},
		{request.MethodPost, []string{"echo", "x"}, false, nil},
		{request.MethodGet, []string{"Echo", "x"}, false, nil},
		{request.MethodUnknown, []string{""}, false, nil},
		{request.MethodGet, nil, false, nil},
	}

	for _, tt := range tests {
		handler, rest, ok := r.Match(tt.method, tt.segments)
		assert.Equal(t, tt.found, ok, "%s %v", tt.method, tt.segments)
		if tt.found {
			assert.NotNil(t, handler)
			assert.Equal(t, tt.rest, rest)
		} else {
			assert.Nil(t, handler)
		}
	}
}

func TestServeHTTPSetsRest(t *testing.T) {
	var rest []string
	r := New()
	r.GET("echo", func(ctx *server.Context) error {
		rest = ctx.Rest
		return ctx.Status(response.StatusOK)
	})

	ctx, out := newContext(t, "GET /echo/a//b HTTP/1.1\r\n\r\n")
	require.NoError(t, r.ServeHTTP(ctx))
	require.NoError(t, ctx.Response.Flush())

	assert.Equal(t, []string{"a", "", "b"}, rest)
	assert.Equal(t, "HTTP/1.1 200 Ok\r\n\r\n", out.String())
}

func TestServeHTTPNotFound(t *testing.T) {
	r := New()
	r.GET("echo", func(ctx *server.Context) error {
		t.Fatal("should not be called")
		return nil
	})

	for _, raw := range []string{
		"GET /nope HTTP/1.1\r\n\r\n",
		"PUT /echo/x HTTP/1.1\r\n\r\n",
		"GET\r\n\r\n",
		"GET abc HTTP/1.1\r\n\r\n",
	} {
		ctx, out := newContext(t, raw)
		require.NoError(t, r.ServeHTTP(ctx))
		require.NoError(t, ctx.Response.Flush())
		assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", out.String(), raw)
	}
}

func TestHandleReplacesRoute(t *testing.T) {
	var hits []string
	r := New()
	r.GET("echo", named("old", &hits))
	r.GET("echo", named("new", &hits))

	handler, _, ok := r.Match(request.MethodGet, []string{"echo"})
	require.True(t, ok)
	require.NoError(t, handler.ServeHTTP(nil))
	assert.Equal(t, []string{"new"}, hits)
}

func newContext(t *testing.T, raw string) (*server.Context, *bytes.Buffer) {
	t.Helper()
	reader := bufio.NewReader(strings.NewReader(raw))
	req, err := request.RequestFromReader(reader)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return server.NewContext(req, response.NewWriter(out), reader), out
}
