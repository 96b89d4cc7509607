package server

import (
	"bufio"

	"github.com/Brownie44l1/tinyhttp/internal/files"
	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// Context carries everything a handler needs for one connection
type Context struct {
	Request  *request.Request
	Response *response.Writer
	// Body is the reader the request was parsed from; it is positioned
	// at the first body byte.
	Body *bufio.Reader
	// Files is the file-system provider for the file routes
	Files files.Store
	// Rest holds the path segments after the one used for routing
	Rest []string

	Logger     Logger
	ConnID     uint64
	RemoteAddr string
}

// NewContext creates a new context
func NewContext(req *request.Request, resp *response.Writer, body *bufio.Reader) *Context {
	return &Context{
		Request:  req,
		Response: resp,
		Body:     body,
		Files:    &files.Dir{},
		Logger:   &NullLogger{},
	}
}

// Method returns the HTTP method
func (c *Context) Method() request.Method {
	return c.Request.Method
}

// Path returns the request path
func (c *Context) Path() string {
	return c.Request.Path()
}

// Header gets a request header value
func (c *Context) Header(key string) (string, bool) {
	return c.Request.Header(key)
}

// Response helpers

// Text sends a text/plain response
func (c *Context) Text(code response.StatusCode, text string) error {
	return c.Response.TextResponse(code, text)
}

// Status sends a status line with no headers and no body
func (c *Context) Status(code response.StatusCode) error {
	return c.Response.Empty(code)
}

// NotFound sends the bare 404
func (c *Context) NotFound() error {
	return c.Response.NotFound()
}
