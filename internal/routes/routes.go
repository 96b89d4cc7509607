// Package routes holds the handlers behind the server's fixed URL set.
package routes

import (
	"errors"
	"strings"

	"github.com/Brownie44l1/tinyhttp/internal/files"
	"github.com/Brownie44l1/tinyhttp/internal/response"
	"github.com/Brownie44l1/tinyhttp/internal/router"
	"github.com/Brownie44l1/tinyhttp/internal/server"
)

// Register installs every route on r
func Register(r *router.Router) {
	r.GET("", Root)
	r.GET("echo", Echo)
	r.GET("user-agent", UserAgent)
	r.GET("files", Download)
	r.POST("files", Upload)
}

// Root answers GET / with a bare 200
func Root(ctx *server.Context) error {
	return ctx.Status(response.StatusOK)
}

// Echo answers with the rest of the path
func Echo(ctx *server.Context) error {
	if len(ctx.Rest) == 0 {
		return ctx.NotFound()
	}
	return ctx.Text(response.StatusOK, strings.Join(ctx.Rest, "/"))
}

// UserAgent reflects the User-Agent header
func UserAgent(ctx *server.Context) error {
	ua, ok := ctx.Header("User-Agent")
	if !ok {
		return ctx.NotFound()
	}
	return ctx.Text(response.StatusOK, ua)
}

// Download streams the named file from the root directory
func Download(ctx *server.Context) error {
	err := files.SendFile(ctx.Response, ctx.Files, ctx.Rest)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, files.ErrFileNotFound):
		ctx.Logger.Debug("file not served",
			field("conn_id", ctx.ConnID),
			field("error", err),
		)
		return ctx.NotFound()
	case errors.Is(err, files.ErrTransferAborted):
		// Headers are out; the peer just sees a short body.
		ctx.Logger.Warn("download aborted",
			field("conn_id", ctx.ConnID),
			field("path", ctx.Path()),
			field("sent", ctx.Response.BodyBytes()),
			field("error", err),
		)
		return nil
	default:
		return err
	}
}

// Upload stores the request body under the named file. Any failure
// answers 404; a partially written file is left in place.
func Upload(ctx *server.Context) error {
	declared, ok := ctx.Request.ContentLength()
	if !ok {
		declared = files.NoContentLength
	}

	n, err := files.ReceiveFile(ctx.Body, ctx.Files, ctx.Rest, declared)
	if err != nil {
		ctx.Logger.Warn("upload failed",
			field("conn_id", ctx.ConnID),
			field("path", ctx.Path()),
			field("stored", n),
			field("error", err),
		)
		return ctx.NotFound()
	}

	if n < declared {
		ctx.Logger.Debug("upload shorter than declared",
			field("conn_id", ctx.ConnID),
			field("declared", declared),
			field("stored", n),
		)
	}
	return ctx.Status(response.StatusCreated)
}

// field builds a log field
func field(key string, value interface{}) server.Field {
	return server.Field{Key: key, Value: value}
}
