package server

import (
	"fmt"
	"runtime/debug"
	"time"
)

// LoggingMiddleware logs every request once it has been answered
func LoggingMiddleware(logger Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *Context) error {
			start := time.Now()

			err := next.ServeHTTP(ctx)

			fields := []Field{
				{"method", string(ctx.Method())},
				{"path", ctx.Path()},
				{"status", int(ctx.Response.StatusCode())},
				{"bytes", ctx.Response.BodyBytes()},
				{"duration_ms", time.Since(start).Milliseconds()},
				{"conn_id", ctx.ConnID},
				{"remote", ctx.RemoteAddr},
			}
			switch {
			case err != nil:
				logger.Error("request failed", append(fields, Field{"error", err})...)
			case ctx.Response.HadError():
				logger.Warn("response write failed", fields...)
			default:
				logger.Info("request handled", fields...)
			}
			return err
		})
	}
}

// RecoveryMiddleware turns a handler panic into a 404, or into an
// error when part of the response is already out
func RecoveryMiddleware(logger Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						Field{"error", r},
						Field{"stack", string(debug.Stack())},
						Field{"conn_id", ctx.ConnID},
						Field{"path", ctx.Path()},
					)

					if ctx.Response.Started() {
						err = fmt.Errorf("handler panic after response started: %v", r)
						return
					}
					err = ctx.NotFound()
				}
			}()

			return next.ServeHTTP(ctx)
		})
	}
}

// MetricsMiddleware records request metrics
func MetricsMiddleware(metrics *Metrics) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *Context) error {
			start := time.Now()

			err := next.ServeHTTP(ctx)

			metrics.RecordRequest(int(ctx.Response.StatusCode()), time.Since(start))
			return err
		})
	}
}
