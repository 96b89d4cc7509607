package server

import (
	"bufio"
	"io"
	"net"
	"time"

	"github.com/Brownie44l1/tinyhttp/internal/request"
	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// serveConn handles the single request on conn, then closes it
func (s *Server) serveConn(conn net.Conn) {
	defer s.conns.Done()
	defer conn.Close()

	s.metrics.ActiveConnections.Add(1)
	defer s.metrics.ActiveConnections.Add(-1)

	remote := conn.RemoteAddr().String()
	if err := s.ServeConn(conn, remote); err != nil {
		s.Logger.Error("connection failed",
			Field{"remote", remote},
			Field{"error", err},
		)
	}
}

// ServeConn parses one request from rw, dispatches it and flushes the
// response. It does not close rw.
func (s *Server) ServeConn(rw io.ReadWriter, remoteAddr string) error {
	start := time.Now()
	id := s.nextID.Add(1)

	reader := bufio.NewReader(rw)
	w := response.NewWriter(rw)

	req, err := request.RequestFromReader(reader)
	if err != nil {
		s.Logger.Warn("unreadable request",
			Field{"conn_id", id},
			Field{"remote", remoteAddr},
			Field{"error", err},
		)
		s.metrics.RecordRequest(int(response.StatusNotFound), time.Since(start))
		if werr := w.NotFound(); werr != nil {
			return werr
		}
		return w.Flush()
	}

	ctx := NewContext(req, w, reader)
	ctx.Files = s.store
	ctx.Logger = s.Logger
	ctx.ConnID = id
	ctx.RemoteAddr = remoteAddr

	herr := s.chain().ServeHTTP(ctx)
	if ferr := w.Flush(); herr == nil {
		herr = ferr
	}
	return herr
}
