package files

import (
	"errors"
	"fmt"
	"io"

	"github.com/Brownie44l1/tinyhttp/internal/response"
)

// NoContentLength is passed to ReceiveFile when the request declared
// no body length
const NoContentLength int64 = -1

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrNoContentLength = errors.New("upload has no Content-Length")
	ErrCreateFailed    = errors.New("cannot create file")
	ErrTransferAborted = errors.New("file transfer aborted")
)

// SendFile answers with the contents of name. If the file cannot be
// opened nothing is written and the error wraps ErrFileNotFound.
//
// The file is streamed in ChunkSize reads until a zero-length read or
// EOF. A read error after the headers went out ends the body early;
// the returned error wraps ErrTransferAborted and the peer sees a short
// body.
func SendFile(w *response.Writer, store Store, name []string) error {
	f, size, err := store.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	defer f.Close()

	if err := w.WriteStatusLine(response.StatusOK); err != nil {
		return err
	}
	if err := w.WriteHeaders(response.ContentHeaders(response.ContentTypeBinary, size)); err != nil {
		return err
	}

	buf := getChunk()
	defer putChunk(buf)

	for {
		n, rerr := f.Read(*buf)
		if n > 0 {
			if _, err := w.Write((*buf)[:n]); err != nil {
				return err
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			w.Flush()
			return fmt.Errorf("%w: %w", ErrTransferAborted, rerr)
		}
		if n == 0 {
			break
		}
	}

	return w.Flush()
}

// ReceiveFile copies declared bytes from body into name and returns
// how many bytes were stored.
//
// Reads stop once declared bytes arrived or body returns a zero-length
// read or EOF. A body shorter than declared is not an error: the bytes
// that did arrive are kept. Nothing is removed on failure, so a
// partial file may remain.
func ReceiveFile(body io.Reader, store Store, name []string, declared int64) (int64, error) {
	if declared < 0 {
		return 0, ErrNoContentLength
	}

	f, err := store.Create(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	written, err := copyDeclared(f, body, declared)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", ErrTransferAborted, cerr)
	}
	return written, err
}

func copyDeclared(dst io.Writer, src io.Reader, declared int64) (int64, error) {
	buf := getChunk()
	defer putChunk(buf)

	var written int64
	remaining := declared
	for remaining > 0 {
		chunk := (*buf)[:min(int64(len(*buf)), remaining)]
		n, rerr := src.Read(chunk)
		if n > 0 {
			if _, err := dst.Write(chunk[:n]); err != nil {
				return written, fmt.Errorf("%w: %w", ErrTransferAborted, err)
			}
			written += int64(n)
			remaining -= int64(n)
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return written, fmt.Errorf("%w: %w", ErrTransferAborted, rerr)
		}
		if n == 0 {
			break
		}
	}
	return written, nil
}
