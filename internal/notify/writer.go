package notify

import (
	"fmt"
	"io"
	"net/http"
)

// StreamWriter abstracts the outbound transport so the hub can be tested
// without real HTTP connections.
type StreamWriter interface {
	// WriteFrame writes one complete event frame and flushes it.
	// Returns error if the connection is closed or the write fails.
	WriteFrame(frame []byte) error
}

// sseWriter writes frames to an HTTP response held open as an SSE stream.
type sseWriter struct {
	w       io.Writer
	flusher http.Flusher
}

// NewSSEWriter wraps an HTTP response in a StreamWriter. The response writer
// must support flushing.
func NewSSEWriter(w io.Writer, flusher http.Flusher) StreamWriter {
	return &sseWriter{w: w, flusher: flusher}
}

// WriteFrame writes the frame and flushes. A zero-byte follow-up write
// detects connections whose remote end is already gone.
func (s *sseWriter) WriteFrame(frame []byte) error {
	if _, err := s.w.Write(frame); err != nil {
		return fmt.Errorf("write frame failed: %w", err)
	}

	s.flusher.Flush()

	if _, err := s.w.Write([]byte{}); err != nil {
		return fmt.Errorf("connection closed: %w", err)
	}

	return nil
}
