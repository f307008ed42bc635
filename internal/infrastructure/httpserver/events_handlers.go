package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// streamEvents exposes the direct-delivery registry as a server-sent event
// stream. Subscribers only receive events while connected; a missed event is
// gone, and clients re-fetch current state through the read endpoints.
func (s *Server) streamEvents(c echo.Context) error {
	if s.emitter == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "event stream not configured")
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	msgs, cancel := s.emitter.Subscribe(32)
	defer cancel()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Payload)
			w.Flush()
		}
	}
}
