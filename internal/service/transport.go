package service

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs each outbound request's method, URL, status, and
// duration. It is the client-side counterpart of a server request logger.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Warn(
			"request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}
	t.logger.Info(
		"request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", res.StatusCode,
		"duration", time.Since(start),
	)
	return res, nil
}
