package service

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error is a structured non-success response from the analysis service.
// Detail carries the service's human-readable explanation when the body
// included one; callers substitute a stage-generic message otherwise.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("service responded %d", e.Status)
	}
	return fmt.Sprintf("service responded %d: %s", e.Status, e.Detail)
}

// IsTimeout reports whether err represents an exceeded call ceiling,
// either a context deadline or a network-level timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
