package chat

import "errors"

// Validation errors, rejected before any network activity.
var (
	ErrEmptyQuery   = errors.New("query is empty")
	ErrQueryTooLong = errors.New("query exceeds maximum length")
	ErrNoDocument   = errors.New("no analyzed document is bound to this session")
)

// ErrSendInFlight is returned when Send is called while another send is
// outstanding. Sends are rejected, never queued.
var ErrSendInFlight = errors.New("a message is already awaiting a response")

// IsValidation reports whether err is a precondition failure that never
// reached the service.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrQueryTooLong) ||
		errors.Is(err, ErrNoDocument)
}
