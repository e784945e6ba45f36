package pipeline

import (
	"errors"

	"github.com/contractiq/console/internal/service"
)

// Validation errors, rejected before any network activity.
var (
	ErrNotPDF       = errors.New("only PDF files are accepted")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrEmptyFile    = errors.New("no file provided")
)

// ErrRunActive is returned when Run is called while another run is in
// progress. Runs are never queued.
var ErrRunActive = errors.New("an analysis run is already active")

// IsValidation reports whether err is a precondition failure that never
// reached the service.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNotPDF) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrEmptyFile)
}

// StageError wraps a failure with the stage it occurred in and the
// message to surface. Message prefers the service's detail field and
// falls back to a stage-generic description.
type StageError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *StageError) Error() string {
	return e.Message
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, fallback string, err error) *StageError {
	msg := fallback
	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.Detail != "" {
		msg = svcErr.Detail
	}
	if service.IsTimeout(err) {
		msg = fallback + ": the service took too long to respond"
	}
	return &StageError{Stage: stage, Message: msg, Err: err}
}
