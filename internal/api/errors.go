package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"issuedeck-cli/internal/model"
)

// TransportError wraps a network-level failure. It mutates no local state
// and is always worth retrying.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response with the server's error body surfaced
// verbatim; the server's rejection message is authoritative.
type StatusError struct {
	StatusCode int
	ErrText    string
	Message    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ErrText
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, msg)
}

// ConflictError is the server refusing to delete a taxonomy entity that
// issues still reference. The affected issues are enumerated so the user can
// resolve the references and retry.
type ConflictError struct {
	StatusError
	AffectedIssues []model.AffectedIssue
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%d issues affected)", e.StatusError.Error(), len(e.AffectedIssues))
}

type errorBody struct {
	ErrText        string                `json:"error"`
	Message        string                `json:"message"`
	AffectedIssues []model.AffectedIssue `json:"affected_issues"`
}

// decodeStatusError maps a non-2xx response to the client error taxonomy.
// The conflict discriminant is uniform: non-2xx status plus a structured
// body carrying affected_issues.
func decodeStatusError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	se := StatusError{StatusCode: status, ErrText: body.ErrText, Message: body.Message}
	if status == http.StatusConflict || len(body.AffectedIssues) > 0 {
		return &ConflictError{StatusError: se, AffectedIssues: body.AffectedIssues}
	}
	if se.Message == "" && se.ErrText == "" && len(strings.TrimSpace(string(raw))) > 0 {
		// Non-JSON error body; keep it readable rather than dropping it.
		se.Message = strings.TrimSpace(string(raw))
	}
	return &se
}

// IsNotFound reports whether err is a 404 from the server, i.e. the target
// no longer exists and local state should heal.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// AsConflict extracts a delete conflict from err.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsRetryable reports whether err is a transport failure (as opposed to a
// server verdict).
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
