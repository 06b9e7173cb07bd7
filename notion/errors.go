package notion

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies an API failure into one of a closed set of categories so
// callers can branch exhaustively instead of matching raw status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
	KindRateLimited
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation_error"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server_error"
	default:
		return "unknown_error"
	}
}

// Error is the single error type returned for a failed API call. Status is
// the HTTP status of the attempt (0 when no response was received), Code is
// the machine-readable code from the response body if the API supplied one.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("notion: %s: %s", e.Kind, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("notion: %s (%d %s): %s", e.Kind, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion: %s (%d): %s", e.Kind, e.Status, e.Message)
}

// Retryable reports whether another attempt could plausibly succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindRateLimited, KindServer:
		return true
	}
	return false
}

// apiErrorBody is the error envelope the API returns alongside non-2xx
// statuses, e.g. {"object":"error","status":429,"code":"rate_limited",...}.
type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func classify(status int, body []byte) *Error {
	e := &Error{Status: status}

	var envelope apiErrorBody
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil {
		e.Code = envelope.Code
		e.Message = envelope.Message
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}

	switch {
	case status == http.StatusBadRequest:
		e.Kind = KindBadRequest
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusConflict:
		e.Kind = KindConflict
	case status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case status >= 500 && status <= 599:
		e.Kind = KindServer
	default:
		e.Kind = KindUnknown
	}
	return e
}

func networkError(message string) *Error {
	return &Error{Kind: KindNetwork, Status: 0, Message: message}
}
