package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response. The body shape is
// {"message": "...", "errors": {"field": ["..."]}}.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// Error returns the message followed by every field error, fields in name
// order, e.g. "The given data was invalid: title is required, slug is taken".
func (e *APIError) Error() string {
	details := e.Details()
	if len(details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(details, ", ")
}

// Details flattens Fields into a list ordered by field name.
func (e *APIError) Details() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		out = append(out, e.Fields[k]...)
	}
	return out
}

// Is makes a 401 APIError match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Message = eb.Message
		e.Fields = eb.Errors
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	return e
}

// Kind is the operator-facing error category.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindAuth
	KindValidation
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "none"
	}
}

// Classify maps a transport error to a Kind. Undecodable responses report
// KindServer.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrUnauthorized) {
		return KindAuth
	}
	if errors.Is(err, ErrUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return KindTransport
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 500 {
			return KindServer
		}
		return KindValidation
	}
	return KindServer
}
