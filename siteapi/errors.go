package siteapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// JSONError wraps a failure to decode a response body.
type JSONError struct {
	error
}

// RequestError wraps a transport-level failure; no response was obtained.
type RequestError struct {
	error
}

// APIError is a non-2xx response from the site API. Detail carries the
// "detail" field of the decoded body when present.
type APIError struct {
	Status int    `json:"-"`
	Body   []byte `json:"-"`

	Detail string `json:"detail,omitempty"`
}

func (err *APIError) Error() string {
	switch {
	case err.Detail != "":
		return "site API error: " + err.Detail

	case len(err.Body) > 0:
		return fmt.Sprintf("site API returned status %d body %s",
			err.Status, string(err.Body))

	default:
		return "site API returned status " + strconv.Itoa(err.Status)
	}
}

// IsStatus reports whether err is an *APIError with the given status code.
// Status 400 is how the site reports uniqueness violations on creates.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func unmarshalErrorBody(b []byte, apiErr *APIError) {
	// Best effort; the raw body is kept either way.
	json.Unmarshal(b, apiErr)
}
