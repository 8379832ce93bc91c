package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// Error is a failed API call. Status is 0 when the request never got a
// response.
type Error struct {
	Method string
	Path   string
	Status int
	// ErrorText is the body's "error" field.
	ErrorText string
	// MessageText is the body's "message" (or "msg") field.
	MessageText string
	Err         error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %d: %v", e.Method, e.Path, e.Status, e.Err)
	case e.ErrorText != "":
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.ErrorText)
	case e.MessageText != "":
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.MessageText)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error { return e.Err }

// decodeError reads the backend's error envelope. The error, message and msg
// fields are all optional and non-string values are ignored.
func decodeError(method, path string, resp *http.Response) error {
	apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || !gjson.ValidBytes(data) {
		return apiErr
	}
	fields := gjson.GetManyBytes(data, "error", "message", "msg")
	apiErr.ErrorText = stringField(fields[0])
	apiErr.MessageText = stringField(fields[1])
	if apiErr.MessageText == "" {
		apiErr.MessageText = stringField(fields[2])
	}
	return apiErr
}

func stringField(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// StatusCode returns the HTTP status of err, or 0 if err is not an API error
// with a response.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// ErrorMessage returns the server's "error" text from err, or fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.ErrorText != "" {
		return apiErr.ErrorText
	}
	return fallback
}

// AuthMessage is ErrorMessage for the auth endpoints, which answer with
// "message" before "error".
func AuthMessage(err error, fallback string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.MessageText != "" {
		return apiErr.MessageText
	}
	if apiErr.ErrorText != "" {
		return apiErr.ErrorText
	}
	return fallback
}
