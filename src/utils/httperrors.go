package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// HTTPError is a client facing error: the status code plus the "error" message
// and any extra body fields (e.g. "missing").
type HTTPError struct {
	Code    int                    `json:"-"`
	Message string                 `json:"error"`
	Fields  map[string]interface{} `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// With returns a copy of e carrying an extra body field.
func (e *HTTPError) With(key string, value interface{}) *HTTPError {
	fields := make(map[string]interface{}, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value
	return &HTTPError{Code: e.Code, Message: e.Message, Fields: fields}
}

// Body is the JSON object written for the error.
func (e *HTTPError) Body() map[string]interface{} {
	body := make(map[string]interface{}, len(e.Fields)+1)
	for k, v := range e.Fields {
		body[k] = v
	}
	body["error"] = e.Message
	return body
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// BadRequest creates a 400 Bad Request error
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// NotFound creates a 404 Not Found error
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// MethodNotAllowed creates a 405 Method Not Allowed error
func MethodNotAllowed() *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
}

// StoreError marks a failure coming from the database layer. Its message is
// the driver's message, unchanged.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err, recording a stack trace. A nil err stays nil.
func NewStoreError(err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Err: pkgerrors.WithStack(err)}
}

// ErrorStatus returns the status code and JSON body for err.
func ErrorStatus(err error) (int, map[string]interface{}) {
	var httpErr *HTTPError
	var storeErr *StoreError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Body()
	case errors.As(err, &storeErr):
		return http.StatusInternalServerError, map[string]interface{}{
			"error":   "Database error",
			"details": storeErr.Error(),
		}
	case err != nil:
		return http.StatusInternalServerError, map[string]interface{}{
			"error":   "Server error",
			"details": err.Error(),
		}
	default:
		return http.StatusInternalServerError, map[string]interface{}{
			"error":   "Server error",
			"details": "unhandled error",
		}
	}
}

// WriteError is a helper function to send the error response as JSON
func WriteError(w http.ResponseWriter, err error) {
	code, body := ErrorStatus(err)
	res, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		res = []byte(`{"error":"Server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(res)
}
