package yatranslate

import (
	"errors"
	"fmt"
)

// unknownCodeMessage is used for any code missing from errorMessages.
const unknownCodeMessage = "Unknown code"

// errorMessages maps HTTP and API status codes to human-readable error messages.
var errorMessages = map[int]string{
	400: "Wrong parameter was specified",
	401: "Invalid API key",
	402: "Blocked API key",
	403: "Exceeded the daily limit on the amount of requests",
	404: "Exceeded the daily limit on the amount of translated text",
	413: "Exceeded the maximum text size",
	422: "The text cannot be translated",
	501: "The specified translation direction is not supported",
	503: "Server not available",
}

// ErrUnknownEndpoint is returned when a request names an endpoint the client does not know.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Error is returned when the Yandex API reports a failure, either through the
// HTTP status or through the code field of a response body.
type Error struct {
	Code    int    // HTTP or API status code
	Message string // Message looked up from the status code
	Detail  string // Message sent by the server, if any
}

// NewError builds an Error for the given status code. Codes without a known
// message get "Unknown code".
func NewError(code int) *Error {
	message, found := getErrorMessage(code)
	if !found {
		message = unknownCodeMessage
	}
	return &Error{Code: code, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s --> %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// getErrorMessage retrieves a predefined error message for a given status code, if available.
func getErrorMessage(status int) (string, bool) {
	msg, found := errorMessages[status]
	return msg, found
}
