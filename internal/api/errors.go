package api

import (
	"errors"
	"fmt"
)

// TransportError means no response reached the client at all: connection
// refused, DNS failure, or the HTTP client timeout firing.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach answer service at %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message holds the structured error body
// when it parsed; an empty Message means the body was unusable.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error %d", e.Status)
	}
	return e.Message
}

// DecodeError is a success status whose body does not match the expected
// schema, including a 2xx with no answer text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage maps a Generate error to the text shown in the answer panel.
func UserMessage(err error) string {
	var transport *TransportError
	if errors.As(err, &transport) {
		return "Connection error: the answer service is unreachable. Is it running?"
	}
	var server *ServerError
	if errors.As(err, &server) {
		return server.Error()
	}
	var decode *DecodeError
	if errors.As(err, &decode) {
		return "failed to parse response"
	}
	return err.Error()
}
