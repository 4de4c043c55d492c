package api

import (
	"fmt"
	"net/http"
)

// StatusError is a non-2xx reply from the model endpoint.
type StatusError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}

	switch e.Status {
	case http.StatusUnauthorized:
		return "invalid API key, please check your configuration"
	case http.StatusPaymentRequired:
		return "insufficient credits, please add credits to your account"
	case http.StatusTooManyRequests:
		return "rate limit exceeded, please wait and try again"
	case http.StatusBadRequest:
		return fmt.Sprintf("bad request: %s", msg)
	default:
		return fmt.Sprintf("api error (%d): %s", e.Status, msg)
	}
}
