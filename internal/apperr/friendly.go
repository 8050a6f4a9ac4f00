package apperr

import (
	"context"
	"errors"
	"strings"
)

// Friendly converts common transport errors to a short message for the user.
// Unrecognized errors keep their own text.
func Friendly(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "connection timed out"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused (is the service running?)"
	case strings.Contains(msg, "no such host"):
		return "host not found (check the URL)"
	case strings.Contains(msg, "timeout"):
		return "connection timed out"
	case strings.Contains(msg, "reset by peer"):
		return "connection reset by server"
	case strings.Contains(msg, "EOF"):
		return "connection closed unexpectedly"
	}
	return msg
}
