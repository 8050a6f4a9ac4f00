package search

import (
	"fmt"
	"net/http"
)

// statusMessage turns a non-success status into a message for the user.
func statusMessage(statusCode int) string {
	switch statusCode {
	case http.StatusNotFound:
		return "search endpoint not found (check api.base_url)"
	case http.StatusTooManyRequests:
		return "rate limited by the university directory, please wait"
	case http.StatusInternalServerError:
		return "internal server error on the university directory"
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return "university directory temporarily unavailable"
	}
	return fmt.Sprintf("network error: HTTP %d", statusCode)
}
