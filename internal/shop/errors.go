package shop

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// User-facing texts for failures that carry no server message.
const (
	GenericMessage     = "Something went wrong"
	TimeoutMessage     = "The store took too long to respond"
	UnreachableMessage = "Unable to reach the store"
)

// APIError reports an application-level failure: either a non-success HTTP
// status or a response body with success=false.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s: %s", e.Path, e.Message)
	}
	if e.StatusCode >= 400 {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api %s reported failure", e.Path)
}

// UserMessage picks the text to surface for err: the server message when one
// was provided, otherwise a fixed message. Transport details such as the
// backend URL never reach the user; callers log the full error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutMessage
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return TimeoutMessage
		}
		return UnreachableMessage
	}
	return GenericMessage
}
