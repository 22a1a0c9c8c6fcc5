package youtube

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAPIKeyNotConfigured the API key is missing or still the placeholder
	ErrAPIKeyNotConfigured = errors.New("YouTube API key is not configured. Please set YOUTUBE_API_KEY environment variable or configure it in config.yaml")

	// ErrTimeout an upstream call exceeded the per-call timeout
	ErrTimeout = errors.New("YouTube API request timed out")

	// ErrInvalidResponse the upstream body is not JSON
	ErrInvalidResponse = errors.New("invalid response from YouTube API")

	// ErrTooManyIDs more ids than one videos/channels call accepts
	ErrTooManyIDs = errors.New("too many ids for one YouTube API call")
)

// unknownErrorBody substitutes an empty error body
const unknownErrorBody = "Unknown error"

// APIError non-2xx response from the YouTube API
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("YouTube API error (%d %s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}
