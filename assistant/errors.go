// ABOUTME: Error values returned by the assistant client
// ABOUTME: Configuration sentinel and typed HTTP status failures

package assistant

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrAsyncHeaderProvider is returned when a synchronous call is configured
// with an AsyncHeaderFunc. No network call is attempted.
var ErrAsyncHeaderProvider = errors.New("synchronous call cannot resolve an asynchronous header provider")

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// newHTTPError drains and closes the response body.
func newHTTPError(resp *http.Response) *HTTPError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
