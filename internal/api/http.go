package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/amishk599/cvcoach/internal/model"
)

// maxErrorBody bounds how much of a failure body is read.
const maxErrorBody = 64 << 10

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// errorBody is the backend's failure shape.
type errorBody struct {
	Message string `json:"message"`
}

// newHTTPError builds a model.HTTPError from a non-2xx response. A body that
// is not JSON leaves Message empty and is kept in Err.
func newHTTPError(resp *http.Response) *model.HTTPError {
	httpErr := &model.HTTPError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		httpErr.Err = err
		return httpErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		httpErr.Err = err
		return httpErr
	}
	httpErr.Message = body.Message
	return httpErr
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
