package coingecko

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("coingecko: http status %d: %s", e.Code, body)
}

// IsRateLimited reports whether err is an HTTP 429 from the API.
// Rate-limit detection is exclusively status-code based.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == 429
}

// IsAuthShaped reports whether err looks like an authorization failure.
// The free tier answers 401 to throttled history calls, so 401/403 are
// treated as a throttling signal on that endpoint.
func IsAuthShaped(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.Code == 401 || statusErr.Code == 403
}
