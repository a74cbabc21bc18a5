// Package apierr classifies failures of the remote APIs the generator calls
// (image generation, hosted skills) into sentinels, and retries the ones
// worth retrying.
//
// Clients map HTTP status codes with FromStatus; callers check with
// errors.Is(err, apierr.ErrRateLimit) etc.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for API interaction failures.
var (
	// ErrRateLimit indicates the API rate limit was exceeded (temporary, retryable).
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrQuotaExceeded indicates the account is out of credit (not retryable).
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates API authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrServer indicates a 5xx response (retryable).
	ErrServer = errors.New("server error")

	// ErrBadResponse indicates a 2xx response whose body could not be used.
	ErrBadResponse = errors.New("unexpected response")
)

// maxBodyInError bounds how much of a response body is quoted in errors.
const maxBodyInError = 300

// FromStatus maps a non-2xx HTTP status and response body to an error
// wrapping the matching sentinel. It returns nil for 2xx statuses.
func FromStatus(service string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxBodyInError {
		msg = msg[:maxBodyInError] + "..."
	}

	var sentinel error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = ErrAuthFailed
	case status == http.StatusPaymentRequired:
		sentinel = ErrQuotaExceeded
	case status == http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(msg), "quota") || strings.Contains(strings.ToLower(msg), "balance") {
			sentinel = ErrQuotaExceeded
		} else {
			sentinel = ErrRateLimit
		}
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		sentinel = ErrTimeout
	case status >= 500:
		sentinel = ErrServer
	default:
		sentinel = ErrBadRequest
	}

	if msg == "" {
		return fmt.Errorf("%s: HTTP %d: %w", service, status, sentinel)
	}
	return fmt.Errorf("%s: HTTP %d: %s: %w", service, status, msg, sentinel)
}

// IsRetryable reports whether err is a transient failure: rate limiting,
// timeouts and server errors.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServer)
}
