package httpx

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 2000 {
		body = body[:2000] + "..."
	}
	return e.Service + " http " + strconv.Itoa(e.StatusCode) + ": " + body
}

func (e *StatusError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func IsRetryableHTTPStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryableError reports transient failures. Cancellation of the caller's
// context is not retryable.
func IsRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return IsRetryableHTTPStatus(sc.HTTPStatusCode())
	}
	return false
}

func RetryAfterDuration(resp *http.Response, fallback, max time.Duration) time.Duration {
	sleepFor := fallback
	if resp != nil {
		if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				sleepFor = time.Duration(secs) * time.Second
			}
		}
	}
	if max > 0 && sleepFor > max {
		sleepFor = max
	}
	return sleepFor
}

func JitterSleep(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delta := base.Seconds() * 0.2
	low := base.Seconds() - delta
	high := base.Seconds() + delta
	if low < 0 {
		low = 0
	}
	return time.Duration((low + rand.Float64()*(high-low)) * float64(time.Second))
}

// Retry settings shared by the outbound clients.
type Retry struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	Log         *logger.Logger
	Label       string
}

// Do calls attempt until it succeeds, fails permanently, or retries run out.
// attempt may return the response it got so Retry-After can be honoured.
func (r Retry) Do(ctx context.Context, attempt func() (*http.Response, error)) (*http.Response, error) {
	backoff := r.BaseBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	maxBackoff := r.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = 10 * time.Second
	}

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := attempt()
		if err == nil {
			return resp, nil
		}
		if !IsRetryableError(err) || i >= r.MaxRetries {
			return resp, err
		}

		sleepFor := JitterSleep(RetryAfterDuration(resp, backoff, maxBackoff))
		if r.Log != nil {
			r.Log.Warn(r.Label+" request retrying",
				"attempt", i+1,
				"max_retries", r.MaxRetries,
				"sleep", sleepFor.String(),
				"error", err.Error(),
			)
		}

		t := time.NewTimer(sleepFor)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
		backoff *= 2
	}
}
