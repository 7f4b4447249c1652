package httpx

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, true},
		{&StatusError{StatusCode: 429}, true},
		{&StatusError{StatusCode: 503}, true},
		{&StatusError{StatusCode: 400}, false},
		{errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"3"}}}
	if got := RetryAfterDuration(resp, time.Second, 10*time.Second); got != 3*time.Second {
		t.Fatalf("got %v", got)
	}
	if got := RetryAfterDuration(resp, time.Second, 2*time.Second); got != 2*time.Second {
		t.Fatalf("cap not applied: %v", got)
	}
	if got := RetryAfterDuration(nil, time.Second, 0); got != time.Second {
		t.Fatalf("fallback: %v", got)
	}
}

func TestRetryDo(t *testing.T) {
	calls := 0
	r := Retry{MaxRetries: 3, BaseBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
	_, err := r.Do(context.Background(), func() (*http.Response, error) {
		calls++
		if calls < 3 {
			return nil, &StatusError{StatusCode: 502}
		}
		return &http.Response{StatusCode: 200}, nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}

	calls = 0
	_, err = r.Do(context.Background(), func() (*http.Response, error) {
		calls++
		return nil, &StatusError{StatusCode: 400}
	})
	if err == nil || calls != 1 {
		t.Fatalf("permanent error should not retry: calls=%d err=%v", calls, err)
	}
}
