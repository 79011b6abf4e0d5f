package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPVerifierValidatesURL(t *testing.T) {
	if _, err := NewHTTPVerifier("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPVerifier("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestVerifyAcceptsBucketImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	verifier, err := NewHTTPVerifier(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create verifier: %v", err)
	}

	if err := verifier.Verify(context.Background(), srv.URL+"/evidence/photo.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyAcceptsAny2xx(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusPartialContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.WriteHeader(status)
		}))

		verifier, err := NewHTTPVerifier(srv.URL, testLogger())
		if err != nil {
			t.Fatalf("failed to create verifier: %v", err)
		}
		if err := verifier.Verify(context.Background(), srv.URL+"/evidence/photo.png"); err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		srv.Close()
	}
}

func TestVerifyRejectsForeignHost(t *testing.T) {
	verifier, err := NewHTTPVerifier("http://media.internal:9000", testLogger())
	if err != nil {
		t.Fatalf("failed to create verifier: %v", err)
	}

	cases := []struct {
		name string
		url  string
	}{
		{name: "other host", url: "http://evil.example.com/photo.jpg"},
		{name: "relative", url: "/photo.jpg"},
		{name: "garbage", url: "://photo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := verifier.Verify(context.Background(), tc.url); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestVerifyRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	verifier, err := NewHTTPVerifier(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create verifier: %v", err)
	}

	if err := verifier.Verify(context.Background(), srv.URL+"/evidence/page.html"); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestVerifyHandlesMissingAndThrottled(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		header     http.Header
	}{
		{name: "not found", statusCode: http.StatusNotFound},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, header: http.Header{"Retry-After": []string{"5"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			verifier, err := NewHTTPVerifier(srv.URL, testLogger())
			if err != nil {
				t.Fatalf("failed to create verifier: %v", err)
			}

			err = verifier.Verify(context.Background(), srv.URL+"/evidence/photo.jpg")
			if tt.statusCode == http.StatusTooManyRequests {
				var tm TooManyRequestsError
				if !errors.As(err, &tm) {
					t.Fatalf("expected TooManyRequestsError, got %v", err)
				}
				if tm.RetryAfter != 5*time.Second {
					t.Fatalf("expected retry after 5s, got %v", tm.RetryAfter)
				}
			} else if err == nil {
				t.Fatal("expected error for missing object")
			}
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Now()
	httpTime := now.Add(2 * time.Second).UTC().Format(http.TimeFormat)

	cases := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "empty", header: "", want: 5 * time.Second},
		{name: "seconds", header: "7", want: 7 * time.Second},
		{name: "http date", header: httpTime, want: 2 * time.Second},
		{name: "fallback", header: "bad", want: 5 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseRetryAfter(tc.header)
			if tc.header == httpTime {
				if got <= time.Second || got > 3*time.Second {
					t.Fatalf("unexpected retry duration %v", got)
				}
			} else if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
