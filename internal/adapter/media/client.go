package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotImage indicates the evidence URL resolves to a non-image object.
var ErrNotImage = errors.New("evidence is not an image")

// ErrWrongHost indicates the evidence URL points outside the media bucket.
var ErrWrongHost = errors.New("evidence hosted outside media storage")

// TooManyRequestsError represents a rate limiting signal from media storage.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Verifier checks that an evidence URL points to a real image in the
// configured media bucket.
type Verifier interface {
	Verify(ctx context.Context, rawURL string) error
}

// HTTPVerifier implements Verifier with a HEAD probe against media storage.
type HTTPVerifier struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPVerifier creates an HTTP verifier with default timeout.
func NewHTTPVerifier(baseURL string, logger *slog.Logger) (*HTTPVerifier, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse media url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("media url must be absolute")
	}
	return &HTTPVerifier{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Verify probes the URL and confirms host and image content type.
func (v *HTTPVerifier) Verify(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse evidence url: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host != v.baseURL.Host {
		return ErrWrongHost
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, parsed.String(), nil)
	if err != nil {
		return err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode/100 == 2:
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
			return ErrNotImage
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return TooManyRequestsError{RetryAfter: retryAfter}
	default:
		v.logger.Error("media probe failed", slog.Int("status", resp.StatusCode), slog.String("url", parsed.String()))
		return fmt.Errorf("media error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
