package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rocket-launches/internal/models"
)

var (
	// ErrInvalidURL is returned for URLs without a scheme or a host.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrUnparsableURL is returned for URLs that do not parse at all, such as
	// a non-numeric port.
	ErrUnparsableURL = errors.New("unparsable URL")
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrReadBody is returned when the response body cannot be read in full.
	ErrReadBody = errors.New("read body")
)

// Downloader fetches URLs one at a time with a shared HTTP client.
type Downloader struct {
	client *http.Client
}

// New creates a Downloader. A nil client means a client with no timeout,
// so a hung server blocks the caller until the context is done.
func New(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{client: client}
}

// NewClient returns an HTTP client bounded by timeout. Zero means unbounded.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// ValidateURL checks that rawURL parses and has a scheme and a host.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnparsableURL, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%w: %q: no scheme supplied", ErrInvalidURL, rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: no host supplied", ErrInvalidURL, rawURL)
	}
	return nil
}

// Download performs a GET on rawURL and returns the full body.
// Failures are reported through Content.Error, never by panicking.
func (d *Downloader) Download(ctx context.Context, rawURL string) models.Content {
	start := time.Now()
	content := d.download(ctx, rawURL)
	content.Duration = time.Since(start)
	return content
}

func (d *Downloader) download(ctx context.Context, rawURL string) models.Content {
	if err := ValidateURL(rawURL); err != nil {
		return models.Content{URL: rawURL, Error: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.Content{URL: rawURL, Error: fmt.Errorf("%w: %w", ErrUnparsableURL, err)}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return models.Content{URL: rawURL, Error: fmt.Errorf("download failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Content{URL: rawURL, Error: fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Content{URL: rawURL, Error: fmt.Errorf("%w: %w", ErrReadBody, err)}
	}

	return models.Content{URL: rawURL, Data: data}
}
