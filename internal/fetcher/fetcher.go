// Package fetcher retrieves the terminal page.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nao1215/antenna/internal/model"
)

// DefaultMaxBodySize caps how much of the page is read.
const DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

// ErrBodyTooLarge is returned when the page exceeds the configured size.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// Fetcher performs a single GET per call. It never retries: the next
// scheduled run is the retry.
type Fetcher struct {
	client      *http.Client
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBodySize sets the maximum number of bytes read from the response.
// Values <= 0 keep the default.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// New creates a Fetcher using client. A nil client means http.DefaultClient.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client:      client,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs url and returns the response body as text.
// Network failures, non-2xx statuses and oversized bodies are returned as
// model.KindTransport errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", model.TransportError("fetch", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", model.TransportError("fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return "", model.TransportError("fetch", fmt.Errorf("unexpected status %s from %s", resp.Status, url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", model.TransportError("fetch", fmt.Errorf("failed to read body: %w", err))
	}
	if int64(len(body)) > f.maxBodySize {
		return "", model.TransportError("fetch", ErrBodyTooLarge)
	}

	return string(body), nil
}
