package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/nao1215/antenna/internal/model"
)

// DefaultRatePerSec is the default delivery rate.
const DefaultRatePerSec = 1.0

// ErrWebhookURLRequired is returned by New when no webhook URL is given.
var ErrWebhookURLRequired = errors.New("webhook URL is required")

// payload is the JSON body posted to the webhook.
type payload struct {
	Content string `json:"content"`
}

// Webhook posts announcements to a webhook URL.
// It is safe for concurrent use, but callers that care about ordering
// must serialize calls.
type Webhook struct {
	client  *http.Client
	url     string
	mention string
	limiter *rate.Limiter
}

// Option configures a Webhook.
type Option func(*Webhook)

// WithHTTPClient sets the HTTP client. Nil keeps http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(w *Webhook) {
		if client != nil {
			w.client = client
		}
	}
}

// WithMention prefixes every message with the rendered mention of id.
func WithMention(kind MentionKind, id string) Option {
	return func(w *Webhook) {
		w.mention = Mention(kind, id)
	}
}

// WithRate limits deliveries to perSec messages per second with the given
// burst. perSec <= 0 disables pacing.
func WithRate(perSec float64, burst int) Option {
	return func(w *Webhook) {
		if perSec <= 0 {
			w.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		w.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// New creates a Webhook that posts to webhookURL.
func New(webhookURL string, opts ...Option) (*Webhook, error) {
	if webhookURL == "" {
		return nil, ErrWebhookURLRequired
	}
	w := &Webhook{
		client:  http.DefaultClient,
		url:     webhookURL,
		limiter: rate.NewLimiter(rate.Limit(DefaultRatePerSec), 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Notify delivers one announcement for record.
func (w *Webhook) Notify(ctx context.Context, record model.UpdateRecord) error {
	return w.Send(ctx, FormatContent(w.mention, record))
}

// Send posts content as-is. It waits for the rate limiter first.
func (w *Webhook) Send(ctx context.Context, content string) error {
	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return model.TransportError("notify", fmt.Errorf("rate limiter: %w", err))
		}
	}

	body, err := json.Marshal(payload{Content: content})
	if err != nil {
		return model.TransportError("notify", fmt.Errorf("failed to encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return model.TransportError("notify", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return model.TransportError("notify", redactURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		return model.TransportError("notify", fmt.Errorf("unexpected status %s: %s", resp.Status, bytes.TrimSpace(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

// redactURL hides the webhook URL, which carries the webhook token,
// from errors returned by the HTTP client.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: "[webhook]", Err: urlErr.Err}
	}
	return err
}
