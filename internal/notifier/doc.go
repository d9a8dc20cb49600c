// Package notifier delivers transmission announcements to a chat webhook.
//
// Each announcement is one HTTP POST of a JSON object with a single
// "content" field, the format accepted by Discord-compatible webhooks.
// A 2xx response is success; anything else is a model.KindTransport error.
//
// Deliveries are paced with a token bucket (golang.org/x/time/rate) so a
// burst of new entries does not trip the endpoint's rate limit. Ordering is
// the caller's concern: Notify is meant to be called one record at a time.
package notifier
