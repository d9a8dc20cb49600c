package config

import "errors"

// Configuration validation errors returned by Config.Validate and friends.
var (
	// ErrInvalidSourceURL is returned when the watched URL is not http(s).
	ErrInvalidSourceURL = errors.New("invalid source url: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidConcurrency is returned when the store concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidRate is returned when the webhook rate is negative.
	ErrInvalidRate = errors.New("invalid webhook rate: must be non-negative")

	// ErrInvalidMentionKind is returned for a mention kind other than role, user or raw.
	ErrInvalidMentionKind = errors.New("invalid mention kind: must be role, user or raw")

	// ErrUnknownStoreDriver is returned for a store driver other than sqlite or mongo.
	ErrUnknownStoreDriver = errors.New("unknown store driver: must be sqlite or mongo")

	// ErrMissingStoreDir is returned when the sqlite driver has no directory.
	ErrMissingStoreDir = errors.New("store directory is required for the sqlite driver")

	// ErrMissingMongoURI is returned when the mongo driver has no URI.
	ErrMissingMongoURI = errors.New("mongo uri is required for the mongo driver: set store.mongo_uri or ANTENNA_MONGO_URI")

	// ErrMissingWebhook is returned when no webhook URL is configured.
	ErrMissingWebhook = errors.New("webhook url is required: set ANTENNA_DISCORD_WEBHOOK or webhook.url")

	// ErrInvalidWebhook is returned when the webhook URL is not http(s).
	ErrInvalidWebhook = errors.New("invalid webhook url: must be an absolute http or https URL")

	// ErrInvalidSchedule is returned when the cron expression does not parse.
	ErrInvalidSchedule = errors.New("invalid schedule: must be a standard five-field cron expression")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
