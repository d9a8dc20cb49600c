package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/robfig/cron/v3"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "antenna"

	// DefaultSourceURL is the terminal page watched for transmissions.
	DefaultSourceURL = "https://mitty-terminal.uwu.ai/"

	// DefaultTimeout bounds a single page fetch or webhook post.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies antenna in HTTP requests.
	DefaultUserAgent = "antenna/1.0 (+https://github.com/nao1215/antenna)"

	// DefaultMaxBodySize limits the page size read into memory.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultSchedule runs the watch loop every five minutes.
	DefaultSchedule = "*/5 * * * *"

	// DefaultConcurrency bounds concurrent store lookups and inserts.
	DefaultConcurrency = 8

	// DefaultRatePerSec paces webhook posts.
	DefaultRatePerSec = 1.0

	// DefaultMentionKind renders the mention identifier as a role mention.
	DefaultMentionKind = "role"

	// StoreSQLite and StoreMongo are the supported store drivers.
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Config holds all options for antenna. It is filled from defaults, then a
// YAML file, then environment variables, then command line flags.
type Config struct {
	// SourceURL is the page to watch.
	SourceURL string `yaml:"source_url"`

	// Timeout applies to each HTTP request.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with page requests.
	UserAgent string `yaml:"user_agent"`

	// MaxBodySize is the largest page accepted, in bytes.
	MaxBodySize int64 `yaml:"max_body_size"`

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string `yaml:"proxy"`

	// Schedule is the cron expression used by the watch command.
	Schedule string `yaml:"schedule"`

	// Concurrency bounds concurrent store operations within a run.
	Concurrency int `yaml:"concurrency"`

	// JSONLogs switches log output to JSON.
	JSONLogs bool `yaml:"json_logs"`

	Webhook WebhookConfig `yaml:"webhook"`
	Store   StoreConfig   `yaml:"store"`

	// Verbose enables debug logging. Flag only.
	Verbose bool `yaml:"-"`

	// ConfigFilePath is the file the configuration was read from, if any.
	ConfigFilePath string `yaml:"-"`
}

// WebhookConfig configures announcement delivery.
type WebhookConfig struct {
	// URL is the Discord-compatible webhook URL. It carries a secret token
	// and is usually supplied through ANTENNA_DISCORD_WEBHOOK.
	URL string `yaml:"url"`

	// MentionID is prepended to every announcement. Empty disables it.
	MentionID string `yaml:"mention_id"`

	// MentionKind is "role", "user" or "raw".
	MentionKind string `yaml:"mention_kind"`

	// RatePerSec limits posts per second; 0 disables pacing.
	RatePerSec float64 `yaml:"rate_per_sec"`
}

// StoreConfig selects the backend remembering announced transmissions.
type StoreConfig struct {
	// Driver is "sqlite" or "mongo".
	Driver string `yaml:"driver"`

	// Dir holds the SQLite database file.
	Dir string `yaml:"dir"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `yaml:"mongo_uri"`

	// MongoDatabase and MongoCollection name the MongoDB target.
	MongoDatabase   string `yaml:"mongo_database"`
	MongoCollection string `yaml:"mongo_collection"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		SourceURL:   DefaultSourceURL,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Schedule:    DefaultSchedule,
		Concurrency: DefaultConcurrency,
		Webhook: WebhookConfig{
			MentionKind: DefaultMentionKind,
			RatePerSec:  DefaultRatePerSec,
		},
		Store: StoreConfig{
			Driver: StoreSQLite,
			Dir:    XDGDataDir(),
		},
	}
}

// XDGDataDir returns the XDG data directory for antenna.
// On Linux: ~/.local/share/antenna
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for antenna.
// On Linux: ~/.config/antenna
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the options needed by every command.
// It returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidSourceURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Webhook.RatePerSec < 0 {
		return ErrInvalidRate
	}
	switch c.Webhook.MentionKind {
	case "role", "user", "raw":
	default:
		return ErrInvalidMentionKind
	}
	switch c.Store.Driver {
	case StoreSQLite:
		if c.Store.Dir == "" {
			return ErrMissingStoreDir
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return ErrMissingMongoURI
		}
	default:
		return ErrUnknownStoreDriver
	}
	return nil
}

// ValidateDelivery checks the options needed to announce transmissions.
func (c *Config) ValidateDelivery() error {
	if c.Webhook.URL == "" {
		return ErrMissingWebhook
	}
	u, err := url.Parse(c.Webhook.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidWebhook
	}
	return nil
}

// ValidateSchedule checks the cron expression used by the watch command.
func (c *Config) ValidateSchedule() error {
	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return ErrInvalidSchedule
	}
	return nil
}
