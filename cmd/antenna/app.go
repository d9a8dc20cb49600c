package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/antenna/internal/config"
	"github.com/nao1215/antenna/internal/database"
	"github.com/nao1215/antenna/internal/extractor"
	"github.com/nao1215/antenna/internal/fetcher"
	"github.com/nao1215/antenna/internal/log"
	"github.com/nao1215/antenna/internal/notifier"
	"github.com/nao1215/antenna/internal/pipeline"
	"github.com/nao1215/antenna/internal/transport"
	"github.com/spf13/cobra"
)

// addRunFlags registers the flags shared by run and watch.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", config.DefaultSourceURL, "Page to watch for transmissions")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each HTTP request")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy for the page fetch (host:port)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency, "Concurrent store lookups and inserts")
	cmd.Flags().Float64("rate", config.DefaultRatePerSec, "Webhook messages per second (0 disables pacing)")
	cmd.Flags().String("mention-kind", config.DefaultMentionKind, "Mention rendering: role, user or raw")
	addStoreFlags(cmd)
}

// addStoreFlags registers the store selection flags.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", config.StoreSQLite, "Store driver: sqlite or mongo")
	cmd.Flags().String("db-dir", "", "SQLite directory (default: $XDG_DATA_HOME/antenna)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig layers defaults, the config file, the environment and the
// flags the user changed, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicitConfigPath := configPath != ""
	if found := config.FindConfigFile(configPath); found != "" {
		if err := cfg.LoadConfigFile(found); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	if err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	var err error
	if changed("url") {
		if cfg.SourceURL, err = flags.GetString("url"); err != nil {
			return err
		}
	}
	if changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	if changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}
	if changed("rate") {
		if cfg.Webhook.RatePerSec, err = flags.GetFloat64("rate"); err != nil {
			return err
		}
	}
	if changed("mention-kind") {
		if cfg.Webhook.MentionKind, err = flags.GetString("mention-kind"); err != nil {
			return err
		}
	}
	if changed("store") {
		if cfg.Store.Driver, err = flags.GetString("store"); err != nil {
			return err
		}
	}
	if changed("db-dir") {
		if cfg.Store.Dir, err = flags.GetString("db-dir"); err != nil {
			return err
		}
	}
	if changed("schedule") {
		if cfg.Schedule, err = flags.GetString("schedule"); err != nil {
			return err
		}
	}
	if changed("json-logs") {
		if cfg.JSONLogs, err = flags.GetBool("json-logs"); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger installs the process logger on stderr.
func setupLogger(cfg *config.Config) *slog.Logger {
	return log.Setup(os.Stderr, log.Options{Verbose: cfg.Verbose, JSON: cfg.JSONLogs})
}

// storeConfig maps the configuration onto the database package.
func storeConfig(cfg *config.Config) database.Config {
	return database.Config{
		Driver: cfg.Store.Driver,
		Dir:    cfg.Store.Dir,
		Mongo: database.MongoOptions{
			URI:        cfg.Store.MongoURI,
			Database:   cfg.Store.MongoDatabase,
			Collection: cfg.Store.MongoCollection,
		},
	}
}

// app holds the collaborators of a run.
type app struct {
	runner *pipeline.Runner
	store  database.Store
}

// newApp wires fetcher, extractor, store and notifier into a runner.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	pageClient, err := transport.New(transport.Options{
		ProxyAddress: cfg.ProxyAddress,
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	webhookClient, err := transport.New(transport.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	hook, err := notifier.New(cfg.Webhook.URL,
		notifier.WithHTTPClient(webhookClient),
		notifier.WithMention(notifier.MentionKind(cfg.Webhook.MentionKind), cfg.Webhook.MentionID),
		notifier.WithRate(cfg.Webhook.RatePerSec, 1),
	)
	if err != nil {
		return nil, err
	}

	store, err := database.OpenStore(ctx, storeConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	runner, err := pipeline.NewRunner(cfg.SourceURL,
		fetcher.New(pageClient, fetcher.WithMaxBodySize(cfg.MaxBodySize)),
		extractor.New(),
		store,
		hook,
		pipeline.WithRunnerLogger(logger),
		pipeline.WithStoreConcurrency(cfg.Concurrency),
	)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}

	logger.Debug("antenna ready",
		"source", cfg.SourceURL,
		"store", cfg.Store.Driver,
		"config_file", cfg.ConfigFilePath,
	)
	return &app{runner: runner, store: store}, nil
}

// Close releases the store.
func (a *app) Close() error {
	return a.store.Close()
}
