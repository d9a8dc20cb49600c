package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/antenna/internal/config"
	"github.com/nao1215/antenna/internal/log"
	"github.com/nao1215/antenna/internal/pipeline"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check the page on a cron schedule until interrupted",
		Long: `Watch runs the same check as "antenna run" on a cron schedule, in process.

A tick that fires while the previous check is still running is skipped, so
checks never overlap. Failed checks are logged and the schedule continues.

Examples:
  # Every five minutes (default)
  antenna watch

  # Every minute, with a first check right away
  antenna watch --schedule "* * * * *" --now`,
		Args: cobra.NoArgs,
		RunE: runWatchCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().StringP("schedule", "s", config.DefaultSchedule, "Cron expression (five fields or @every/@hourly descriptors)")
	cmd.Flags().Bool("now", false, "Run a check immediately before the first tick")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)
	defer log.RecoverPanic(logger, &err)

	for _, validate := range []func() error{cfg.Validate, cfg.ValidateDelivery, cfg.ValidateSchedule} {
		if err := validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}()

	now, err := cmd.Flags().GetBool("now")
	if err != nil {
		return err
	}
	return watch(ctx, a.runner, cfg.Schedule, now, logger)
}

// watch schedules runs until ctx is cancelled, then waits for a running
// check to finish.
func watch(ctx context.Context, runner *pipeline.Runner, schedule string, now bool, logger *slog.Logger) error {
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	job := func() {
		if _, err := runner.Run(ctx); err != nil {
			logger.Error("run aborted", "error", err)
		}
	}
	if _, err := c.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("failed to schedule %q: %w", schedule, err)
	}

	if now {
		job()
	}

	c.Start()
	logger.Info("watching", "schedule", schedule, "next", c.Entries()[0].Next)

	<-ctx.Done()
	logger.Info("received shutdown signal, waiting for running check")
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

// Info logs scheduler chatter at debug level.
func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

// Error logs scheduler errors, including recovered job panics.
func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
