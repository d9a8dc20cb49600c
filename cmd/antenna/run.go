package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/antenna/internal/log"
	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check the page once and announce new transmissions",
		Long: `Run performs a single check: fetch the page, extract transmissions, announce
the ones not seen before (oldest first) and store them.

Run is meant to be triggered by an external scheduler such as cron or a
systemd timer. It exits non-zero only when the page could not be fetched or
parsed, the store could not be read, or the configuration is invalid. A
failed announcement is logged and retried by the next run.

Examples:
  # One check with the webhook from the environment
  ANTENNA_DISCORD_WEBHOOK=https://discord.com/api/webhooks/... antenna run

  # Print the run report as JSON
  antenna run --json`,
		Args: cobra.NoArgs,
		RunE: runRunCmd,
	}

	addRunFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Print the run report as JSON to stdout")

	return cmd
}

// runRunCmd executes the run command.
func runRunCmd(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)
	defer log.RecoverPanic(logger, &err)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.ValidateDelivery(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
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

	report, err := a.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return nil
}
