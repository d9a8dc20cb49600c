package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/antenna/internal/database"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of transmissions shown by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List announced transmissions",
		Long: `History lists the transmissions antenna has announced, newest first,
as a Markdown table or as JSON.

Examples:
  # Last 20 announcements
  antenna history

  # Everything, as JSON
  antenna history --limit 0 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	addStoreFlags(cmd)
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of transmissions to show (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON instead of Markdown")

	return cmd
}

// historyOutput is the JSON document printed by history --json.
type historyOutput struct {
	Total         int64                   `json:"total"`
	Transmissions []database.StoredRecord `json:"transmissions"`
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := database.OpenStore(ctx, storeConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("failed to close store", "error", cerr)
		}
	}()

	records, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		if records == nil {
			records = []database.StoredRecord{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(historyOutput{Total: total, Transmissions: records})
	}
	return writeHistoryMarkdown(cmd.OutOrStdout(), records, total)
}

// writeHistoryMarkdown renders records as a Markdown table.
func writeHistoryMarkdown(w io.Writer, records []database.StoredRecord, total int64) error {
	md := markdown.NewMarkdown(w)
	md.H1("Announced transmissions")
	md.PlainText("")

	if len(records) == 0 {
		md.PlainText("No transmissions announced yet.")
		return md.Build()
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.NotifiedAt.Local().Format(time.DateTime),
			escapeCell(r.Title),
			escapeCell(r.Body),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Announced", "Title", "Transmission"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("Showing %d of %d.", len(records), total)
	return md.Build()
}

// escapeCell keeps pipes and newlines from breaking the table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
