package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ferrovax/ridgeline/internal/cli"
	"github.com/ferrovax/ridgeline/internal/common"
	"github.com/ferrovax/ridgeline/internal/engine"
	"github.com/ferrovax/ridgeline/internal/ingest"
)

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <minutiae.csv>",
		Short: "Match a minutiae CSV against the reference collection",
		Long: `Match reads a headerless CSV of minutiae rows, tries every supported
column arrangement against every enrolled record, and prints the ranked
verdict: perfect matches, good matches, or the closest record below
threshold.`,
		Args: cobra.ExactArgs(1),
		RunE: runMatch,
	}
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	table, err := ingest.ReadTableFile(args[0])
	if err != nil {
		return err
	}
	if len(table) == 0 {
		return fmt.Errorf("%w: %s", common.ErrEmptyTable, args[0])
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	count, err := store.CountReferenceRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count reference records: %w", err)
	}

	fmt.Println(cli.FormatTitle("Fingerprint identification")) //nolint:forbidigo // User-facing output

	var bar *progressbar.ProgressBar
	if count > 0 {
		bar = progressbar.NewOptions(count,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Matching against collection..."),
			progressbar.OptionClearOnFinish(),
		)
	}

	identifier := engine.NewIdentifier(store)
	identifier.Progress = func(done, _ int) {
		if bar != nil {
			_ = bar.Set(done)
		}
	}

	outcome, err := identifier.Identify(ctx, table)
	if err != nil {
		return fmt.Errorf("match attempt failed: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Println(cli.BoxStyle.Render(cli.RenderOutcome(outcome))) //nolint:forbidigo // User-facing output
	return nil
}
