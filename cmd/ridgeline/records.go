package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ferrovax/ridgeline/internal/cli"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage the reference collection",
	}

	cmd.AddCommand(recordsListCmd())
	cmd.AddCommand(recordsShowCmd())
	cmd.AddCommand(recordsDeleteCmd())

	return cmd
}

func recordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List enrolled reference records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			records, err := store.ListReferenceRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.FormatSubtle("Reference collection is empty.")) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Reference collection (%d records)", len(records)))) //nolint:forbidigo // User-facing output
			for _, r := range records {
				fmt.Printf("  %s  %-12s  %d points  %s\n", //nolint:forbidigo // User-facing output
					r.ID, r.ResolveSRN(), len(r.Minutiae), r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func recordsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one reference record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			record, err := store.GetReferenceRecord(ctx, args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render record: %w", err)
			}
			fmt.Println(string(out)) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func recordsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reference record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			if err := store.DeleteReferenceRecord(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted record " + args[0])) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
