package main

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ferrovax/ridgeline/internal/cli"
	"github.com/ferrovax/ridgeline/internal/common"
	"github.com/ferrovax/ridgeline/internal/engine"
	"github.com/ferrovax/ridgeline/internal/ingest"
	"github.com/ferrovax/ridgeline/internal/matcher"
)

func enrollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enroll <minutiae.csv>",
		Short: "Enroll a fingerprint into the reference collection",
		Long: `Enroll reads a minutiae CSV in canonical x, y, type, angle column
order, stores it as a reference record, and optionally attaches a
fingerprint image uploaded to the blob store.`,
		Args: cobra.ExactArgs(1),
		RunE: runEnroll,
	}

	cmd.Flags().String("subject-id", "", "subject identifier (SRN)")
	cmd.Flags().String("subject-name", "", "subject display name")
	cmd.Flags().String("notes", "", "additional notes")
	cmd.Flags().String("image", "", "path to a fingerprint image to attach")

	return cmd
}

func runEnroll(cmd *cobra.Command, args []string) error {
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

	blobs, err := initBlobStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}

	subjectInfo := map[string]any{}
	if id, _ := cmd.Flags().GetString("subject-id"); id != "" {
		subjectInfo["id"] = id
	}
	if name, _ := cmd.Flags().GetString("subject-name"); name != "" {
		subjectInfo["name"] = name
	}

	assignment := map[string]any{}
	if notes, _ := cmd.Flags().GetString("notes"); notes != "" {
		assignment["additionalNotes"] = notes
	}

	req := engine.EnrollmentRequest{
		SubjectInfo:    subjectInfo,
		AssignmentData: assignment,
		// Enrollment files are in canonical column order.
		Points: matcher.CandidatePointSets(table)[0],
	}

	if imagePath, _ := cmd.Flags().GetString("image"); imagePath != "" {
		data, readErr := os.ReadFile(imagePath)
		if readErr != nil {
			return fmt.Errorf("failed to read image: %w", readErr)
		}
		req.Image = data
		req.ImageExt = filepath.Ext(imagePath)
		req.ImageType = mime.TypeByExtension(req.ImageExt)
	}

	record, err := engine.NewEnroller(store, blobs).Enroll(ctx, req)
	if err != nil {
		return fmt.Errorf("enrollment failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Enrolled record %s (%s) with %d points",
		record.ID, record.SRN, len(record.Minutiae)))) //nolint:forbidigo // User-facing output
	return nil
}
