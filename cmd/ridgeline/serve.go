package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ferrovax/ridgeline/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP identification service",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":9090", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
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

	blobs, err := initBlobStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}

	srv := server.New(store, blobs)

	go func() {
		<-ctx.Done()
		if shutdownErr := srv.Shutdown(); shutdownErr != nil {
			slog.Error("failed to shut down server", "error", shutdownErr)
		}
	}()

	return srv.Listen(viper.GetString("server.addr"))
}
