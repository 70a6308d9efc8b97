package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/ferrovax/ridgeline/internal/blobstore"
	minioblob "github.com/ferrovax/ridgeline/internal/blobstore/minio"
	"github.com/ferrovax/ridgeline/internal/config"
	"github.com/ferrovax/ridgeline/internal/service"
	"github.com/ferrovax/ridgeline/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initBlobStore builds the configured image blob backend.
func initBlobStore(ctx context.Context) (blobstore.Store, error) {
	switch backend := viper.GetString("blobstore.backend"); backend {
	case "", "local":
		root := viper.GetString("blobstore.root")
		if root == "" {
			root = config.DefaultBlobRoot()
		}
		return blobstore.NewLocalStore(config.ExpandPath(root))
	case "minio", "s3":
		return minioblob.NewStore(ctx, minioblob.Config{
			Endpoint:  viper.GetString("blobstore.endpoint"),
			AccessKey: viper.GetString("blobstore.access_key"),
			SecretKey: viper.GetString("blobstore.secret_key"),
			Bucket:    viper.GetString("blobstore.bucket"),
			Prefix:    viper.GetString("blobstore.prefix"),
			UseSSL:    viper.GetBool("blobstore.use_ssl"),
		})
	default:
		return nil, fmt.Errorf("unknown blobstore backend: %s", backend)
	}
}
