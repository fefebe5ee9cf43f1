package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"socialhub/internal/config"
	"socialhub/internal/database"
	"socialhub/internal/media"
	"socialhub/internal/repository"
	"socialhub/internal/service"
	"socialhub/internal/storage"
)

// App connects the stores and builds the service layer.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*database.DB, *service.Service, error) {
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, fmt.Errorf("init minio: %w", err)
	}
	if err := minioClient.EnsureBucket(ctx); err != nil {
		db.CloseDB()
		return nil, nil, fmt.Errorf("ensure bucket %s: %w", cfg.MinIO.BucketName, err)
	}

	uploader := media.NewUploader(minioClient, log.Named("media"))

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, uploader, log.Named("service"))

	return db, services, nil
}
