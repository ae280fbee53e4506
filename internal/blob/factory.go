package blob

import (
	"context"
	"fmt"

	appcfg "github.com/fdg312/menu-board/internal/config"
)

type Logger interface {
	Printf(format string, v ...any)
}

// NewBlobStore picks the export store for mode local|s3|auto. A nil Store
// with mode "local" means exports are streamed back inline.
func NewBlobStore(ctx context.Context, cfg appcfg.BlobConfig, logger Logger) (Store, string, error) {
	switch cfg.Mode {
	case "", appcfg.BlobModeLocal:
		logf(logger, "INFO blob: mode=local")
		return nil, appcfg.BlobModeLocal, nil

	case appcfg.BlobModeAuto:
		if !cfg.S3.IsConfigured() {
			logf(logger, "INFO blob: mode=local (auto, missing=%v)", cfg.S3.MissingRequired())
			return nil, appcfg.BlobModeLocal, nil
		}
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			logf(logger, "WARN blob.s3: init_failed=%q, fallback=local", err.Error())
			return nil, appcfg.BlobModeLocal, nil
		}
		logf(logger, "INFO blob: mode=s3 (auto) %s", cfg.S3.Summary())
		return store, appcfg.BlobModeS3, nil

	case appcfg.BlobModeS3:
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			logf(logger, "FATAL blob.s3: %v %s", err, cfg.S3.Summary())
			return nil, "", fmt.Errorf("BLOB_MODE=s3: %w", err)
		}
		logf(logger, "INFO blob: mode=s3 %s", cfg.S3.Summary())
		return store, appcfg.BlobModeS3, nil

	default:
		return nil, "", fmt.Errorf("unsupported blob mode: %s", cfg.Mode)
	}
}

func logf(logger Logger, format string, v ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, v...)
}
