package blob

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	appcfg "github.com/fdg312/menu-board/internal/config"
)

func TestNewBlobStore_Local(t *testing.T) {
	var buf bytes.Buffer

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{Mode: appcfg.BlobModeLocal}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store != nil || mode != appcfg.BlobModeLocal {
		t.Fatalf("expected nil store in local mode, got %v %s", store, mode)
	}
	if !strings.Contains(buf.String(), "mode=local") {
		t.Fatalf("expected local mode log, got: %s", buf.String())
	}
}

func TestNewBlobStore_AutoWithoutS3FallsBack(t *testing.T) {
	var buf bytes.Buffer

	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode: appcfg.BlobModeAuto,
		S3:   appcfg.S3Config{Bucket: "exports"},
	}, log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store != nil || mode != appcfg.BlobModeLocal {
		t.Fatalf("expected local fallback, got %v %s", store, mode)
	}
	if !strings.Contains(buf.String(), "S3_ACCESS_KEY_ID") {
		t.Fatalf("expected missing keys in log, got: %s", buf.String())
	}
}

func TestNewBlobStore_S3MissingConfig(t *testing.T) {
	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode: appcfg.BlobModeS3,
		S3:   appcfg.S3Config{Endpoint: "http://localhost:9000"},
	}, nil)
	if err == nil {
		t.Fatal("expected error when mode=s3 and credentials are missing")
	}
	if store != nil || mode != "" {
		t.Fatalf("expected nil store and empty mode, got %v %q", store, mode)
	}
}

func TestNewBlobStore_S3Configured(t *testing.T) {
	store, mode, err := NewBlobStore(context.Background(), appcfg.BlobConfig{
		Mode: appcfg.BlobModeS3,
		S3: appcfg.S3Config{
			Endpoint:        "http://localhost:9000",
			Region:          "us-east-1",
			Bucket:          "exports",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			UsePathStyle:    true,
		},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store == nil || mode != appcfg.BlobModeS3 {
		t.Fatalf("expected s3 store, got %v %s", store, mode)
	}

	url, err := store.PresignGet(context.Background(), "exports/u1/week.pdf", 60)
	if err != nil {
		t.Fatalf("PresignGet: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9000/exports/exports/u1/week.pdf?") {
		t.Errorf("unexpected presigned URL %q", url)
	}
}

func TestNewBlobStore_UnknownMode(t *testing.T) {
	if _, _, err := NewBlobStore(context.Background(), appcfg.BlobConfig{Mode: "ftp"}, nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
