package config

import (
	"fmt"
	"strings"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

const defaultS3Region = "us-east-1"

// S3Config описывает bucket для экспортов PDF
type S3Config struct {
	Endpoint          string // empty means the AWS default endpoint
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PresignTTLSeconds int
	UsePathStyle      bool
}

// MissingRequired lists the env vars that must still be set for S3.
func (c S3Config) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

// Summary is safe to log: secrets are reported as set / not set.
func (c S3Config) Summary() string {
	return fmt.Sprintf("endpoint=%s region=%s bucket=%s path_style=%t presign_ttl=%ds access_key_id=%s secret_access_key=%s",
		orDash(c.Endpoint),
		orDash(c.Region),
		orDash(c.Bucket),
		c.UsePathStyle,
		c.PresignTTLSeconds,
		setOrNot(c.AccessKeyID),
		setOrNot(c.SecretAccessKey),
	)
}

type BlobConfig struct {
	Mode string // local|s3|auto
	S3   S3Config
}

func orDash(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "-"
	}
	return v
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}
