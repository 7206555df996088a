package config

import (
	"fmt"
	"strings"
)

// StorageMode selects the backend for uploaded project images.
type StorageMode string

const (
	// StorageModeLocal writes uploads to a directory served by the API.
	StorageModeLocal StorageMode = "local"
	// StorageModeS3 writes uploads to an S3 bucket.
	StorageModeS3 StorageMode = "s3"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageMode.
func (m *StorageMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "local", "s3":
		*m = StorageMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageMode: %q (valid options: local, s3)", v)
	}
}

// S3Config contains S3 settings used when Mode=s3.
type S3Config struct {
	Bucket    string `env:"BUCKET"     envDefault:""`
	Region    string `env:"REGION"     envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"   envDefault:""` // custom endpoint for MinIO and friends
	AccessKey string `env:"ACCESS_KEY" envDefault:""`
	SecretKey string `env:"SECRET_KEY" envDefault:""`
	// PublicBaseURL is prepended to object keys to build the image URL
	// stored on the record. Defaults to the bucket's virtual-host URL.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:""`
}

// StorageConfig contains image upload configuration.
type StorageConfig struct {
	// Mode determines which storage backend handles uploads.
	Mode StorageMode `env:"MODE" envDefault:"local"`

	// LocalDir is the upload directory when Mode=local.
	LocalDir string `env:"LOCAL_DIR" envDefault:"uploads"`

	// MaxUploadBytes caps multipart image uploads.
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	// S3 configuration (used when Mode=s3).
	S3 S3Config `envPrefix:"S3_"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.Mode == "" {
		s.Mode = StorageModeLocal
	}
	if strings.TrimSpace(s.LocalDir) == "" {
		s.LocalDir = "uploads"
	}
	const defaultMaxUpload = 5 << 20
	if s.MaxUploadBytes <= 0 {
		s.MaxUploadBytes = defaultMaxUpload
	}
}
