// Package upload is the image hosting collaborator: a base64 payload goes
// in, a stable hosted URL comes out. Failures abort the submission before
// the relay is ever invoked.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/muro-api/internal/config"
	"github.com/gravadigital/muro-api/internal/logger"
)

// ErrUploadFailed marks any hosting collaborator failure
var ErrUploadFailed = errors.New("image upload failed")

// Uploader stores an encoded image and returns its hosted URL
type Uploader interface {
	UploadBase64(ctx context.Context, data string) (string, error)
}

// MinioUploader stores images in a MinIO/S3 bucket
type MinioUploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioUploader connects to the configured object store and makes sure
// the bucket exists.
func NewMinioUploader(ctx context.Context, cfg *config.Config) (*MinioUploader, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Minio.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Minio.Bucket, err)
		}
		logger.Upload().Info("Created image bucket", "bucket", cfg.Minio.Bucket)
	}

	return &MinioUploader{
		client:    client,
		bucket:    cfg.Minio.Bucket,
		publicURL: strings.TrimRight(cfg.Minio.PublicURL, "/"),
	}, nil
}

// UploadBase64 decodes a base64 image (with or without a data URL prefix),
// stores it under a fresh object name and returns the hosted URL.
func (u *MinioUploader) UploadBase64(ctx context.Context, data string) (string, error) {
	contentType, encoded := splitDataURL(data)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrUploadFailed, err)
	}

	objectName := uuid.NewString() + extensionFor(contentType)
	_, err = u.client.PutObject(ctx, u.bucket, objectName, bytes.NewReader(decoded), int64(len(decoded)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Upload().Error("PutObject failed", "bucket", u.bucket, "object", objectName, "error", err)
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	url := u.publicURL + "/" + u.bucket + "/" + objectName
	logger.Upload().Debug("Image uploaded", "object", objectName, "bytes", len(decoded))
	return url, nil
}

// splitDataURL separates "data:image/png;base64,AAAA" into content type and
// encoded body. Bare base64 defaults to JPEG, matching what phone cameras
// send.
func splitDataURL(data string) (contentType, encoded string) {
	if !strings.HasPrefix(data, "data:") {
		return "image/jpeg", data
	}
	rest := strings.TrimPrefix(data, "data:")
	meta, body, found := strings.Cut(rest, ",")
	if !found {
		return "image/jpeg", data
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return contentType, body
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
