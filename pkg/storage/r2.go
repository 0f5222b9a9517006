// Package storage provides Cloudflare R2 object storage for job photos.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// R2Config holds Cloudflare R2 configuration
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// PublicURL is the public base URL for accessing uploaded files
	PublicURL string
}

// R2Client wraps the AWS S3 client for Cloudflare R2
type R2Client struct {
	client     *s3.Client
	bucketName string
	publicURL  string
}

// allowed photo content types
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// NewR2Client creates a new R2 storage client
func NewR2Client(cfg R2Config) (*R2Client, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" {
		return nil, fmt.Errorf("incomplete R2 configuration: account_id, access_key_id, secret_access_key and bucket_name are required")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		// R2 uses "auto" as region
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS SDK configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Client{
		client:     client,
		bucketName: cfg.BucketName,
		publicURL:  cfg.PublicURL,
	}, nil
}

// UploadJobPhoto uploads a cargo photo for a freight job and returns its
// public URL. The object key is namespaced by job ID so re-uploads for the
// same job stay grouped.
func (r *R2Client) UploadJobPhoto(ctx context.Context, jobID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(fileBytes)
	}

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported photo type %q", contentType)
	}
	if e := strings.ToLower(filepath.Ext(header.Filename)); e != "" {
		ext = e
	}

	key := fmt.Sprintf("jobs/%s/%s%s", sanitizeKeySegment(jobID), uuid.New().String(), ext)

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading photo: %w", err)
	}

	if r.publicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(r.publicURL, "/"), key), nil
	}
	return key, nil
}

// sanitizeKeySegment strips characters that do not belong in an object key
// segment (job IDs look like "#123456").
func sanitizeKeySegment(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
