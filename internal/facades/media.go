package facades

//go:generate mockgen -source=media.go -destination=media_mock.go -package=facades

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
)

// ErrNoFile is returned when Upload is called without a local file.
var ErrNoFile = errors.New("no file to upload")

// S3PutObjectAPI is the part of the S3 client used for uploads.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaS3Facade uploads media files to S3-compatible object storage.
type MediaS3Facade struct {
	client        S3PutObjectAPI
	bucket        string
	publicBaseURL string
}

// NewMediaS3Facade creates a new facade for the given bucket.
// Uploaded objects are addressed as <publicBaseURL>/<bucket>/<key>.
func NewMediaS3Facade(client S3PutObjectAPI, bucket, publicBaseURL string) *MediaS3Facade {
	return &MediaS3Facade{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// NewS3Client builds an S3 client with static credentials against a custom endpoint.
func NewS3Client(ctx context.Context, region, endpoint, accessKey, secretKey string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

// storageKey returns a date-partitioned random object key.
func storageKey(ext string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), strings.ToLower(ext))
}

// Upload puts the file at localPath into the bucket and returns its public URL.
// The local file is removed whether or not the upload succeeds.
func (f *MediaS3Facade) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", ErrNoFile
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.Warnw("failed to remove temp upload", "path", localPath, "error", err)
		}
	}()

	file, err := os.Open(localPath)
	if err != nil {
		logger.Log.Errorw("failed to open upload", "path", localPath, "error", err)
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(localPath)
	key := storageKey(ext)
	input := &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := f.client.PutObject(ctx, input); err != nil {
		logger.Log.Errorw("failed to upload media to S3", "bucket", f.bucket, "key", key, "error", err)
		return "", err
	}

	url := fmt.Sprintf("%s/%s/%s", f.publicBaseURL, f.bucket, key)
	logger.Log.Infow("media uploaded", "bucket", f.bucket, "key", key, "url", url)
	return url, nil
}
