package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ParseS3URI splits "s3://bucket/key" into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid s3 uri: %s", uri)
	}
	return parts[0], parts[1], nil
}

// DownloadS3Object fetches an object into a temp file and returns its path.
// The caller removes the file when done.
func DownloadS3Object(ctx context.Context, region, bucket, key string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("AWS config load failed: %w", err)
	}

	tmp, err := os.CreateTemp("", "dieti-*"+filepath.Ext(key))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	downloader := manager.NewDownloader(s3.NewFromConfig(cfg))
	if _, err := downloader.Download(ctx, tmp, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("s3 download failed: %w", err)
	}
	return tmp.Name(), nil
}
