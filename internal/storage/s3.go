package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Archiver uploads sealed logs to Amazon S3 (or compatible APIs).
type S3Archiver struct {
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

func NewS3Archiver(client *s3.Client, bucket, keyPrefix string) *S3Archiver {
	return &S3Archiver{
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: keyPrefix,
	}
}

func (s *S3Archiver) ArchiveSealedLog(ctx context.Context, log SealedLog) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	key := sealedLogKey(s.keyPrefix, log.ProductID, uuid.NewString())
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(log.Body),
		ContentType: aws.String("text/plain; charset=utf-8"),
		ACL:         types.ObjectCannedACLPrivate,
		// refuse to overwrite an existing object
		IfNoneMatch: aws.String("*"),
		Metadata: map[string]string{
			"user-hash": log.UserHash,
			"sealed-at": log.SealedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload sealed log %d: %w", log.ProductID, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func sealedLogKey(prefix string, productID int64, id string) string {
	key := fmt.Sprintf("products/%d/%s.txt", productID, id)
	if p := strings.Trim(prefix, "/"); p != "" {
		key = p + "/" + key
	}
	return key
}

var _ Archiver = (*S3Archiver)(nil)
