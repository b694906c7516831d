package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ClientOptions struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint points at an S3 compatible store (MinIO, LocalStack).
	Endpoint string
}

func NewS3Client(o ClientOptions) *s3.Client {
	opts := s3.Options{
		Region: o.Region,
	}
	if o.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, "")
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// S3Archiver stores purged hold requests as one JSON document per purge.
type S3Archiver struct {
	client PutObjectAPI
	bucket string
	now    func() time.Time
}

func NewS3Archiver(client PutObjectAPI, bucket string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, now: time.Now}
}

type holdArchive struct {
	ArchivedAt time.Time            `json:"archived_at"`
	Count      int                  `json:"count"`
	Requests   []models.HoldRequest `json:"requests"`
}

// ArchiveHolds uploads requests and returns the object key.
func (a *S3Archiver) ArchiveHolds(ctx context.Context, requests []models.HoldRequest) (string, error) {
	now := a.now().UTC()
	body, err := json.Marshal(holdArchive{ArchivedAt: now, Count: len(requests), Requests: requests})
	if err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}

	key := fmt.Sprintf("hold-requests/%s/%s.json", now.Format("2006/01/02"), uuid.NewString())
	if _, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}
