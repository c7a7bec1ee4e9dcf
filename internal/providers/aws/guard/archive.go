package awsguard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/models"
)

// S3Archive writes each submitted finding as a JSON object to a bucket.
// The object key reuses the deterministic finding identity, so re-processing
// the same event overwrites the same object.
type S3Archive struct {
	client s3APIClient
	bucket string
	log    *logrus.Logger
}

// NewS3Archive wires the archive sink to the given client bundle and bucket.
func NewS3Archive(clients *Clients, bucket string, log *logrus.Logger) *S3Archive {
	return &S3Archive{client: clients.S3, bucket: bucket, log: log}
}

// Archive uploads the finding. Failures are for the caller to record as a
// reporting error; the primary Security Hub submission is unaffected.
func (a *S3Archive) Archive(ctx context.Context, f models.Finding) error {
	body, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal finding %s: %w", f.ID, err)
	}

	key := fmt.Sprintf("findings/%s.json", f.InstanceID)
	_, err = a.client.PutObject(ctx, &s3svc.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive finding %s to s3://%s/%s: %w", f.ID, a.bucket, key, err)
	}

	a.log.WithFields(logrus.Fields{
		"bucket": a.bucket,
		"key":    key,
	}).Debug("archived finding")
	return nil
}
