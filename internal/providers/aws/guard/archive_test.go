package awsguard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sentinelops/amiguard/internal/models"
)

// fakeS3 implements s3APIClient for tests.
type fakeS3 struct {
	err    error
	bucket string
	key    string
	body   []byte
}

func (f *fakeS3) PutObject(_ context.Context, params *s3svc.PutObjectInput, _ ...func(*s3svc.Options)) (*s3svc.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	f.body, _ = io.ReadAll(params.Body)
	return &s3svc.PutObjectOutput{}, nil
}

func TestS3Archive_Archive(t *testing.T) {
	s3 := &fakeS3{}
	a := NewS3Archive(&Clients{S3: s3}, "findings-bucket", testLogger())

	if err := a.Archive(context.Background(), sampleFinding()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s3.bucket != "findings-bucket" {
		t.Errorf("bucket: got %q", s3.bucket)
	}
	// Keyed by instance id so re-processing overwrites the same object.
	if s3.key != "findings/i-0abc.json" {
		t.Errorf("key: got %q", s3.key)
	}

	var stored models.Finding
	if err := json.Unmarshal(s3.body, &stored); err != nil {
		t.Fatalf("stored object is not valid JSON: %v", err)
	}
	if stored.ID != "i-0abc/compliance-check" {
		t.Errorf("stored id: got %q", stored.ID)
	}
}

func TestS3Archive_Failure(t *testing.T) {
	a := NewS3Archive(&Clients{S3: &fakeS3{err: errors.New("access denied")}}, "findings-bucket", testLogger())
	if err := a.Archive(context.Background(), sampleFinding()); err == nil {
		t.Fatal("want error")
	}
}
