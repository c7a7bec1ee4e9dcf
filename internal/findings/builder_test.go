package findings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelops/amiguard/internal/models"
)

func sampleRecord() models.LaunchRecord {
	return models.LaunchRecord{
		InstanceID:           "i-0abc123",
		ImageID:              "ami-0pub456",
		AutoScalingGroupName: "web-asg",
		EventTime:            "2024-05-01T12:00:00Z",
		AccountID:            "111122223333",
		Region:               "us-east-1",
	}
}

func terminatedOutcome() models.RemediationOutcome {
	return models.RemediationOutcome{
		InstanceID: "i-0abc123",
		Suspended:  models.StepSucceeded,
		Terminated: models.StepSucceeded,
	}
}

func TestBuild_DeterministicID(t *testing.T) {
	rec := sampleRecord()
	a := Build(rec, terminatedOutcome(), "image is publicly shared", false)
	b := Build(rec, terminatedOutcome(), "image is publicly shared", false)

	// Same instance, same id: at-least-once delivery must upsert, not duplicate.
	require.Equal(t, a.ID, b.ID)
	assert.Equal(t, "i-0abc123/compliance-check", a.ID)
	assert.Equal(t, a.ID, ID(rec.InstanceID))
}

func TestBuild_FieldMapping(t *testing.T) {
	f := Build(sampleRecord(), terminatedOutcome(), "image ami-0pub456 is publicly shared", false)

	assert.Equal(t, "2018-10-08", f.SchemaVersion)
	assert.Equal(t, "custom-compliance-check", f.GeneratorID)
	assert.Equal(t, "arn:aws:securityhub:us-east-1:111122223333:product/111122223333/default", f.ProductARN)
	assert.Equal(t, models.SeverityHigh, f.Severity)
	assert.Equal(t, "FAILED", f.ComplianceStatus)
	assert.Equal(t, "ACTIVE", f.RecordState)
	assert.Equal(t, "web-asg", f.AutoScalingGroupName)

	// Provenance is copied verbatim from the event.
	assert.Equal(t, "2024-05-01T12:00:00Z", f.CreatedAt)
	assert.Equal(t, "2024-05-01T12:00:00Z", f.UpdatedAt)
	assert.Equal(t, "111122223333", f.AccountID)
	assert.Equal(t, "us-east-1", f.Region)

	assert.Contains(t, f.Description, "i-0abc123")
	assert.Contains(t, f.Description, "ami-0pub456")
	assert.Contains(t, f.Description, "was terminated")
}

func TestBuild_NoGroupMarker(t *testing.T) {
	rec := sampleRecord()
	rec.AutoScalingGroupName = ""
	f := Build(rec, terminatedOutcome(), "reason", false)
	assert.Equal(t, "Not part of an ASG", f.AutoScalingGroupName)
}

func TestBuild_FailedTermination(t *testing.T) {
	outcome := terminatedOutcome()
	outcome.Terminated = models.StepFailed
	outcome.Errors = []string{"terminate instance i-0abc123: access denied"}

	f := Build(sampleRecord(), outcome, "reason", false)
	assert.Contains(t, f.Description, "could not be terminated")
}

func TestBuild_DryRun(t *testing.T) {
	f := Build(sampleRecord(), terminatedOutcome(), "reason", true)
	assert.Contains(t, f.Description, "dry run")
}
