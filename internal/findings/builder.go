package findings

import (
	"fmt"

	"github.com/sentinelops/amiguard/internal/models"
)

const (
	schemaVersion = "2018-10-08"
	generatorID   = "custom-compliance-check"

	// findingIDSuffix makes the finding id a deterministic function of the
	// instance id. Re-processing the same event therefore upserts the same
	// finding instead of creating a duplicate.
	findingIDSuffix = "/compliance-check"

	// noGroupMarker is reported when the instance was not launched by an
	// Auto Scaling group.
	noGroupMarker = "Not part of an ASG"
)

// findingTypes classifies the finding in the AWS Security Finding Format
// taxonomy.
var findingTypes = []string{"Software and Configuration Checks/Industry and Regulatory Standards"}

// ID returns the deterministic finding id for an instance.
func ID(instanceID string) string {
	return instanceID + findingIDSuffix
}

// Build assembles the audit finding for one non-compliant launch and the
// remediation performed on it. It is pure: same inputs, same finding.
//
// The description reflects what actually happened. Termination failure and
// dry-run mode are both safety-relevant and must be visible in the audit
// trail, not papered over with a fixed "was terminated" sentence.
func Build(rec models.LaunchRecord, outcome models.RemediationOutcome, reason string, dryRun bool) models.Finding {
	action := "was terminated"
	switch {
	case dryRun:
		action = "would have been terminated (dry run)"
	case outcome.Terminated != models.StepSucceeded:
		action = "could not be terminated"
	}

	desc := fmt.Sprintf("EC2 instance %s with AMI %s is non-compliant (%s) and %s.",
		rec.InstanceID, rec.ImageID, reason, action)

	group := rec.AutoScalingGroupName
	if group == "" {
		group = noGroupMarker
	}

	return models.Finding{
		ID:            ID(rec.InstanceID),
		SchemaVersion: schemaVersion,
		GeneratorID:   generatorID,
		ProductARN: fmt.Sprintf("arn:aws:securityhub:%s:%s:product/%s/default",
			rec.Region, rec.AccountID, rec.AccountID),
		AccountID:            rec.AccountID,
		Region:               rec.Region,
		Types:                findingTypes,
		CreatedAt:            rec.EventTime,
		UpdatedAt:            rec.EventTime,
		Severity:             models.SeverityHigh,
		Title:                "EC2 Instance Non-Compliance with Company Standards",
		Description:          desc,
		InstanceID:           rec.InstanceID,
		ImageID:              rec.ImageID,
		AutoScalingGroupName: group,
		ComplianceStatus:     "FAILED",
		RecordState:          "ACTIVE",
	}
}
