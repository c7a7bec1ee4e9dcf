package awsguard

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	shsvc "github.com/aws/aws-sdk-go-v2/service/securityhub"
	shtypes "github.com/aws/aws-sdk-go-v2/service/securityhub/types"
	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/models"
)

// SecurityHubReporter submits findings to AWS Security Hub.
// BatchImportFindings upserts by finding id, so resubmitting the finding for
// the same instance updates the existing record instead of duplicating it.
type SecurityHubReporter struct {
	client securityHubAPIClient
	log    *logrus.Logger
}

// NewSecurityHubReporter wires the reporter to the given client bundle.
func NewSecurityHubReporter(clients *Clients, log *logrus.Logger) *SecurityHubReporter {
	return &SecurityHubReporter{client: clients.SecurityHub, log: log}
}

// Submit translates the finding to the AWS Security Finding Format and
// imports it. A non-zero FailedCount in the response is an error even though
// the HTTP call succeeded.
func (r *SecurityHubReporter) Submit(ctx context.Context, f models.Finding) error {
	out, err := r.client.BatchImportFindings(ctx, &shsvc.BatchImportFindingsInput{
		Findings: []shtypes.AwsSecurityFinding{toASFF(f)},
	})
	if err != nil {
		return fmt.Errorf("import finding %s: %w", f.ID, err)
	}
	if aws.ToInt32(out.FailedCount) > 0 {
		msg := "unknown import failure"
		if len(out.FailedFindings) > 0 {
			msg = aws.ToString(out.FailedFindings[0].ErrorMessage)
		}
		return fmt.Errorf("import finding %s: %s", f.ID, msg)
	}

	r.log.WithFields(logrus.Fields{
		"finding":  f.ID,
		"instance": f.InstanceID,
	}).Info("submitted security hub finding")
	return nil
}

// toASFF maps the internal finding shape onto the Security Hub wire type.
func toASFF(f models.Finding) shtypes.AwsSecurityFinding {
	return shtypes.AwsSecurityFinding{
		SchemaVersion: aws.String(f.SchemaVersion),
		Id:            aws.String(f.ID),
		ProductArn:    aws.String(f.ProductARN),
		GeneratorId:   aws.String(f.GeneratorID),
		AwsAccountId:  aws.String(f.AccountID),
		Types:         f.Types,
		CreatedAt:     aws.String(f.CreatedAt),
		UpdatedAt:     aws.String(f.UpdatedAt),
		Severity: &shtypes.Severity{
			Label: shtypes.SeverityLabel(f.Severity),
		},
		Title:       aws.String(f.Title),
		Description: aws.String(f.Description),
		Resources: []shtypes.Resource{
			{
				Type:      aws.String("AwsEc2Instance"),
				Id:        aws.String(f.InstanceID),
				Partition: shtypes.PartitionAws,
				Region:    aws.String(f.Region),
				Details: &shtypes.ResourceDetails{
					AwsEc2Instance: &shtypes.AwsEc2InstanceDetails{
						ImageId: aws.String(f.ImageID),
					},
					Other: map[string]string{
						"AutoScalingGroupName": f.AutoScalingGroupName,
					},
				},
			},
		},
		Compliance: &shtypes.Compliance{
			Status: shtypes.ComplianceStatus(f.ComplianceStatus),
		},
		RecordState: shtypes.RecordState(f.RecordState),
	}
}
