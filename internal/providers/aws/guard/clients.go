package awsguard

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	asgsvc "github.com/aws/aws-sdk-go-v2/service/autoscaling"
	cwsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
	shsvc "github.com/aws/aws-sdk-go-v2/service/securityhub"
	stssvc "github.com/aws/aws-sdk-go-v2/service/sts"
)

// ec2APIClient is the narrow EC2 interface used by the image lookup and the
// remediator. DescribeImages resolves AMI sharing state; TerminateInstances
// performs the termination step.
type ec2APIClient interface {
	DescribeImages(ctx context.Context, params *ec2svc.DescribeImagesInput, optFns ...func(*ec2svc.Options)) (*ec2svc.DescribeImagesOutput, error)
	TerminateInstances(ctx context.Context, params *ec2svc.TerminateInstancesInput, optFns ...func(*ec2svc.Options)) (*ec2svc.TerminateInstancesOutput, error)
}

// asgAPIClient is the narrow Auto Scaling interface for suspending a group's
// launch process.
type asgAPIClient interface {
	SuspendProcesses(ctx context.Context, params *asgsvc.SuspendProcessesInput, optFns ...func(*asgsvc.Options)) (*asgsvc.SuspendProcessesOutput, error)
}

// securityHubAPIClient is the narrow Security Hub interface for submitting
// findings. BatchImportFindings upserts by finding id.
type securityHubAPIClient interface {
	BatchImportFindings(ctx context.Context, params *shsvc.BatchImportFindingsInput, optFns ...func(*shsvc.Options)) (*shsvc.BatchImportFindingsOutput, error)
}

// s3APIClient is the narrow S3 interface for the findings archive sink.
type s3APIClient interface {
	PutObject(ctx context.Context, params *s3svc.PutObjectInput, optFns ...func(*s3svc.Options)) (*s3svc.PutObjectOutput, error)
}

// cloudWatchAPIClient is the narrow CloudWatch interface for batch summary
// metrics.
type cloudWatchAPIClient interface {
	PutMetricData(ctx context.Context, params *cwsvc.PutMetricDataInput, optFns ...func(*cwsvc.Options)) (*cwsvc.PutMetricDataOutput, error)
}

// stsAPIClient is the narrow STS interface used to resolve the current
// account when a replayed event omits it.
type stsAPIClient interface {
	GetCallerIdentity(ctx context.Context, params *stssvc.GetCallerIdentityInput, optFns ...func(*stssvc.Options)) (*stssvc.GetCallerIdentityOutput, error)
}

// Clients bundles all AWS service clients the remediation path uses.
type Clients struct {
	EC2         ec2APIClient
	ASG         asgAPIClient
	SecurityHub securityHubAPIClient
	S3          s3APIClient
	CloudWatch  cloudWatchAPIClient
	STS         stsAPIClient
}

// ClientFactory creates Clients from an AWS config.
// Injection point: tests replace this with a function returning fake clients.
type ClientFactory func(cfg aws.Config) *Clients

// NewDefaultClients creates production AWS SDK clients from the given config.
func NewDefaultClients(cfg aws.Config) *Clients {
	return &Clients{
		EC2:         ec2svc.NewFromConfig(cfg),
		ASG:         asgsvc.NewFromConfig(cfg),
		SecurityHub: shsvc.NewFromConfig(cfg),
		S3:          s3svc.NewFromConfig(cfg),
		CloudWatch:  cwsvc.NewFromConfig(cfg),
		STS:         stssvc.NewFromConfig(cfg),
	}
}
