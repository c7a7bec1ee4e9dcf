package awsguard

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	asgsvc "github.com/aws/aws-sdk-go-v2/service/autoscaling"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"
)

// launchProcess is the scaling process suspended on a compromised group.
// Suspending Launch stops the group from booting further instances while
// leaving termination and health checks running.
const launchProcess = "Launch"

// Remediator performs the mutating corrective actions: Auto Scaling group
// suspension and instance termination. In dry-run mode both actions are
// logged and reported as successful without calling the API.
type Remediator struct {
	ec2    ec2APIClient
	asg    asgAPIClient
	dryRun bool
	log    *logrus.Logger
}

// NewRemediator wires a Remediator to the given client bundle.
func NewRemediator(clients *Clients, dryRun bool, log *logrus.Logger) *Remediator {
	return &Remediator{ec2: clients.EC2, asg: clients.ASG, dryRun: dryRun, log: log}
}

// SuspendLaunches suspends the Launch process of the named Auto Scaling
// group so it stops replacing the instance about to be terminated. The call
// is idempotent on the AWS side; suspending an already-suspended process is
// a no-op success. A missing group is an error for the caller to record.
func (r *Remediator) SuspendLaunches(ctx context.Context, groupName string) error {
	if r.dryRun {
		r.log.WithField("group", groupName).Info("dry run: would suspend launch process")
		return nil
	}

	_, err := r.asg.SuspendProcesses(ctx, &asgsvc.SuspendProcessesInput{
		AutoScalingGroupName: aws.String(groupName),
		ScalingProcesses:     []string{launchProcess},
	})
	if err != nil {
		return fmt.Errorf("suspend launch process of group %s: %w", groupName, err)
	}

	r.log.WithField("group", groupName).Warn("suspended auto scaling group launch process")
	return nil
}

// Terminate terminates the instance. The outcome we care about is "instance
// not running", so an instance that is already gone counts as success: the
// API reports that as InvalidInstanceID.NotFound, and terminating an
// instance in shutting-down or terminated state is a server-side no-op.
func (r *Remediator) Terminate(ctx context.Context, instanceID string) error {
	if r.dryRun {
		r.log.WithField("instance", instanceID).Info("dry run: would terminate instance")
		return nil
	}

	_, err := r.ec2.TerminateInstances(ctx, &ec2svc.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "InvalidInstanceID.NotFound" {
			r.log.WithField("instance", instanceID).Info("instance already gone; treating termination as success")
			return nil
		}
		return fmt.Errorf("terminate instance %s: %w", instanceID, err)
	}

	r.log.WithField("instance", instanceID).Warn("terminated non-compliant instance")
	return nil
}
