package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/models"
)

// Executor runs the corrective actions for one non-compliant record as an
// ordered pipeline of independently failable steps: suspend the owning
// group's launches, then terminate the instance. Each step's failure is
// recorded and never blocks the next step; stopping the concrete instance
// matters more than stopping the group.
//
// Nothing here retries. Transient provider errors surface in the outcome for
// the hosting framework to retry the whole event, which is safe because both
// steps are idempotent.
type Executor struct {
	suspender  GroupSuspender
	terminator InstanceTerminator
	log        *logrus.Logger
}

// NewExecutor constructs an Executor over the given collaborators.
func NewExecutor(suspender GroupSuspender, terminator InstanceTerminator, log *logrus.Logger) *Executor {
	return &Executor{suspender: suspender, terminator: terminator, log: log}
}

// Remediate performs suspension and termination for rec. The returned
// outcome always has Suspended == StepNotApplicable when the record has no
// owning group; absence of a group is never a failure.
func (x *Executor) Remediate(ctx context.Context, rec models.LaunchRecord) models.RemediationOutcome {
	outcome := models.RemediationOutcome{
		InstanceID: rec.InstanceID,
		Suspended:  models.StepNotApplicable,
	}

	if rec.AutoScalingGroupName != "" {
		if err := x.suspender.SuspendLaunches(ctx, rec.AutoScalingGroupName); err != nil {
			x.log.WithFields(logrus.Fields{
				"instance": rec.InstanceID,
				"group":    rec.AutoScalingGroupName,
			}).WithError(err).Error("group suspension failed; continuing with termination")
			outcome.Suspended = models.StepFailed
			outcome.Errors = append(outcome.Errors, err.Error())
		} else {
			outcome.Suspended = models.StepSucceeded
		}
	}

	if err := x.terminator.Terminate(ctx, rec.InstanceID); err != nil {
		x.log.WithField("instance", rec.InstanceID).WithError(err).Error("instance termination failed")
		outcome.Terminated = models.StepFailed
		outcome.Errors = append(outcome.Errors, err.Error())
	} else {
		outcome.Terminated = models.StepSucceeded
	}

	return outcome
}
