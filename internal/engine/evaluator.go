package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/config"
	"github.com/sentinelops/amiguard/internal/models"
	"github.com/sentinelops/amiguard/internal/policy"
)

// lookupFailedPolicyID marks decisions produced by fail-mode handling
// instead of a policy.
const lookupFailedPolicyID = "LOOKUP_FAILED"

// Evaluator decides compliant/non-compliant for one LaunchRecord. The policy
// itself is pure; all I/O lives in the injected ImageLookup.
type Evaluator struct {
	lookup   ImageLookup
	policy   policy.Policy
	failMode config.FailMode
	log      *logrus.Logger
}

// NewEvaluator constructs an Evaluator with the given lookup, policy, and
// lookup-failure mode.
func NewEvaluator(lookup ImageLookup, pol policy.Policy, failMode config.FailMode, log *logrus.Logger) *Evaluator {
	return &Evaluator{lookup: lookup, policy: pol, failMode: failMode, log: log}
}

// Evaluate looks up the record's image metadata and applies the policy.
//
// Lookup failure, timeouts included, defaults to fail-closed: an image we
// cannot verify must not be trusted. A briefly blocked legitimate image is
// an acceptable cost; a malicious image left running is not.
func (e *Evaluator) Evaluate(ctx context.Context, rec models.LaunchRecord) models.Evaluation {
	info, err := e.lookup.LookupImage(ctx, rec.ImageID)
	if err != nil {
		if e.failMode == config.FailOpen {
			e.log.WithFields(logrus.Fields{
				"instance": rec.InstanceID,
				"image":    rec.ImageID,
			}).WithError(err).Warn("image lookup failed; fail-open mode treats launch as compliant")
			return models.Evaluation{Record: rec, Compliant: true, PolicyID: lookupFailedPolicyID}
		}
		return models.Evaluation{
			Record:   rec,
			PolicyID: lookupFailedPolicyID,
			Reason:   "image metadata unavailable: " + err.Error(),
		}
	}

	res := e.policy.Evaluate(info)
	return models.Evaluation{
		Record:    rec,
		Compliant: res.Compliant,
		PolicyID:  res.PolicyID,
		Reason:    res.Reason,
	}
}
