package models

// StepResult is the tri-state outcome of a single remediation step.
type StepResult string

const (
	// StepNotApplicable means the step had nothing to act on, e.g. group
	// suspension for an instance that is not part of an Auto Scaling group.
	StepNotApplicable StepResult = "NOT_APPLICABLE"
	StepSucceeded     StepResult = "SUCCEEDED"
	StepFailed        StepResult = "FAILED"
)

// RemediationOutcome records what happened while remediating one
// non-compliant LaunchRecord. Steps are independently fault tolerant, so a
// failed step never implies the later steps were skipped.
//
// Invariant: when the record has no AutoScalingGroupName, Suspended is
// StepNotApplicable; it must never be reported as StepFailed.
type RemediationOutcome struct {
	InstanceID string `json:"instance_id"`

	// Suspended is the outcome of suspending the owning group's launch process.
	Suspended StepResult `json:"suspended"`

	// Terminated is the outcome of terminating the instance. Terminating an
	// already-terminated instance counts as StepSucceeded.
	Terminated StepResult `json:"terminated"`

	// FindingSubmitted reports whether the security finding reached the
	// findings store.
	FindingSubmitted bool `json:"finding_submitted"`

	// Errors lists step failures in the order they occurred. Non-empty Errors
	// with Terminated == StepSucceeded is a normal partial-failure outcome.
	Errors []string `json:"errors,omitempty"`
}

// Failed reports whether any remediation or reporting step failed.
func (o RemediationOutcome) Failed() bool {
	return len(o.Errors) > 0
}

// BatchSummary aggregates the processing of one inbound event batch. It is
// the orchestrator's only output; per-record detail lives in Outcomes.
type BatchSummary struct {
	Total        int `json:"total"`
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"non_compliant"`

	// Skipped counts records dropped during normalization for missing
	// required fields. Each skip is also recorded in NormalizationErrors.
	Skipped int `json:"skipped"`

	// RemediationFailures counts non-compliant records whose remediation or
	// reporting had at least one failed step.
	RemediationFailures int `json:"remediation_failures"`

	// Outcomes holds one entry per remediated record, in input order.
	Outcomes []RemediationOutcome `json:"outcomes,omitempty"`

	// NormalizationErrors describes records skipped by the normalizer.
	NormalizationErrors []string `json:"normalization_errors,omitempty"`

	// Succeeded is true iff no step-level error occurred across any record.
	// It is the only externally visible failure signal; the hosting framework
	// decides whether to retry the whole event based on it.
	Succeeded bool `json:"succeeded"`
}
