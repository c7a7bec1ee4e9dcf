package models

// LaunchRecord is the normalized representation of one observed EC2 instance
// launch. It is constructed fresh from the inbound event for every invocation,
// never mutated after normalization, and never persisted.
type LaunchRecord struct {
	// InstanceID is the launched instance identifier (e.g. "i-0abc...").
	InstanceID string `json:"instance_id"`

	// ImageID is the AMI the instance was launched from.
	ImageID string `json:"image_id"`

	// Tags holds the instance tags present at launch time.
	Tags map[string]string `json:"tags,omitempty"`

	// AutoScalingGroupName is the owning Auto Scaling group, recovered from
	// the aws:autoscaling:groupName tag. Empty when the instance was not
	// launched by an Auto Scaling group; empty is a valid outcome, not an error.
	AutoScalingGroupName string `json:"auto_scaling_group_name,omitempty"`

	// EventTime, AccountID and Region are provenance fields copied verbatim
	// from the originating event into any emitted finding.
	EventTime string `json:"event_time"`
	AccountID string `json:"account_id"`
	Region    string `json:"region"`
}

// ImageComplianceInfo is the result of looking up AMI metadata for one
// evaluation. It is fetched on demand and never cached across invocations;
// image sharing state can change, and a stale answer is a correctness bug.
type ImageComplianceInfo struct {
	// ImageID is the AMI the metadata describes.
	ImageID string `json:"image_id"`

	// Public reports whether the AMI is publicly shared.
	Public bool `json:"public"`

	// OwnerID is the AWS account that owns the AMI. Used by owner-allowlist
	// policies; may be empty when the provider does not return it.
	OwnerID string `json:"owner_id,omitempty"`
}

// Evaluation is the compliance decision for one LaunchRecord.
type Evaluation struct {
	Record LaunchRecord `json:"record"`

	// Compliant is false when the launch violates the active policy, or when
	// image metadata could not be retrieved and the engine fails closed.
	Compliant bool `json:"compliant"`

	// PolicyID identifies the policy that produced the decision. Set to
	// "LOOKUP_FAILED" when the decision came from fail-closed handling rather
	// than a policy.
	PolicyID string `json:"policy_id,omitempty"`

	// Reason is a human-readable explanation for a non-compliant decision.
	Reason string `json:"reason,omitempty"`
}
