package models

// Severity represents the impact level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Finding is the audit artifact submitted to the findings store for one
// non-compliant launch. The field set mirrors the AWS Security Finding Format
// subset this system emits; provider adapters translate it to the wire shape.
type Finding struct {
	// ID is derived deterministically from the instance id so that
	// re-processing the same event upserts instead of duplicating.
	ID string `json:"id"`

	SchemaVersion string `json:"schema_version"`
	GeneratorID   string `json:"generator_id"`

	// ProductARN is the Security Hub default-product ARN for the account and
	// region the event came from.
	ProductARN string `json:"product_arn"`

	AccountID string   `json:"account_id"`
	Region    string   `json:"region"`
	Types     []string `json:"types"`

	// CreatedAt and UpdatedAt carry the originating event time verbatim.
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`

	// InstanceID and ImageID reference the offending resources.
	InstanceID string `json:"instance_id"`
	ImageID    string `json:"image_id"`

	// AutoScalingGroupName names the suspended group, or a fixed marker when
	// the instance was not part of a group.
	AutoScalingGroupName string `json:"auto_scaling_group_name"`

	ComplianceStatus string `json:"compliance_status"`
	RecordState      string `json:"record_state"`
}
