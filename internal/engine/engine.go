package engine

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sentinelops/amiguard/internal/models"
)

// ImageLookup fetches AMI compliance metadata for one image id.
// Implementations must not cache across invocations.
type ImageLookup interface {
	LookupImage(ctx context.Context, imageID string) (models.ImageComplianceInfo, error)
}

// GroupSuspender halts further launches from an Auto Scaling group.
type GroupSuspender interface {
	SuspendLaunches(ctx context.Context, groupName string) error
}

// InstanceTerminator terminates one instance. Implementations must be
// idempotent: terminating an already-terminated instance is a success.
type InstanceTerminator interface {
	Terminate(ctx context.Context, instanceID string) error
}

// FindingSubmitter upserts a finding into the findings store, keyed by the
// finding's deterministic id.
type FindingSubmitter interface {
	Submit(ctx context.Context, f models.Finding) error
}

// FindingArchiver writes a secondary copy of a submitted finding. Optional;
// archive failure is recorded like any reporting error.
type FindingArchiver interface {
	Archive(ctx context.Context, f models.Finding) error
}

// SummaryPublisher emits the batch summary to a metrics backend. Optional
// and best-effort.
type SummaryPublisher interface {
	Publish(ctx context.Context, s models.BatchSummary) error
}

// Engine is the top-level entry point, invoked once per inbound event batch.
//
// The returned error covers only a payload that cannot be normalized at all.
// Every per-record and per-step failure is absorbed into the summary instead:
// halting on the remediation path increases risk exposure, so partial success
// always beats halting. Callers decide retry of the whole event from
// BatchSummary.Succeeded, which is safe because every step is idempotent.
type Engine interface {
	HandleEvent(ctx context.Context, ev events.CloudWatchEvent) (*models.BatchSummary, error)
}
