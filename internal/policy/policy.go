package policy

import (
	"fmt"

	"github.com/sentinelops/amiguard/internal/models"
)

// Result is a single policy decision.
type Result struct {
	Compliant bool

	// PolicyID identifies the policy that produced the decision. For a Chain
	// this is the first rejecting member's id.
	PolicyID string

	// Reason explains a non-compliant decision. Empty when compliant.
	Reason string
}

// Policy decides whether an image is approved for launching instances.
// Policies must be pure and stateless: no network calls, no clock reads, no
// external state. They are evaluated against ImageComplianceInfo that the
// engine has already fetched, so they can be tested with synthetic values.
type Policy interface {
	// ID returns the unique, stable identifier for this policy
	// (e.g. "PUBLIC_IMAGE").
	ID() string

	// Name returns a short human-readable policy name.
	Name() string

	// Evaluate inspects the image metadata and returns the decision.
	Evaluate(info models.ImageComplianceInfo) Result
}

// PublicImagePolicy marks any publicly shared AMI as non-compliant. This is
// the default policy: a launch template redirected at a public AMI is the
// confused-deputy pattern this system exists to contain.
type PublicImagePolicy struct{}

func (PublicImagePolicy) ID() string   { return "PUBLIC_IMAGE" }
func (PublicImagePolicy) Name() string { return "Publicly Shared AMI" }

func (p PublicImagePolicy) Evaluate(info models.ImageComplianceInfo) Result {
	if info.Public {
		return Result{
			PolicyID: p.ID(),
			Reason:   fmt.Sprintf("image %s is publicly shared", info.ImageID),
		}
	}
	return Result{Compliant: true, PolicyID: p.ID()}
}

// TrustedOwnersPolicy marks an AMI as non-compliant unless it is owned by one
// of the configured accounts. An empty owner id on the image also fails: an
// image whose provenance cannot be established is not trusted.
type TrustedOwnersPolicy struct {
	owners map[string]struct{}
}

// NewTrustedOwnersPolicy builds the policy from the allowed owner account ids.
func NewTrustedOwnersPolicy(owners []string) TrustedOwnersPolicy {
	set := make(map[string]struct{}, len(owners))
	for _, o := range owners {
		set[o] = struct{}{}
	}
	return TrustedOwnersPolicy{owners: set}
}

func (TrustedOwnersPolicy) ID() string   { return "TRUSTED_OWNERS" }
func (TrustedOwnersPolicy) Name() string { return "AMI Owner Allowlist" }

func (p TrustedOwnersPolicy) Evaluate(info models.ImageComplianceInfo) Result {
	if _, ok := p.owners[info.OwnerID]; ok {
		return Result{Compliant: true, PolicyID: p.ID()}
	}
	reason := fmt.Sprintf("image %s is owned by untrusted account %s", info.ImageID, info.OwnerID)
	if info.OwnerID == "" {
		reason = fmt.Sprintf("image %s has no resolvable owner", info.ImageID)
	}
	return Result{PolicyID: p.ID(), Reason: reason}
}

// Chain evaluates policies in order and returns the first non-compliant
// result. An image is compliant only when every policy in the chain passes.
type Chain []Policy

func (Chain) ID() string   { return "CHAIN" }
func (Chain) Name() string { return "Policy Chain" }

func (c Chain) Evaluate(info models.ImageComplianceInfo) Result {
	for _, p := range c {
		if r := p.Evaluate(info); !r.Compliant {
			return r
		}
	}
	return Result{Compliant: true, PolicyID: c.ID()}
}
