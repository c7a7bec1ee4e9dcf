package policy

import (
	"strings"
	"testing"

	"github.com/sentinelops/amiguard/internal/models"
)

func TestPublicImagePolicy_ID(t *testing.T) {
	if (PublicImagePolicy{}).ID() != "PUBLIC_IMAGE" {
		t.Error("unexpected policy ID")
	}
}

func TestPublicImagePolicy_PublicImage(t *testing.T) {
	res := PublicImagePolicy{}.Evaluate(models.ImageComplianceInfo{ImageID: "ami-111", Public: true})
	if res.Compliant {
		t.Fatal("public image must be non-compliant")
	}
	if !strings.Contains(res.Reason, "ami-111") {
		t.Errorf("reason should name the image, got %q", res.Reason)
	}
	if res.PolicyID != "PUBLIC_IMAGE" {
		t.Errorf("policy_id: got %q; want PUBLIC_IMAGE", res.PolicyID)
	}
}

func TestPublicImagePolicy_PrivateImage(t *testing.T) {
	res := PublicImagePolicy{}.Evaluate(models.ImageComplianceInfo{ImageID: "ami-111", Public: false})
	if !res.Compliant {
		t.Errorf("private image must be compliant, got reason %q", res.Reason)
	}
}

func TestTrustedOwnersPolicy(t *testing.T) {
	p := NewTrustedOwnersPolicy([]string{"111122223333", "444455556666"})

	if res := p.Evaluate(models.ImageComplianceInfo{ImageID: "ami-1", OwnerID: "111122223333"}); !res.Compliant {
		t.Errorf("trusted owner must be compliant, got %q", res.Reason)
	}
	if res := p.Evaluate(models.ImageComplianceInfo{ImageID: "ami-1", OwnerID: "999988887777"}); res.Compliant {
		t.Error("untrusted owner must be non-compliant")
	}
}

func TestTrustedOwnersPolicy_NoOwner(t *testing.T) {
	p := NewTrustedOwnersPolicy([]string{"111122223333"})
	res := p.Evaluate(models.ImageComplianceInfo{ImageID: "ami-1"})
	if res.Compliant {
		t.Fatal("image without resolvable owner must be non-compliant")
	}
	if !strings.Contains(res.Reason, "no resolvable owner") {
		t.Errorf("unexpected reason %q", res.Reason)
	}
}

func TestChain_FirstRejectionWins(t *testing.T) {
	c := Chain{
		PublicImagePolicy{},
		NewTrustedOwnersPolicy([]string{"111122223333"}),
	}

	// Public and untrusted: the public-image policy decides first.
	res := c.Evaluate(models.ImageComplianceInfo{ImageID: "ami-1", Public: true, OwnerID: "999988887777"})
	if res.Compliant {
		t.Fatal("want non-compliant")
	}
	if res.PolicyID != "PUBLIC_IMAGE" {
		t.Errorf("policy_id: got %q; want PUBLIC_IMAGE", res.PolicyID)
	}

	// Private but untrusted: the owner policy decides.
	res = c.Evaluate(models.ImageComplianceInfo{ImageID: "ami-1", OwnerID: "999988887777"})
	if res.Compliant {
		t.Fatal("want non-compliant")
	}
	if res.PolicyID != "TRUSTED_OWNERS" {
		t.Errorf("policy_id: got %q; want TRUSTED_OWNERS", res.PolicyID)
	}
}

func TestChain_AllPass(t *testing.T) {
	c := Chain{
		PublicImagePolicy{},
		NewTrustedOwnersPolicy([]string{"111122223333"}),
	}
	res := c.Evaluate(models.ImageComplianceInfo{ImageID: "ami-1", OwnerID: "111122223333"})
	if !res.Compliant {
		t.Errorf("want compliant, got %q", res.Reason)
	}
}

func TestChain_Empty(t *testing.T) {
	if res := (Chain{}).Evaluate(models.ImageComplianceInfo{Public: true}); !res.Compliant {
		t.Error("empty chain must be compliant")
	}
}
