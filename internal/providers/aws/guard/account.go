package awsguard

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	stssvc "github.com/aws/aws-sdk-go-v2/service/sts"
)

// AccountResolver resolves the current AWS account id via STS. The live
// event envelope always carries the account, but replayed event files are
// often trimmed; the resolver fills the gap so findings still get a valid
// product ARN.
type AccountResolver struct {
	client stsAPIClient
}

// NewAccountResolver wires the resolver to the given client bundle.
func NewAccountResolver(clients *Clients) *AccountResolver {
	return &AccountResolver{client: clients.STS}
}

// ResolveAccountID returns the account id of the active credentials.
func (r *AccountResolver) ResolveAccountID(ctx context.Context) (string, error) {
	out, err := r.client.GetCallerIdentity(ctx, &stssvc.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}
