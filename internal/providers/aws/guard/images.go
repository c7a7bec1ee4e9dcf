package awsguard

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/sentinelops/amiguard/internal/models"
)

// ImageLookup resolves AMI sharing metadata via EC2 DescribeImages.
// Results are never cached: image sharing state can change between launches
// and a stale answer would defeat the compliance check.
type ImageLookup struct {
	client ec2APIClient
}

// NewImageLookup wires the lookup to the given client bundle.
func NewImageLookup(clients *Clients) *ImageLookup {
	return &ImageLookup{client: clients.EC2}
}

// LookupImage fetches the AMI's public flag and owner. An AMI that
// DescribeImages does not return (deregistered, or shared away from this
// account) is an error; the caller decides fail-open or fail-closed.
func (l *ImageLookup) LookupImage(ctx context.Context, imageID string) (models.ImageComplianceInfo, error) {
	out, err := l.client.DescribeImages(ctx, &ec2svc.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return models.ImageComplianceInfo{}, fmt.Errorf("describe image %s: %w", imageID, err)
	}
	if len(out.Images) == 0 {
		return models.ImageComplianceInfo{}, fmt.Errorf("describe image %s: image not found", imageID)
	}

	img := out.Images[0]
	return models.ImageComplianceInfo{
		ImageID: imageID,
		Public:  aws.ToBool(img.Public),
		OwnerID: aws.ToString(img.OwnerId),
	}, nil
}
