package event

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sentinelops/amiguard/internal/models"
)

// NormalizationError records one launch item dropped during normalization.
// Dropping an item never aborts processing of the remaining batch.
type NormalizationError struct {
	// Index is the item's position in the inbound instancesSet.
	Index  int
	Reason string
}

func (e NormalizationError) Error() string {
	return fmt.Sprintf("launch item %d skipped: %s", e.Index, e.Reason)
}

// Normalize parses one EventBridge-wrapped RunInstances event into an ordered
// slice of LaunchRecords, one per launched instance, preserving input order.
//
// Items missing a required field (instanceId, imageId) are skipped with a
// recorded NormalizationError; only a payload whose detail cannot be parsed
// at all is a hard error.
func Normalize(ev events.CloudWatchEvent) ([]models.LaunchRecord, []NormalizationError, error) {
	var detail RunInstancesDetail
	if err := json.Unmarshal(ev.Detail, &detail); err != nil {
		return nil, nil, fmt.Errorf("unmarshal RunInstances detail: %w", err)
	}
	if detail.ResponseElements == nil {
		return nil, nil, fmt.Errorf("event detail has no responseElements (errorCode=%q)", detail.ErrorCode)
	}

	region := ev.Region
	if region == "" {
		region = detail.AWSRegion
	}

	var (
		records []models.LaunchRecord
		skipped []NormalizationError
	)
	for i, item := range detail.ResponseElements.InstancesSet.Items {
		if item.InstanceID == "" {
			skipped = append(skipped, NormalizationError{Index: i, Reason: "missing instanceId"})
			continue
		}
		if item.ImageID == "" {
			skipped = append(skipped, NormalizationError{Index: i, Reason: fmt.Sprintf("instance %s missing imageId", item.InstanceID)})
			continue
		}

		tags := make(map[string]string, len(item.TagSet.Items))
		for _, t := range item.TagSet.Items {
			tags[t.Key] = t.Value
		}

		records = append(records, models.LaunchRecord{
			InstanceID:           item.InstanceID,
			ImageID:              item.ImageID,
			Tags:                 tags,
			AutoScalingGroupName: groupNameFromTags(item.TagSet.Items),
			EventTime:            detail.EventTime,
			AccountID:            ev.AccountID,
			Region:               region,
		})
	}
	return records, skipped, nil
}
