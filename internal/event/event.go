package event

// CloudTrail RunInstances payloads arrive wrapped in an EventBridge envelope;
// the shapes below cover only the detail fields this system reads.

// AutoScalingGroupTagKey is the tag EC2 attaches to instances launched by an
// Auto Scaling group. Its value is the owning group's name.
const AutoScalingGroupTagKey = "aws:autoscaling:groupName"

// RunInstancesDetail is the CloudTrail detail of a RunInstances call.
type RunInstancesDetail struct {
	EventTime        string            `json:"eventTime"`
	EventName        string            `json:"eventName"`
	AWSRegion        string            `json:"awsRegion"`
	ErrorCode        string            `json:"errorCode"`
	ResponseElements *ResponseElements `json:"responseElements"`
}

// ResponseElements carries the API response recorded by CloudTrail.
type ResponseElements struct {
	InstancesSet InstancesSet `json:"instancesSet"`
}

// InstancesSet lists the instances launched by one RunInstances call.
// A single call may launch a whole batch.
type InstancesSet struct {
	Items []InstanceItem `json:"items"`
}

// InstanceItem describes one launched instance.
type InstanceItem struct {
	InstanceID string `json:"instanceId"`
	ImageID    string `json:"imageId"`
	TagSet     TagSet `json:"tagSet"`
}

// TagSet holds the tags attached at launch, in API order.
type TagSet struct {
	Items []Tag `json:"items"`
}

// Tag is a single key/value tag.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// groupNameFromTags scans the tag list in order and returns the value of the
// first aws:autoscaling:groupName tag. The empty string means the instance is
// not part of a group, which is a valid outcome and not an error.
func groupNameFromTags(tags []Tag) string {
	for _, t := range tags {
		if t.Key == AutoScalingGroupTagKey {
			return t.Value
		}
	}
	return ""
}
