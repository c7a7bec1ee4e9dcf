package awsguard

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/models"
)

// metricsNamespace is the CloudWatch namespace for batch summary metrics.
const metricsNamespace = "AmiGuard"

// CloudWatchPublisher emits per-batch summary counters so non-compliant
// launch spikes can be alarmed on without parsing logs.
type CloudWatchPublisher struct {
	client cloudWatchAPIClient
	log    *logrus.Logger
	now    func() time.Time
}

// NewCloudWatchPublisher wires the publisher to the given client bundle.
func NewCloudWatchPublisher(clients *Clients, log *logrus.Logger) *CloudWatchPublisher {
	return &CloudWatchPublisher{client: clients.CloudWatch, log: log, now: time.Now}
}

// Publish sends the summary counters in one PutMetricData call.
// Best-effort: the caller logs the returned error but never fails the batch
// on it.
func (p *CloudWatchPublisher) Publish(ctx context.Context, s models.BatchSummary) error {
	ts := p.now().UTC()
	data := []cwtypes.MetricDatum{
		datum("LaunchesEvaluated", s.Total, ts),
		datum("NonCompliantLaunches", s.NonCompliant, ts),
		datum("RemediationFailures", s.RemediationFailures, ts),
		datum("RecordsSkipped", s.Skipped, ts),
	}

	_, err := p.client.PutMetricData(ctx, &cwsvc.PutMetricDataInput{
		Namespace:  aws.String(metricsNamespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put batch summary metrics: %w", err)
	}
	return nil
}

func datum(name string, value int, ts time.Time) cwtypes.MetricDatum {
	return cwtypes.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(float64(value)),
		Unit:       cwtypes.StandardUnitCount,
		Timestamp:  aws.Time(ts),
	}
}
