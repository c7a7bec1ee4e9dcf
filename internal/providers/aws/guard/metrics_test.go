package awsguard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/sentinelops/amiguard/internal/models"
)

// fakeCloudWatch implements cloudWatchAPIClient for tests.
type fakeCloudWatch struct {
	err  error
	last *cwsvc.PutMetricDataInput
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, params *cwsvc.PutMetricDataInput, _ ...func(*cwsvc.Options)) (*cwsvc.PutMetricDataOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = params
	return &cwsvc.PutMetricDataOutput{}, nil
}

func TestCloudWatchPublisher_Publish(t *testing.T) {
	cw := &fakeCloudWatch{}
	p := NewCloudWatchPublisher(&Clients{CloudWatch: cw}, testLogger())
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	err := p.Publish(context.Background(), models.BatchSummary{
		Total:               3,
		Compliant:           1,
		NonCompliant:        2,
		RemediationFailures: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if aws.ToString(cw.last.Namespace) != "AmiGuard" {
		t.Errorf("namespace: got %q", aws.ToString(cw.last.Namespace))
	}

	want := map[string]float64{
		"LaunchesEvaluated":    3,
		"NonCompliantLaunches": 2,
		"RemediationFailures":  1,
		"RecordsSkipped":       0,
	}
	if len(cw.last.MetricData) != len(want) {
		t.Fatalf("want %d datums, got %d", len(want), len(cw.last.MetricData))
	}
	for _, d := range cw.last.MetricData {
		name := aws.ToString(d.MetricName)
		if aws.ToFloat64(d.Value) != want[name] {
			t.Errorf("%s: got %v; want %v", name, aws.ToFloat64(d.Value), want[name])
		}
	}
}

func TestCloudWatchPublisher_Failure(t *testing.T) {
	p := NewCloudWatchPublisher(&Clients{CloudWatch: &fakeCloudWatch{err: errors.New("throttled")}}, testLogger())
	if err := p.Publish(context.Background(), models.BatchSummary{}); err == nil {
		t.Fatal("want error")
	}
}
