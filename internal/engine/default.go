package engine

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/event"
	"github.com/sentinelops/amiguard/internal/models"
)

// RemediationEngine is the production implementation of Engine. It wires the
// normalizer, evaluator, executor, and reporter into the per-record pipeline
// and aggregates the batch summary.
type RemediationEngine struct {
	evaluator *Evaluator
	executor  *Executor
	reporter  *Reporter
	metrics   SummaryPublisher // nil when metrics are disabled

	// concurrency bounds parallel record processing. Records in a batch are
	// independent, so the only synchronization point is collecting results
	// into per-index slots.
	concurrency int

	log *logrus.Logger
}

// NewRemediationEngine constructs a RemediationEngine. metrics may be nil;
// concurrency values below 1 fall back to serial processing.
func NewRemediationEngine(
	evaluator *Evaluator,
	executor *Executor,
	reporter *Reporter,
	metrics SummaryPublisher,
	concurrency int,
	log *logrus.Logger,
) *RemediationEngine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &RemediationEngine{
		evaluator:   evaluator,
		executor:    executor,
		reporter:    reporter,
		metrics:     metrics,
		concurrency: concurrency,
		log:         log,
	}
}

// recordResult is the per-record slot collected by the fan-out.
type recordResult struct {
	compliant bool
	outcome   *models.RemediationOutcome
}

// HandleEvent implements Engine. One record's failure never prevents the
// other records in the batch from being processed.
func (e *RemediationEngine) HandleEvent(ctx context.Context, ev events.CloudWatchEvent) (*models.BatchSummary, error) {
	records, skipped, err := event.Normalize(ev)
	if err != nil {
		return nil, err
	}

	for _, s := range skipped {
		e.log.WithField("item", s.Index).Warn(s.Reason)
	}

	results := make([]recordResult, len(records))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)
	for i, rec := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, rec models.LaunchRecord) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = e.processRecord(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	summary := e.summarize(records, skipped, results)

	if e.metrics != nil {
		if err := e.metrics.Publish(ctx, *summary); err != nil {
			e.log.WithError(err).Warn("summary metrics publish failed")
		}
	}

	e.log.WithFields(logrus.Fields{
		"total":                summary.Total,
		"compliant":            summary.Compliant,
		"non_compliant":        summary.NonCompliant,
		"skipped":              summary.Skipped,
		"remediation_failures": summary.RemediationFailures,
		"succeeded":            summary.Succeeded,
	}).Info("batch processed")

	return summary, nil
}

// processRecord runs one record through evaluate → remediate → report.
func (e *RemediationEngine) processRecord(ctx context.Context, rec models.LaunchRecord) recordResult {
	eval := e.evaluator.Evaluate(ctx, rec)
	if eval.Compliant {
		e.log.WithFields(logrus.Fields{
			"instance": rec.InstanceID,
			"image":    rec.ImageID,
		}).Debug("launch is compliant")
		return recordResult{compliant: true}
	}

	e.log.WithFields(logrus.Fields{
		"instance": rec.InstanceID,
		"image":    rec.ImageID,
		"policy":   eval.PolicyID,
		"reason":   eval.Reason,
	}).Warn("non-compliant launch detected")

	outcome := e.executor.Remediate(ctx, rec)
	e.reporter.Report(ctx, rec, eval.Reason, &outcome)
	return recordResult{outcome: &outcome}
}

// summarize folds the per-record slots into the batch summary.
func (e *RemediationEngine) summarize(
	records []models.LaunchRecord,
	skipped []event.NormalizationError,
	results []recordResult,
) *models.BatchSummary {
	summary := &models.BatchSummary{
		Total:   len(records) + len(skipped),
		Skipped: len(skipped),
	}
	for _, s := range skipped {
		summary.NormalizationErrors = append(summary.NormalizationErrors, s.Error())
	}

	for _, res := range results {
		if res.compliant {
			summary.Compliant++
			continue
		}
		summary.NonCompliant++
		summary.Outcomes = append(summary.Outcomes, *res.outcome)
		if res.outcome.Failed() {
			summary.RemediationFailures++
		}
	}

	summary.Succeeded = summary.RemediationFailures == 0 && summary.Skipped == 0
	return summary
}
