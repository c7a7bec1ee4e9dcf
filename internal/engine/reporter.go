package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/findings"
	"github.com/sentinelops/amiguard/internal/models"
)

// Reporter builds the audit finding for a remediated record and submits it.
// The audit trail must exist even when remediation partially failed, since
// that failure is itself safety-relevant; and a failed submission must never
// undo the termination or suspension already performed.
type Reporter struct {
	submitter FindingSubmitter
	archiver  FindingArchiver // nil when archiving is disabled
	dryRun    bool
	log       *logrus.Logger
}

// NewReporter constructs a Reporter. archiver may be nil.
func NewReporter(submitter FindingSubmitter, archiver FindingArchiver, dryRun bool, log *logrus.Logger) *Reporter {
	return &Reporter{submitter: submitter, archiver: archiver, dryRun: dryRun, log: log}
}

// Report builds and submits the finding for rec, updating outcome in place:
// FindingSubmitted on success, an appended error on failure.
func (r *Reporter) Report(ctx context.Context, rec models.LaunchRecord, reason string, outcome *models.RemediationOutcome) {
	f := findings.Build(rec, *outcome, reason, r.dryRun)

	if err := r.submitter.Submit(ctx, f); err != nil {
		r.log.WithField("finding", f.ID).WithError(err).Error("finding submission failed")
		outcome.Errors = append(outcome.Errors, err.Error())
	} else {
		outcome.FindingSubmitted = true
	}

	if r.archiver != nil {
		if err := r.archiver.Archive(ctx, f); err != nil {
			r.log.WithField("finding", f.ID).WithError(err).Error("finding archive failed")
			outcome.Errors = append(outcome.Errors, err.Error())
		}
	}
}
