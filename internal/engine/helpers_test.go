package engine

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sentinelops/amiguard/internal/models"
)

// testLogger returns a logger that keeps test output quiet.
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeLookup serves canned image metadata per image id. Records may be
// processed concurrently, so all fakes guard their state.
type fakeLookup struct {
	mu    sync.Mutex
	infos map[string]models.ImageComplianceInfo
	errs  map[string]error
	calls []string
}

func (f *fakeLookup) LookupImage(_ context.Context, imageID string) (models.ImageComplianceInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, imageID)
	if err, ok := f.errs[imageID]; ok {
		return models.ImageComplianceInfo{}, err
	}
	return f.infos[imageID], nil
}

type fakeSuspender struct {
	mu     sync.Mutex
	err    error
	groups []string
}

func (f *fakeSuspender) SuspendLaunches(_ context.Context, groupName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups = append(f.groups, groupName)
	return f.err
}

func (f *fakeSuspender) suspended() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.groups...)
}

type fakeTerminator struct {
	mu  sync.Mutex
	err error
	ids []string
}

func (f *fakeTerminator) Terminate(_ context.Context, instanceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, instanceID)
	return f.err
}

func (f *fakeTerminator) terminated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

type fakeSubmitter struct {
	mu       sync.Mutex
	err      error
	findings []models.Finding
}

func (f *fakeSubmitter) Submit(_ context.Context, finding models.Finding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findings = append(f.findings, finding)
	return f.err
}

func (f *fakeSubmitter) submitted() []models.Finding {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Finding(nil), f.findings...)
}

type fakePublisher struct {
	mu        sync.Mutex
	err       error
	summaries []models.BatchSummary
}

func (f *fakePublisher) Publish(_ context.Context, s models.BatchSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, s)
	return f.err
}
