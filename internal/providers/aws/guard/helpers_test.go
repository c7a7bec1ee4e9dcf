package awsguard

import (
	"io"

	"github.com/sirupsen/logrus"
)

// testLogger returns a logger that keeps test output quiet.
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
