package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sentinelops/amiguard/internal/config"
	"github.com/sentinelops/amiguard/internal/engine"
	"github.com/sentinelops/amiguard/internal/models"
	"github.com/sentinelops/amiguard/internal/policy"
	awsguard "github.com/sentinelops/amiguard/internal/providers/aws/guard"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "amiguard",
		Short: "amiguard — terminate EC2 launches from unapproved AMIs",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newReplayCmd())
	return root
}

// newServeCmd starts the Lambda runtime loop. This is the production entry
// point; the deployment package invokes `amiguard serve`.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as an AWS Lambda handler",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, logger, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}

			lambda.Start(func(ctx context.Context, ev events.CloudWatchEvent) (*models.BatchSummary, error) {
				summary, err := eng.HandleEvent(ctx, ev)
				if err != nil {
					logger.WithError(err).Error("event rejected")
					return nil, err
				}
				if !summary.Succeeded {
					// Surfacing an error lets the invocation framework retry
					// the whole event; every step is idempotent, so a retry
					// is safe.
					return summary, fmt.Errorf("batch completed with %d remediation failure(s) and %d skipped record(s)",
						summary.RemediationFailures, summary.Skipped)
				}
				return summary, nil
			})
			return nil
		},
	}
}

// newReplayCmd runs the handler once against an event payload from disk.
// Useful for local testing with AMIGUARD_DRY_RUN=true and for re-driving an
// event that exhausted its delivery retries.
func newReplayCmd() *cobra.Command {
	var eventPath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Process a recorded launch event from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(eventPath)
			if err != nil {
				return fmt.Errorf("read event file: %w", err)
			}

			var ev events.CloudWatchEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				return fmt.Errorf("parse event file %s: %w", eventPath, err)
			}

			ctx := cmd.Context()
			eng, clients, logger, err := buildEngine(ctx)
			if err != nil {
				return err
			}

			// Recorded event files are often trimmed of the envelope fields;
			// fill the account from the active credentials so findings still
			// get a valid product ARN.
			if ev.AccountID == "" {
				accountID, err := awsguard.NewAccountResolver(clients).ResolveAccountID(ctx)
				if err != nil {
					return err
				}
				ev.AccountID = accountID
			}

			summary, err := eng.HandleEvent(ctx, ev)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal summary: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !summary.Succeeded {
				logger.Warn("replay finished with failures")
				return fmt.Errorf("batch completed with %d remediation failure(s) and %d skipped record(s)",
					summary.RemediationFailures, summary.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventPath, "event", "e", "", "path to the event JSON file")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

// buildEngine loads configuration, constructs the AWS clients, and wires the
// remediation engine.
func buildEngine(ctx context.Context) (*engine.RemediationEngine, *awsguard.Clients, *logrus.Logger, error) {
	cfg, err := config.EnvLoader{}.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := newLogger(cfg.LogLevel)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(3))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load aws config: %w", err)
	}

	clients := awsguard.NewDefaultClients(awsCfg)

	pol := policy.Chain{policy.PublicImagePolicy{}}
	if len(cfg.TrustedOwners) > 0 {
		pol = append(pol, policy.NewTrustedOwnersPolicy(cfg.TrustedOwners))
	}

	remediator := awsguard.NewRemediator(clients, cfg.DryRun, logger)

	var archiver engine.FindingArchiver
	if cfg.FindingsBucket != "" {
		archiver = awsguard.NewS3Archive(clients, cfg.FindingsBucket, logger)
	}

	var metrics engine.SummaryPublisher
	if cfg.MetricsEnabled {
		metrics = awsguard.NewCloudWatchPublisher(clients, logger)
	}

	eng := engine.NewRemediationEngine(
		engine.NewEvaluator(awsguard.NewImageLookup(clients), pol, cfg.LookupFailMode, logger),
		engine.NewExecutor(remediator, remediator, logger),
		engine.NewReporter(awsguard.NewSecurityHubReporter(clients, logger), archiver, cfg.DryRun, logger),
		metrics,
		cfg.Concurrency,
		logger,
	)
	return eng, clients, logger, nil
}

// newLogger builds the JSON-structured logger shared by all components.
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
