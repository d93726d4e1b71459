package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/arcadia-tracker/arcadia/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DirectoryBumper invalidates every cached display identity.
type DirectoryBumper interface {
	Bump(ctx context.Context) error
}

// DirectoryRefreshJob drops stale usernames and avatars from the identity cache.
type DirectoryRefreshJob struct {
	Directory DirectoryBumper
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewDirectoryRefreshJob wires dependencies for the refresh handler.
func NewDirectoryRefreshJob(directory DirectoryBumper, logger *slog.Logger, metrics *jobmetrics.Metrics) *DirectoryRefreshJob {
	return &DirectoryRefreshJob{Directory: directory, Logger: logger, Metrics: metrics}
}

// Handle processes TaskDirectoryRefresh tasks.
func (j *DirectoryRefreshJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Directory == nil {
		return errors.New("directory refresh: handler not configured")
	}
	var payload DirectoryRefreshPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.Reason == "" {
		payload.Reason = "scheduled"
	}

	tracker := j.metrics().Track(TaskDirectoryRefresh)
	defer func() {
		err = tracker.End(err)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	if err = j.Directory.Bump(ctx); err != nil {
		logger.Error("bump directory version", slog.Any("error", err))
		return err
	}
	logger.Info("directory cache invalidated")
	return nil
}

func (j *DirectoryRefreshJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDirectoryRefresh))
	}
	return slog.Default().With(slog.String("job", TaskDirectoryRefresh))
}

func (j *DirectoryRefreshJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
