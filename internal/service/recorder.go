// internal/service/recorder.go
package service

import (
	"context"
	"log/slog"

	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/worker"
)

// ProgressWriter persists one event. It reports false when the event was
// already recorded or predates a reset.
type ProgressWriter interface {
	RecordProgress(ctx context.Context, ev progress.Event) (bool, error)
}

// Submitter is the part of the worker pool the recorder needs.
type Submitter interface {
	Submit(id string, fn worker.Job) bool
}

// ProgressRecorder writes submission history in the background. Record never
// blocks the caller: a full queue drops the event, a failed write is logged
// and not retried.
type ProgressRecorder struct {
	store  ProgressWriter
	pool   Submitter
	logger *slog.Logger
}

// NewProgressRecorder creates a ProgressRecorder.
func NewProgressRecorder(s ProgressWriter, pool Submitter, logger *slog.Logger) *ProgressRecorder {
	return &ProgressRecorder{store: s, pool: pool, logger: logger}
}

// Record satisfies practicesession.Recorder.
func (r *ProgressRecorder) Record(ev progress.Event) {
	accepted := r.pool.Submit(ev.SubmissionID, func(ctx context.Context) error {
		return r.write(ctx, ev)
	})
	if !accepted {
		r.logger.Warn("progress event dropped",
			"submission_id", ev.SubmissionID,
			"user_id", ev.UserID,
			"question_id", ev.QuestionID,
		)
	}
}

// write logs its own failures so the pool only ever sees nil.
func (r *ProgressRecorder) write(ctx context.Context, ev progress.Event) error {
	applied, err := r.store.RecordProgress(ctx, ev)
	if err != nil {
		r.logger.Error("failed to record progress",
			"submission_id", ev.SubmissionID,
			"question_id", ev.QuestionID,
			"error", err,
		)
		return nil
	}
	if !applied {
		r.logger.Debug("progress event skipped", "submission_id", ev.SubmissionID)
	}
	return nil
}
